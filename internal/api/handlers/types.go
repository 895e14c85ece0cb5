package handlers

import "strings"

// =================================================
// Request bodies
// =================================================

type LoginRequest struct {
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

type CreateUserRequest struct {
	Username           string `json:"username" binding:"required,max=20"`
	Password           string `json:"password" binding:"required,adpassword"`
	GivenName          string `json:"given_name"`
	Surname            string `json:"surname"`
	Email              string `json:"email" binding:"omitempty,email"`
	Description        string `json:"description"`
	MustChangePassword bool   `json:"must_change_password"`
}

type SetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,adpassword"`
	MustChange  bool   `json:"must_change"`
}

type UpdateUserRequest struct {
	DisplayName *string `json:"display_name"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Description *string `json:"description"`
}

type CreateGroupRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateGroupRequest struct {
	Description *string `json:"description"`
}

type GroupMembersRequest struct {
	Usernames []string `json:"usernames" binding:"required,min=1"`
}

type CreateShareRequest struct {
	Name       string `json:"name" binding:"required"`
	Path       string `json:"path" binding:"required"`
	Comment    string `json:"comment"`
	ReadOnly   bool   `json:"read_only"`
	GuestOK    bool   `json:"guest_ok"`
	Browseable *bool  `json:"browseable"`
}

type UpdateShareRequest struct {
	Path       *string `json:"path"`
	Comment    *string `json:"comment"`
	ReadOnly   *bool   `json:"read_only"`
	GuestOK    *bool   `json:"guest_ok"`
	Browseable *bool   `json:"browseable"`
}

type DNSRecordRequest struct {
	Zone string `json:"zone" binding:"required"`
	Name string `json:"name" binding:"required"`
	Type string `json:"type" binding:"required,oneof=A AAAA CNAME MX NS PTR SRV TXT"`
	Data string `json:"data" binding:"required"`
}

type VerifyRequest struct {
	AdminPassword string `json:"admin_password"`
}

// =================================================
// Protected built-in names
// =================================================

// Built-in accounts, groups and shares the management API must never
// modify or delete. Matching is case-insensitive.
var (
	protectedUsers = map[string]bool{
		"administrator": true,
		"guest":         true,
		"krbtgt":        true,
	}

	protectedGroups = map[string]bool{
		"administrators":    true,
		"users":             true,
		"guests":            true,
		"domain admins":     true,
		"domain users":      true,
		"domain guests":     true,
		"enterprise admins": true,
		"schema admins":     true,
		"dns admins":        true,
	}

	protectedShares = map[string]bool{
		"homes":    true,
		"netlogon": true,
		"sysvol":   true,
	}
)

func isProtectedUser(username string) bool {
	return protectedUsers[strings.ToLower(username)]
}

func isProtectedGroup(groupname string) bool {
	return protectedGroups[strings.ToLower(groupname)]
}

func isProtectedShare(sharename string) bool {
	return protectedShares[strings.ToLower(sharename)]
}
