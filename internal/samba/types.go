package samba

import "context"

// =================================================
// Samba Service Interface
// =================================================

type Service interface {
	// User Management
	ListUsers(ctx context.Context) ([]User, error)
	GetUser(ctx context.Context, username string) (*User, error)
	CreateUser(ctx context.Context, params CreateUserParams) error
	DeleteUser(ctx context.Context, username string) error
	EnableUser(ctx context.Context, username string) error
	DisableUser(ctx context.Context, username string) error
	SetPassword(ctx context.Context, username, newPassword string, mustChange bool) error

	// Group Management
	ListGroups(ctx context.Context) ([]Group, error)
	GetGroup(ctx context.Context, groupname string) (*Group, error)
	CreateGroup(ctx context.Context, groupname, description string) error
	DeleteGroup(ctx context.Context, groupname string) error
	AddGroupMembers(ctx context.Context, groupname string, usernames []string) error
	RemoveGroupMembers(ctx context.Context, groupname string, usernames []string) error

	// Share Management
	ListShares(ctx context.Context) ([]Share, error)
	GetShare(ctx context.Context, sharename string) (*Share, error)
	CreateShare(ctx context.Context, params ShareParams) error
	UpdateShare(ctx context.Context, sharename string, update ShareUpdate) error
	DeleteShare(ctx context.Context, sharename string) error

	// DNS Management
	ListZones(ctx context.Context) ([]DNSZone, error)
	AddDNSRecord(ctx context.Context, record DNSRecord, adminPassword string) error
	DeleteDNSRecord(ctx context.Context, record DNSRecord, adminPassword string) error

	// Domain
	DomainInfo(ctx context.Context) (*DomainInfo, error)

	// Statistics
	DashboardStats(ctx context.Context) (*DashboardStats, error)
}

// =================================================
// Configuration
// =================================================

type Config struct {
	Server   string `envconfig:"SAMBA_SERVER" default:"127.0.0.1"`
	ConfPath string `envconfig:"SAMBA_CONF_PATH" default:"/etc/samba/smb.conf"`
	StateDir string `envconfig:"SAMBA_STATE_DIR" default:"/var/lib/samba"`
	LogDir   string `envconfig:"ADHUB_LOG_DIR" default:"/var/log/adhub"`
}

// =================================================
// Users
// =================================================

type User struct {
	Username        string `json:"username"`
	DisplayName     string `json:"display_name,omitempty"`
	Email           string `json:"email,omitempty"`
	Description     string `json:"description,omitempty"`
	AccountDisabled bool   `json:"account_disabled"`
}

type CreateUserParams struct {
	Username           string
	Password           string
	GivenName          string
	Surname            string
	Email              string
	Description        string
	MustChangePassword bool
}

// =================================================
// Groups
// =================================================

type Group struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Members     []string `json:"members"`
}

// =================================================
// Shares
// =================================================

type Share struct {
	Name       string `json:"name"`
	Path       string `json:"path,omitempty"`
	Comment    string `json:"comment,omitempty"`
	ReadOnly   bool   `json:"read_only"`
	GuestOK    bool   `json:"guest_ok"`
	Browseable bool   `json:"browseable"`
}

type ShareParams struct {
	Name       string
	Path       string
	Comment    string
	ReadOnly   bool
	GuestOK    bool
	Browseable bool
}

// ShareUpdate carries optional parameter changes; nil fields are untouched.
type ShareUpdate struct {
	Path       *string
	Comment    *string
	ReadOnly   *bool
	GuestOK    *bool
	Browseable *bool
}

// =================================================
// DNS
// =================================================

type DNSZone struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type DNSRecord struct {
	Zone string `json:"zone"`
	Name string `json:"name"`
	Type string `json:"type"`
	Data string `json:"data"`
}

// =================================================
// Domain
// =================================================

type DomainInfo struct {
	Forest        string            `json:"forest,omitempty"`
	Domain        string            `json:"domain,omitempty"`
	NetbiosDomain string            `json:"netbios_domain,omitempty"`
	DCName        string            `json:"dc_name,omitempty"`
	Raw           map[string]string `json:"raw,omitempty"`
}

// =================================================
// Statistics
// =================================================

type DashboardStats struct {
	TotalUsers      int `json:"total_users"`
	TotalGroups     int `json:"total_groups"`
	TotalShares     int `json:"total_shares"`
	TotalDNSRecords int `json:"total_dns_records"`
}
