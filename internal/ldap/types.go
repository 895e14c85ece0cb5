package ldap

import (
	"context"
	"errors"

	"github.com/adhub/adhub/internal/samba"
)

// =================================================
// Directory Service Interface
// =================================================

type Service interface {
	// Authentication
	Authenticate(ctx context.Context, username, password string) (*Identity, error)

	// Attribute updates (admin credentials supplied per request, never cached)
	UpdateUser(ctx context.Context, username string, update UserUpdate, adminPassword string) error
	UpdateGroup(ctx context.Context, groupname string, description *string, adminPassword string) error
}

var (
	// ErrInvalidCredentials is the uniform failure for any bind rejection,
	// regardless of which bind method failed or why.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserInfoUnavailable means the bind succeeded but no usable
	// directory entry could be retrieved for the account.
	ErrUserInfoUnavailable = errors.New("could not retrieve user information")
)

// adminGroups are the group names whose membership grants the admin flag.
var adminGroups = []string{"domain admins", "administrators", "enterprise admins"}

// Identity is derived fresh from the directory on every successful login
// and embedded in the session token; it is never persisted.
type Identity struct {
	Username    string   `json:"username"`
	DisplayName string   `json:"display_name,omitempty"`
	Email       string   `json:"email,omitempty"`
	Domain      string   `json:"domain"`
	Groups      []string `json:"groups"`
	IsAdmin     bool     `json:"is_admin"`
}

// UserUpdate carries optional attribute changes; nil fields are untouched,
// empty strings clear the attribute.
type UserUpdate struct {
	DisplayName *string
	Email       *string
	Description *string
}

// =================================================
// Bridge configuration
// =================================================

type Config struct {
	URL           string `envconfig:"LDAP_URL" default:"ldap://localhost:389"`
	SkipTLSVerify bool   `envconfig:"LDAP_SKIP_TLS_VERIFY" default:"false"`
}

// DomainInfoProvider supplies the NetBIOS domain name used to build
// down-level bind names for bare account identifiers.
type DomainInfoProvider interface {
	DomainInfo(ctx context.Context) (*samba.DomainInfo, error)
}
