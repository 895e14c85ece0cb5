package setup

import (
	"fmt"
	"strings"
	"unicode"
)

// =================================================
// Check / test results
// =================================================

const (
	StatusPassed  = "passed"
	StatusFailed  = "failed"
	StatusWarning = "warning"
	StatusSkipped = "skipped"

	// StatusPartial is an overall verdict only, never a per-test status.
	StatusPartial = "partial"
)

type PrerequisiteCheck struct {
	CheckName string `json:"check_name"`
	Status    string `json:"status"`
	Message   string `json:"message"`
	Details   string `json:"details,omitempty"`
}

type VerificationTest struct {
	TestName   string `json:"test_name"`
	Category   string `json:"category"`
	Status     string `json:"status"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

// =================================================
// Provisioning
// =================================================

const (
	ProvisionCompleted = "completed"
	ProvisionFailed    = "failed"
)

type ProvisionResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Output  string `json:"output,omitempty"`
	Error   string `json:"error,omitempty"`
}

const (
	DNSBackendInternal = "SAMBA_INTERNAL"
	DNSBackendBind9    = "BIND9_DLZ"
	DNSBackendNone     = "NONE"

	defaultDNSForwarder  = "8.8.8.8"
	defaultServerRole    = "dc"
	defaultFunctionLevel = "2008"
)

// functionLevels is the allow-list accepted by the deployed directory
// version; anything else silently falls back to the 2008 baseline.
var functionLevels = map[string]bool{
	"2000":    true,
	"2003":    true,
	"2008":    true,
	"2008_R2": true,
}

// DomainConfig is the provisioning request. It is validated before any
// external command runs and consumed exactly once.
type DomainConfig struct {
	Realm         string `json:"realm" binding:"required,min=3,uppercase"`
	Domain        string `json:"domain" binding:"required,max=15,alphanum,uppercase"`
	DomainName    string `json:"domain_name" binding:"required,min=3,dnsname"`
	AdminPassword string `json:"admin_password" binding:"required,adpassword"`
	DNSBackend    string `json:"dns_backend" binding:"omitempty,oneof=SAMBA_INTERNAL BIND9_DLZ NONE"`
	DNSForwarder  string `json:"dns_forwarder" binding:"omitempty,ip"`
	ServerRole    string `json:"server_role"`
	HostIP        string `json:"host_ip" binding:"omitempty,ip"`
	FunctionLevel string `json:"function_level"`
}

// ApplyDefaults fills the optional fields the same way the setup wizard
// pre-fills them.
func (c *DomainConfig) ApplyDefaults() {
	if c.DNSBackend == "" {
		c.DNSBackend = DNSBackendInternal
	}
	if c.DNSForwarder == "" {
		c.DNSForwarder = defaultDNSForwarder
	}
	if c.ServerRole == "" {
		c.ServerRole = defaultServerRole
	}
	if c.FunctionLevel == "" {
		c.FunctionLevel = defaultFunctionLevel
	}
}

// Validate enforces the domain naming and password rules. Handlers get the
// same rules through binding tags; orchestrators re-check here so that no
// code path can reach an external command with a bad config.
func (c *DomainConfig) Validate() error {
	if len(c.Realm) < 3 || c.Realm != strings.ToUpper(c.Realm) {
		return fmt.Errorf("realm must be uppercase, e.g. EXAMPLE.COM")
	}
	if !ValidNetBIOS(c.Domain) {
		return fmt.Errorf("NetBIOS domain must be uppercase alphanumeric, at most 15 characters")
	}
	if !ValidDNSName(c.DomainName) {
		return fmt.Errorf("DNS domain name must be lowercase, e.g. example.com")
	}
	if !ValidPassword(c.AdminPassword) {
		return fmt.Errorf("password must be at least 8 characters with uppercase, lowercase, and numbers")
	}
	return nil
}

func ValidNetBIOS(domain string) bool {
	if domain == "" || len(domain) > 15 {
		return false
	}
	for _, r := range domain {
		if !unicode.IsUpper(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func ValidDNSName(name string) bool {
	if len(name) < 3 {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '.' || r == '-':
		default:
			return false
		}
	}
	return true
}

// ValidPassword requires length >= 8 and presence of the uppercase,
// lowercase and digit character classes.
func ValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasUpper && hasLower && hasDigit
}
