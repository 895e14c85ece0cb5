package setup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() DomainConfig {
	return DomainConfig{
		Realm:         "EXAMPLE.COM",
		Domain:        "EXAMPLE",
		DomainName:    "example.com",
		AdminPassword: "Passw0rd123",
	}
}

func TestValidateAcceptsValidConfig(t *testing.T) {
	cfg := validConfig()
	cfg.ApplyDefaults()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, DNSBackendInternal, cfg.DNSBackend)
	assert.Equal(t, "8.8.8.8", cfg.DNSForwarder)
	assert.Equal(t, "dc", cfg.ServerRole)
	assert.Equal(t, "2008", cfg.FunctionLevel)
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*DomainConfig)
	}{
		{"LowercaseRealm", func(c *DomainConfig) { c.Realm = "example.com" }},
		{"ShortRealm", func(c *DomainConfig) { c.Realm = "EX" }},
		{"LowercaseNetBIOS", func(c *DomainConfig) { c.Domain = "example" }},
		{"LongNetBIOS", func(c *DomainConfig) { c.Domain = "EXAMPLEDOMAINTOOLONG" }},
		{"NetBIOSWithSymbols", func(c *DomainConfig) { c.Domain = "EX AMPLE" }},
		{"UppercaseDNSName", func(c *DomainConfig) { c.DomainName = "Example.com" }},
		{"ShortDNSName", func(c *DomainConfig) { c.DomainName = "ex" }},
		{"ShortPassword", func(c *DomainConfig) { c.AdminPassword = "Pw1" }},
		{"NoUppercase", func(c *DomainConfig) { c.AdminPassword = "passw0rd123" }},
		{"NoLowercase", func(c *DomainConfig) { c.AdminPassword = "PASSW0RD123" }},
		{"NoDigit", func(c *DomainConfig) { c.AdminPassword = "Passwordonly" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidNetBIOS(t *testing.T) {
	assert.True(t, ValidNetBIOS("EXAMPLE"))
	assert.True(t, ValidNetBIOS("CORP01"))
	assert.False(t, ValidNetBIOS(""))
	assert.False(t, ValidNetBIOS("corp"))
	assert.False(t, ValidNetBIOS("CORP-01"))
}

func TestValidDNSName(t *testing.T) {
	assert.True(t, ValidDNSName("example.com"))
	assert.True(t, ValidDNSName("ad.corp-01.example.com"))
	assert.False(t, ValidDNSName("Example.com"))
	assert.False(t, ValidDNSName("ex"))
	assert.False(t, ValidDNSName("exam ple.com"))
}

func TestValidPassword(t *testing.T) {
	assert.True(t, ValidPassword("Passw0rd"))
	assert.False(t, ValidPassword("Pass0rd"))
	assert.False(t, ValidPassword("password1"))
	assert.False(t, ValidPassword("PASSWORD1"))
	assert.False(t, ValidPassword("Password"))
}
