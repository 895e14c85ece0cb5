package ldap

import (
	"context"
	"errors"
	"testing"

	"github.com/adhub/adhub/internal/samba"
	"github.com/stretchr/testify/assert"
)

type fakeDomains struct {
	info *samba.DomainInfo
	err  error
}

func (f *fakeDomains) DomainInfo(ctx context.Context) (*samba.DomainInfo, error) {
	return f.info, f.err
}

func testBridge(netbios string) *Bridge {
	domains := &fakeDomains{info: &samba.DomainInfo{NetbiosDomain: netbios}}
	if netbios == "" {
		domains.err = errors.New("domain info unavailable")
	}
	return NewBridge(&Config{URL: "ldap://localhost:389"}, domains)
}

func TestNormalizeBindName(t *testing.T) {
	ctx := context.Background()
	b := testBridge("EXAMPLE")

	tests := []struct {
		name     string
		username string
		expected string
	}{
		{"BareName", "alice", `EXAMPLE\alice`},
		{"DownLevel", `OTHER\alice`, `OTHER\alice`},
		{"Principal", "alice@example.com", "alice@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, b.normalizeBindName(ctx, tt.username))
		})
	}
}

func TestNormalizeBindNameWithoutDomainInfo(t *testing.T) {
	b := testBridge("")
	assert.Equal(t, "alice", b.normalizeBindName(context.Background(), "alice"))
}

func TestSplitBindName(t *testing.T) {
	ctx := context.Background()
	b := testBridge("EXAMPLE")

	tests := []struct {
		name           string
		bindName       string
		username       string
		expectedDomain string
		expectedUser   string
	}{
		{"DownLevel", `EXAMPLE\alice`, "alice", "EXAMPLE", "alice"},
		{"Principal", "alice@example.com", "alice@example.com", "example.com", "alice"},
		{"BareWithLookup", "alice", "alice", "EXAMPLE", "alice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			domain, user := splitBindName(ctx, b, tt.bindName, tt.username)
			assert.Equal(t, tt.expectedDomain, domain)
			assert.Equal(t, tt.expectedUser, user)
		})
	}
}

func TestSplitBindNameWithoutDomainInfo(t *testing.T) {
	domain, user := splitBindName(context.Background(), testBridge(""), "alice", "alice")
	assert.Empty(t, domain)
	assert.Equal(t, "alice", user)
}

func TestAccountName(t *testing.T) {
	assert.Equal(t, "alice", accountName("alice"))
	assert.Equal(t, "alice", accountName(`EXAMPLE\alice`))
	assert.Equal(t, "alice", accountName("alice@example.com"))
}

func TestGroupNames(t *testing.T) {
	memberOf := []string{
		"CN=Domain Admins,CN=Users,DC=example,DC=com",
		"cn=Staff,OU=Groups,DC=example,DC=com",
		"OU=Not a group,DC=example,DC=com",
	}
	assert.Equal(t, []string{"Domain Admins", "Staff"}, groupNames(memberOf))
	assert.Empty(t, groupNames(nil))
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, isAdmin([]string{"Staff", "Domain Admins"}))
	assert.True(t, isAdmin([]string{"administrators"}))
	assert.True(t, isAdmin([]string{"Enterprise Admins"}))
	assert.False(t, isAdmin([]string{"Staff", "Domain Users"}))
	assert.False(t, isAdmin(nil))
}

func TestDomainFromBaseDN(t *testing.T) {
	assert.Equal(t, "example.com", domainFromBaseDN("DC=example,DC=com"))
	assert.Equal(t, "corp.example.com", domainFromBaseDN("dc=corp, dc=example, dc=com"))
	assert.Empty(t, domainFromBaseDN("CN=Users"))
}

func TestAuthenticateBothBindsFailUniformly(t *testing.T) {
	// Nothing listens on port 1, so the simple bind and the NTLM fallback
	// both fail to connect.
	domains := &fakeDomains{info: &samba.DomainInfo{NetbiosDomain: "EXAMPLE"}}
	b := NewBridge(&Config{URL: "ldap://127.0.0.1:1"}, domains)

	identity, err := b.Authenticate(context.Background(), "alice", "Passw0rd123")
	assert.Nil(t, identity)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, ErrInvalidCredentials, err, "bind failures must not leak their cause")
}

func TestAuthenticateRejectsEmptyCredentials(t *testing.T) {
	b := testBridge("EXAMPLE")

	_, err := b.Authenticate(context.Background(), "", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = b.Authenticate(context.Background(), "alice", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
