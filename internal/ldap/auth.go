package ldap

import (
	"context"
	"fmt"
	"log"
	"strings"

	ldapv3 "github.com/go-ldap/ldap/v3"
)

// Bridge authenticates accounts against the directory and derives their
// domain identity from live directory state.
type Bridge struct {
	config  *Config
	domains DomainInfoProvider
}

func NewBridge(config *Config, domains DomainInfoProvider) *Bridge {
	return &Bridge{
		config:  config,
		domains: domains,
	}
}

func NewService(domains DomainInfoProvider) (Service, error) {
	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	return NewBridge(config, domains), nil
}

// Authenticate tries a simple bind and then an NTLM bind for the given
// identifier. The first method that succeeds wins; if both fail the caller
// sees one uniform ErrInvalidCredentials with the underlying detail logged
// only, so responses never reveal whether the account exists.
func (b *Bridge) Authenticate(ctx context.Context, username, password string) (*Identity, error) {
	// An empty password would turn a simple bind into an anonymous bind.
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	bindName := b.normalizeBindName(ctx, username)

	conn, err := b.bindSimple(bindName, password)
	if err != nil {
		log.Printf("Simple bind failed for %s: %v", username, err)

		ntlmDomain, ntlmUser := splitBindName(ctx, b, bindName, username)
		conn, err = b.bindNTLM(ntlmDomain, ntlmUser, password)
		if err != nil {
			log.Printf("NTLM bind failed for %s: %v", username, err)
			return nil, ErrInvalidCredentials
		}
		log.Printf("User %s authenticated via NTLM bind", username)
	} else {
		log.Printf("User %s authenticated via simple bind", username)
	}
	defer conn.Close()

	identity, err := b.lookupIdentity(conn, accountName(username))
	if err != nil {
		log.Printf("Authenticated bind for %s but identity lookup failed: %v", username, err)
		return nil, fmt.Errorf("%w: %v", ErrUserInfoUnavailable, err)
	}

	return identity, nil
}

// normalizeBindName passes principal-style and down-level identifiers
// through unchanged and prefixes bare account names with the NetBIOS
// domain. If the domain cannot be determined the bare name is used as-is.
func (b *Bridge) normalizeBindName(ctx context.Context, username string) string {
	if strings.ContainsAny(username, "@\\") {
		return username
	}

	info, err := b.domains.DomainInfo(ctx)
	if err != nil || info.NetbiosDomain == "" {
		if err != nil {
			log.Printf("Could not get domain info for bind name: %v", err)
		}
		return username
	}
	return info.NetbiosDomain + `\` + username
}

// splitBindName produces the domain-prefixed form NTLM requires. A
// down-level name splits directly; a principal splits on '@'; a bare name
// gets another NetBIOS lookup attempt.
func splitBindName(ctx context.Context, b *Bridge, bindName, username string) (domain, user string) {
	if i := strings.Index(bindName, `\`); i >= 0 {
		return bindName[:i], bindName[i+1:]
	}
	if i := strings.Index(username, "@"); i >= 0 {
		return username[i+1:], username[:i]
	}

	info, err := b.domains.DomainInfo(ctx)
	if err == nil && info.NetbiosDomain != "" {
		return info.NetbiosDomain, username
	}
	return "", username
}

// accountName reduces any identifier form to the bare sAMAccountName used
// in the directory search.
func accountName(username string) string {
	if i := strings.Index(username, `\`); i >= 0 {
		return username[i+1:]
	}
	if i := strings.Index(username, "@"); i >= 0 {
		return username[:i]
	}
	return username
}

func (b *Bridge) bindSimple(bindName, password string) (*ldapv3.Conn, error) {
	conn, err := b.dial()
	if err != nil {
		return nil, err
	}
	if err := conn.Bind(bindName, password); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

func (b *Bridge) bindNTLM(domain, username, password string) (*ldapv3.Conn, error) {
	conn, err := b.dial()
	if err != nil {
		return nil, err
	}
	if err := conn.NTLMBind(domain, username, password); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// lookupIdentity fetches the account's directory entry over the already
// authenticated connection and derives the session identity from it.
func (b *Bridge) lookupIdentity(conn *ldapv3.Conn, account string) (*Identity, error) {
	baseDN, err := defaultNamingContext(conn)
	if err != nil {
		return nil, err
	}

	searchRequest := ldapv3.NewSearchRequest(
		baseDN,
		ldapv3.ScopeWholeSubtree,
		ldapv3.NeverDerefAliases,
		1,
		10,
		false,
		fmt.Sprintf("(&(objectClass=user)(sAMAccountName=%s))", ldapv3.EscapeFilter(account)),
		[]string{"sAMAccountName", "displayName", "mail", "memberOf"},
		nil,
	)

	result, err := conn.Search(searchRequest)
	if err != nil {
		return nil, fmt.Errorf("directory search failed: %w", err)
	}
	if len(result.Entries) == 0 {
		return nil, fmt.Errorf("account %s not found in directory", account)
	}

	entry := result.Entries[0]
	groups := groupNames(entry.GetAttributeValues("memberOf"))

	identity := &Identity{
		Username:    entry.GetAttributeValue("sAMAccountName"),
		DisplayName: entry.GetAttributeValue("displayName"),
		Email:       entry.GetAttributeValue("mail"),
		Domain:      domainFromBaseDN(baseDN),
		Groups:      groups,
		IsAdmin:     isAdmin(groups),
	}
	if identity.Username == "" {
		identity.Username = account
	}
	return identity, nil
}

func defaultNamingContext(conn *ldapv3.Conn) (string, error) {
	searchRequest := ldapv3.NewSearchRequest(
		"",
		ldapv3.ScopeBaseObject,
		ldapv3.NeverDerefAliases,
		0,
		10,
		false,
		"(objectClass=*)",
		[]string{"defaultNamingContext"},
		nil,
	)

	result, err := conn.Search(searchRequest)
	if err != nil {
		return "", fmt.Errorf("failed to read root DSE: %w", err)
	}
	if len(result.Entries) == 0 {
		return "", fmt.Errorf("could not determine base DN")
	}

	baseDN := result.Entries[0].GetAttributeValue("defaultNamingContext")
	if baseDN == "" {
		return "", fmt.Errorf("could not determine base DN")
	}
	return baseDN, nil
}

// groupNames reduces memberOf distinguished names to their leaf relative
// name, e.g. "CN=Domain Admins,CN=Users,DC=example,DC=com" -> "Domain Admins".
func groupNames(memberOf []string) []string {
	var groups []string
	for _, dn := range memberOf {
		leaf, _, _ := strings.Cut(dn, ",")
		leaf = strings.TrimSpace(leaf)
		if len(leaf) > 3 && strings.EqualFold(leaf[:3], "CN=") {
			groups = append(groups, leaf[3:])
		}
	}
	return groups
}

func isAdmin(groups []string) bool {
	for _, group := range groups {
		for _, admin := range adminGroups {
			if strings.EqualFold(group, admin) {
				return true
			}
		}
	}
	return false
}

// domainFromBaseDN joins the DC components of the naming context into the
// DNS domain name, e.g. "DC=example,DC=com" -> "example.com".
func domainFromBaseDN(baseDN string) string {
	var parts []string
	for _, component := range strings.Split(baseDN, ",") {
		component = strings.TrimSpace(component)
		if len(component) > 3 && strings.EqualFold(component[:3], "DC=") {
			parts = append(parts, component[3:])
		}
	}
	return strings.Join(parts, ".")
}
