package ldap

import (
	"context"
	"fmt"
	"log"

	ldapv3 "github.com/go-ldap/ldap/v3"
)

// UpdateUser modifies displayName/mail/description on the user's directory
// entry, binding as Administrator with the password supplied for this
// request only.
func (b *Bridge) UpdateUser(ctx context.Context, username string, update UserUpdate, adminPassword string) error {
	if update.DisplayName == nil && update.Email == nil && update.Description == nil {
		log.Printf("No changes to apply for user %s", username)
		return nil
	}

	conn, baseDN, err := b.bindAdmin(ctx, adminPassword)
	if err != nil {
		return err
	}
	defer conn.Close()

	userDN, err := b.findEntryDN(conn, baseDN, "user", username)
	if err != nil {
		return err
	}

	modify := ldapv3.NewModifyRequest(userDN, nil)
	applyReplace(modify, "displayName", update.DisplayName)
	applyReplace(modify, "mail", update.Email)
	applyReplace(modify, "description", update.Description)

	if err := conn.Modify(modify); err != nil {
		return fmt.Errorf("failed to update user %s: %w", username, err)
	}

	log.Printf("User %s updated", username)
	return nil
}

// bindAdmin opens an Administrator-credentialed connection. Bad admin
// credentials surface as ErrInvalidCredentials so handlers can map them to
// an auth failure rather than a server error.
func (b *Bridge) bindAdmin(ctx context.Context, adminPassword string) (*ldapv3.Conn, string, error) {
	if adminPassword == "" {
		return nil, "", fmt.Errorf("%w: administrator password required", ErrInvalidCredentials)
	}

	adminUser := "Administrator"
	if info, err := b.domains.DomainInfo(ctx); err == nil && info.NetbiosDomain != "" {
		adminUser = info.NetbiosDomain + `\Administrator`
	}

	conn, err := b.bindSimple(adminUser, adminPassword)
	if err != nil {
		if ldapv3.IsErrorWithCode(err, ldapv3.LDAPResultInvalidCredentials) {
			return nil, "", fmt.Errorf("%w: administrator bind rejected", ErrInvalidCredentials)
		}
		return nil, "", fmt.Errorf("cannot connect to directory: %w", err)
	}

	baseDN, err := defaultNamingContext(conn)
	if err != nil {
		conn.Close()
		return nil, "", err
	}
	return conn, baseDN, nil
}

func (b *Bridge) findEntryDN(conn *ldapv3.Conn, baseDN, objectClass, account string) (string, error) {
	searchRequest := ldapv3.NewSearchRequest(
		baseDN,
		ldapv3.ScopeWholeSubtree,
		ldapv3.NeverDerefAliases,
		1,
		10,
		false,
		fmt.Sprintf("(&(objectClass=%s)(sAMAccountName=%s))", objectClass, ldapv3.EscapeFilter(account)),
		[]string{"distinguishedName"},
		nil,
	)

	result, err := conn.Search(searchRequest)
	if err != nil {
		return "", fmt.Errorf("failed to search for %s: %w", account, err)
	}
	if len(result.Entries) == 0 {
		return "", fmt.Errorf("%s not found in directory", account)
	}
	return result.Entries[0].DN, nil
}

// applyReplace adds a replace for the attribute; an empty value clears it.
// Replace works whether or not the attribute currently exists.
func applyReplace(modify *ldapv3.ModifyRequest, attribute string, value *string) {
	if value == nil {
		return
	}
	if *value == "" {
		modify.Replace(attribute, []string{})
		return
	}
	modify.Replace(attribute, []string{*value})
}
