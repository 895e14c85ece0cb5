package ldap

import (
	"context"
	"fmt"
	"log"

	ldapv3 "github.com/go-ldap/ldap/v3"
)

// UpdateGroup modifies a group's description, binding as Administrator
// with the password supplied for this request only.
func (b *Bridge) UpdateGroup(ctx context.Context, groupname string, description *string, adminPassword string) error {
	if description == nil {
		log.Printf("No changes to apply for group %s", groupname)
		return nil
	}

	conn, baseDN, err := b.bindAdmin(ctx, adminPassword)
	if err != nil {
		return err
	}
	defer conn.Close()

	groupDN, err := b.findEntryDN(conn, baseDN, "group", groupname)
	if err != nil {
		return err
	}

	modify := ldapv3.NewModifyRequest(groupDN, nil)
	applyReplace(modify, "description", description)

	if err := conn.Modify(modify); err != nil {
		return fmt.Errorf("failed to update group %s: %w", groupname, err)
	}

	log.Printf("Group %s updated", groupname)
	return nil
}
