package handlers

import (
	"github.com/adhub/adhub/internal/ldap"
	"github.com/adhub/adhub/internal/samba"
	"github.com/adhub/adhub/internal/security"
)

// SambaHandler serves the directory management endpoints: users, groups,
// shares, DNS and dashboard statistics.
type SambaHandler struct {
	service     samba.Service
	ldapService ldap.Service
	tokens      *security.Manager
}

// NewSambaHandler creates a new directory management handler
func NewSambaHandler(service samba.Service, ldapService ldap.Service, tokens *security.Manager) *SambaHandler {
	return &SambaHandler{
		service:     service,
		ldapService: ldapService,
		tokens:      tokens,
	}
}
