package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/adhub/adhub/internal/api/middleware"
	"github.com/adhub/adhub/internal/ldap"
	"github.com/adhub/adhub/internal/security"
	"github.com/gin-gonic/gin"
)

// =================================================
// Login / Logout / Session Handlers
// =================================================

type AuthHandler struct {
	ldapService ldap.Service
	tokens      *security.Manager
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(ldapService ldap.Service, tokens *security.Manager) *AuthHandler {
	return &AuthHandler{
		ldapService: ldapService,
		tokens:      tokens,
	}
}

// LoginHandler handles the login POST request
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req LoginRequest
	if !validateAndBind(c, &req) {
		return
	}

	identity, err := h.ldapService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ldap.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		log.Printf("Authentication error for user %s: %v", req.Username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed"})
		return
	}

	token, expiresIn, err := h.tokens.Issue(identity, req.Password, req.RememberMe)
	if err != nil {
		log.Printf("Failed to issue session token for user %s: %v", identity.Username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	log.Printf("User %s logged in (admin: %t)", identity.Username, identity.IsAdmin)

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"expires_in":   int(expiresIn.Seconds()),
		"user":         identity,
	})
}

// LogoutHandler acknowledges the logout. Tokens are stateless; the client
// discards its copy and the token ages out at its expiry.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out!"})
}

// SessionHandler returns the identity embedded in the current session.
func (h *AuthHandler) SessionHandler(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": claims.Identity()})
}
