package handlers

import (
	"errors"
	"net/http"

	"github.com/adhub/adhub/internal/api/middleware"
	"github.com/adhub/adhub/internal/ldap"
	"github.com/adhub/adhub/internal/samba"
	"github.com/adhub/adhub/internal/security"
	"github.com/adhub/adhub/internal/setup"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators installs the domain-specific binding validators on the
// gin engine. Must be called once before routes are served.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterValidation("dnsname", func(fl validator.FieldLevel) bool {
		return setup.ValidDNSName(fl.Field().String())
	})
	v.RegisterValidation("adpassword", func(fl validator.FieldLevel) bool {
		return setup.ValidPassword(fl.Field().String())
	})
}

// validateAndBind binds the JSON body and reports binding failures as a
// 400 response.
func validateAndBind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return false
	}
	return true
}

// handleServiceError translates service-layer failures to HTTP responses.
// The short message goes to the client; details carry the tool output.
func handleServiceError(c *gin.Context, err error, message string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, samba.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, samba.ErrAlreadyExists):
		status = http.StatusConflict
	case errors.Is(err, samba.ErrPermissionDenied):
		status = http.StatusForbidden
	case errors.Is(err, samba.ErrTimeout):
		status = http.StatusGatewayTimeout
	case errors.Is(err, ldap.ErrInvalidCredentials), errors.Is(err, samba.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	}
	c.JSON(status, gin.H{"error": message, "details": err.Error()})
}

// sessionPassword recovers the caller's directory password from the session
// token for operations that must re-authenticate against the directory.
func sessionPassword(c *gin.Context, tokens *security.Manager) (string, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil || claims.SealedPassword == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session carries no directory credentials"})
		return "", false
	}
	password, err := tokens.UnsealPassword(claims.SealedPassword)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session credentials could not be recovered"})
		return "", false
	}
	return password, true
}
