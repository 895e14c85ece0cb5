package routes

import (
	"github.com/adhub/adhub/internal/api/handlers"
	"github.com/adhub/adhub/internal/api/middleware"
	"github.com/adhub/adhub/internal/security"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all API routes with their respective middleware and handlers
func RegisterRoutes(r *gin.Engine, tokens *security.Manager, authHandler *handlers.AuthHandler, sambaHandler *handlers.SambaHandler, setupHandler *handlers.SetupHandler, healthHandler gin.HandlerFunc) {
	// Public routes (no authentication required)
	public := r.Group("/api/v1")
	registerPublicRoutes(public, authHandler, setupHandler, healthHandler)

	// Private routes (authentication required)
	private := r.Group("/api/v1")
	private.Use(middleware.AuthRequired(tokens))
	registerPrivateRoutes(private, authHandler, sambaHandler)

	// Admin routes (authentication + admin privileges required)
	admin := r.Group("/api/v1/admin")
	admin.Use(middleware.AuthRequired(tokens), middleware.AdminRequired())
	registerAdminRoutes(admin, sambaHandler, setupHandler)
}
