package routes

import (
	"net/http"

	"github.com/adhub/adhub/internal/api/handlers"
	"github.com/gin-gonic/gin"
)

// registerPublicRoutes defines all routes accessible without authentication
func registerPublicRoutes(g *gin.RouterGroup, authHandler *handlers.AuthHandler, setupHandler *handlers.SetupHandler, healthHandler gin.HandlerFunc) {
	// GET Requests
	g.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	g.GET("/health/detailed", healthHandler)
	g.GET("/setup/status", setupHandler.GetStatusHandler)

	// POST Requests
	g.POST("/auth/login", authHandler.LoginHandler)
}
