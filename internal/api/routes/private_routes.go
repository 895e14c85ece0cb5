package routes

import (
	"github.com/adhub/adhub/internal/api/handlers"
	"github.com/gin-gonic/gin"
)

// registerPrivateRoutes defines all routes accessible to authenticated users
func registerPrivateRoutes(g *gin.RouterGroup, authHandler *handlers.AuthHandler, sambaHandler *handlers.SambaHandler) {
	// GET Requests
	g.GET("/auth/me", authHandler.SessionHandler)

	// POST Requests
	g.POST("/auth/logout", authHandler.LogoutHandler)
}
