package routes

import (
	"github.com/adhub/adhub/internal/api/handlers"
	"github.com/gin-gonic/gin"
)

// registerAdminRoutes defines all routes accessible ONLY to admin users
func registerAdminRoutes(g *gin.RouterGroup, sambaHandler *handlers.SambaHandler, setupHandler *handlers.SetupHandler) {
	// Setup wizard and domain lifecycle (admin only)
	g.POST("/setup/check-prerequisites", setupHandler.CheckPrerequisitesHandler)
	g.POST("/setup/validate-config", setupHandler.ValidateConfigHandler)
	g.POST("/setup/provision", setupHandler.ProvisionHandler)
	g.POST("/setup/verify", setupHandler.VerifyHandler)
	g.POST("/setup/reset", setupHandler.ResetHandler)
	g.GET("/setup/history", setupHandler.GetHistoryHandler)
	g.GET("/domain-info", sambaHandler.GetDomainInfoHandler)

	// User management (admin only)
	g.GET("/users", sambaHandler.GetUsersHandler)
	g.GET("/users/:username", sambaHandler.GetUserHandler)
	g.POST("/users", sambaHandler.CreateUserHandler)
	g.PUT("/users/:username", sambaHandler.UpdateUserHandler)
	g.DELETE("/users/:username", sambaHandler.DeleteUserHandler)
	g.POST("/users/:username/enable", sambaHandler.EnableUserHandler)
	g.POST("/users/:username/disable", sambaHandler.DisableUserHandler)
	g.POST("/users/:username/password", sambaHandler.SetPasswordHandler)

	// Group management (admin only)
	g.GET("/groups", sambaHandler.GetGroupsHandler)
	g.GET("/groups/:groupname", sambaHandler.GetGroupHandler)
	g.POST("/groups", sambaHandler.CreateGroupHandler)
	g.PUT("/groups/:groupname", sambaHandler.UpdateGroupHandler)
	g.DELETE("/groups/:groupname", sambaHandler.DeleteGroupHandler)
	g.POST("/groups/:groupname/members/add", sambaHandler.AddGroupMembersHandler)
	g.POST("/groups/:groupname/members/remove", sambaHandler.RemoveGroupMembersHandler)

	// Share management (admin only)
	g.GET("/shares", sambaHandler.GetSharesHandler)
	g.GET("/shares/:sharename", sambaHandler.GetShareHandler)
	g.POST("/shares", sambaHandler.CreateShareHandler)
	g.PUT("/shares/:sharename", sambaHandler.UpdateShareHandler)
	g.DELETE("/shares/:sharename", sambaHandler.DeleteShareHandler)

	// DNS management (admin only)
	g.GET("/dns/zones", sambaHandler.GetZonesHandler)
	g.GET("/dns/zones/:zone/records", sambaHandler.GetZoneRecordsHandler)
	g.POST("/dns/records", sambaHandler.CreateDNSRecordHandler)
	g.POST("/dns/records/delete", sambaHandler.DeleteDNSRecordHandler)

	// Dashboard statistics (admin only)
	g.GET("/stats/dashboard", sambaHandler.GetDashboardStatsHandler)
}
