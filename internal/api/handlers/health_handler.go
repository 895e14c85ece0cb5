package handlers

import (
	"net/http"

	"github.com/adhub/adhub/internal/tools"
	"github.com/gin-gonic/gin"
)

// PUBLIC: HealthCheckHandler handles GET requests for health checks with detailed service status
func HealthCheckHandler(setupHandler *SetupHandler, dbClient *tools.DBClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		healthStatus := gin.H{
			"status": "healthy",
			"services": gin.H{
				"api": "healthy",
			},
		}

		statusCode := http.StatusOK

		if setupHandler != nil {
			if setupHandler.provisioner.IsProvisioned() {
				healthStatus["services"].(gin.H)["domain"] = "provisioned"
			} else {
				healthStatus["services"].(gin.H)["domain"] = "not_provisioned"
			}
		}

		if dbClient != nil {
			if err := dbClient.HealthCheck(); err != nil {
				healthStatus["services"].(gin.H)["database"] = gin.H{
					"status": "unhealthy",
					"error":  err.Error(),
				}
				healthStatus["status"] = "degraded"
				statusCode = http.StatusServiceUnavailable
			} else {
				healthStatus["services"].(gin.H)["database"] = "healthy"
			}
		}

		c.JSON(statusCode, healthStatus)
	}
}
