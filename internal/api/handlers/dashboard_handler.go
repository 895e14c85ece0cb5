package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetDashboardStatsHandler returns the landing-page counters.
func (h *SambaHandler) GetDashboardStatsHandler(c *gin.Context) {
	stats, err := h.service.DashboardStats(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "Failed to retrieve dashboard statistics")
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// GetDomainInfoHandler returns the provisioned domain's details.
func (h *SambaHandler) GetDomainInfoHandler(c *gin.Context) {
	info, err := h.service.DomainInfo(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "Failed to retrieve domain information")
		return
	}
	c.JSON(http.StatusOK, gin.H{"domain": info})
}
