package handlers

import (
	"net/http"

	"github.com/adhub/adhub/internal/samba"
	"github.com/gin-gonic/gin"
)

// ADMIN: GetZonesHandler returns the DNS zones of the domain
func (h *SambaHandler) GetZonesHandler(c *gin.Context) {
	zones, err := h.service.ListZones(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "Failed to retrieve DNS zones")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"zones": zones,
		"count": len(zones),
	})
}

// ADMIN: GetZoneRecordsHandler lists the DNS records of a zone. samba-tool
// dns query needs admin credentials, which are not available on a read, so
// only records added through this API would be reportable; the endpoint
// stays read-only and empty until record enumeration is supported.
func (h *SambaHandler) GetZoneRecordsHandler(c *gin.Context) {
	zone := c.Param("zone")

	c.JSON(http.StatusOK, gin.H{
		"zone":    zone,
		"records": []samba.DNSRecord{},
		"count":   0,
	})
}

// ADMIN: CreateDNSRecordHandler adds a DNS record to a zone
func (h *SambaHandler) CreateDNSRecordHandler(c *gin.Context) {
	var req DNSRecordRequest
	if !validateAndBind(c, &req) {
		return
	}

	password, ok := sessionPassword(c, h.tokens)
	if !ok {
		return
	}

	record := samba.DNSRecord(req)
	if err := h.service.AddDNSRecord(c.Request.Context(), record, password); err != nil {
		handleServiceError(c, err, "Failed to add DNS record")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "DNS record added successfully"})
}

// ADMIN: DeleteDNSRecordHandler removes a DNS record from a zone
func (h *SambaHandler) DeleteDNSRecordHandler(c *gin.Context) {
	var req DNSRecordRequest
	if !validateAndBind(c, &req) {
		return
	}

	password, ok := sessionPassword(c, h.tokens)
	if !ok {
		return
	}

	record := samba.DNSRecord(req)
	if err := h.service.DeleteDNSRecord(c.Request.Context(), record, password); err != nil {
		handleServiceError(c, err, "Failed to delete DNS record")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "DNS record deleted successfully"})
}
