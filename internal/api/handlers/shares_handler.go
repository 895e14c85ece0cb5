package handlers

import (
	"net/http"

	"github.com/adhub/adhub/internal/samba"
	"github.com/gin-gonic/gin"
)

// ADMIN: GetSharesHandler returns a list of all file shares
func (h *SambaHandler) GetSharesHandler(c *gin.Context) {
	shares, err := h.service.ListShares(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "Failed to retrieve shares")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shares": shares,
		"count":  len(shares),
	})
}

// ADMIN: GetShareHandler returns a single share
func (h *SambaHandler) GetShareHandler(c *gin.Context) {
	share, err := h.service.GetShare(c.Request.Context(), c.Param("sharename"))
	if err != nil {
		handleServiceError(c, err, "Failed to retrieve share")
		return
	}
	c.JSON(http.StatusOK, gin.H{"share": share})
}

// ADMIN: CreateShareHandler creates a new file share
func (h *SambaHandler) CreateShareHandler(c *gin.Context) {
	var req CreateShareRequest
	if !validateAndBind(c, &req) {
		return
	}

	if isProtectedShare(req.Name) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot create a built-in share"})
		return
	}

	params := samba.ShareParams{
		Name:       req.Name,
		Path:       req.Path,
		Comment:    req.Comment,
		ReadOnly:   req.ReadOnly,
		GuestOK:    req.GuestOK,
		Browseable: true,
	}
	if req.Browseable != nil {
		params.Browseable = *req.Browseable
	}

	if err := h.service.CreateShare(c.Request.Context(), params); err != nil {
		handleServiceError(c, err, "Failed to create share")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Share created successfully"})
}

// ADMIN: UpdateShareHandler changes parameters of an existing share
func (h *SambaHandler) UpdateShareHandler(c *gin.Context) {
	sharename := c.Param("sharename")
	if isProtectedShare(sharename) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot modify a built-in share"})
		return
	}

	var req UpdateShareRequest
	if !validateAndBind(c, &req) {
		return
	}

	update := samba.ShareUpdate{
		Path:       req.Path,
		Comment:    req.Comment,
		ReadOnly:   req.ReadOnly,
		GuestOK:    req.GuestOK,
		Browseable: req.Browseable,
	}
	if err := h.service.UpdateShare(c.Request.Context(), sharename, update); err != nil {
		handleServiceError(c, err, "Failed to update share")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Share updated successfully"})
}

// ADMIN: DeleteShareHandler removes an existing file share
func (h *SambaHandler) DeleteShareHandler(c *gin.Context) {
	sharename := c.Param("sharename")
	if isProtectedShare(sharename) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot delete a built-in share"})
		return
	}

	if err := h.service.DeleteShare(c.Request.Context(), sharename); err != nil {
		handleServiceError(c, err, "Failed to delete share")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Share deleted successfully"})
}
