package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ADMIN: GetGroupsHandler returns a list of all groups
func (h *SambaHandler) GetGroupsHandler(c *gin.Context) {
	groups, err := h.service.ListGroups(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "Failed to retrieve groups")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"groups": groups,
		"count":  len(groups),
	})
}

// ADMIN: GetGroupHandler returns a single group with its members
func (h *SambaHandler) GetGroupHandler(c *gin.Context) {
	group, err := h.service.GetGroup(c.Request.Context(), c.Param("groupname"))
	if err != nil {
		handleServiceError(c, err, "Failed to retrieve group")
		return
	}
	c.JSON(http.StatusOK, gin.H{"group": group})
}

// ADMIN: CreateGroupHandler creates a new group
func (h *SambaHandler) CreateGroupHandler(c *gin.Context) {
	var req CreateGroupRequest
	if !validateAndBind(c, &req) {
		return
	}

	if isProtectedGroup(req.Name) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot create a built-in group"})
		return
	}

	if err := h.service.CreateGroup(c.Request.Context(), req.Name, req.Description); err != nil {
		handleServiceError(c, err, "Failed to create group")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Group created successfully"})
}

// ADMIN: UpdateGroupHandler updates the description of a group
func (h *SambaHandler) UpdateGroupHandler(c *gin.Context) {
	groupname := c.Param("groupname")
	if isProtectedGroup(groupname) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot modify a built-in group"})
		return
	}

	var req UpdateGroupRequest
	if !validateAndBind(c, &req) {
		return
	}

	password, ok := sessionPassword(c, h.tokens)
	if !ok {
		return
	}

	if err := h.ldapService.UpdateGroup(c.Request.Context(), groupname, req.Description, password); err != nil {
		handleServiceError(c, err, "Failed to update group")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Group updated successfully"})
}

// ADMIN: DeleteGroupHandler deletes an existing group
func (h *SambaHandler) DeleteGroupHandler(c *gin.Context) {
	groupname := c.Param("groupname")
	if isProtectedGroup(groupname) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot delete a built-in group"})
		return
	}

	if err := h.service.DeleteGroup(c.Request.Context(), groupname); err != nil {
		handleServiceError(c, err, "Failed to delete group")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Group deleted successfully"})
}

// ADMIN: AddGroupMembersHandler adds users to a group
func (h *SambaHandler) AddGroupMembersHandler(c *gin.Context) {
	var req GroupMembersRequest
	if !validateAndBind(c, &req) {
		return
	}

	if err := h.service.AddGroupMembers(c.Request.Context(), c.Param("groupname"), req.Usernames); err != nil {
		handleServiceError(c, err, "Failed to add group members")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Group members added successfully"})
}

// ADMIN: RemoveGroupMembersHandler removes users from a group
func (h *SambaHandler) RemoveGroupMembersHandler(c *gin.Context) {
	var req GroupMembersRequest
	if !validateAndBind(c, &req) {
		return
	}

	if err := h.service.RemoveGroupMembers(c.Request.Context(), c.Param("groupname"), req.Usernames); err != nil {
		handleServiceError(c, err, "Failed to remove group members")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Group members removed successfully"})
}
