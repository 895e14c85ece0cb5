package handlers

import (
	"net/http"

	"github.com/adhub/adhub/internal/ldap"
	"github.com/adhub/adhub/internal/samba"
	"github.com/gin-gonic/gin"
)

// ADMIN: GetUsersHandler returns a list of all users
func (h *SambaHandler) GetUsersHandler(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "Failed to retrieve users")
		return
	}

	var disabledCount = 0
	for _, user := range users {
		if user.AccountDisabled {
			disabledCount++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"users":          users,
		"count":          len(users),
		"disabled_count": disabledCount,
	})
}

// ADMIN: GetUserHandler returns a single user by name
func (h *SambaHandler) GetUserHandler(c *gin.Context) {
	user, err := h.service.GetUser(c.Request.Context(), c.Param("username"))
	if err != nil {
		handleServiceError(c, err, "Failed to retrieve user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// ADMIN: CreateUserHandler creates a new user
func (h *SambaHandler) CreateUserHandler(c *gin.Context) {
	var req CreateUserRequest
	if !validateAndBind(c, &req) {
		return
	}

	if isProtectedUser(req.Username) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot create a built-in account"})
		return
	}

	params := samba.CreateUserParams{
		Username:           req.Username,
		Password:           req.Password,
		GivenName:          req.GivenName,
		Surname:            req.Surname,
		Email:              req.Email,
		Description:        req.Description,
		MustChangePassword: req.MustChangePassword,
	}
	if err := h.service.CreateUser(c.Request.Context(), params); err != nil {
		handleServiceError(c, err, "Failed to create user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully"})
}

// ADMIN: UpdateUserHandler updates directory attributes of a user
func (h *SambaHandler) UpdateUserHandler(c *gin.Context) {
	username := c.Param("username")
	if isProtectedUser(username) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot modify a built-in account"})
		return
	}

	var req UpdateUserRequest
	if !validateAndBind(c, &req) {
		return
	}

	password, ok := sessionPassword(c, h.tokens)
	if !ok {
		return
	}

	update := ldap.UserUpdate{
		DisplayName: req.DisplayName,
		Email:       req.Email,
		Description: req.Description,
	}
	if err := h.ldapService.UpdateUser(c.Request.Context(), username, update, password); err != nil {
		handleServiceError(c, err, "Failed to update user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully"})
}

// ADMIN: DeleteUserHandler deletes an existing user
func (h *SambaHandler) DeleteUserHandler(c *gin.Context) {
	username := c.Param("username")
	if isProtectedUser(username) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot delete a built-in account"})
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), username); err != nil {
		handleServiceError(c, err, "Failed to delete user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// ADMIN: EnableUserHandler enables an existing user account
func (h *SambaHandler) EnableUserHandler(c *gin.Context) {
	username := c.Param("username")
	if isProtectedUser(username) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot modify a built-in account"})
		return
	}

	if err := h.service.EnableUser(c.Request.Context(), username); err != nil {
		handleServiceError(c, err, "Failed to enable user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User enabled successfully"})
}

// ADMIN: DisableUserHandler disables an existing user account
func (h *SambaHandler) DisableUserHandler(c *gin.Context) {
	username := c.Param("username")
	if isProtectedUser(username) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot modify a built-in account"})
		return
	}

	if err := h.service.DisableUser(c.Request.Context(), username); err != nil {
		handleServiceError(c, err, "Failed to disable user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User disabled successfully"})
}

// ADMIN: SetPasswordHandler resets a user's password
func (h *SambaHandler) SetPasswordHandler(c *gin.Context) {
	username := c.Param("username")
	if isProtectedUser(username) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot modify a built-in account"})
		return
	}

	var req SetPasswordRequest
	if !validateAndBind(c, &req) {
		return
	}

	if err := h.service.SetPassword(c.Request.Context(), username, req.NewPassword, req.MustChange); err != nil {
		handleServiceError(c, err, "Failed to set password")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password set successfully"})
}
