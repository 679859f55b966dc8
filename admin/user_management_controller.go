package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"marketmuse_backend/controllers"
	"marketmuse_backend/services"
)

// UserManagementController handles user management operations
type UserManagementController struct {
	users *services.UserService
}

// NewUserManagementController creates a new user management controller
func NewUserManagementController(users *services.UserService) *UserManagementController {
	return &UserManagementController{users: users}
}

// ListUsers returns a page of users
// GET /api/v1/admin/users?page=1&page_size=20&search=
func (ctrl *UserManagementController) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	result, err := ctrl.users.List(c.Request.Context(), page, pageSize, c.Query("search"))
	if err != nil {
		controllers.RespondError(c, err, "Failed to fetch users")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

// GetUser returns one user
// GET /api/v1/admin/users/:id
func (ctrl *UserManagementController) GetUser(c *gin.Context) {
	user, err := ctrl.users.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, services.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		controllers.RespondError(c, err, "Failed to fetch user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": user})
}
