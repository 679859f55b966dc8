package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketmuse_backend/middleware"
)

// UserController serves the caller's profile
type UserController struct{}

// NewUserController creates a new user controller
func NewUserController() *UserController {
	return &UserController{}
}

// GetMe returns the authenticated user
// GET /api/v1/users/me
func (uc *UserController) GetMe(c *gin.Context) {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": user})
}
