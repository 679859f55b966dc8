package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"marketmuse_backend/models"
	"marketmuse_backend/services"
)

// Claims represents the claims in a bearer token
type Claims struct {
	jwt.RegisteredClaims
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Auth verifies bearer tokens and resolves them to user rows
type Auth struct {
	secret []byte
	users  *services.UserService
	log    *zap.Logger
}

// NewAuth creates the auth middleware set
func NewAuth(secret string, users *services.UserService, log *zap.Logger) *Auth {
	return &Auth{secret: []byte(secret), users: users, log: log}
}

// JWTAuthMiddleware validates HS256 bearer tokens and loads the caller
func (a *Auth) JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Authorization header is required",
			})
			return
		}

		// Extract token from "Bearer <token>" format
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Invalid authorization header format. Use: Bearer <token>",
			})
			return
		}

		claims, err := a.validateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": fmt.Sprintf("Invalid token: %v", err),
			})
			return
		}

		user, err := a.users.EnsureUser(c.Request.Context(), services.Identity{
			UID:     claims.Subject,
			Email:   claims.Email,
			Name:    claims.Name,
			Picture: claims.Picture,
		})
		if errors.Is(err, services.ErrIncompleteIdentity) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": err.Error(),
			})
			return
		}
		if err != nil {
			a.log.Error("Failed to load user", zap.String("uid", claims.Subject), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
			return
		}

		// Set user information in context
		c.Set("user_id", user.UID)
		c.Set("user_email", user.Email)
		c.Set("user", user)

		c.Next()
	}
}

// AdminRoleMiddleware checks if the authenticated user is an administrator
func (a *Auth) AdminRoleMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetUserFromContext(c)
		if err != nil || !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": "Admin privileges required",
			})
			return
		}
		c.Next()
	}
}

// validateToken validates an HS256 token signed with the configured secret
func (a *Auth) validateToken(tokenString string) (*Claims, error) {
	if len(a.secret) == 0 {
		return nil, errors.New("JWT secret not configured")
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}

// GetUserFromContext gets the authenticated user from context
func GetUserFromContext(c *gin.Context) (models.User, error) {
	v, exists := c.Get("user")
	if !exists {
		return models.User{}, errors.New("user not authenticated")
	}
	user, ok := v.(models.User)
	if !ok {
		return models.User{}, errors.New("user not authenticated")
	}
	return user, nil
}

// GetUserIDFromContext gets the authenticated user ID from context
func GetUserIDFromContext(c *gin.Context) (string, error) {
	userID, exists := c.Get("user_id")
	if !exists {
		return "", errors.New("user not authenticated")
	}
	return userID.(string), nil
}
