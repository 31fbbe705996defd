package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"c2b-order-backend/internal/auth"
	"c2b-order-backend/internal/models"
)

const (
	UserIDKey = "user_id"
	RoleKey   = "role"
)

// Auth verifies the Bearer token and stores the subject id and role on the
// context. Missing, malformed, expired and badly-signed tokens all map to 401.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid authorization header format"})
			c.Abort()
			return
		}

		subject, role, err := auth.ParseToken(secret, strings.TrimSpace(parts[1]))
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Error:   "invalid or expired token",
				Message: err.Error(),
			})
			c.Abort()
			return
		}

		c.Set(UserIDKey, subject)
		c.Set(RoleKey, role)
		c.Next()
	}
}

// RequireAdmin rejects callers whose token does not carry the admin role.
// It must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(RoleKey)
		if !exists || role != auth.RoleAdmin {
			c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "admin privileges required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// SubjectID returns the authenticated subject id set by Auth.
func SubjectID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
