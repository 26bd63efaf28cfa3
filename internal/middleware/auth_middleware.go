package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"coach-library-backend/internal/models"
	"coach-library-backend/internal/repository"
)

const (
	ContextUserKey  = "user"
	ContextTokenKey = "token"
)

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"ack":     false,
		"message": message,
	})
}

// AuthMiddleware authenticates by looking the presented token up in the
// user_tokens table. A signed JWT that has no stored row is rejected, so
// logout and password reset revoke sessions immediately.
func AuthMiddleware(tokenRepo repository.UserTokenRepository, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			abortUnauthorized(c, "authorization credentials required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "invalid authorization header format")
			return
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			abortUnauthorized(c, "authorization credentials required")
			return
		}

		row, err := tokenRepo.GetByToken(tokenString)
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		user, err := userRepo.GetByID(row.UserID)
		if err != nil || user.Status != models.StatusActive {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		c.Set("user_id", user.ID)
		c.Set("role", user.Role)
		c.Set(ContextUserKey, user)
		c.Set(ContextTokenKey, tokenString)

		c.Next()
	}
}

func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"ack":     false,
				"message": "admin access required",
			})
			return
		}
		c.Next()
	}
}
