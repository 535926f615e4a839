package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireUserType gates a route group to a single account type. Runs after
// ValidateToken.
func RequireUserType(userType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("user_type")
		if !exists || role != userType {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access restricted to " + userType + " accounts"})
			c.Abort()
			return
		}
		c.Next()
	}
}
