package middleware

import (
	"crypto/subtle"
	"strings"

	"main/utils"

	"github.com/gin-gonic/gin"
)

// TriggerAuthMiddleware protects the plain HTTP trigger with a static bearer
// secret. The check runs before any processing; a mismatch is a hard 401.
func TriggerAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			utils.Unauthorized(c, "Trigger secret is not configured")
			c.Abort()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.Unauthorized(c, "Missing or invalid token")
			c.Abort()
			return
		}

		provided := strings.TrimPrefix(authHeader, "Bearer ")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			utils.Unauthorized(c, "Invalid trigger secret")
			c.Abort()
			return
		}

		c.Next()
	}
}
