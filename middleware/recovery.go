package middleware

import (
	"log"

	"main/utils"

	"github.com/gin-gonic/gin"
)

func EnhancedRecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				utils.TrackError("http", "panic")
				log.Printf("Recovered from panic on %s %s: %v",
					c.Request.Method, c.Request.URL.Path, err)
				c.AbortWithStatus(500)
			}
		}()
		c.Next()
	}
}
