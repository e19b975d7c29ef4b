package middleware

import (
	"github.com/gin-gonic/gin"
)

// NoStore marks API responses as uncacheable. They carry patient data that
// must not linger in shared or browser caches.
func NoStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Header("Pragma", "no-cache")
		c.Next()
	}
}
