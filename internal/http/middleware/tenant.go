package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Tenant resolves the site a request targets from the Domain header. Content
// routes are meaningless without one.
func Tenant() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		tenant := c.GetHeader("Domain")
		if tenant == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Domain header required"})
			c.Abort()
			return
		}
		c.Set("tenant", tenant)
		c.Next()
	})
}
