package middleware

import (
	"net/http"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"

	"github.com/Sushil1248/innfostride-backend/domain"
)

// CasbinMW wraps the casbin enforcer for middleware. The session token
// carries only the user id, so the role name is resolved per request.
type CasbinMW struct {
	enforcer   *casbin.Enforcer
	userRepo   domain.UserRepository
	accessRepo domain.AccessRepository
}

// NewCasbinMW creates new casbin middleware wrapper
func NewCasbinMW(enforcer *casbin.Enforcer, userRepo domain.UserRepository, accessRepo domain.AccessRepository) *CasbinMW {
	return &CasbinMW{enforcer: enforcer, userRepo: userRepo, accessRepo: accessRepo}
}

// Enforce returns the casbin authorization middleware
func (mw *CasbinMW) Enforce() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		userID, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
			c.Abort()
			return
		}

		user, err := mw.userRepo.FindByID(c.Request.Context(), userID.(string))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			c.Abort()
			return
		}

		role := "viewer"
		if user.RoleID != "" {
			if r, err := mw.accessRepo.FindRole(c.Request.Context(), user.RoleID); err == nil {
				role = r.Name
			}
		}

		allowed, err := mw.enforcer.Enforce(role, c.Request.URL.Path, c.Request.Method)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Authorization check failed"})
			c.Abort()
			return
		}
		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access Denied"})
			c.Abort()
			return
		}

		c.Next()
	})
}
