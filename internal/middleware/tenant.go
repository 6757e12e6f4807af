package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TenantGuard returns middleware that ensures a usable tenant context is
// present: AuthMiddleware must already have set tenant_id, and it must be a
// real tenant ID, not a zero value smuggled in by a stale or foreign token.
func TenantGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		val, exists := c.Get(ContextKeyTenantID)
		id, ok := val.(uuid.UUID)
		if !exists || !ok || id == uuid.Nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "tenant context required"},
			})
			return
		}
		c.Next()
	}
}
