package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abecha/sms_forfait_app/internal/core/domain"
)

// RequireCapability creates a Gin middleware handler that rejects requests
// whose authenticated role does not grant the capability. It must run after
// AuthMiddleware.
func RequireCapability(cap domain.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRoleFromContext(c)
		if !ok {
			GetLoggerFromCtx(c.Request.Context()).Warn("Role missing from context")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		if !domain.RoleAllows(domain.Role(role), cap) {
			GetLoggerFromCtx(c.Request.Context()).Warn("Capability denied", "role", role, "capability", string(cap))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}

		c.Next()
	}
}
