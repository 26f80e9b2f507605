package middleware

import (
	"net/http"

	"viacampo/services/access"

	"github.com/gin-gonic/gin"
)

// RequireCapability gates a route group behind one capability tag. Denial is
// an expected state: a specific message, never a panic, never a silent
// no-op.
func RequireCapability(capability string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := AppUserFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		if !access.Can(user, capability) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":      "Acesso não permitido para este perfil",
				"capability": capability,
			})
			return
		}
		c.Next()
	}
}
