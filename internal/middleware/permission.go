package middleware

import (
	"betpool/internal/auth" // Capability table
	"net/http"              // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// RequireAction checks the session role against the capability table before
// any mutating handler runs. Display logic never checks roles on its own.
func RequireAction(action auth.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role") // Set by JWTAuthMiddleware
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if !auth.CanPerform(role.(string), action) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Permission denied"})
			return
		}
		c.Next()
	}
}
