package middleware

import (
	"betpool/internal/utils" // JWT utility functions
	"net/http"               // HTTP status codes
	"strings"                // String manipulation

	"github.com/gin-gonic/gin" // Gin web framework
)

// JWTAuthMiddleware validates JWT tokens and extracts the session identity
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string
		claims, err := utils.ParseJWT(tokenStr, secret)       // Parse the JWT token
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		c.Set("username", claims.Username) // Store session username in context
		c.Set("role", claims.Role)         // Store session role in context
		c.Next()
	}
}
