package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"betpool/internal/domain"
)

// respondError maps the domain error taxonomy onto HTTP statuses. Remote
// failures collapse into a generic connection error once every fallback has
// been tried; nothing here is fatal to the process.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrAlreadyExists):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Already exists"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, domain.ErrAlreadyResolved):
		c.JSON(http.StatusConflict, gin.H{"error": "Already resolved"})
	case errors.Is(err, domain.ErrRemoteUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Connection error"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}

// sessionUsername reads the identity set by the JWT middleware.
func sessionUsername(c *gin.Context) (string, bool) {
	v, ok := c.Get("username")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return v.(string), true
}

// sessionRole reads the role set by the JWT middleware.
func sessionRole(c *gin.Context) string {
	v, _ := c.Get("role")
	role, _ := v.(string)
	return role
}
