package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"betpool/internal/domain"
	"betpool/internal/store"
	"betpool/internal/utils"
)

// UserLookup is the remote credential fallback. A nil lookup disables it.
type UserLookup interface {
	LookupUser(ctx context.Context, username, password string) (*domain.User, error)
}

// Request and Response structs
type RegisterRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries the session token plus the visible account fields.
type AuthResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// RegisterHandler self-registers a CLIENT account.
func RegisterHandler(users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if strings.TrimSpace(req.Username) == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		user := &domain.User{
			Username:  req.Username,
			Password:  string(hash),
			Role:      domain.RoleClient,
			CreatedBy: domain.CreatedByAuto,
		}
		if err := users.Create(c.Request.Context(), user); err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists"})
				return
			}
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
	}
}

// LoginHandler authenticates against the local store first and falls back to
// the remote lookup on a local miss. A remote hit is imported locally so the
// next login resolves without the network.
func LoginHandler(users store.UserStore, lookup UserLookup, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		username := strings.TrimSpace(req.Username)

		user, err := users.FindByUsername(c.Request.Context(), username)
		if err == nil && bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) == nil {
			issueToken(c, user, jwtSecret)
			return
		}
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			respondError(c, err)
			return
		}

		// Local credential miss (unknown name or wrong password): try the
		// hosted backend, if configured.
		if lookup == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		remoteUser, err := lookup.LookupUser(c.Request.Context(), store.NormalizeUsername(username), req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		if remoteUser == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		remoteUser.Password = string(hash)
		if err := users.Create(c.Request.Context(), remoteUser); err != nil && !errors.Is(err, domain.ErrAlreadyExists) {
			logrus.WithFields(logrus.Fields{
				"username": remoteUser.Username,
				"error":    err.Error(),
			}).Warn("Failed to import remote user")
		}
		issueToken(c, remoteUser, jwtSecret)
	}
}

func issueToken(c *gin.Context, user *domain.User, secret string) {
	token, err := utils.GenerateJWT(user.Username, user.Role, secret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, AuthResponse{Token: token, User: *user})
}
