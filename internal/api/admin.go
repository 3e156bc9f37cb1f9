package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"betpool/internal/domain"
	"betpool/internal/store"
	"betpool/internal/utils"
)

const usersCacheKey = "admin:users"

// ListUsersHandler returns the accounts visible to the session: admins see
// everyone but themselves, agents see only accounts they created.
func ListUsersHandler(users store.UserStore, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, ok := sessionUsername(c)
		if !ok {
			return
		}
		if sessionRole(c) == domain.RoleAdmin {
			ctx := context.Background()
			var cached []domain.User
			found, err := utils.GetCache(ctx, rdb, usersCacheKey, &cached)
			if err == nil && found {
				c.JSON(http.StatusOK, gin.H{"users": withoutSelf(cached, username), "cached": true})
				return
			}
			all, err := users.List(c.Request.Context())
			if err != nil {
				respondError(c, err)
				return
			}
			_ = utils.SetCache(ctx, rdb, usersCacheKey, all, 60*time.Second)
			c.JSON(http.StatusOK, gin.H{"users": withoutSelf(all, username), "cached": false})
			return
		}
		mine, err := users.ListByCreator(c.Request.Context(), username)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"users": mine})
	}
}

func withoutSelf(users []domain.User, username string) []domain.User {
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		if u.Username != username {
			out = append(out, u)
		}
	}
	return out
}

// CreateUserRequest registers a sub-account under the session user.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"` // Honored for admins only
}

// CreateUserHandler lets an admin or agent open accounts. Agents always
// create CLIENTs regardless of the requested role.
func CreateUserHandler(users store.UserStore, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		creator, ok := sessionUsername(c)
		if !ok {
			return
		}
		var req CreateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		role := domain.RoleClient
		if sessionRole(c) == domain.RoleAdmin && req.Role != "" {
			switch req.Role {
			case domain.RoleAdmin, domain.RoleClient, domain.RoleCambista:
				role = req.Role
			default:
				c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role"})
				return
			}
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		user := &domain.User{
			Username:  req.Username,
			Password:  string(hash),
			Role:      role,
			CreatedBy: creator,
		}
		if err := users.Create(c.Request.Context(), user); err != nil {
			respondError(c, err)
			return
		}
		_ = utils.DeleteCache(context.Background(), rdb, usersCacheKey)
		logrus.WithFields(logrus.Fields{
			"username":   user.Username,
			"role":       role,
			"created_by": creator,
		}).Info("User created")
		c.JSON(http.StatusCreated, gin.H{"user": user})
	}
}

// AdjustBalanceRequest is a signed manual balance delta.
type AdjustBalanceRequest struct {
	Amount float64 `json:"amount" binding:"required"`
}

// AdjustBalanceHandler applies a manual balance delta. This and the deposit
// approval path are the only writers of User.Balance. No lower bound.
func AdjustBalanceHandler(users store.UserStore, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AdjustBalanceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		username := c.Param("username")
		balance, err := users.AdjustBalance(c.Request.Context(), username, req.Amount)
		if err != nil {
			respondError(c, err)
			return
		}
		_ = utils.DeleteCache(context.Background(), rdb, usersCacheKey)
		logrus.WithFields(logrus.Fields{
			"username": username,
			"delta":    req.Amount,
			"balance":  balance,
		}).Info("Balance adjusted")
		c.JSON(http.StatusOK, gin.H{"balance": balance})
	}
}

// UpdatePixKeyRequest sets the payout key shown on deposit requests.
type UpdatePixKeyRequest struct {
	PixKey string `json:"pixKey" binding:"required"`
}

// UpdatePixKeyHandler updates a user's payout key. Agents may only update
// their own.
func UpdatePixKeyHandler(users store.UserStore, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := sessionUsername(c)
		if !ok {
			return
		}
		username := c.Param("username")
		if username != session && sessionRole(c) != domain.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Permission denied"})
			return
		}
		var req UpdatePixKeyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if err := users.UpdatePixKey(c.Request.Context(), username, req.PixKey); err != nil {
			respondError(c, err)
			return
		}
		_ = utils.DeleteCache(context.Background(), rdb, usersCacheKey)
		c.JSON(http.StatusOK, gin.H{"message": "PIX key updated"})
	}
}
