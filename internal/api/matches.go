package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"betpool/internal/domain"
	"betpool/internal/matches"
	"betpool/internal/store"
	"betpool/internal/utils"
)

const roundCacheKey = "matches:current"

// GetMatchesHandler returns the current round, cache-aside with a short TTL.
func GetMatchesHandler(catalog store.MatchCatalog, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		var cached []domain.Match
		found, err := utils.GetCache(ctx, rdb, roundCacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"matches": cached, "cached": true})
			return
		}
		round, err := catalog.Current(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		_ = utils.SetCache(ctx, rdb, roundCacheKey, round, 60*time.Second)
		c.JSON(http.StatusOK, gin.H{"matches": round, "cached": false})
	}
}

// UpdateMatchesHandler replaces the whole round with the admin's edit.
func UpdateMatchesHandler(catalog store.MatchCatalog, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var round []domain.Match
		if err := c.ShouldBindJSON(&round); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		seen := make(map[int]bool, len(round))
		for _, m := range round {
			if m.ID <= 0 || seen[m.ID] {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Match ids must be positive and unique"})
				return
			}
			seen[m.ID] = true
		}
		if err := catalog.ReplaceRound(c.Request.Context(), round); err != nil {
			respondError(c, err)
			return
		}
		_ = utils.DeleteCache(context.Background(), rdb, roundCacheKey)
		logrus.WithField("matches", len(round)).Info("Round replaced")
		c.JSON(http.StatusOK, gin.H{"message": "Round updated"})
	}
}

// GenerateRoundHandler asks the round source for fresh fixtures and installs
// them as the current round. The source falls back internally, so this never
// fails because the generative collaborator is down.
func GenerateRoundHandler(catalog store.MatchCatalog, source matches.RoundSource, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		round, err := source.GenerateRound(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		if err := catalog.ReplaceRound(c.Request.Context(), round); err != nil {
			respondError(c, err)
			return
		}
		_ = utils.DeleteCache(context.Background(), rdb, roundCacheKey)
		logrus.WithField("matches", len(round)).Info("Round generated")
		c.JSON(http.StatusOK, gin.H{"matches": round})
	}
}

// GetTipsHandler returns one pick per match of the current round.
func GetTipsHandler(catalog store.MatchCatalog, source matches.TipSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		round, err := catalog.Current(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		tips, err := source.GenerateTips(c.Request.Context(), round)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"tips": tips})
	}
}
