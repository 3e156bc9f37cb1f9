package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"betpool/internal/domain"
	"betpool/internal/ledger"
	"betpool/internal/store"
	"betpool/internal/utils"
)

func ticketCacheKey(agent string) string { return "tickets:agent:" + agent }

// IssueTicketRequest is one betting slip as submitted.
type IssueTicketRequest struct {
	Selections   domain.Selections `json:"selections" binding:"required"`
	Price        float64           `json:"price" binding:"required,gt=0"`
	PotentialWin float64           `json:"potentialWin" binding:"required,gt=0"`
}

// IssueTicketHandler creates a ticket under the session user's channel.
// Selections referencing matches missing from the current round are accepted
// but logged, matching the paper-slip behavior.
func IssueTicketHandler(tickets *ledger.TicketService, catalog store.MatchCatalog, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		agent, ok := sessionUsername(c)
		if !ok {
			return
		}
		var req IssueTicketRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if round, err := catalog.Current(c.Request.Context()); err == nil {
			known := make(map[int]bool, len(round))
			for _, m := range round {
				known[m.ID] = true
			}
			for id := range req.Selections {
				if !known[id] {
					logrus.WithFields(logrus.Fields{
						"match_id": id,
						"agent":    agent,
					}).Warn("Ticket selection references a match outside the current round")
				}
			}
		}
		ticket, err := tickets.Issue(c.Request.Context(), req.Selections, req.Price, req.PotentialWin, agent)
		if err != nil {
			respondError(c, err)
			return
		}
		_ = utils.DeleteCache(context.Background(), rdb, ticketCacheKey(agent))
		c.JSON(http.StatusCreated, gin.H{"ticket": ticket})
	}
}

// PayTicketHandler confirms payment of a ticket. Re-confirming an already
// PAID ticket is a no-op, never a revert.
func PayTicketHandler(tickets *ledger.TicketService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		ticket, err := tickets.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		if err := tickets.MarkPaid(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		_ = utils.DeleteCache(context.Background(), rdb, ticketCacheKey(ticket.Agent))
		c.JSON(http.StatusOK, gin.H{"message": "Ticket paid"})
	}
}

// DeleteTicketHandler removes a ticket. The confirm=true query parameter is
// the boundary-level confirmation; the ledger itself never asks.
func DeleteTicketHandler(tickets *ledger.TicketService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, ok := sessionUsername(c)
		if !ok {
			return
		}
		if c.Query("confirm") != "true" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Deletion requires confirm=true"})
			return
		}
		id := c.Param("id")
		ticket, err := tickets.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		// Owners delete their own tickets; admins delete any.
		if ticket.Agent != username && sessionRole(c) != domain.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Permission denied"})
			return
		}
		if err := tickets.Delete(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		_ = utils.DeleteCache(context.Background(), rdb, ticketCacheKey(ticket.Agent))
		c.JSON(http.StatusOK, gin.H{"message": "Ticket deleted"})
	}
}

// MarketLockRequest sets the market open or closed.
type MarketLockRequest struct {
	Locked *bool `json:"locked" binding:"required"`
}

// MarketLockHandler lets an admin block or release the market between
// rounds. While locked, Issue rejects every new bet.
func MarketLockHandler(tickets *ledger.TicketService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req MarketLockRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		tickets.SetLocked(*req.Locked)
		c.JSON(http.StatusOK, gin.H{"locked": tickets.Locked()})
	}
}

// MarketStatusHandler reports whether the market accepts new bets.
func MarketStatusHandler(tickets *ledger.TicketService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"locked": tickets.Locked()})
	}
}

// ListTicketsHandler returns the session user's tickets in insertion order,
// optionally narrowed by ?status=. Unfiltered listings are cache-aside.
func ListTicketsHandler(tickets *ledger.TicketService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		agent, ok := sessionUsername(c)
		if !ok {
			return
		}
		status := c.Query("status")
		if status == "" {
			ctx := context.Background()
			var cached []domain.Ticket
			found, err := utils.GetCache(ctx, rdb, ticketCacheKey(agent), &cached)
			if err == nil && found {
				c.JSON(http.StatusOK, gin.H{"tickets": cached, "cached": true})
				return
			}
		}
		list, err := tickets.ListByAgent(c.Request.Context(), agent)
		if err != nil {
			respondError(c, err)
			return
		}
		if status != "" {
			filtered := make([]domain.Ticket, 0, len(list))
			for _, t := range list {
				if t.Status == status {
					filtered = append(filtered, t)
				}
			}
			list = filtered
		} else {
			_ = utils.SetCache(context.Background(), rdb, ticketCacheKey(agent), list, 60*time.Second)
		}
		c.JSON(http.StatusOK, gin.H{"tickets": list, "cached": false})
	}
}
