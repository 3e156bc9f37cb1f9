package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"betpool/internal/accounting"
	"betpool/internal/domain"
	"betpool/internal/store"
)

// WeeklyStatsHandler returns the weekly settlement line for the session
// agent. Admins may inspect any agent via ?agent=.
func WeeklyStatsHandler(tickets store.TicketLedger) gin.HandlerFunc {
	return func(c *gin.Context) {
		agent, ok := sessionUsername(c)
		if !ok {
			return
		}
		if other := c.Query("agent"); other != "" && sessionRole(c) == domain.RoleAdmin {
			agent = other
		}
		now := time.Now()
		stats, err := accounting.WeeklyStats(c.Request.Context(), agent, tickets, now)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"stats": stats,
			"since": accounting.StartOfWeek(now).Format(time.RFC3339),
		})
	}
}
