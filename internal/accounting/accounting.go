// Package accounting derives weekly sales figures from the ticket ledger.
// Everything here is a pure function of its inputs.
package accounting

import (
	"context"
	"time"

	"betpool/internal/domain"
	"betpool/internal/store"
)

// CommissionRate is the agent's fixed cut of weekly PAID sales.
const CommissionRate = 0.20

// Stats is the weekly settlement line for one agent.
type Stats struct {
	TotalSales float64 `json:"totalSales"`
	Commission float64 `json:"commission"`
	Net        float64 `json:"net"`
	Count      int     `json:"count"`
}

// StartOfWeek returns the most recent Sunday at 00:00:00 in now's location.
func StartOfWeek(now time.Time) time.Time {
	start := now.AddDate(0, 0, -int(now.Weekday()))
	return time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, now.Location())
}

// Summarize folds the given tickets into weekly stats for one agent, counting
// only PAID tickets stamped inside [StartOfWeek(now), now].
func Summarize(agent string, tickets []domain.Ticket, now time.Time) Stats {
	start := StartOfWeek(now)
	var stats Stats
	for _, t := range tickets {
		if t.Agent != agent || t.Status != domain.TicketPaid {
			continue
		}
		if t.Timestamp.Before(start) || t.Timestamp.After(now) {
			continue
		}
		stats.TotalSales += t.Price
		stats.Count++
	}
	stats.Commission = stats.TotalSales * CommissionRate
	stats.Net = stats.TotalSales - stats.Commission
	return stats
}

// WeeklyStats queries the ledger for the current week and summarizes it.
// Identical ledger contents and now always produce identical output.
func WeeklyStats(ctx context.Context, agent string, tickets store.TicketLedger, now time.Time) (Stats, error) {
	window, err := tickets.ListInWindow(ctx, StartOfWeek(now), now)
	if err != nil {
		return Stats{}, err
	}
	return Summarize(agent, window, now), nil
}
