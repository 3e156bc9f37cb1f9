package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"betpool/internal/domain"
	"betpool/internal/store"
)

func ticketFixture(t *testing.T) (*TicketService, *store.MemoryTicketLedger) {
	t.Helper()
	l := store.NewMemoryTicketLedger()
	now := func() time.Time { return time.Date(2024, 7, 10, 15, 0, 0, 0, time.UTC) }
	return NewTicketService(l, now), l
}

func TestIssueAndPayLifecycle(t *testing.T) {
	svc, _ := ticketFixture(t)
	ctx := context.Background()

	ticket, err := svc.Issue(ctx, domain.Selections{1: domain.OutcomeHome, 2: domain.OutcomeDraw}, 10, 120, "joao")
	require.NoError(t, err)
	require.Equal(t, domain.TicketPendingPayment, ticket.Status)
	require.NotEmpty(t, ticket.ID)

	require.NoError(t, svc.MarkPaid(ctx, ticket.ID))
	paid, err := svc.Get(ctx, ticket.ID)
	require.NoError(t, err)
	require.Equal(t, domain.TicketPaid, paid.Status)

	// Second confirmation is a no-op, never a revert.
	require.NoError(t, svc.MarkPaid(ctx, ticket.ID))
	paid, err = svc.Get(ctx, ticket.ID)
	require.NoError(t, err)
	require.Equal(t, domain.TicketPaid, paid.Status)
}

func TestGetTicket(t *testing.T) {
	svc, _ := ticketFixture(t)
	ctx := context.Background()

	ticket, err := svc.Issue(ctx, domain.Selections{1: domain.OutcomeHome}, 10, 50, "joao")
	require.NoError(t, err)

	got, err := svc.Get(ctx, ticket.ID)
	require.NoError(t, err)
	require.Equal(t, ticket.ID, got.ID)
	require.Equal(t, "joao", got.Agent)

	_, err = svc.Get(ctx, "no-such-ticket")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMarketLockBlocksNewTickets(t *testing.T) {
	svc, _ := ticketFixture(t)
	ctx := context.Background()

	require.False(t, svc.Locked())
	svc.SetLocked(true)
	require.True(t, svc.Locked())

	_, err := svc.Issue(ctx, domain.Selections{1: domain.OutcomeHome}, 10, 50, "joao")
	require.ErrorIs(t, err, domain.ErrValidation)

	// Existing tickets stay workable while the market is closed.
	svc.SetLocked(false)
	ticket, err := svc.Issue(ctx, domain.Selections{1: domain.OutcomeHome}, 10, 50, "joao")
	require.NoError(t, err)
	svc.SetLocked(true)
	require.NoError(t, svc.MarkPaid(ctx, ticket.ID))
}

func TestIssueValidation(t *testing.T) {
	svc, _ := ticketFixture(t)
	ctx := context.Background()

	_, err := svc.Issue(ctx, domain.Selections{}, 10, 120, "joao")
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Issue(ctx, domain.Selections{1: domain.OutcomeHome}, 0, 120, "joao")
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestIssueGeneratesUniqueIDs(t *testing.T) {
	svc, _ := ticketFixture(t)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		ticket, err := svc.Issue(ctx, domain.Selections{1: domain.OutcomeHome}, 5, 50, "joao")
		require.NoError(t, err)
		require.False(t, seen[ticket.ID])
		seen[ticket.ID] = true
	}
}

func TestDeleteTicket(t *testing.T) {
	svc, _ := ticketFixture(t)
	ctx := context.Background()

	ticket, err := svc.Issue(ctx, domain.Selections{1: domain.OutcomeAway}, 10, 80, "joao")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, ticket.ID))
	require.ErrorIs(t, svc.Delete(ctx, ticket.ID), domain.ErrNotFound)
	require.ErrorIs(t, svc.MarkPaid(ctx, ticket.ID), domain.ErrNotFound)
}

func TestListQueries(t *testing.T) {
	svc, _ := ticketFixture(t)
	ctx := context.Background()

	a, err := svc.Issue(ctx, domain.Selections{1: domain.OutcomeHome}, 10, 50, "joao")
	require.NoError(t, err)
	_, err = svc.Issue(ctx, domain.Selections{2: domain.OutcomeDraw}, 20, 90, "pedro")
	require.NoError(t, err)
	b, err := svc.Issue(ctx, domain.Selections{3: domain.OutcomeAway}, 30, 200, "joao")
	require.NoError(t, err)
	require.NoError(t, svc.MarkPaid(ctx, a.ID))

	mine, err := svc.ListByAgent(ctx, "joao")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	require.Equal(t, a.ID, mine[0].ID) // Insertion order
	require.Equal(t, b.ID, mine[1].ID)

	pendings, err := svc.ListByStatus(ctx, domain.TicketPendingPayment)
	require.NoError(t, err)
	require.Len(t, pendings, 2)
}
