package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"betpool/internal/domain"
)

func TestUserStoreCaseNormalizedLookup(t *testing.T) {
	s := NewMemoryUserStore()
	ctx := context.Background()

	err := s.Create(ctx, &domain.User{Username: "Ana", Password: "x", Role: domain.RoleClient})
	require.NoError(t, err)

	// Lookup is case-insensitive even though the stored key keeps its case.
	u, err := s.FindByUsername(ctx, "ana")
	require.NoError(t, err)
	require.Equal(t, "Ana", u.Username)

	u, err = s.FindByUsername(ctx, "  ANA  ")
	require.NoError(t, err)
	require.Equal(t, "Ana", u.Username)

	_, err = s.FindByUsername(ctx, "bob")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserStoreCreateDuplicateIsCaseSensitive(t *testing.T) {
	s := NewMemoryUserStore()
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, &domain.User{Username: "Ana"}))
	// Exact duplicate is rejected...
	require.ErrorIs(t, s.Create(ctx, &domain.User{Username: "Ana"}), domain.ErrAlreadyExists)
	// ...but a different-cased duplicate is not. Observed behavior, kept.
	require.NoError(t, s.Create(ctx, &domain.User{Username: "ana"}))
}

func TestUserStoreAdjustBalanceNoFloor(t *testing.T) {
	s := NewMemoryUserStore()
	ctx := context.Background()
	require.NoError(t, s.Create(ctx, &domain.User{Username: "joao", Balance: 10}))

	balance, err := s.AdjustBalance(ctx, "joao", -25)
	require.NoError(t, err)
	require.EqualValues(t, -15, balance)

	u, err := s.FindByUsername(ctx, "joao")
	require.NoError(t, err)
	require.EqualValues(t, -15, u.Balance)
}

func TestUserStoreListByCreator(t *testing.T) {
	s := NewMemoryUserStore()
	ctx := context.Background()
	require.NoError(t, s.Create(ctx, &domain.User{Username: "joao", Role: domain.RoleCambista, CreatedBy: domain.CreatedBySystem}))
	require.NoError(t, s.Create(ctx, &domain.User{Username: "maria", CreatedBy: "joao"}))
	require.NoError(t, s.Create(ctx, &domain.User{Username: "pedro", CreatedBy: "joao"}))
	require.NoError(t, s.Create(ctx, &domain.User{Username: "lia", CreatedBy: "outro"}))

	mine, err := s.ListByCreator(ctx, "joao")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	require.Equal(t, "maria", mine[0].Username)
	require.Equal(t, "pedro", mine[1].Username)
}

func TestTicketLedgerInsertionOrder(t *testing.T) {
	l := NewMemoryTicketLedger()
	ctx := context.Background()
	base := time.Date(2024, 7, 8, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"t1", "t2", "t3"} {
		require.NoError(t, l.Insert(ctx, &domain.Ticket{
			ID:        id,
			Agent:     "joao",
			Status:    domain.TicketPendingPayment,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	list, err := l.ListByAgent(ctx, "joao")
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "t1", list[0].ID)
	require.Equal(t, "t3", list[2].ID)

	window, err := l.ListInWindow(ctx, base, base.Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, window, 2) // Inclusive bounds
}

func TestTransactionLedgerResolveGuards(t *testing.T) {
	l := NewMemoryTransactionLedger()
	ctx := context.Background()
	require.NoError(t, l.Insert(ctx, &domain.Transaction{ID: "d1", Status: domain.TxPending, Agent: "joao"}))

	require.ErrorIs(t, l.Resolve(ctx, "missing", domain.TxApproved), domain.ErrNotFound)
	require.NoError(t, l.Resolve(ctx, "d1", domain.TxApproved))
	require.ErrorIs(t, l.Resolve(ctx, "d1", domain.TxApproved), domain.ErrAlreadyResolved)
	require.ErrorIs(t, l.Resolve(ctx, "d1", domain.TxRejected), domain.ErrAlreadyResolved)

	tx, err := l.Get(ctx, "d1")
	require.NoError(t, err)
	require.Equal(t, domain.TxApproved, tx.Status)
}

func TestMatchCatalogReplaceRound(t *testing.T) {
	c := NewMemoryMatchCatalog([]domain.Match{{ID: 1, League: "old"}})
	ctx := context.Background()

	require.NoError(t, c.ReplaceRound(ctx, []domain.Match{{ID: 1, League: "new"}, {ID: 2, League: "new"}}))
	round, err := c.Current(ctx)
	require.NoError(t, err)
	require.Len(t, round, 2)
	require.Equal(t, "new", round[0].League)
}
