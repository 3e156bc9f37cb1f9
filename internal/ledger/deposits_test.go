package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"betpool/internal/domain"
	"betpool/internal/store"
)

func depositFixture(t *testing.T) (*DepositService, *store.MemoryTransactionLedger, *store.MemoryUserStore) {
	t.Helper()
	txs := store.NewMemoryTransactionLedger()
	users := store.NewMemoryUserStore()
	require.NoError(t, users.Create(context.Background(), &domain.User{Username: "maria", Balance: 5}))
	now := func() time.Time { return time.Date(2024, 7, 10, 15, 0, 0, 0, time.UTC) }
	return NewDepositService(txs, users, now), txs, users
}

func TestRequestCreatesPendingTransaction(t *testing.T) {
	svc, txs, _ := depositFixture(t)
	ctx := context.Background()

	tx, err := svc.Request(ctx, "maria", 2.00, "joao")
	require.NoError(t, err)
	require.Equal(t, domain.TxPending, tx.Status)
	require.Equal(t, domain.TxDeposit, tx.Type)
	require.NotEmpty(t, tx.ID)

	pending, err := txs.ListPendingByAgent(ctx, "joao")
	require.NoError(t, err)
	require.Len(t, pending, 1)
}

func TestRequestBelowMinimumLeavesLedgerUnchanged(t *testing.T) {
	svc, txs, _ := depositFixture(t)
	ctx := context.Background()

	_, err := svc.Request(ctx, "maria", 1.50, "joao")
	require.ErrorIs(t, err, domain.ErrValidation)

	pending, err := txs.ListPendingByAgent(ctx, "joao")
	require.NoError(t, err)
	require.Empty(t, pending)
}

func TestApproveCreditsBalanceExactlyOnce(t *testing.T) {
	svc, _, users := depositFixture(t)
	ctx := context.Background()

	tx, err := svc.Request(ctx, "maria", 30, "joao")
	require.NoError(t, err)

	require.NoError(t, svc.Approve(ctx, tx.ID))

	// Status flip and credit are observed together after Approve returns.
	resolved, err := svc.txs.Get(ctx, tx.ID)
	require.NoError(t, err)
	require.Equal(t, domain.TxApproved, resolved.Status)
	u, err := users.FindByUsername(ctx, "maria")
	require.NoError(t, err)
	require.EqualValues(t, 35, u.Balance)

	// Second approval is rejected and credits nothing.
	require.ErrorIs(t, svc.Approve(ctx, tx.ID), domain.ErrAlreadyResolved)
	u, err = users.FindByUsername(ctx, "maria")
	require.NoError(t, err)
	require.EqualValues(t, 35, u.Balance)
}

func TestRejectHasNoBalanceEffectAndIsTerminal(t *testing.T) {
	svc, _, users := depositFixture(t)
	ctx := context.Background()

	tx, err := svc.Request(ctx, "maria", 10, "joao")
	require.NoError(t, err)
	require.NoError(t, svc.Reject(ctx, tx.ID))

	u, err := users.FindByUsername(ctx, "maria")
	require.NoError(t, err)
	require.EqualValues(t, 5, u.Balance)

	require.ErrorIs(t, svc.Reject(ctx, tx.ID), domain.ErrAlreadyResolved)
	require.ErrorIs(t, svc.Approve(ctx, tx.ID), domain.ErrAlreadyResolved)
}

func TestApprovedDepositsSumIndependentOfRejections(t *testing.T) {
	svc, _, users := depositFixture(t)
	ctx := context.Background()

	// Interleave approvals and rejections; only approvals may move the balance.
	steps := []struct {
		amount  float64
		approve bool
	}{
		{10, true}, {20, false}, {30, true}, {2, false}, {40, true},
	}
	var want float64 = 5
	for _, step := range steps {
		tx, err := svc.Request(ctx, "maria", step.amount, "joao")
		require.NoError(t, err)
		if step.approve {
			require.NoError(t, svc.Approve(ctx, tx.ID))
			want += step.amount
		} else {
			require.NoError(t, svc.Reject(ctx, tx.ID))
		}
	}

	u, err := users.FindByUsername(ctx, "maria")
	require.NoError(t, err)
	require.EqualValues(t, want, u.Balance)
}

func TestApproveUnknownTransaction(t *testing.T) {
	svc, _, _ := depositFixture(t)
	require.ErrorIs(t, svc.Approve(context.Background(), "missing"), domain.ErrNotFound)
}
