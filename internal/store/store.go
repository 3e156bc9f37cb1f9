package store

import (
	"context"
	"strings"
	"time"

	"betpool/internal/domain"
)

// NormalizeUsername is the canonical form used for lookups: trimmed and
// lower-cased. Creation deliberately does NOT enforce uniqueness on this form,
// only on the exact stored key (observed behavior, kept as-is).
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// UserStore holds account records. Balance is mutated only through
// AdjustBalance; the deposit-approval path and the admin adjustment handler
// are its only callers.
type UserStore interface {
	// Create fails with domain.ErrAlreadyExists on an exact (case-sensitive)
	// username duplicate.
	Create(ctx context.Context, user *domain.User) error
	// FindByUsername matches on the normalized username.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// AdjustBalance applies delta with no lower bound and returns the new balance.
	AdjustBalance(ctx context.Context, username string, delta float64) (float64, error)
	UpdatePixKey(ctx context.Context, username, key string) error
	List(ctx context.Context) ([]domain.User, error)
	ListByCreator(ctx context.Context, creator string) ([]domain.User, error)
}

// TicketLedger holds betting tickets. All listings reflect insertion order.
type TicketLedger interface {
	Insert(ctx context.Context, t *domain.Ticket) error
	Get(ctx context.Context, id string) (*domain.Ticket, error)
	// MarkPaid is a one-way transition; calling it on an already PAID ticket
	// is a no-op.
	MarkPaid(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	ListByAgent(ctx context.Context, agent string) ([]domain.Ticket, error)
	ListByStatus(ctx context.Context, status string) ([]domain.Ticket, error)
	ListInWindow(ctx context.Context, start, end time.Time) ([]domain.Ticket, error)
}

// TransactionLedger holds deposit/withdrawal requests.
type TransactionLedger interface {
	Insert(ctx context.Context, t *domain.Transaction) error
	Get(ctx context.Context, id string) (*domain.Transaction, error)
	// Resolve moves a PENDING transaction to a terminal status. It fails with
	// domain.ErrAlreadyResolved if the transaction is already terminal, so a
	// double approval can never be observed as two credits.
	Resolve(ctx context.Context, id, status string) error
	ListPendingByAgent(ctx context.Context, agent string) ([]domain.Transaction, error)
	ListByUsername(ctx context.Context, username string) ([]domain.Transaction, error)
}

// MatchCatalog holds the current round. ReplaceRound swaps the whole round.
type MatchCatalog interface {
	Current(ctx context.Context) ([]domain.Match, error)
	ReplaceRound(ctx context.Context, matches []domain.Match) error
}
