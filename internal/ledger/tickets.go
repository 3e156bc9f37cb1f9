package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	"github.com/sirupsen/logrus"

	"betpool/internal/domain"
	"betpool/internal/store"
)

// TicketService issues and settles betting tickets on top of a TicketLedger.
// The market lock is an admin toggle that stops new bets between rounds;
// existing tickets are unaffected.
type TicketService struct {
	tickets store.TicketLedger
	now     func() time.Time

	mu     sync.RWMutex
	locked bool
}

// NewTicketService wires the ticket workflow. now is injectable for tests;
// pass nil for time.Now.
func NewTicketService(tickets store.TicketLedger, now func() time.Time) *TicketService {
	if now == nil {
		now = time.Now
	}
	return &TicketService{tickets: tickets, now: now}
}

// Issue creates a ticket in PENDING_PAYMENT with a fresh opaque id.
// Selections are not checked against the current round; a stale slip is the
// agent's problem, matching how the paper flow works.
func (s *TicketService) Issue(ctx context.Context, selections domain.Selections, price, potentialWin float64, agent string) (*domain.Ticket, error) {
	if s.Locked() {
		return nil, fmt.Errorf("%w: market is locked", domain.ErrValidation)
	}
	if len(selections) == 0 {
		return nil, fmt.Errorf("%w: ticket needs at least one selection", domain.ErrValidation)
	}
	if price <= 0 {
		return nil, fmt.Errorf("%w: ticket price must be positive", domain.ErrValidation)
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("generate ticket id: %w", err)
	}
	t := &domain.Ticket{
		ID:           id.String(),
		Price:        price,
		PotentialWin: potentialWin,
		Timestamp:    s.now(),
		Status:       domain.TicketPendingPayment,
		Selections:   selections,
		Agent:        agent,
	}
	if err := s.tickets.Insert(ctx, t); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"ticket_id": t.ID,
		"agent":     agent,
		"price":     price,
		"win":       potentialWin,
	}).Info("Ticket issued")
	return t, nil
}

// Get returns a single ticket by id.
func (s *TicketService) Get(ctx context.Context, id string) (*domain.Ticket, error) {
	return s.tickets.Get(ctx, id)
}

// MarkPaid confirms payment. Re-invoking on a PAID ticket is a no-op.
func (s *TicketService) MarkPaid(ctx context.Context, id string) error {
	if err := s.tickets.MarkPaid(ctx, id); err != nil {
		return err
	}
	logrus.WithField("ticket_id", id).Info("Ticket paid")
	return nil
}

// Delete removes a ticket. Confirmation is the caller's concern, not the ledger's.
func (s *TicketService) Delete(ctx context.Context, id string) error {
	if err := s.tickets.Delete(ctx, id); err != nil {
		return err
	}
	logrus.WithField("ticket_id", id).Info("Ticket deleted")
	return nil
}

// Locked reports whether the market is closed for new bets.
func (s *TicketService) Locked() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.locked
}

// SetLocked opens or closes the market for new bets.
func (s *TicketService) SetLocked(locked bool) {
	s.mu.Lock()
	s.locked = locked
	s.mu.Unlock()
	logrus.WithField("locked", locked).Info("Market lock changed")
}

// ListByAgent returns the agent's tickets in insertion order.
func (s *TicketService) ListByAgent(ctx context.Context, agent string) ([]domain.Ticket, error) {
	return s.tickets.ListByAgent(ctx, agent)
}

// ListByStatus returns tickets in the given status in insertion order.
func (s *TicketService) ListByStatus(ctx context.Context, status string) ([]domain.Ticket, error) {
	return s.tickets.ListByStatus(ctx, status)
}

// ListInWindow returns tickets stamped inside [start, end], inclusive.
func (s *TicketService) ListInWindow(ctx context.Context, start, end time.Time) ([]domain.Ticket, error) {
	return s.tickets.ListInWindow(ctx, start, end)
}
