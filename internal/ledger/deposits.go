package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/sirupsen/logrus"

	"betpool/internal/domain"
	"betpool/internal/store"
)

// MinDeposit is the smallest accepted deposit, in currency units.
const MinDeposit = 2.00

// DepositService runs the deposit request/approval workflow. It is the only
// component besides the admin adjustment handler allowed to move a balance.
type DepositService struct {
	txs   store.TransactionLedger
	users store.UserStore
	now   func() time.Time
}

// NewDepositService wires the deposit workflow. now is injectable for tests;
// pass nil for time.Now.
func NewDepositService(txs store.TransactionLedger, users store.UserStore, now func() time.Time) *DepositService {
	if now == nil {
		now = time.Now
	}
	return &DepositService{txs: txs, users: users, now: now}
}

// Request records a PENDING deposit for the given user under the given agent.
func (s *DepositService) Request(ctx context.Context, username string, amount float64, agent string) (*domain.Transaction, error) {
	if amount < MinDeposit {
		return nil, fmt.Errorf("%w: minimum deposit is %.2f", domain.ErrValidation, MinDeposit)
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("generate transaction id: %w", err)
	}
	t := &domain.Transaction{
		ID:        id.String(),
		Username:  username,
		Amount:    amount,
		Type:      domain.TxDeposit,
		Status:    domain.TxPending,
		Timestamp: s.now(),
		Agent:     agent,
	}
	if err := s.txs.Insert(ctx, t); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"tx_id":    t.ID,
		"username": username,
		"amount":   amount,
		"agent":    agent,
	}).Info("Deposit requested")
	return t, nil
}

// Approve moves a PENDING transaction to APPROVED and credits the user's
// balance. The two effects are not wrapped in a cross-store transaction; the
// terminal-status guard in Resolve is what prevents a double credit.
func (s *DepositService) Approve(ctx context.Context, id string) error {
	t, err := s.txs.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.txs.Resolve(ctx, id, domain.TxApproved); err != nil {
		return err
	}
	balance, err := s.users.AdjustBalance(ctx, t.Username, t.Amount)
	if err != nil {
		// The status flip already landed; surface the stranded credit loudly.
		logrus.WithFields(logrus.Fields{
			"tx_id":    id,
			"username": t.Username,
			"amount":   t.Amount,
			"error":    err.Error(),
		}).Error("Deposit approved but balance credit failed")
		return fmt.Errorf("credit balance for approved deposit %s: %w", id, err)
	}
	logrus.WithFields(logrus.Fields{
		"tx_id":    id,
		"username": t.Username,
		"amount":   t.Amount,
		"balance":  balance,
	}).Info("Deposit approved")
	return nil
}

// Reject moves a PENDING transaction to REJECTED. No balance effect.
func (s *DepositService) Reject(ctx context.Context, id string) error {
	if err := s.txs.Resolve(ctx, id, domain.TxRejected); err != nil {
		return err
	}
	logrus.WithField("tx_id", id).Info("Deposit rejected")
	return nil
}

// ListPendingByAgent returns the agent's open requests in insertion order.
func (s *DepositService) ListPendingByAgent(ctx context.Context, agent string) ([]domain.Transaction, error) {
	return s.txs.ListPendingByAgent(ctx, agent)
}

// ListByUsername returns a user's full request history in insertion order.
func (s *DepositService) ListByUsername(ctx context.Context, username string) ([]domain.Transaction, error) {
	return s.txs.ListByUsername(ctx, username)
}
