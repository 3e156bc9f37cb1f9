package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"betpool/internal/domain"
)

// GormUserStore is the MySQL-backed user store.
type GormUserStore struct {
	db *gorm.DB
}

// NewGormUserStore wraps a gorm handle.
func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

func (s *GormUserStore) Create(ctx context.Context, user *domain.User) error {
	// BINARY forces a case-sensitive comparison; MySQL's default collation
	// would otherwise treat "Ana" and "ana" as the same key.
	var count int64
	if err := s.db.WithContext(ctx).Model(&domain.User{}).
		Where("BINARY username = ?", user.Username).
		Count(&count).Error; err != nil {
		return fmt.Errorf("check duplicate username: %w", err)
	}
	if count > 0 {
		return domain.ErrAlreadyExists
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *GormUserStore) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).
		Where("LOWER(username) = ?", NormalizeUsername(username)).
		Order("seq").
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

func (s *GormUserStore) AdjustBalance(ctx context.Context, username string, delta float64) (float64, error) {
	user, err := s.FindByUsername(ctx, username)
	if err != nil {
		return 0, err
	}
	if err := s.db.WithContext(ctx).Model(user).
		Update("balance", gorm.Expr("balance + ?", delta)).Error; err != nil {
		return 0, fmt.Errorf("adjust balance: %w", err)
	}
	return user.Balance + delta, nil
}

func (s *GormUserStore) UpdatePixKey(ctx context.Context, username, key string) error {
	user, err := s.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Model(user).Update("pix_key", key).Error; err != nil {
		return fmt.Errorf("update pix key: %w", err)
	}
	return nil
}

func (s *GormUserStore) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := s.db.WithContext(ctx).Order("seq").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *GormUserStore) ListByCreator(ctx context.Context, creator string) ([]domain.User, error) {
	var users []domain.User
	if err := s.db.WithContext(ctx).
		Where("created_by = ?", creator).
		Order("seq").
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users by creator: %w", err)
	}
	return users, nil
}

// GormTicketLedger is the MySQL-backed ticket ledger.
type GormTicketLedger struct {
	db *gorm.DB
}

// NewGormTicketLedger wraps a gorm handle.
func NewGormTicketLedger(db *gorm.DB) *GormTicketLedger {
	return &GormTicketLedger{db: db}
}

func (l *GormTicketLedger) Insert(ctx context.Context, t *domain.Ticket) error {
	if err := l.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("insert ticket: %w", err)
	}
	return nil
}

func (l *GormTicketLedger) Get(ctx context.Context, id string) (*domain.Ticket, error) {
	var t domain.Ticket
	err := l.db.WithContext(ctx).Where("id = ?", id).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	return &t, nil
}

func (l *GormTicketLedger) MarkPaid(ctx context.Context, id string) error {
	res := l.db.WithContext(ctx).Model(&domain.Ticket{}).
		Where("id = ? AND status = ?", id, domain.TicketPendingPayment).
		Update("status", domain.TicketPaid)
	if res.Error != nil {
		return fmt.Errorf("mark ticket paid: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// Either the ticket is missing or it is already PAID; the latter is a no-op.
		if _, err := l.Get(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (l *GormTicketLedger) Delete(ctx context.Context, id string) error {
	res := l.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Ticket{})
	if res.Error != nil {
		return fmt.Errorf("delete ticket: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (l *GormTicketLedger) ListByAgent(ctx context.Context, agent string) ([]domain.Ticket, error) {
	return l.list(ctx, "agent = ?", agent)
}

func (l *GormTicketLedger) ListByStatus(ctx context.Context, status string) ([]domain.Ticket, error) {
	return l.list(ctx, "status = ?", status)
}

func (l *GormTicketLedger) ListInWindow(ctx context.Context, start, end time.Time) ([]domain.Ticket, error) {
	return l.list(ctx, "timestamp >= ? AND timestamp <= ?", start, end)
}

func (l *GormTicketLedger) list(ctx context.Context, query string, args ...any) ([]domain.Ticket, error) {
	var tickets []domain.Ticket
	if err := l.db.WithContext(ctx).
		Where(query, args...).
		Order("seq").
		Find(&tickets).Error; err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return tickets, nil
}

// GormTransactionLedger is the MySQL-backed transaction ledger.
type GormTransactionLedger struct {
	db *gorm.DB
}

// NewGormTransactionLedger wraps a gorm handle.
func NewGormTransactionLedger(db *gorm.DB) *GormTransactionLedger {
	return &GormTransactionLedger{db: db}
}

func (l *GormTransactionLedger) Insert(ctx context.Context, t *domain.Transaction) error {
	if err := l.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

func (l *GormTransactionLedger) Get(ctx context.Context, id string) (*domain.Transaction, error) {
	var t domain.Transaction
	err := l.db.WithContext(ctx).Where("id = ?", id).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return &t, nil
}

func (l *GormTransactionLedger) Resolve(ctx context.Context, id, status string) error {
	// The status guard in the WHERE clause makes the transition race-free:
	// a second approval matches zero rows.
	res := l.db.WithContext(ctx).Model(&domain.Transaction{}).
		Where("id = ? AND status = ?", id, domain.TxPending).
		Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("resolve transaction: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := l.Get(ctx, id); err != nil {
			return err
		}
		return domain.ErrAlreadyResolved
	}
	return nil
}

func (l *GormTransactionLedger) ListPendingByAgent(ctx context.Context, agent string) ([]domain.Transaction, error) {
	return l.list(ctx, "agent = ? AND status = ?", agent, domain.TxPending)
}

func (l *GormTransactionLedger) ListByUsername(ctx context.Context, username string) ([]domain.Transaction, error) {
	return l.list(ctx, "username = ?", username)
}

func (l *GormTransactionLedger) list(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	var txs []domain.Transaction
	if err := l.db.WithContext(ctx).
		Where(query, args...).
		Order("seq").
		Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

// GormMatchCatalog is the MySQL-backed match catalog.
type GormMatchCatalog struct {
	db *gorm.DB
}

// NewGormMatchCatalog wraps a gorm handle.
func NewGormMatchCatalog(db *gorm.DB) *GormMatchCatalog {
	return &GormMatchCatalog{db: db}
}

func (c *GormMatchCatalog) Current(ctx context.Context) ([]domain.Match, error) {
	var matches []domain.Match
	if err := c.db.WithContext(ctx).Order("id").Find(&matches).Error; err != nil {
		return nil, fmt.Errorf("load round: %w", err)
	}
	return matches, nil
}

func (c *GormMatchCatalog) ReplaceRound(ctx context.Context, matches []domain.Match) error {
	// Whole-round swap inside one transaction so readers never see a partial round.
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&domain.Match{}).Error; err != nil {
			return err
		}
		if len(matches) == 0 {
			return nil
		}
		return tx.Create(&matches).Error
	})
	if err != nil {
		return fmt.Errorf("replace round: %w", err)
	}
	return nil
}
