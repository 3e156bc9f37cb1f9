package store

import (
	"context"
	"sync"
	"time"

	"betpool/internal/domain"
)

// MemoryUserStore keeps users in a map keyed by the exact stored username.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]*domain.User
	order []string
}

// NewMemoryUserStore returns an empty in-memory user store.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]*domain.User)}
}

func (s *MemoryUserStore) Create(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Exact-match duplicate check only; "Ana" and "ana" may coexist.
	if _, ok := s.users[user.Username]; ok {
		return domain.ErrAlreadyExists
	}
	u := *user
	s.users[user.Username] = &u
	s.order = append(s.order, user.Username)
	return nil
}

func (s *MemoryUserStore) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	want := NormalizeUsername(username)
	for _, key := range s.order {
		if NormalizeUsername(key) == want {
			u := *s.users[key]
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *MemoryUserStore) AdjustBalance(ctx context.Context, username string, delta float64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, err := s.locate(username)
	if err != nil {
		return 0, err
	}
	u.Balance += delta
	return u.Balance, nil
}

func (s *MemoryUserStore) UpdatePixKey(ctx context.Context, username, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, err := s.locate(username)
	if err != nil {
		return err
	}
	u.PixKey = key
	return nil
}

func (s *MemoryUserStore) List(ctx context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.User, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, *s.users[key])
	}
	return out, nil
}

func (s *MemoryUserStore) ListByCreator(ctx context.Context, creator string) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.User
	for _, key := range s.order {
		if s.users[key].CreatedBy == creator {
			out = append(out, *s.users[key])
		}
	}
	return out, nil
}

// locate resolves a normalized username to the live record. Callers hold the lock.
func (s *MemoryUserStore) locate(username string) (*domain.User, error) {
	want := NormalizeUsername(username)
	for _, key := range s.order {
		if NormalizeUsername(key) == want {
			return s.users[key], nil
		}
	}
	return nil, domain.ErrNotFound
}

// MemoryTicketLedger keeps tickets in an insertion-ordered slice.
type MemoryTicketLedger struct {
	mu      sync.RWMutex
	tickets []*domain.Ticket
}

// NewMemoryTicketLedger returns an empty in-memory ticket ledger.
func NewMemoryTicketLedger() *MemoryTicketLedger {
	return &MemoryTicketLedger{}
}

func (l *MemoryTicketLedger) Insert(ctx context.Context, t *domain.Ticket) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, existing := range l.tickets {
		if existing.ID == t.ID {
			return domain.ErrAlreadyExists
		}
	}
	cp := *t
	l.tickets = append(l.tickets, &cp)
	return nil
}

func (l *MemoryTicketLedger) Get(ctx context.Context, id string) (*domain.Ticket, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, t := range l.tickets {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (l *MemoryTicketLedger) MarkPaid(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, t := range l.tickets {
		if t.ID == id {
			t.Status = domain.TicketPaid
			return nil
		}
	}
	return domain.ErrNotFound
}

func (l *MemoryTicketLedger) Delete(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, t := range l.tickets {
		if t.ID == id {
			l.tickets = append(l.tickets[:i], l.tickets[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (l *MemoryTicketLedger) ListByAgent(ctx context.Context, agent string) ([]domain.Ticket, error) {
	return l.filter(func(t *domain.Ticket) bool { return t.Agent == agent })
}

func (l *MemoryTicketLedger) ListByStatus(ctx context.Context, status string) ([]domain.Ticket, error) {
	return l.filter(func(t *domain.Ticket) bool { return t.Status == status })
}

func (l *MemoryTicketLedger) ListInWindow(ctx context.Context, start, end time.Time) ([]domain.Ticket, error) {
	return l.filter(func(t *domain.Ticket) bool {
		return !t.Timestamp.Before(start) && !t.Timestamp.After(end)
	})
}

func (l *MemoryTicketLedger) filter(keep func(*domain.Ticket) bool) ([]domain.Ticket, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []domain.Ticket
	for _, t := range l.tickets {
		if keep(t) {
			out = append(out, *t)
		}
	}
	return out, nil
}

// MemoryTransactionLedger keeps transactions in an insertion-ordered slice.
type MemoryTransactionLedger struct {
	mu  sync.RWMutex
	txs []*domain.Transaction
}

// NewMemoryTransactionLedger returns an empty in-memory transaction ledger.
func NewMemoryTransactionLedger() *MemoryTransactionLedger {
	return &MemoryTransactionLedger{}
}

func (l *MemoryTransactionLedger) Insert(ctx context.Context, t *domain.Transaction) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, existing := range l.txs {
		if existing.ID == t.ID {
			return domain.ErrAlreadyExists
		}
	}
	cp := *t
	l.txs = append(l.txs, &cp)
	return nil
}

func (l *MemoryTransactionLedger) Get(ctx context.Context, id string) (*domain.Transaction, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, t := range l.txs {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (l *MemoryTransactionLedger) Resolve(ctx context.Context, id, status string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, t := range l.txs {
		if t.ID == id {
			if t.Resolved() {
				return domain.ErrAlreadyResolved
			}
			t.Status = status
			return nil
		}
	}
	return domain.ErrNotFound
}

func (l *MemoryTransactionLedger) ListPendingByAgent(ctx context.Context, agent string) ([]domain.Transaction, error) {
	return l.filter(func(t *domain.Transaction) bool {
		return t.Agent == agent && t.Status == domain.TxPending
	})
}

func (l *MemoryTransactionLedger) ListByUsername(ctx context.Context, username string) ([]domain.Transaction, error) {
	return l.filter(func(t *domain.Transaction) bool { return t.Username == username })
}

func (l *MemoryTransactionLedger) filter(keep func(*domain.Transaction) bool) ([]domain.Transaction, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []domain.Transaction
	for _, t := range l.txs {
		if keep(t) {
			out = append(out, *t)
		}
	}
	return out, nil
}

// MemoryMatchCatalog holds the current round behind a mutex.
type MemoryMatchCatalog struct {
	mu      sync.RWMutex
	matches []domain.Match
}

// NewMemoryMatchCatalog returns a catalog seeded with the given round.
func NewMemoryMatchCatalog(matches []domain.Match) *MemoryMatchCatalog {
	c := &MemoryMatchCatalog{}
	c.matches = append(c.matches, matches...)
	return c
}

func (c *MemoryMatchCatalog) Current(ctx context.Context) ([]domain.Match, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Match, len(c.matches))
	copy(out, c.matches)
	return out, nil
}

func (c *MemoryMatchCatalog) ReplaceRound(ctx context.Context, matches []domain.Match) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.matches = make([]domain.Match, len(matches))
	copy(c.matches, matches)
	return nil
}
