package domain

import "time"

// Transaction types
const (
	TxDeposit    = "DEPOSIT"
	TxWithdrawal = "WITHDRAWAL"
)

// Transaction statuses. PENDING may move to APPROVED or REJECTED, both terminal.
const (
	TxPending  = "PENDING"
	TxApproved = "APPROVED"
	TxRejected = "REJECTED"
)

// Transaction Model
type Transaction struct {
	Seq       uint      `gorm:"primaryKey" json:"-"`        // Insertion order for stable listings
	ID        string    `gorm:"uniqueIndex;not null" json:"id"`
	Username  string    `gorm:"index;not null" json:"username"` // Account to credit on approval
	Amount    float64   `gorm:"not null" json:"amount"`
	Type      string    `gorm:"not null" json:"type"`   // DEPOSIT or WITHDRAWAL
	Status    string    `gorm:"not null" json:"status"` // PENDING, APPROVED or REJECTED
	Timestamp time.Time `gorm:"not null" json:"timestamp"`
	Agent     string    `gorm:"index;not null" json:"agent"` // Agent who fields the request
}

// Resolved reports whether the transaction reached a terminal state.
func (t *Transaction) Resolved() bool {
	return t.Status != TxPending
}
