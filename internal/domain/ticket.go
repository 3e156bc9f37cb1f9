package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Outcome of a single match as picked on a ticket.
type Outcome string

const (
	OutcomeHome Outcome = "HOME"
	OutcomeDraw Outcome = "DRAW"
	OutcomeAway Outcome = "AWAY"
)

// Ticket statuses
const (
	TicketPendingPayment = "PENDING_PAYMENT"
	TicketPaid           = "PAID"
)

// Selections maps match ID to the picked outcome. Stored as a JSON column.
type Selections map[int]Outcome

// Value implements driver.Valuer for gorm.
func (s Selections) Value() (driver.Value, error) {
	b, err := json.Marshal(s)
	return string(b), err
}

// Scan implements sql.Scanner for gorm.
func (s *Selections) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("selections: unsupported column type %T", src)
	}
}

// Ticket Model
type Ticket struct {
	Seq          uint       `gorm:"primaryKey" json:"-"`        // Insertion order for stable listings
	ID           string     `gorm:"uniqueIndex;not null" json:"id"` // Opaque unique id, immutable
	Price        float64    `gorm:"not null" json:"price"`
	PotentialWin float64    `gorm:"not null" json:"potentialWin"`
	Timestamp    time.Time  `gorm:"not null" json:"timestamp"`
	Status       string     `gorm:"not null" json:"status"` // PENDING_PAYMENT or PAID
	Selections   Selections `gorm:"type:json" json:"selections"`
	Agent        string     `gorm:"index;not null" json:"agent"` // Issuing agent/channel
}
