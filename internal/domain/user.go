package domain

// User roles
const (
	RoleAdmin    = "ADMIN"    // Full access, owns the match catalog
	RoleClient   = "CLIENT"   // Places bets and requests deposits
	RoleCambista = "CAMBISTA" // Agent: issues tickets, approves deposits of own clients
)

// CreatedBySystem marks seeded accounts; CreatedByAuto marks self-registration.
const (
	CreatedBySystem = "sistema"
	CreatedByAuto   = "auto"
)

// User Model
type User struct {
	Seq       uint    `gorm:"primaryKey" json:"-"`             // Surrogate key
	Username  string  `gorm:"unique;not null" json:"username"` // Unique username
	Password  string  `gorm:"not null" json:"-"`               // Hashed password
	Role      string  `gorm:"default:CLIENT" json:"role"`      // ADMIN, CLIENT or CAMBISTA
	Balance   float64 `gorm:"not null;default:0" json:"balance"`
	CreatedBy string  `json:"createdBy"` // Username of the creator, "sistema" or "auto"
	PixKey    string  `json:"pixKey"`    // Payout key shown on deposit requests
	CreatedAt int64   `gorm:"autoCreateTime:milli" json:"-"`   // Timestamp of creation in milliseconds
}
