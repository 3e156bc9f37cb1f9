package domain

// Team is one side of a fixture.
type Team struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Logo  string `json:"logoPlaceholder"` // Avatar URL, may be empty
}

// Match is a single fixture of the current round. The whole round is replaced
// atomically by an admin action; matches are read-only everywhere else.
type Match struct {
	ID       int    `gorm:"primaryKey;autoIncrement:false" json:"id"` // 1-based, unique within a round
	HomeTeam Team   `gorm:"embedded;embeddedPrefix:home_" json:"homeTeam"`
	AwayTeam Team   `gorm:"embedded;embeddedPrefix:away_" json:"awayTeam"`
	League   string `json:"league"`
	Time     string `json:"time"` // Kickoff in HH:MM
}
