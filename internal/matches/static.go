package matches

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"betpool/internal/domain"
)

const roundSize = 12

// StaticSource serves a deterministic round and deterministic tips. It backs
// every generative call as the fallback and can run standalone when no
// generative endpoint is configured.
type StaticSource struct {
	round []domain.Match
}

// NewStaticSource builds the default simulated round.
func NewStaticSource() *StaticSource {
	round := make([]domain.Match, 0, roundSize)
	for i := 1; i <= roundSize; i++ {
		round = append(round, domain.Match{
			ID:       i,
			HomeTeam: domain.Team{Name: fmt.Sprintf("Time Casa %d", i), Color: "#3b82f6"},
			AwayTeam: domain.Team{Name: fmt.Sprintf("Time Fora %d", i), Color: "#ef4444"},
			League:   "Campeonato Simulado",
			Time:     "16:00",
		})
	}
	return &StaticSource{round: round}
}

// fixtureFile is the on-disk shape of a round fixture.
type fixtureFile struct {
	Matches []struct {
		Home   string `yaml:"home"`
		Away   string `yaml:"away"`
		League string `yaml:"league"`
		Time   string `yaml:"time"`
	} `yaml:"matches"`
}

// NewStaticSourceFromFile loads a round from a YAML fixture, falling back to
// the built-in round when the path is empty or unreadable.
func NewStaticSourceFromFile(path string) (*StaticSource, error) {
	if path == "" {
		return NewStaticSource(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read round fixture: %w", err)
	}
	var f fixtureFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse round fixture: %w", err)
	}
	if len(f.Matches) == 0 {
		return NewStaticSource(), nil
	}
	round := make([]domain.Match, 0, len(f.Matches))
	for i, m := range f.Matches {
		round = append(round, domain.Match{
			ID:       i + 1,
			HomeTeam: domain.Team{Name: m.Home, Color: "#3b82f6"},
			AwayTeam: domain.Team{Name: m.Away, Color: "#ef4444"},
			League:   m.League,
			Time:     m.Time,
		})
	}
	return &StaticSource{round: round}, nil
}

// GenerateRound returns a copy of the static round.
func (s *StaticSource) GenerateRound(ctx context.Context) ([]domain.Match, error) {
	out := make([]domain.Match, len(s.round))
	copy(out, s.round)
	return out, nil
}

// GenerateTips picks one outcome per match with a home-win bias, keyed off
// the match ID so the result is stable for a given round.
func (s *StaticSource) GenerateTips(ctx context.Context, round []domain.Match) (map[int]domain.Outcome, error) {
	tips := make(map[int]domain.Outcome, len(round))
	for _, m := range round {
		switch m.ID % 3 {
		case 0:
			tips[m.ID] = domain.OutcomeAway
		case 1:
			tips[m.ID] = domain.OutcomeHome
		default:
			tips[m.ID] = domain.OutcomeDraw
		}
	}
	return tips, nil
}
