// Package matches supplies rounds and tips. Sources are pluggable: the
// generative client is optional, the static source always works, and the
// workflow code never depends on the generative collaborator being up.
package matches

import (
	"context"

	"betpool/internal/domain"
)

// RoundSource produces a full round of fixtures.
type RoundSource interface {
	GenerateRound(ctx context.Context) ([]domain.Match, error)
}

// TipSource produces one outcome pick per match. Implementations must cover
// every match ID even on partial failure.
type TipSource interface {
	GenerateTips(ctx context.Context, matches []domain.Match) (map[int]domain.Outcome, error)
}
