package matches

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStaticSourceRound(t *testing.T) {
	src := NewStaticSource()
	round, err := src.GenerateRound(context.Background())
	require.NoError(t, err)
	require.Len(t, round, 12)
	for i, m := range round {
		require.Equal(t, i+1, m.ID)
		require.NotEmpty(t, m.HomeTeam.Name)
		require.NotEmpty(t, m.AwayTeam.Name)
	}
}

func TestStaticTipsCoverEveryMatch(t *testing.T) {
	src := NewStaticSource()
	ctx := context.Background()
	round, err := src.GenerateRound(ctx)
	require.NoError(t, err)

	tips, err := src.GenerateTips(ctx, round)
	require.NoError(t, err)
	require.Len(t, tips, len(round))
	for _, m := range round {
		require.Contains(t, tips, m.ID)
	}

	// Deterministic for the same round.
	again, err := src.GenerateTips(ctx, round)
	require.NoError(t, err)
	require.Equal(t, tips, again)
}

func TestStaticSourceFromFile(t *testing.T) {
	fixture := `matches:
  - home: Flamengo
    away: Palmeiras
    league: Serie A
    time: "16:00"
  - home: Arsenal
    away: Chelsea
    league: Premier League
    time: "12:30"
`
	path := filepath.Join(t.TempDir(), "round.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o644))

	src, err := NewStaticSourceFromFile(path)
	require.NoError(t, err)
	round, err := src.GenerateRound(context.Background())
	require.NoError(t, err)
	require.Len(t, round, 2)
	require.Equal(t, 1, round[0].ID)
	require.Equal(t, "Flamengo", round[0].HomeTeam.Name)
	require.Equal(t, "Premier League", round[1].League)
}

func TestStaticSourceFromFileEmptyPath(t *testing.T) {
	src, err := NewStaticSourceFromFile("")
	require.NoError(t, err)
	round, err := src.GenerateRound(context.Background())
	require.NoError(t, err)
	require.Len(t, round, 12)
}
