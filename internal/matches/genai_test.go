package matches

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"betpool/internal/domain"
)

func TestGenAITipsOverlayKeepsFullCoverage(t *testing.T) {
	// The model only answers for match 1 and returns one garbage pick;
	// every other match keeps its fallback pick.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text": "{\"1\": \"AWAY\", \"2\": \"BANANA\"}"}`))
	}))
	defer srv.Close()

	static := NewStaticSource()
	src := NewGenAISource(srv.URL, "key", static)
	ctx := context.Background()
	round, err := static.GenerateRound(ctx)
	require.NoError(t, err)

	tips, err := src.GenerateTips(ctx, round)
	require.NoError(t, err)
	require.Len(t, tips, len(round))
	require.Equal(t, domain.OutcomeAway, tips[1])

	base, err := static.GenerateTips(ctx, round)
	require.NoError(t, err)
	require.Equal(t, base[2], tips[2]) // Garbage pick ignored
}

func TestGenAIFallsBackOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	static := NewStaticSource()
	src := NewGenAISource(srv.URL, "key", static)
	ctx := context.Background()

	round, err := src.GenerateRound(ctx)
	require.NoError(t, err)
	require.Len(t, round, 12) // Static round

	tips, err := src.GenerateTips(ctx, round)
	require.NoError(t, err)
	require.Len(t, tips, 12)
}

func TestGenAIRoundParsing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text": "[{\"homeTeamName\":\"Flamengo\",\"awayTeamName\":\"Santos\",\"league\":\"Serie A\",\"time\":\"16:00\"}]"}`))
	}))
	defer srv.Close()

	src := NewGenAISource(srv.URL, "key", NewStaticSource())
	round, err := src.GenerateRound(context.Background())
	require.NoError(t, err)
	require.Len(t, round, 1)
	require.Equal(t, 1, round[0].ID)
	require.Equal(t, "Flamengo", round[0].HomeTeam.Name)
	require.Equal(t, "Santos", round[0].AwayTeam.Name)
}
