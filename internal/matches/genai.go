package matches

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"betpool/internal/domain"
)

const genaiTimeout = 30 * time.Second

// GenAISource asks a generative text endpoint for rounds and tips. Every call
// degrades to the fallback source on any failure, and tips are overlaid on a
// fallback base so coverage is total even when the model skips match IDs.
type GenAISource struct {
	baseURL  string
	apiKey   string
	client   *http.Client
	fallback *StaticSource
}

// NewGenAISource builds a generative source over the given endpoint.
func NewGenAISource(baseURL, apiKey string, fallback *StaticSource) *GenAISource {
	return &GenAISource{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		apiKey:   apiKey,
		client:   &http.Client{Timeout: genaiTimeout},
		fallback: fallback,
	}
}

// generateRequest and generateResponse follow the plain text-generation
// contract: one prompt in, one JSON text body out.
type generateRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Text string `json:"text"`
}

func (g *GenAISource) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{Prompt: prompt})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/generate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: generate returned status %d", domain.ErrRemoteUnavailable, resp.StatusCode)
	}
	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode generate response: %v", domain.ErrRemoteUnavailable, err)
	}
	return out.Text, nil
}

// roundItem is the model's per-match answer shape.
type roundItem struct {
	HomeTeamName string `json:"homeTeamName"`
	AwayTeamName string `json:"awayTeamName"`
	League       string `json:"league"`
	Time         string `json:"time"`
}

// GenerateRound asks for a fresh round of 12 fixtures.
func (g *GenAISource) GenerateRound(ctx context.Context) ([]domain.Match, error) {
	prompt := "Generate a list of 12 realistic football matches for a betting pool. " +
		"Use famous teams from Brazil (Serie A), Europe (Premier League, La Liga), or National Teams. " +
		`Return strictly a JSON array of {"homeTeamName","awayTeamName","league","time"} with time in HH:MM.`
	text, err := g.generate(ctx, prompt)
	if err != nil {
		logrus.WithField("error", err.Error()).Warn("Round generation failed, using fallback")
		return g.fallback.GenerateRound(ctx)
	}
	var items []roundItem
	if err := json.Unmarshal([]byte(text), &items); err != nil || len(items) == 0 {
		logrus.Warn("Round generation returned unusable JSON, using fallback")
		return g.fallback.GenerateRound(ctx)
	}
	round := make([]domain.Match, 0, len(items))
	for i, item := range items {
		round = append(round, domain.Match{
			ID:       i + 1,
			HomeTeam: domain.Team{Name: item.HomeTeamName, Color: "#10b981", Logo: avatarURL(item.HomeTeamName)},
			AwayTeam: domain.Team{Name: item.AwayTeamName, Color: "#ef4444", Logo: avatarURL(item.AwayTeamName)},
			League:   item.League,
			Time:     item.Time,
		})
	}
	return round, nil
}

// GenerateTips overlays model picks on the fallback base. A skipped or
// malformed pick keeps the base pick, so every match ID stays covered.
func (g *GenAISource) GenerateTips(ctx context.Context, round []domain.Match) (map[int]domain.Outcome, error) {
	base, _ := g.fallback.GenerateTips(ctx, round)

	var descriptions []string
	for _, m := range round {
		descriptions = append(descriptions, fmt.Sprintf("ID %d: %s vs %s", m.ID, m.HomeTeam.Name, m.AwayTeam.Name))
	}
	prompt := "You are an expert football betting analyst. Provide the single most likely outcome " +
		"(HOME, DRAW or AWAY) for EVERY match listed. " +
		`Return strictly JSON: {"1": "HOME", "2": "DRAW", ...}` + "\nMatches:\n" +
		strings.Join(descriptions, "\n")

	text, err := g.generate(ctx, prompt)
	if err != nil {
		logrus.WithField("error", err.Error()).Warn("Tip generation failed, using fallback")
		return base, nil
	}
	var picks map[string]string
	if err := json.Unmarshal([]byte(text), &picks); err != nil {
		logrus.Warn("Tip generation returned unusable JSON, using fallback")
		return base, nil
	}
	for key, val := range picks {
		id, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		switch outcome := domain.Outcome(val); outcome {
		case domain.OutcomeHome, domain.OutcomeDraw, domain.OutcomeAway:
			if _, ok := base[id]; ok {
				base[id] = outcome
			}
		}
	}
	return base, nil
}

func avatarURL(name string) string {
	return "https://ui-avatars.com/api/?name=" + strings.ReplaceAll(name, " ", "+") + "&background=random"
}
