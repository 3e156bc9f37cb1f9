// Package remote looks up users on the hosted backend when the local
// credential check misses. The remote schema uses snake_case columns; rows
// are translated to the internal shape before anyone else sees them.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"betpool/internal/domain"
)

const defaultTimeout = 10 * time.Second

// Client queries the hosted users table over its REST interface.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient builds a lookup client. baseURL is the REST root, apiKey goes in
// the apikey header on every request.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

// userRow mirrors the remote users table.
type userRow struct {
	Username  string  `json:"username"`
	Password  string  `json:"password"`
	Role      string  `json:"role"`
	Balance   float64 `json:"balance"`
	CreatedBy string  `json:"created_by"`
	PixKey    string  `json:"pix_key"`
}

// toUser translates the snake_case remote row to the internal shape.
func (r userRow) toUser() *domain.User {
	return &domain.User{
		Username:  r.Username,
		Password:  r.Password,
		Role:      r.Role,
		Balance:   r.Balance,
		CreatedBy: r.CreatedBy,
		PixKey:    r.PixKey,
	}
}

// LookupUser fetches the row matching username and password. A miss returns
// (nil, nil); transport and status failures return domain.ErrRemoteUnavailable.
func (c *Client) LookupUser(ctx context.Context, username, password string) (*domain.User, error) {
	q := url.Values{}
	q.Set("username", "eq."+username)
	q.Set("password", "eq."+password)
	q.Set("select", "*")
	endpoint := c.baseURL + "/rest/v1/users?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build lookup request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: lookup returned status %d", domain.ErrRemoteUnavailable, resp.StatusCode)
	}

	var rows []userRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("%w: decode lookup response: %v", domain.ErrRemoteUnavailable, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0].toUser(), nil
}
