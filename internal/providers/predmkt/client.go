package predmkt

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Client queries the prediction-market provider for game-outcome markets.
// Read-only; prices are surfaced for display next to sportsbook lines.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Market is one tradable outcome market and its last prices.
type Market struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Slug     string   `json:"slug"`
	Outcomes []string `json:"outcomes"`
	Prices   []string `json:"outcomePrices"`
	Volume   string   `json:"volume"`
	Active   bool     `json:"active"`
}

// Search returns active markets matching the free-text query, newest first.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Market, error) {
	if limit <= 0 {
		limit = 10
	}
	u := fmt.Sprintf("%s/markets?active=true&closed=false&limit=%d&order=startDate&ascending=false&tag=%s",
		c.baseURL, limit, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch markets: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("markets http %s", resp.Status)
	}

	var out []Market
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode markets: %w", err)
	}
	return out, nil
}
