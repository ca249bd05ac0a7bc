package odds

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const sportKey = "americanfootball_nfl"

// Client fetches NFL lines from the odds provider.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// GameOdds carries the moneyline and total for one game, American format.
type GameOdds struct {
	ProviderID string  `json:"providerId"`
	HomeTeam   string  `json:"homeTeam"`
	AwayTeam   string  `json:"awayTeam"`
	HomeLine   int     `json:"homeLine"`
	AwayLine   int     `json:"awayLine"`
	Total      float64 `json:"total"`
	OverLine   int     `json:"overLine"`
	UnderLine  int     `json:"underLine"`
	Bookmaker  string  `json:"bookmaker"`
}

type oddsEvent struct {
	ID         string `json:"id"`
	HomeTeam   string `json:"home_team"`
	AwayTeam   string `json:"away_team"`
	Bookmakers []struct {
		Key     string `json:"key"`
		Markets []struct {
			Key      string `json:"key"` // h2h | totals
			Outcomes []struct {
				Name  string  `json:"name"`
				Price int     `json:"price"`
				Point float64 `json:"point"`
			} `json:"outcomes"`
		} `json:"markets"`
	} `json:"bookmakers"`
}

// FetchGameOdds returns current lines for every NFL game, first bookmaker
// wins per game.
func (c *Client) FetchGameOdds(ctx context.Context) ([]GameOdds, error) {
	u := fmt.Sprintf("%s/sports/%s/odds?apiKey=%s&regions=us&markets=h2h,totals&oddsFormat=american",
		c.baseURL, sportKey, url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch odds: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("odds http %s", resp.Status)
	}

	var events []oddsEvent
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("decode odds: %w", err)
	}

	out := make([]GameOdds, 0, len(events))
	for _, ev := range events {
		if len(ev.Bookmakers) == 0 {
			continue
		}
		bk := ev.Bookmakers[0]

		g := GameOdds{
			ProviderID: ev.ID,
			HomeTeam:   ev.HomeTeam,
			AwayTeam:   ev.AwayTeam,
			Bookmaker:  bk.Key,
		}
		for _, m := range bk.Markets {
			switch m.Key {
			case "h2h":
				for _, o := range m.Outcomes {
					if o.Name == ev.HomeTeam {
						g.HomeLine = o.Price
					} else {
						g.AwayLine = o.Price
					}
				}
			case "totals":
				for _, o := range m.Outcomes {
					g.Total = o.Point
					if o.Name == "Over" {
						g.OverLine = o.Price
					} else {
						g.UnderLine = o.Price
					}
				}
			}
		}
		out = append(out, g)
	}

	return out, nil
}
