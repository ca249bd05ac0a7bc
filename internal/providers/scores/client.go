package scores

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Client fetches the NFL scoreboard from the schedule/score provider.
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

// Game is one scoreboard entry, already flattened from the provider shape.
type Game struct {
	ProviderID string
	WeekendID  string
	HomeTeam   string
	AwayTeam   string
	HomeScore  int
	AwayScore  int
	State      string // SCHEDULED | IN_PROGRESS | FINAL
	Kickoff    time.Time
}

// scoreboard mirrors the provider's JSON, events > competitions > competitors.
type scoreboard struct {
	Season struct {
		Year int `json:"year"`
	} `json:"season"`
	Week struct {
		Number int `json:"number"`
	} `json:"week"`
	Events []struct {
		ID           string `json:"id"`
		Date         string `json:"date"`
		Competitions []struct {
			Competitors []struct {
				HomeAway string `json:"homeAway"`
				Score    string `json:"score"`
				Team     struct {
					Abbreviation string `json:"abbreviation"`
				} `json:"team"`
			} `json:"competitors"`
			Status struct {
				Type struct {
					State     string `json:"state"` // pre | in | post
					Completed bool   `json:"completed"`
				} `json:"type"`
			} `json:"status"`
		} `json:"competitions"`
	} `json:"events"`
}

// FetchScoreboard returns the current week's games.
func (c *Client) FetchScoreboard(ctx context.Context) ([]Game, error) {
	url := c.baseURL + "/scoreboard"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch scoreboard: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scoreboard http %s", resp.Status)
	}

	var sb scoreboard
	if err := json.NewDecoder(resp.Body).Decode(&sb); err != nil {
		return nil, fmt.Errorf("decode scoreboard: %w", err)
	}

	weekendID := fmt.Sprintf("%d-week-%d", sb.Season.Year, sb.Week.Number)

	var out []Game
	for _, ev := range sb.Events {
		if len(ev.Competitions) == 0 {
			continue
		}
		comp := ev.Competitions[0]

		g := Game{ProviderID: ev.ID, WeekendID: weekendID}
		if t, err := time.Parse(time.RFC3339, ev.Date); err == nil {
			g.Kickoff = t
		}
		for _, ct := range comp.Competitors {
			score, _ := strconv.Atoi(ct.Score)
			if ct.HomeAway == "home" {
				g.HomeTeam = ct.Team.Abbreviation
				g.HomeScore = score
			} else {
				g.AwayTeam = ct.Team.Abbreviation
				g.AwayScore = score
			}
		}
		switch {
		case comp.Status.Type.Completed:
			g.State = "FINAL"
		case comp.Status.Type.State == "in":
			g.State = "IN_PROGRESS"
		default:
			g.State = "SCHEDULED"
		}
		out = append(out, g)
	}

	return out, nil
}
