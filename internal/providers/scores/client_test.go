package scores

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const scoreboardFixture = `{
  "season": {"year": 2025},
  "week": {"number": 3},
  "events": [
    {
      "id": "401547601",
      "date": "2025-09-21T17:00:00Z",
      "competitions": [{
        "competitors": [
          {"homeAway": "home", "score": "24", "team": {"abbreviation": "KC"}},
          {"homeAway": "away", "score": "17", "team": {"abbreviation": "DEN"}}
        ],
        "status": {"type": {"state": "post", "completed": true}}
      }]
    },
    {
      "id": "401547602",
      "date": "2025-09-21T20:25:00Z",
      "competitions": [{
        "competitors": [
          {"homeAway": "home", "score": "0", "team": {"abbreviation": "SF"}},
          {"homeAway": "away", "score": "0", "team": {"abbreviation": "SEA"}}
        ],
        "status": {"type": {"state": "pre", "completed": false}}
      }]
    }
  ]
}`

func TestFetchScoreboard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/scoreboard" {
			t.Errorf("path = %s, want /scoreboard", r.URL.Path)
		}
		_, _ = w.Write([]byte(scoreboardFixture))
	}))
	defer srv.Close()

	c := New(srv.URL)
	games, err := c.FetchScoreboard(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("games = %d, want 2", len(games))
	}

	final := games[0]
	if final.WeekendID != "2025-week-3" {
		t.Errorf("weekendId = %s, want 2025-week-3", final.WeekendID)
	}
	if final.HomeTeam != "KC" || final.AwayTeam != "DEN" {
		t.Errorf("teams = %s/%s, want KC/DEN", final.HomeTeam, final.AwayTeam)
	}
	if final.HomeScore != 24 || final.AwayScore != 17 {
		t.Errorf("score = %d-%d, want 24-17", final.HomeScore, final.AwayScore)
	}
	if final.State != "FINAL" {
		t.Errorf("state = %s, want FINAL", final.State)
	}

	if games[1].State != "SCHEDULED" {
		t.Errorf("state = %s, want SCHEDULED", games[1].State)
	}
}

func TestFetchScoreboardHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL)
	if _, err := c.FetchScoreboard(context.Background()); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}
