package odds

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const oddsFixture = `[
  {
    "id": "evt1",
    "home_team": "Kansas City Chiefs",
    "away_team": "Denver Broncos",
    "bookmakers": [{
      "key": "draftkings",
      "markets": [
        {"key": "h2h", "outcomes": [
          {"name": "Kansas City Chiefs", "price": -240},
          {"name": "Denver Broncos", "price": 195}
        ]},
        {"key": "totals", "outcomes": [
          {"name": "Over", "price": -110, "point": 44.5},
          {"name": "Under", "price": -110, "point": 44.5}
        ]}
      ]
    }]
  },
  {"id": "evt2", "home_team": "X", "away_team": "Y", "bookmakers": []}
]`

func TestFetchGameOdds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("apiKey"); got != "k" {
			t.Errorf("apiKey = %q, want k", got)
		}
		_, _ = w.Write([]byte(oddsFixture))
	}))
	defer srv.Close()

	c := New(srv.URL, "k")
	lines, err := c.FetchGameOdds(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("lines = %d, want 1 (bookmaker-less event skipped)", len(lines))
	}

	g := lines[0]
	if g.HomeLine != -240 || g.AwayLine != 195 {
		t.Errorf("moneyline = %d/%d, want -240/+195", g.HomeLine, g.AwayLine)
	}
	if g.Total != 44.5 || g.OverLine != -110 || g.UnderLine != -110 {
		t.Errorf("total = %.1f (%d/%d), want 44.5 (-110/-110)", g.Total, g.OverLine, g.UnderLine)
	}
	if g.Bookmaker != "draftkings" {
		t.Errorf("bookmaker = %s, want draftkings", g.Bookmaker)
	}
}
