package api

import (
	"encoding/json"
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	betsrepo "github.com/wrosen/huddlebook/internal/bets/repo"
	gamescache "github.com/wrosen/huddlebook/internal/games/cache"
	gamesrepo "github.com/wrosen/huddlebook/internal/games/repo"
	"github.com/wrosen/huddlebook/internal/providers/odds"
	"github.com/wrosen/huddlebook/internal/providers/predmkt"
	"github.com/wrosen/huddlebook/internal/resolver"
	"github.com/wrosen/huddlebook/internal/settlement"
	scache "github.com/wrosen/huddlebook/internal/settlement/cache"
)

// weekendIDPattern matches the scheduling key, ex: "2025-week-3".
var weekendIDPattern = regexp.MustCompile(`^\d{4}-week-\d{1,2}$`)

// Server exposes the betting, settlement and games REST surface.
type Server struct {
	log      *zap.Logger
	bets     *betsrepo.Postgres
	games    *gamesrepo.Postgres
	gcache   *gamescache.Cache
	snapshot *scache.Snapshot
	engine   *settlement.Engine
	resolver *resolver.Resolver
	odds     *odds.Client
	predmkt  *predmkt.Client
	roster   map[string]struct{}
}

func NewServer(
	log *zap.Logger,
	bets *betsrepo.Postgres,
	games *gamesrepo.Postgres,
	gcache *gamescache.Cache,
	snapshot *scache.Snapshot,
	engine *settlement.Engine,
	res *resolver.Resolver,
	oddsClient *odds.Client,
	predmktClient *predmkt.Client,
	roster []string,
) *Server {
	rs := make(map[string]struct{}, len(roster))
	for _, u := range roster {
		rs[u] = struct{}{}
	}
	return &Server{
		log:      log,
		bets:     bets,
		games:    games,
		gcache:   gcache,
		snapshot: snapshot,
		engine:   engine,
		resolver: res,
		odds:     oddsClient,
		predmkt:  predmktClient,
		roster:   rs,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Post("/v1/bets", s.placeBet)
	r.Get("/v1/bets/{id}", s.getBet)
	r.Post("/v1/bets/{id}/resolve", s.resolveBet)
	r.Get("/v1/weekends/{weekendID}/bets", s.listBets)
	r.Get("/v1/weekends/{weekendID}/settlement", s.getSettlement)
	r.Get("/v1/weekends/{weekendID}/games", s.listGames)
	r.Get("/v1/odds", s.getOdds)
	r.Get("/v1/markets", s.searchMarkets)
	r.Post("/v1/projections", s.projectTotal)
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func validWeekendID(id string) bool { return weekendIDPattern.MatchString(id) }
