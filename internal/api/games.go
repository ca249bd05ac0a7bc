package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/wrosen/huddlebook/internal/games/repo"
	"github.com/wrosen/huddlebook/internal/projector"
	"github.com/wrosen/huddlebook/internal/providers/odds"
	"github.com/wrosen/huddlebook/internal/shared/metrics"
)

func (s *Server) listGames(w http.ResponseWriter, r *http.Request) {
	weekendID := chi.URLParam(r, "weekendID")
	if !validWeekendID(weekendID) {
		writeError(w, http.StatusBadRequest, "invalid weekendId")
		return
	}

	var cached []repo.Game
	if ok, _ := s.gcache.GetScores(r.Context(), weekendID, &cached); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	games, err := s.games.ListByWeekend(r.Context(), weekendID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	_ = s.gcache.SetScores(r.Context(), weekendID, games)
	writeJSON(w, http.StatusOK, games)
}

// getOdds returns the current NFL lines, served from the TTL cache and
// refreshed from the provider on a miss.
func (s *Server) getOdds(w http.ResponseWriter, r *http.Request) {
	var cached []odds.GameOdds
	if ok, _ := s.gcache.GetOdds(r.Context(), "current", &cached); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	lines, err := s.odds.FetchGameOdds(r.Context())
	if err != nil {
		metrics.ProviderFetches.WithLabelValues("odds", "error").Inc()
		s.log.Error("fetch odds", zap.Error(err))
		writeError(w, http.StatusBadGateway, "odds provider unavailable")
		return
	}
	metrics.ProviderFetches.WithLabelValues("odds", "ok").Inc()

	_ = s.gcache.SetOdds(r.Context(), "current", lines)
	writeJSON(w, http.StatusOK, lines)
}

func (s *Server) searchMarkets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, "q required")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	markets, err := s.predmkt.Search(r.Context(), q, limit)
	if err != nil {
		metrics.ProviderFetches.WithLabelValues("predmkt", "error").Inc()
		s.log.Error("search markets", zap.Error(err))
		writeError(w, http.StatusBadGateway, "prediction-market provider unavailable")
		return
	}
	metrics.ProviderFetches.WithLabelValues("predmkt", "ok").Inc()

	writeJSON(w, http.StatusOK, markets)
}

func (s *Server) projectTotal(w http.ResponseWriter, r *http.Request) {
	var in projector.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if in.HomeAvgPoints <= 0 || in.AwayAvgPoints <= 0 {
		writeError(w, http.StatusBadRequest, "scoring averages required")
		return
	}

	writeJSON(w, http.StatusOK, projector.Project(in))
}
