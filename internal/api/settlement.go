package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/wrosen/huddlebook/internal/shared/metrics"
)

// getSettlement serves the weekend ledger: the worker-maintained snapshot
// when one is fresh, otherwise a recompute straight from the bet set.
func (s *Server) getSettlement(w http.ResponseWriter, r *http.Request) {
	weekendID := chi.URLParam(r, "weekendID")
	if !validWeekendID(weekendID) {
		writeError(w, http.StatusBadRequest, "invalid weekendId")
		return
	}

	if res, ok, err := s.snapshot.Get(r.Context(), weekendID); err == nil && ok {
		writeJSON(w, http.StatusOK, res)
		return
	} else if err != nil {
		s.log.Warn("settlement snapshot read", zap.Error(err))
	}

	start := time.Now()
	res, err := s.engine.Settle(r.Context(), weekendID)
	if err != nil {
		metrics.SettlementRuns.WithLabelValues("error").Inc()
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	metrics.SettlementRuns.WithLabelValues("ok").Inc()
	metrics.SettlementDuration.Observe(time.Since(start).Seconds())

	if err := s.snapshot.Set(r.Context(), res); err != nil {
		s.log.Warn("settlement snapshot write", zap.Error(err))
	}

	writeJSON(w, http.StatusOK, res)
}
