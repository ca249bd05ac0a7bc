package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/wrosen/huddlebook/internal/bets/dto"
	"github.com/wrosen/huddlebook/internal/bets/repo"
	"github.com/wrosen/huddlebook/internal/resolver"
	"github.com/wrosen/huddlebook/internal/settlement"
)

func (s *Server) placeBet(w http.ResponseWriter, r *http.Request) {
	var req dto.PlaceBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	if msg := s.validatePlaceBet(&req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	betID, err := s.bets.Create(r.Context(), &repo.Bet{
		WeekendID:       req.WeekendID,
		Mode:            req.Mode,
		PlacedBy:        req.PlacedBy,
		Participants:    req.Participants,
		AmountPerPerson: req.AmountPerPerson,
		Odds:            req.Odds,
		Selection:       req.Selection,
	})
	if err != nil {
		s.log.Error("create bet", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "create bet failed")
		return
	}

	writeJSON(w, http.StatusCreated, dto.PlaceBetResponse{BetID: betID, Status: "active"})
}

func (s *Server) validatePlaceBet(req *dto.PlaceBetRequest) string {
	if !validWeekendID(req.WeekendID) {
		return "weekendId must look like 2025-week-3"
	}
	switch settlement.Mode(req.Mode) {
	case settlement.ModeGroup, settlement.ModeHeadToHead, settlement.ModeParlay:
	default:
		return "bettingMode must be group, head_to_head or parlay"
	}
	if req.AmountPerPerson <= 0 {
		return "amountPerPerson must be positive"
	}
	if req.Odds == 0 {
		return "odds of 0 are not a valid American line"
	}
	if len(req.Participants) == 0 {
		return "participants required"
	}
	if settlement.Mode(req.Mode) == settlement.ModeHeadToHead && len(req.Participants) != 2 {
		return "head_to_head needs exactly two participants"
	}
	if _, ok := s.roster[req.PlacedBy]; !ok {
		return "placedBy is not in the roster"
	}
	for _, u := range req.Participants {
		if _, ok := s.roster[u]; !ok {
			return "participant " + u + " is not in the roster"
		}
	}
	return ""
}

func (s *Server) getBet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	b, err := s.bets.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, toBetResponse(b))
}

func (s *Server) listBets(w http.ResponseWriter, r *http.Request) {
	weekendID := chi.URLParam(r, "weekendID")
	if !validWeekendID(weekendID) {
		writeError(w, http.StatusBadRequest, "invalid weekendId")
		return
	}

	bets, err := s.bets.ListByWeekend(r.Context(), weekendID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	out := make([]dto.BetResponse, 0, len(bets))
	for i := range bets {
		out = append(out, toBetResponse(&bets[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) resolveBet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.ResolveBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	b, err := s.resolver.Resolve(r.Context(), id, req.Status, r.Header.Get("X-User"))
	if err != nil {
		switch {
		case errors.Is(err, resolver.ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, repo.ErrNotFound):
			writeError(w, http.StatusNotFound, "not found")
		case errors.Is(err, repo.ErrAlreadyResolved):
			writeError(w, http.StatusConflict, "bet already resolved")
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.ResolveBetResponse{BetID: b.ID, Status: b.Status})
}

func toBetResponse(b *repo.Bet) dto.BetResponse {
	return dto.BetResponse{
		BetID:           b.ID,
		WeekendID:       b.WeekendID,
		Status:          b.Status,
		Mode:            b.Mode,
		PlacedBy:        b.PlacedBy,
		Participants:    b.Participants,
		AmountPerPerson: b.AmountPerPerson,
		TotalAmount:     b.TotalAmount,
		Odds:            b.Odds,
		Selection:       b.Selection,
	}
}
