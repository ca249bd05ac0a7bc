package settlement

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/wrosen/huddlebook/pkg/oddsmath"
)

// BetSource is the read interface the engine needs from storage.
type BetSource interface {
	BetsForWeekend(ctx context.Context, weekendID string) ([]Bet, error)
}

// Engine computes the weekend ledger for a fixed roster of users. It holds
// no state between runs and performs no writes, so concurrent runs over the
// same weekend are safe.
type Engine struct {
	log    *zap.Logger
	source BetSource
	roster []string
}

func NewEngine(log *zap.Logger, source BetSource, roster []string) *Engine {
	r := make([]string, len(roster))
	copy(r, roster)
	return &Engine{log: log, source: source, roster: r}
}

// Settle loads the weekend's bets and computes balances and transfers.
// A storage failure aborts the run; there is no partial-data mode that is
// safe to report as financial truth.
func (e *Engine) Settle(ctx context.Context, weekendID string) (*Result, error) {
	bets, err := e.source.BetsForWeekend(ctx, weekendID)
	if err != nil {
		return nil, fmt.Errorf("load bets for %s: %w", weekendID, err)
	}

	res := Compute(weekendID, bets, e.roster)
	for _, w := range res.Warnings {
		e.log.Warn("settlement", zap.String("weekendId", weekendID), zap.String("warning", w))
	}
	return res, nil
}

// Compute is the pure settlement pipeline: accumulate balances, reconcile
// opposing head-to-head bets, minimize the remaining debts.
func Compute(weekendID string, bets []Bet, roster []string) *Result {
	l := newLedger(roster)

	resolved := 0
	for _, b := range bets {
		if b.Status.Resolved() {
			resolved++
		}
		l.accumulate(b)
	}

	l.reconcileHeadToHead(bets)

	settlements, leftovers := minimize(l.net)

	res := &Result{
		WeekendID:    weekendID,
		UserBalances: make(map[string]UserBalance, len(roster)),
		Settlements:  settlements,
		Warnings:     append(l.warnings, leftovers...),
	}

	// Round once at the edge; intermediate math stays exact.
	users := make([]string, 0, len(l.roster))
	for u := range l.roster {
		users = append(users, u)
	}
	sort.Strings(users)
	for _, u := range users {
		bal := UserBalance{
			Won:  oddsmath.RoundToCents(l.won[u]),
			Lost: oddsmath.RoundToCents(l.lost[u]),
			Net:  oddsmath.RoundToCents(l.net[u]),
		}
		res.UserBalances[u] = bal
		res.Summary.TotalWon += bal.Won
		res.Summary.TotalLost += bal.Lost
		res.Summary.TotalNet += bal.Net
	}
	res.Summary.TotalWon = oddsmath.RoundToCents(res.Summary.TotalWon)
	res.Summary.TotalLost = oddsmath.RoundToCents(res.Summary.TotalLost)
	res.Summary.TotalNet = oddsmath.RoundToCents(res.Summary.TotalNet)
	res.Summary.TotalBets = len(bets)
	res.Summary.ResolvedBets = resolved

	return res
}
