package settlement

import (
	"errors"
	"fmt"

	"github.com/wrosen/huddlebook/pkg/oddsmath"
)

// ledger tracks raw won/lost per roster user while folding over bets.
// Amounts stay unrounded here; rounding happens once at output.
type ledger struct {
	won      map[string]float64
	lost     map[string]float64
	net      map[string]float64
	roster   map[string]struct{}
	warnings []string
}

func newLedger(roster []string) *ledger {
	l := &ledger{
		won:    make(map[string]float64, len(roster)),
		lost:   make(map[string]float64, len(roster)),
		net:    make(map[string]float64, len(roster)),
		roster: make(map[string]struct{}, len(roster)),
	}
	for _, u := range roster {
		l.roster[u] = struct{}{}
		l.won[u] = 0
		l.lost[u] = 0
		l.net[u] = 0
	}
	return l
}

func (l *ledger) known(user string) bool {
	_, ok := l.roster[user]
	return ok
}

func (l *ledger) credit(user string, amount float64, betID string) {
	if !l.known(user) {
		l.warnf("bet %s: unknown participant %q, credit of %.2f dropped", betID, user, amount)
		return
	}
	l.won[user] += amount
	l.net[user] += amount
}

func (l *ledger) debit(user string, amount float64, betID string) {
	if !l.known(user) {
		l.warnf("bet %s: unknown participant %q, debit of %.2f dropped", betID, user, amount)
		return
	}
	l.lost[user] += amount
	l.net[user] -= amount
}

func (l *ledger) warnf(format string, args ...any) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}

// accumulate applies one resolved bet to the ledger. Malformed records are
// skipped with a warning; one bad bet never aborts the run.
func (l *ledger) accumulate(b Bet) {
	if !b.Status.Resolved() {
		return
	}
	if len(b.Participants) == 0 {
		l.warnf("bet %s: no participants, skipped", b.ID)
		return
	}
	if b.AmountPerPerson <= 0 {
		l.warnf("bet %s: non-positive amount %.2f, skipped", b.ID, b.AmountPerPerson)
		return
	}

	switch b.Mode {
	case ModeHeadToHead:
		l.accumulateHeadToHead(b)
	case ModeGroup, ModeParlay:
		l.accumulateGroup(b)
	default:
		l.warnf("bet %s: unknown betting mode %q, skipped", b.ID, b.Mode)
	}
}

// accumulateHeadToHead moves amountPerPerson between the two sides.
// The placer's own status field encodes who won: status=won means the placer
// won, status=lost means the placer lost and the other side collects. This
// convention is asymmetric on purpose; flipping it reverses all money flow.
func (l *ledger) accumulateHeadToHead(b Bet) {
	other := counterpart(b)
	if other == "" {
		l.warnf("bet %s: head-to-head without a counterpart participant, skipped", b.ID)
		return
	}

	winner, loser := b.PlacedBy, other
	if b.Status == StatusLost {
		winner, loser = other, b.PlacedBy
	}

	l.credit(winner, b.AmountPerPerson, b.ID)
	l.debit(loser, b.AmountPerPerson, b.ID)
}

// accumulateGroup treats the placer as the house for their own participants:
// on a win every participant collects the odds profit and the placer covers
// all of it; on a loss every stake flows to the placer. A placer who also
// participates is counted on both sides.
func (l *ledger) accumulateGroup(b Bet) {
	n := float64(len(b.Participants))

	switch b.Status {
	case StatusWon:
		p, err := oddsmath.ComputePayout(b.AmountPerPerson, b.Odds)
		if err != nil {
			if errors.Is(err, oddsmath.ErrInvalidOdds) {
				l.warnf("bet %s: invalid odds %d, skipped", b.ID, b.Odds)
				return
			}
			l.warnf("bet %s: payout: %v, skipped", b.ID, err)
			return
		}
		for _, u := range b.Participants {
			l.credit(u, p.Profit, b.ID)
		}
		l.debit(b.PlacedBy, p.Profit*n, b.ID)

	case StatusLost:
		for _, u := range b.Participants {
			l.debit(u, b.AmountPerPerson, b.ID)
		}
		l.credit(b.PlacedBy, b.AmountPerPerson*n, b.ID)
	}
}

// counterpart returns the first participant that is not the placer.
func counterpart(b Bet) string {
	for _, u := range b.Participants {
		if u != b.PlacedBy {
			return u
		}
	}
	return ""
}
