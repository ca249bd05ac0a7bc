package settlement

import (
	"sort"
	"strings"
)

// reconcileHeadToHead nets out pairs of opposing head-to-head bets placed
// independently by two users on the same matchup, so one direct transfer
// replaces two trips through the group pool.
//
// Matching is a selection-text heuristic: each bet's free-text selection
// must mention the other bet's placer. There is no structural link between
// the two records today, so an unmatched bet simply keeps its per-side
// accounting from the accumulator.
func (l *ledger) reconcileHeadToHead(bets []Bet) {
	type pair struct{ loser, winner string }
	transfers := make(map[pair]float64)

	for _, a := range bets {
		if a.Mode != ModeHeadToHead || a.Status != StatusWon {
			continue
		}
		for _, b := range bets {
			if b.ID == a.ID || b.Mode != ModeHeadToHead || b.Status != StatusLost {
				continue
			}
			if !crossReferenced(a, b) {
				continue
			}
			transfers[pair{loser: b.PlacedBy, winner: a.PlacedBy}] += a.AmountPerPerson
		}
	}

	// Deterministic application order.
	pairs := make([]pair, 0, len(transfers))
	for p := range transfers {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].loser != pairs[j].loser {
			return pairs[i].loser < pairs[j].loser
		}
		return pairs[i].winner < pairs[j].winner
	})

	for _, p := range pairs {
		amt := transfers[p]
		if !l.known(p.loser) || !l.known(p.winner) {
			l.warnf("head-to-head reconciliation %s->%s: unknown user, transfer of %.2f dropped", p.loser, p.winner, amt)
			continue
		}
		l.net[p.loser] -= amt
		l.net[p.winner] += amt
	}
}

// crossReferenced reports whether each bet's selection text mentions the
// other bet's placer.
func crossReferenced(a, b Bet) bool {
	if a.PlacedBy == "" || b.PlacedBy == "" {
		return false
	}
	return strings.Contains(strings.ToLower(a.Selection), strings.ToLower(b.PlacedBy)) &&
		strings.Contains(strings.ToLower(b.Selection), strings.ToLower(a.PlacedBy))
}
