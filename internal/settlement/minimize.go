package settlement

import (
	"fmt"
	"math"
	"sort"

	"github.com/wrosen/huddlebook/pkg/oddsmath"
)

// Balances within this distance of zero are considered discharged, and
// transfers below it are never emitted.
const centEpsilon = 0.01

type party struct {
	user string
	net  float64
}

// minimize turns final nets into a short list of pairwise transfers using
// greedy largest-creditor against largest-debtor matching. Emits at most
// min(|creditors|, |debtors|) transfers when conservation holds.
func minimize(nets map[string]float64) ([]Settlement, []string) {
	var creditors, debtors []party
	for user, net := range nets {
		switch {
		case net >= centEpsilon:
			creditors = append(creditors, party{user, net})
		case net <= -centEpsilon:
			debtors = append(debtors, party{user, net})
		}
	}

	// Largest balances first; name breaks ties so identical input always
	// yields identical output.
	sort.Slice(creditors, func(i, j int) bool {
		if creditors[i].net != creditors[j].net {
			return creditors[i].net > creditors[j].net
		}
		return creditors[i].user < creditors[j].user
	})
	sort.Slice(debtors, func(i, j int) bool {
		if debtors[i].net != debtors[j].net {
			return debtors[i].net < debtors[j].net
		}
		return debtors[i].user < debtors[j].user
	})

	var out []Settlement
	i, j := 0, 0
	for i < len(creditors) && j < len(debtors) {
		amt := oddsmath.RoundToCents(math.Min(creditors[i].net, -debtors[j].net))
		if amt >= centEpsilon {
			out = append(out, Settlement{From: debtors[j].user, To: creditors[i].user, Amount: amt})
		}
		creditors[i].net -= amt
		debtors[j].net += amt
		if creditors[i].net < centEpsilon {
			i++
		}
		if -debtors[j].net < centEpsilon {
			j++
		}
	}

	// Conservation should leave nothing behind; leftovers mean bad input
	// upstream (unknown participants, malformed records) and are reported
	// rather than silently dropped.
	var warnings []string
	for _, c := range creditors[i:] {
		if c.net >= centEpsilon {
			warnings = append(warnings, warnLeftover(c.user, c.net))
		}
	}
	for _, d := range debtors[j:] {
		if -d.net >= centEpsilon {
			warnings = append(warnings, warnLeftover(d.user, d.net))
		}
	}

	return out, warnings
}

func warnLeftover(user string, net float64) string {
	return fmt.Sprintf("unreconciled balance for %s: %.2f", user, net)
}
