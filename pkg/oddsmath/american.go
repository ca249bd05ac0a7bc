package oddsmath

import (
	"errors"
	"math"
)

// ErrInvalidOdds is returned for odds of exactly 0, which the American
// format does not define.
var ErrInvalidOdds = errors.New("invalid American odds: cannot be 0")

// Payout is the result of staking an amount at a given American line.
type Payout struct {
	Profit float64
	Total  float64 // stake + profit
}

// ComputePayout converts (stake, American odds) into profit and total return.
// Positive odds pay stake*odds/100 (underdog); negative odds pay
// stake*100/|odds| (favorite).
func ComputePayout(stake float64, american int) (Payout, error) {
	if american == 0 {
		return Payout{}, ErrInvalidOdds
	}

	var profit float64
	if american > 0 {
		profit = stake * float64(american) / 100.0
	} else {
		profit = stake * 100.0 / float64(-american)
	}

	return Payout{Profit: profit, Total: stake + profit}, nil
}

// AmericanToDecimal converts American odds to decimal odds.
// American +150 → Decimal 2.50
// American -150 → Decimal 1.67
func AmericanToDecimal(american int) (float64, error) {
	if american == 0 {
		return 0, ErrInvalidOdds
	}

	if american > 0 {
		return (float64(american) / 100.0) + 1.0, nil
	}

	return (100.0 / float64(-american)) + 1.0, nil
}

// DecimalToAmerican converts decimal odds to American odds.
// Decimal 2.50 → American +150
// Decimal 1.67 → American -150
func DecimalToAmerican(decimal float64) (int, error) {
	if decimal < 1.0 {
		return 0, errors.New("invalid decimal odds: must be >= 1.0")
	}

	if decimal >= 2.0 {
		return int(math.Round((decimal - 1.0) * 100.0)), nil
	}

	return int(math.Round(-100.0 / (decimal - 1.0))), nil
}

// AmericanToImpliedProbability converts American odds to the probability the
// line implies (vig included).
// American +100 → 0.50
func AmericanToImpliedProbability(american int) (float64, error) {
	decimal, err := AmericanToDecimal(american)
	if err != nil {
		return 0, err
	}

	return 1.0 / decimal, nil
}
