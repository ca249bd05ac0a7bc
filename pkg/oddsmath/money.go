package oddsmath

import "math"

// RoundToCents rounds a dollar amount to two decimal places.
func RoundToCents(v float64) float64 {
	return math.Round(v*100) / 100
}
