package projector

import "github.com/wrosen/huddlebook/pkg/oddsmath"

// Input carries everything the projector looks at for one game. Scoring
// averages come from the season to date; the rest describes the matchup.
type Input struct {
	HomeTeam string
	AwayTeam string

	HomeAvgPoints float64
	AwayAvgPoints float64

	HomeRestDays int
	AwayRestDays int
	HomeOffBye   bool
	AwayOffBye   bool

	TravelMiles float64 // away team's trip
	AltitudeFt  float64 // venue elevation

	Dome       bool
	Divisional bool
	Primetime  bool
}

// Factor is one named adjustment applied on top of the base projection.
type Factor struct {
	Name  string  `json:"name"`
	Delta float64 `json:"delta"`
}

// Projection is the projected combined score with its breakdown.
type Projection struct {
	HomeTeam string   `json:"homeTeam"`
	AwayTeam string   `json:"awayTeam"`
	Base     float64  `json:"base"`
	Total    float64  `json:"total"`
	Factors  []Factor `json:"factors"`
}

// Tuned by eyeballing a few seasons of box scores, not by any fit.
const (
	byeBoost        = 1.5  // extra week to prepare and heal
	shortRestPen    = -2.5 // Thursday-style turnarounds drag offenses down
	longTravelPen   = -2.0 // 1500+ mile trips
	crossCountryPen = -3.0 // 2500+ mile trips
	altitudePen     = -1.5 // thin air above ~4000ft for the visitor
	domeBoost       = 2.0  // no weather
	divisionalPen   = -1.5 // familiarity keeps these close and low
	primetimePen    = -1.0
	floorTotal      = 30.0
)

// Project estimates the combined points for a matchup: the two scoring
// averages plus a stack of ad-hoc adjustments, floored so a pile of
// penalties cannot produce an absurd total.
func Project(in Input) Projection {
	base := in.HomeAvgPoints + in.AwayAvgPoints
	total := base

	var factors []Factor
	add := func(name string, delta float64) {
		if delta == 0 {
			return
		}
		factors = append(factors, Factor{Name: name, Delta: delta})
		total += delta
	}

	if in.HomeOffBye {
		add("home off bye", byeBoost)
	}
	if in.AwayOffBye {
		add("away off bye", byeBoost)
	}

	if in.HomeRestDays > 0 && in.HomeRestDays <= 4 {
		add("home short rest", shortRestPen)
	}
	if in.AwayRestDays > 0 && in.AwayRestDays <= 4 {
		add("away short rest", shortRestPen)
	}

	switch {
	case in.TravelMiles >= 2500:
		add("cross-country travel", crossCountryPen)
	case in.TravelMiles >= 1500:
		add("long travel", longTravelPen)
	}

	if in.AltitudeFt >= 4000 {
		add("altitude", altitudePen)
	}

	if in.Dome {
		add("dome", domeBoost)
	}
	if in.Divisional {
		add("divisional", divisionalPen)
	}
	if in.Primetime {
		add("primetime", primetimePen)
	}

	if total < floorTotal {
		total = floorTotal
	}

	return Projection{
		HomeTeam: in.HomeTeam,
		AwayTeam: in.AwayTeam,
		Base:     oddsmath.RoundToCents(base),
		Total:    oddsmath.RoundToCents(total),
		Factors:  factors,
	}
}
