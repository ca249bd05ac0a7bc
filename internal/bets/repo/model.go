package repo

import "time"

// Bet is the record persisted in Postgres.
type Bet struct {
	ID              string
	WeekendID       string
	Status          string
	Mode            string
	PlacedBy        string
	Participants    []string
	AmountPerPerson float64
	TotalAmount     float64
	Odds            int
	Selection       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
