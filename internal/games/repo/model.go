package repo

import "time"

// Game is the schedule/score snapshot persisted per NFL game.
type Game struct {
	ID         string
	ProviderID string
	WeekendID  string
	HomeTeam   string
	AwayTeam   string
	HomeScore  int
	AwayScore  int
	State      string // SCHEDULED | IN_PROGRESS | FINAL
	Kickoff    time.Time
	UpdatedAt  time.Time
}
