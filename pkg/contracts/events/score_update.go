package events

// ScoreUpdate is published by the score poller every time a game snapshot
// changes state or score.
type ScoreUpdate struct {
	GameID    string `json:"game_id"`
	WeekendID string `json:"weekend_id"`
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	HomeScore int    `json:"home_score"`
	AwayScore int    `json:"away_score"`
	State     string `json:"state"` // SCHEDULED | IN_PROGRESS | FINAL
	TsUnixMs  int64  `json:"ts_unix_ms"`
}
