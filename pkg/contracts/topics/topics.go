package topics

const (
	// Games
	ScoreUpdates = "score_updates"

	// Bets
	BetResolved = "bet_resolved"

	// DLQs
	BetResolvedDLQ = "bet_resolved_dlq"
)
