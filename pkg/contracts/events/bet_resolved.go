package events

// BetResolved is published whenever a bet leaves the active state. The
// settlement worker consumes it to refresh the weekend's cached ledger.
type BetResolved struct {
	BetID     string `json:"bet_id"`
	WeekendID string `json:"weekend_id"`
	Status    string `json:"status"` // won | lost | cancelled
	Resolver  string `json:"resolver,omitempty"`
	TsUnixMs  int64  `json:"ts_unix_ms"`
}
