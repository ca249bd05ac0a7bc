package settlement

// Status of a bet as set by the resolution flow. Only won/lost move money.
type Status string

const (
	StatusActive    Status = "active"
	StatusWon       Status = "won"
	StatusLost      Status = "lost"
	StatusCancelled Status = "cancelled"
	StatusUnknown   Status = "unknown"
)

// Resolved reports whether the status participates in settlement.
func (s Status) Resolved() bool { return s == StatusWon || s == StatusLost }

// Mode selects the accounting rule for a bet. Parlays settle like group bets.
type Mode string

const (
	ModeGroup      Mode = "group"
	ModeHeadToHead Mode = "head_to_head"
	ModeParlay     Mode = "parlay"
)

// Bet is the read-only record the engine folds over. Owned by the betting
// API; the engine never mutates it.
type Bet struct {
	ID              string   `json:"id"`
	WeekendID       string   `json:"weekendId"`
	Status          Status   `json:"status"`
	Mode            Mode     `json:"bettingMode"`
	PlacedBy        string   `json:"placedBy"`
	Participants    []string `json:"participants"`
	AmountPerPerson float64  `json:"amountPerPerson"`
	TotalAmount     float64  `json:"totalAmount"`
	Odds            int      `json:"odds"` // American format
	Selection       string   `json:"selection"`
}

// UserBalance is the per-user aggregate for one weekend.
// Net is positive when the user is owed money.
type UserBalance struct {
	Won  float64 `json:"won"`
	Lost float64 `json:"lost"`
	Net  float64 `json:"net"`
}

// Settlement is one directed payment instruction.
type Settlement struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

// Summary aggregates the run for display.
type Summary struct {
	TotalWon     float64 `json:"totalWon"`
	TotalLost    float64 `json:"totalLost"`
	TotalNet     float64 `json:"totalNet"`
	TotalBets    int     `json:"totalBets"`
	ResolvedBets int     `json:"resolvedBets"`
}

// Result is the full output of one settlement run. Recomputed from scratch
// on every invocation; identical input yields identical output.
type Result struct {
	WeekendID    string                 `json:"weekendId"`
	UserBalances map[string]UserBalance `json:"userBalances"`
	Settlements  []Settlement           `json:"settlements"`
	Summary      Summary                `json:"summary"`
	Warnings     []string               `json:"warnings,omitempty"`
}
