package dto

type PlaceBetResponse struct {
	BetID  string `json:"betId"`
	Status string `json:"status"` // active
}

type BetResponse struct {
	BetID           string   `json:"betId"`
	WeekendID       string   `json:"weekendId"`
	Status          string   `json:"status"`
	Mode            string   `json:"bettingMode"`
	PlacedBy        string   `json:"placedBy"`
	Participants    []string `json:"participants"`
	AmountPerPerson float64  `json:"amountPerPerson"`
	TotalAmount     float64  `json:"totalAmount"`
	Odds            int      `json:"odds"`
	Selection       string   `json:"selection"`
}

type ResolveBetResponse struct {
	BetID  string `json:"betId"`
	Status string `json:"status"`
}
