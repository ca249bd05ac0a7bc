package dto

type PlaceBetRequest struct {
	WeekendID       string   `json:"weekendId"` // ex: "2025-week-3"
	Mode            string   `json:"bettingMode"`
	PlacedBy        string   `json:"placedBy"`
	Participants    []string `json:"participants"`
	AmountPerPerson float64  `json:"amountPerPerson"`
	Odds            int      `json:"odds"` // American format
	Selection       string   `json:"selection"`
}

type ResolveBetRequest struct {
	Status string `json:"status"` // won | lost | cancelled
}
