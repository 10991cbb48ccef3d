package models

// CreditLineStatusActive is the only status under which draws are accepted.
const CreditLineStatusActive = "active"

// CreditLineSnapshot is a point-in-time view of the user's line of credit.
// Same rule as WalletSnapshot: never mutated locally, always re-fetched.
type CreditLineSnapshot struct {
	ID              int64   `json:"id"`
	LimitAmount     float64 `json:"limit_amount"`
	UsedAmount      float64 `json:"used_amount"`
	AvailableAmount float64 `json:"available_amount"`
	Currency        string  `json:"currency"`
	Status          string  `json:"status"`
}
