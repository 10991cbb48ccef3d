package models

// WalletSnapshot is a point-in-time view of the user's wallet. The balance is
// server-authoritative: after any deposit or withdrawal the client re-fetches
// a new snapshot instead of adjusting this one.
type WalletSnapshot struct {
	ID       int64   `json:"id"`
	Balance  float64 `json:"balance"`
	Currency string  `json:"currency"`

	// AvailableCredit is present only when the user has an active credit line.
	AvailableCredit *float64 `json:"available_credit"`
}
