// Package models contains the data types exchanged with the banking portal
// API. All types mirror the server's JSON casing exactly; the client never
// mutates them locally, it only replaces whole values with fresh server
// responses.
package models

// Role is the account role assigned by the portal.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleInvestor Role = "investor"
	RoleAdmin    Role = "admin"
)

// UserProfile is the authenticated user's profile as reported by the server.
// Immutable on the client: only a fresh server response replaces it.
type UserProfile struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     Role   `json:"role"`
	IsActive bool   `json:"is_active"`
}

// AuthResult is the payload returned by both login and register: the access
// token and the profile it belongs to, issued together.
type AuthResult struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        UserProfile `json:"user"`
}
