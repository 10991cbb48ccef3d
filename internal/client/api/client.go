// Package api implements the client's single outbound channel to the banking
// portal. Every request goes through one HTTPClient, which attaches the
// bearer credential, stamps a correlation ID, and watches every response for
// an authorization rejection.
package api

import (
	"context"

	"github.com/dmitrijs2005/bankport/internal/client/models"
)

// RegisterRequest is the payload for account creation. Role is optional;
// the server defaults it to customer.
type RegisterRequest struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	FullName string      `json:"full_name"`
	Role     models.Role `json:"role,omitempty"`
}

// Client is the portal API surface consumed by the services layer.
//
// Mutating calls (Deposit, Withdraw, Draw) intentionally return no body:
// the client treats every mutation as opaque and re-fetches the owning
// snapshot to learn its effect.
type Client interface {
	Register(ctx context.Context, req RegisterRequest) (*models.AuthResult, error)
	Login(ctx context.Context, email, password string) (*models.AuthResult, error)
	Me(ctx context.Context) (*models.UserProfile, error)

	Wallet(ctx context.Context) (*models.WalletSnapshot, error)
	Deposit(ctx context.Context, amount float64, description string) error
	Withdraw(ctx context.Context, amount float64, description string) error

	CreditLine(ctx context.Context) (*models.CreditLineSnapshot, error)
	Draw(ctx context.Context, amount float64, description string) error

	Transactions(ctx context.Context, limit, offset int) ([]models.TransactionRecord, error)
}
