package services

import (
	"context"
	"sync/atomic"

	"github.com/dmitrijs2005/bankport/internal/client/api"
	"github.com/dmitrijs2005/bankport/internal/client/models"
	"github.com/dmitrijs2005/bankport/internal/common"
	"github.com/dmitrijs2005/bankport/internal/logging"
)

// WalletService owns the wallet screen's flows. Deposit and Withdraw share
// one in-flight guard: the portal has a single wallet form, so a second
// submit while one is pending is rejected client-side.
type WalletService interface {
	Snapshot(ctx context.Context) (*models.WalletSnapshot, error)
	Deposit(ctx context.Context, amount float64, description string) (*models.WalletSnapshot, error)
	Withdraw(ctx context.Context, amount float64, description string) (*models.WalletSnapshot, error)
}

type walletService struct {
	client   api.Client
	inFlight atomic.Bool
	log      logging.Logger
}

func NewWalletService(client api.Client, log logging.Logger) WalletService {
	return &walletService{client: client, log: log}
}

func (s *walletService) Snapshot(ctx context.Context) (*models.WalletSnapshot, error) {
	return s.client.Wallet(ctx)
}

func (s *walletService) Deposit(ctx context.Context, amount float64, description string) (*models.WalletSnapshot, error) {
	return s.submit(ctx, amount, s.client.Deposit, description)
}

func (s *walletService) Withdraw(ctx context.Context, amount float64, description string) (*models.WalletSnapshot, error) {
	return s.submit(ctx, amount, s.client.Withdraw, description)
}

// submit runs the shared mutate-then-reconcile sequence: local precondition,
// in-flight latch, mutation, unconditional snapshot re-fetch. The client
// never adjusts a balance itself; the re-fetched snapshot is the only truth.
func (s *walletService) submit(ctx context.Context, amount float64,
	mutate func(context.Context, float64, string) error, description string) (*models.WalletSnapshot, error) {

	if amount <= 0 {
		return nil, common.ErrInvalidAmount
	}

	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, common.ErrBusy
	}
	defer s.inFlight.Store(false)

	if err := mutate(ctx, amount, description); err != nil {
		return nil, err
	}

	snapshot, err := s.client.Wallet(ctx)
	if err != nil {
		// The mutation itself succeeded; a failed refresh only costs us the
		// updated figure, same as the original portal's fire-and-forget fetch.
		s.log.Warn(ctx, "wallet refresh after mutation failed", "error", err)
		return nil, nil
	}
	return snapshot, nil
}
