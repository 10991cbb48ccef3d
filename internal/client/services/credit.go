package services

import (
	"context"
	"sync/atomic"

	"github.com/dmitrijs2005/bankport/internal/client/api"
	"github.com/dmitrijs2005/bankport/internal/client/models"
	"github.com/dmitrijs2005/bankport/internal/common"
	"github.com/dmitrijs2005/bankport/internal/logging"
)

// CreditService owns the line-of-credit flows. The displayed available
// amount is an advisory bound only — the caller may warn when a draw exceeds
// it, but the request is still sent and the server decides.
type CreditService interface {
	Snapshot(ctx context.Context) (*models.CreditLineSnapshot, error)
	Draw(ctx context.Context, amount float64, description string) (*models.CreditLineSnapshot, error)
}

type creditService struct {
	client   api.Client
	inFlight atomic.Bool
	log      logging.Logger
}

func NewCreditService(client api.Client, log logging.Logger) CreditService {
	return &creditService{client: client, log: log}
}

func (s *creditService) Snapshot(ctx context.Context) (*models.CreditLineSnapshot, error) {
	return s.client.CreditLine(ctx)
}

// Draw submits a credit draw and re-fetches the credit line to reconcile.
// Local precondition is only amount > 0; limits are the server's call (the
// local snapshot may be stale, or drawn against concurrently elsewhere).
func (s *creditService) Draw(ctx context.Context, amount float64, description string) (*models.CreditLineSnapshot, error) {
	if amount <= 0 {
		return nil, common.ErrInvalidAmount
	}

	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, common.ErrBusy
	}
	defer s.inFlight.Store(false)

	if err := s.client.Draw(ctx, amount, description); err != nil {
		return nil, err
	}

	snapshot, err := s.client.CreditLine(ctx)
	if err != nil {
		s.log.Warn(ctx, "credit refresh after draw failed", "error", err)
		return nil, nil
	}
	return snapshot, nil
}
