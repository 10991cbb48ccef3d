package services

import (
	"context"

	"github.com/dmitrijs2005/bankport/internal/client/api"
	"github.com/dmitrijs2005/bankport/internal/client/models"
)

// DefaultHistoryLimit matches the portal's transaction page size.
const DefaultHistoryLimit = 100

// TransactionService reads the ledger. The server's ordering (newest first)
// is kept as-is; the client never resequences.
type TransactionService interface {
	List(ctx context.Context, limit, offset int) ([]models.TransactionRecord, error)
}

type transactionService struct {
	client api.Client
}

func NewTransactionService(client api.Client) TransactionService {
	return &transactionService{client: client}
}

func (s *transactionService) List(ctx context.Context, limit, offset int) ([]models.TransactionRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.client.Transactions(ctx, limit, offset)
}
