package models

import "time"

// TransactionType enumerates the ledger entry kinds the portal emits.
type TransactionType string

const (
	TransactionDeposit         TransactionType = "deposit"
	TransactionWithdrawal      TransactionType = "withdrawal"
	TransactionCreditDraw      TransactionType = "credit_draw"
	TransactionCreditRepayment TransactionType = "credit_repayment"
	TransactionTransferIn      TransactionType = "transfer_in"
	TransactionTransferOut     TransactionType = "transfer_out"
)

var transactionTypeLabels = map[TransactionType]string{
	TransactionDeposit:         "Deposit",
	TransactionWithdrawal:      "Withdrawal",
	TransactionCreditDraw:      "Credit Draw",
	TransactionCreditRepayment: "Credit Repayment",
	TransactionTransferIn:      "Transfer In",
	TransactionTransferOut:     "Transfer Out",
}

// Label returns the human-readable name for the type, falling back to the
// raw value for kinds this client does not know about yet.
func (t TransactionType) Label() string {
	if l, ok := transactionTypeLabels[t]; ok {
		return l
	}
	return string(t)
}

// TransactionRecord is one ledger entry. Amount is signed: the sign encodes
// direction (withdrawals arrive negative). The list is append-only from the
// client's viewpoint and keeps the server's ordering.
type TransactionRecord struct {
	ID           int64           `json:"id"`
	Amount       float64         `json:"amount"`
	Type         TransactionType `json:"type"`
	Description  *string         `json:"description"`
	BalanceAfter *float64        `json:"balance_after"`
	CreatedAt    time.Time       `json:"created_at"`
}
