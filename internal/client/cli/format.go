package cli

import (
	"fmt"

	"github.com/dmitrijs2005/bankport/internal/client/models"
)

// formatMoney renders an amount with its currency code, e.g. "1250.00 USD".
func formatMoney(amount float64, currency string) string {
	return fmt.Sprintf("%.2f %s", amount, currency)
}

// formatSigned renders a ledger amount with an explicit sign, the way the
// portal's history table shows direction.
func formatSigned(amount float64) string {
	if amount >= 0 {
		return fmt.Sprintf("+%.2f", amount)
	}
	return fmt.Sprintf("%.2f", amount)
}

func printWallet(w *models.WalletSnapshot) {
	printlnFn("Current balance:", formatMoney(w.Balance, w.Currency))
	if w.AvailableCredit != nil {
		printlnFn("Available credit:", formatMoney(*w.AvailableCredit, w.Currency))
	}
}

func printCreditLine(c *models.CreditLineSnapshot) {
	printlnFn("Credit limit:     ", formatMoney(c.LimitAmount, c.Currency))
	printlnFn("Used:             ", formatMoney(c.UsedAmount, c.Currency))
	printlnFn("Available to draw:", formatMoney(c.AvailableAmount, c.Currency))
	printlnFn("Status:", c.Status)
}
