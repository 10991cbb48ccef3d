package cli

import (
	"context"
	"fmt"
	"time"
)

// History lists the most recent ledger entries in the server's order.
func (a *App) History(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	records, err := a.history.List(ctx, a.config.HistoryPageSize, 0)
	if err != nil {
		printlnFn(reasonOr(err, "Operation failed"))
		return err
	}

	if len(records) == 0 {
		printlnFn("No transactions yet")
		return nil
	}

	for _, tx := range records {
		description := "-"
		if tx.Description != nil && *tx.Description != "" {
			description = *tx.Description
		}
		printlnFn(fmt.Sprintf("%s  %-16s %10s  %s",
			tx.CreatedAt.Local().Format(time.DateTime),
			tx.Type.Label(),
			formatSigned(tx.Amount),
			description,
		))
	}
	return nil
}
