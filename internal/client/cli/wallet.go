package cli

import (
	"context"
	"errors"
	"os"

	"github.com/dmitrijs2005/bankport/internal/client/models"
	"github.com/dmitrijs2005/bankport/internal/client/services"
	"github.com/dmitrijs2005/bankport/internal/common"
)

// Wallet fetches and displays a fresh wallet snapshot.
func (a *App) Wallet(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	w, err := a.wallet.Snapshot(ctx)
	if err != nil {
		printlnFn(reasonOr(err, "Operation failed"))
		return err
	}
	printWallet(w)
	return nil
}

// Deposit runs the deposit flow: prompt, validate locally, submit, show the
// re-fetched balance.
func (a *App) Deposit(ctx context.Context) error {
	return a.moveMoney(ctx, "Deposit amount", "Deposit successful!", a.wallet.Deposit)
}

// Withdraw runs the withdrawal flow.
func (a *App) Withdraw(ctx context.Context) error {
	return a.moveMoney(ctx, "Withdrawal amount", "Withdrawal successful!", a.wallet.Withdraw)
}

// moveMoney is the shared deposit/withdraw interaction. An amount that fails
// local validation never reaches the network; a busy flow is reported without
// submitting a duplicate.
func (a *App) moveMoney(ctx context.Context, amountPrompt, successMsg string,
	submit func(context.Context, float64, string) (*models.WalletSnapshot, error)) error {

	if err := a.requireLogin(); err != nil {
		return err
	}

	raw, err := getSimpleText(a.reader, amountPrompt, os.Stdout)
	if err != nil {
		return err
	}

	amount, err := services.ParseAmount(raw)
	if err != nil {
		printlnFn("Please enter a valid amount")
		return err
	}

	description, err := getSimpleText(a.reader, "Description (optional)", os.Stdout)
	if err != nil {
		return err
	}

	snapshot, err := submit(ctx, amount, description)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrBusy):
			printlnFn("Another operation is still in progress")
		case errors.Is(err, common.ErrInvalidAmount):
			printlnFn("Please enter a valid amount")
		default:
			printlnFn(reasonOr(err, "Operation failed"))
		}
		return err
	}

	printlnFn(successMsg)
	if snapshot != nil {
		printWallet(snapshot)
	}
	return nil
}
