package cli

import (
	"context"
	"errors"
	"os"

	"github.com/dmitrijs2005/bankport/internal/client/models"
	"github.com/dmitrijs2005/bankport/internal/client/services"
	"github.com/dmitrijs2005/bankport/internal/common"
)

const investorCreditNotice = "Line of credit is only available for customer accounts. " +
	"Investors can view fund performance from the dashboard."

// creditAllowed mirrors the portal's screen gate: the credit pages are shown
// to customers and admins only. Display routing only — the server enforces
// the real rule on every call.
func (a *App) creditAllowed() bool {
	user, _ := a.session.User()
	if user == nil {
		return true
	}
	return user.Role == models.RoleCustomer || user.Role == models.RoleAdmin
}

// Credit fetches and displays a fresh credit-line snapshot.
func (a *App) Credit(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if !a.creditAllowed() {
		printlnFn(investorCreditNotice)
		return nil
	}

	c, err := a.credit.Snapshot(ctx)
	if err != nil {
		printlnFn(reasonOr(err, "No credit line found for your account."))
		return err
	}
	printCreditLine(c)
	return nil
}

// Draw runs the credit-draw flow. The displayed available amount is an
// advisory bound: exceeding it produces a warning but the request is still
// sent — the snapshot may be stale and the server is the authority.
func (a *App) Draw(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if !a.creditAllowed() {
		printlnFn(investorCreditNotice)
		return nil
	}

	current, err := a.credit.Snapshot(ctx)
	if err != nil {
		printlnFn(reasonOr(err, "No credit line found for your account."))
		return err
	}
	printCreditLine(current)

	raw, err := getSimpleText(a.reader, "Draw amount", os.Stdout)
	if err != nil {
		return err
	}

	amount, err := services.ParseAmount(raw)
	if err != nil {
		printlnFn("Please enter a valid amount")
		return err
	}

	if amount > current.AvailableAmount {
		printlnFn("Note: the requested amount exceeds your displayed available credit")
	}

	description, err := getSimpleText(a.reader, "Description (optional)", os.Stdout)
	if err != nil {
		return err
	}

	snapshot, err := a.credit.Draw(ctx, amount, description)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrBusy):
			printlnFn("Another operation is still in progress")
		case errors.Is(err, common.ErrInvalidAmount):
			printlnFn("Please enter a valid amount")
		default:
			printlnFn(reasonOr(err, "Draw failed"))
		}
		return err
	}

	printlnFn("Funds drawn successfully and added to your wallet!")
	if snapshot != nil {
		printCreditLine(snapshot)
	}
	return nil
}
