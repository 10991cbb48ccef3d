package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/bankport/internal/client/api"
	"github.com/dmitrijs2005/bankport/internal/client/models"
	"github.com/dmitrijs2005/bankport/internal/client/session"
	"github.com/dmitrijs2005/bankport/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// reasonOr renders a flow error for the user: the server-provided reason
// verbatim when present, the per-action fallback otherwise.
func reasonOr(err error, fallback string) string {
	if reason := api.Reason(err); reason != "" {
		return reason
	}
	return fallback
}

// Login prompts for credentials and authenticates against the portal. On
// success the session becomes authenticated and both token and profile are
// persisted durably. Server rejections are shown verbatim when a reason is
// available, otherwise as "Login failed".
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Login(ctx, email, password); err != nil {
		printlnFn(reasonOr(err, "Login failed"))
		return err
	}

	user, _ := a.session.User()
	printlnFn(fmt.Sprintf("Welcome, %s!", user.FullName))
	return nil
}

// Register prompts for the registration form fields (email, password, full
// name, optional role) and creates the account. The portal signs the new
// user in immediately.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	fullName, err := getSimpleText(a.reader, "Enter full name", os.Stdout)
	if err != nil {
		return err
	}

	roleInput, err := getSimpleText(a.reader, "Account type: customer or investor (default customer)", os.Stdout)
	if err != nil {
		return err
	}

	var role models.Role
	switch roleInput {
	case "", string(models.RoleCustomer):
		role = models.RoleCustomer
	case string(models.RoleInvestor):
		role = models.RoleInvestor
	default:
		printlnFn("Account type must be customer or investor")
		return nil
	}

	if err := a.auth.Register(ctx, email, password, fullName, role); err != nil {
		printlnFn(reasonOr(err, "Registration failed"))
		return err
	}

	printlnFn("Success!")
	return nil
}

// Logout clears the session and durable cache synchronously.
func (a *App) Logout(ctx context.Context) error {
	a.auth.Logout(ctx)
	printlnFn("Logged out")
	return nil
}

// WhoAmI shows the current profile. A provisional profile (hydrated from
// cache, not validated this run) is marked as such.
func (a *App) WhoAmI(ctx context.Context) error {
	user, provisional := a.session.User()
	if user == nil {
		printlnFn("Not logged in")
		return nil
	}

	printlnFn(fmt.Sprintf("%s <%s>", user.FullName, user.Email))
	printlnFn(fmt.Sprintf("Role: %s  Active: %t", user.Role, user.IsActive))
	if provisional {
		printlnFn("(cached profile, not validated this session)")
	}

	if token := a.session.Token(); token != "" {
		if exp, err := session.TokenExpiry(token); err == nil {
			printlnFn("Session expires:", exp.Local().Format(time.RFC1123))
		}
	}
	return nil
}
