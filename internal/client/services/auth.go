// Package services contains the application flows of the banking portal
// client: authentication and the three money-movement flows (deposit,
// withdrawal, credit draw), each following the same shape — validate
// locally, submit through the gateway, re-fetch server truth.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bankport/internal/client/api"
	"github.com/dmitrijs2005/bankport/internal/client/models"
	"github.com/dmitrijs2005/bankport/internal/client/session"
	"github.com/dmitrijs2005/bankport/internal/logging"
)

// AuthService drives the session lifecycle against the portal.
//
// Contract:
//   - Login / Register: authenticate and install token+profile atomically.
//   - Validate: issue the startup who-am-I probe for a restored token.
//   - Logout: clear the session synchronously, no network round-trip.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) error
	Register(ctx context.Context, email string, password []byte, fullName string, role models.Role) error
	Validate(ctx context.Context) error
	Logout(ctx context.Context)
}

type authService struct {
	client  api.Client
	session *session.Store
	log     logging.Logger
}

func NewAuthService(client api.Client, store *session.Store, log logging.Logger) AuthService {
	return &authService{client: client, session: store, log: log}
}

func (a *authService) Login(ctx context.Context, email string, password []byte) error {
	res, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		return err
	}

	if err := a.session.Login(ctx, res.AccessToken, &res.User); err != nil {
		return fmt.Errorf("login succeeded but session could not be saved: %w", err)
	}
	return nil
}

func (a *authService) Register(ctx context.Context, email string, password []byte, fullName string, role models.Role) error {
	res, err := a.client.Register(ctx, api.RegisterRequest{
		Email:    email,
		Password: string(password),
		FullName: fullName,
		Role:     role,
	})
	if err != nil {
		return err
	}

	// The portal signs the new user in immediately, same as login.
	if err := a.session.Login(ctx, res.AccessToken, &res.User); err != nil {
		return fmt.Errorf("registration succeeded but session could not be saved: %w", err)
	}
	return nil
}

// Validate runs the startup probe for a token restored from the durable
// cache. At most one probe is issued per token value; with no unprobed token
// this is a no-op. Any probe failure clears the session entirely — a token
// the server will not confirm is worthless, as is the profile cached with it.
func (a *authService) Validate(ctx context.Context) error {
	_, ok := a.session.StartValidating()
	if !ok {
		return nil
	}

	user, err := a.client.Me(ctx)
	if err != nil {
		a.log.Warn(ctx, "stored session rejected", "error", err)
		a.session.ValidationFailed(ctx)
		return err
	}

	if err := a.session.ValidationSucceeded(ctx, user); err != nil {
		return err
	}
	a.log.Info(ctx, "session validated", "email", user.Email)
	return nil
}

func (a *authService) Logout(ctx context.Context) {
	a.session.Logout(ctx)
}
