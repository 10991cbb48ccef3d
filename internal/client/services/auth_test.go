package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/bankport/internal/client/api"
	"github.com/dmitrijs2005/bankport/internal/client/models"
	"github.com/dmitrijs2005/bankport/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/bankport/internal/client/session"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupSessionStore(t *testing.T) *session.Store {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE metadata (key TEXT PRIMARY KEY, value BLOB NOT NULL);`)
	require.NoError(t, err)

	store := session.NewStore(db, testLogger())
	require.NoError(t, store.Restore(context.Background()))
	return store
}

// authClient is a fake api.Client for the auth endpoints only.
type authClient struct {
	fakeClient

	loginRet *models.AuthResult
	loginErr error
	lastUser string
	lastPass string

	registerReq api.RegisterRequest
	registerRet *models.AuthResult
	registerErr error

	meCalls int
	meRet   *models.UserProfile
	meErr   error
}

func (f *authClient) Login(ctx context.Context, email, password string) (*models.AuthResult, error) {
	f.lastUser, f.lastPass = email, password
	return f.loginRet, f.loginErr
}

func (f *authClient) Register(ctx context.Context, req api.RegisterRequest) (*models.AuthResult, error) {
	f.registerReq = req
	return f.registerRet, f.registerErr
}

func (f *authClient) Me(ctx context.Context) (*models.UserProfile, error) {
	f.meCalls++
	return f.meRet, f.meErr
}

func authedResult() *models.AuthResult {
	return &models.AuthResult{
		AccessToken: "tok-abc",
		TokenType:   "bearer",
		User: models.UserProfile{
			ID: 1, Email: "a@b.com", FullName: "Alice", Role: models.RoleCustomer, IsActive: true,
		},
	}
}

func TestAuthLoginInstallsSession(t *testing.T) {
	ctx := context.Background()
	store := setupSessionStore(t)
	f := &authClient{loginRet: authedResult()}
	svc := NewAuthService(f, store, testLogger())

	require.NoError(t, svc.Login(ctx, "a@b.com", []byte("secret")))
	require.Equal(t, "a@b.com", f.lastUser)
	require.Equal(t, "secret", f.lastPass)

	require.True(t, store.IsAuthenticated())
	require.Equal(t, "tok-abc", store.Token())
	user, provisional := store.User()
	require.False(t, provisional)
	require.Equal(t, "Alice", user.FullName)
}

func TestAuthLoginFailureLeavesSessionAnonymous(t *testing.T) {
	ctx := context.Background()
	store := setupSessionStore(t)
	f := &authClient{loginErr: &api.Error{Status: 401, Reason: "Incorrect email or password"}}
	svc := NewAuthService(f, store, testLogger())

	err := svc.Login(ctx, "a@b.com", []byte("wrong"))
	require.Error(t, err)
	require.ErrorIs(t, err, api.ErrUnauthorized)
	require.Equal(t, "Incorrect email or password", api.Reason(err))
	require.False(t, store.IsAuthenticated())
	require.Empty(t, store.Token())
}

func TestAuthRegisterSignsIn(t *testing.T) {
	ctx := context.Background()
	store := setupSessionStore(t)
	f := &authClient{registerRet: authedResult()}
	svc := NewAuthService(f, store, testLogger())

	require.NoError(t, svc.Register(ctx, "a@b.com", []byte("secret"), "Alice", models.RoleInvestor))
	require.Equal(t, models.RoleInvestor, f.registerReq.Role)
	require.Equal(t, "Alice", f.registerReq.FullName)
	require.True(t, store.IsAuthenticated())
}

func TestValidateProbesOncePerToken(t *testing.T) {
	ctx := context.Background()
	store := setupSessionStore(t)
	require.NoError(t, store.Login(ctx, "tok-old", &models.UserProfile{ID: 1, Email: "a@b.com"}))

	f := &authClient{meRet: &models.UserProfile{ID: 1, Email: "a@b.com", FullName: "Alice"}}
	svc := NewAuthService(f, store, testLogger())

	// Token came from Login: already trusted, no probe.
	require.NoError(t, svc.Validate(ctx))
	require.Equal(t, 0, f.meCalls)
}

func TestValidateFailureClearsSession(t *testing.T) {
	ctx := context.Background()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE metadata (key TEXT PRIMARY KEY, value BLOB NOT NULL);`)
	require.NoError(t, err)

	repo := metadata.NewSQLiteRepository(db)
	require.NoError(t, repo.Set(ctx, "token", []byte("tok-stale")))

	store := session.NewStore(db, testLogger())
	require.NoError(t, store.Restore(ctx))
	require.True(t, store.Loading())

	f := &authClient{meErr: api.ErrUnauthorized}
	svc := NewAuthService(f, store, testLogger())

	require.Error(t, svc.Validate(ctx))
	require.Equal(t, 1, f.meCalls)
	require.False(t, store.IsAuthenticated())
	require.Empty(t, store.Token())
	require.False(t, store.Loading())

	// The probe already ran for this token; no second one.
	require.NoError(t, svc.Validate(ctx))
	require.Equal(t, 1, f.meCalls)
}

func TestValidateSuccessReplacesProfile(t *testing.T) {
	ctx := context.Background()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE metadata (key TEXT PRIMARY KEY, value BLOB NOT NULL);`)
	require.NoError(t, err)

	repo := metadata.NewSQLiteRepository(db)
	require.NoError(t, repo.Set(ctx, "token", []byte("tok-abc")))
	require.NoError(t, repo.Set(ctx, "user", []byte(`{"id":1,"email":"a@b.com","full_name":"Old Name","role":"customer","is_active":true}`)))

	store := session.NewStore(db, testLogger())
	require.NoError(t, store.Restore(ctx))

	f := &authClient{meRet: &models.UserProfile{ID: 1, Email: "a@b.com", FullName: "New Name", Role: models.RoleCustomer, IsActive: true}}
	svc := NewAuthService(f, store, testLogger())

	require.NoError(t, svc.Validate(ctx))
	require.True(t, store.IsAuthenticated())

	user, provisional := store.User()
	require.False(t, provisional)
	require.Equal(t, "New Name", user.FullName)
}
