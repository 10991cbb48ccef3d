package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/bankport/internal/client/api"
	"github.com/dmitrijs2005/bankport/internal/client/models"
	"github.com/dmitrijs2005/bankport/internal/common"
	"github.com/dmitrijs2005/bankport/internal/logging"
	"github.com/stretchr/testify/require"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
}

// fakeClient implements api.Client and records every call.
type fakeClient struct {
	mu sync.Mutex

	walletCalls  int
	walletRet    *models.WalletSnapshot
	walletErr    error
	depositCalls int
	depositErr   error
	// depositGate, when non-nil, blocks Deposit until closed. Used to hold a
	// submission in flight while testing the duplicate-submit guard.
	depositGate chan struct{}

	withdrawCalls int
	withdrawErr   error

	creditCalls int
	creditRet   *models.CreditLineSnapshot
	creditErr   error
	drawCalls   int
	drawErr     error

	txCalls      int
	txLastLimit  int
	txLastOffset int
	txRet        []models.TransactionRecord

	lastAmount      float64
	lastDescription string
}

func (f *fakeClient) Register(ctx context.Context, req api.RegisterRequest) (*models.AuthResult, error) {
	return nil, errors.New("not used")
}
func (f *fakeClient) Login(ctx context.Context, email, password string) (*models.AuthResult, error) {
	return nil, errors.New("not used")
}
func (f *fakeClient) Me(ctx context.Context) (*models.UserProfile, error) {
	return nil, errors.New("not used")
}

func (f *fakeClient) Wallet(ctx context.Context) (*models.WalletSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.walletCalls++
	return f.walletRet, f.walletErr
}

func (f *fakeClient) Deposit(ctx context.Context, amount float64, description string) error {
	f.mu.Lock()
	f.depositCalls++
	f.lastAmount, f.lastDescription = amount, description
	gate := f.depositGate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return f.depositErr
}

func (f *fakeClient) Withdraw(ctx context.Context, amount float64, description string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.withdrawCalls++
	f.lastAmount, f.lastDescription = amount, description
	return f.withdrawErr
}

func (f *fakeClient) CreditLine(ctx context.Context) (*models.CreditLineSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creditCalls++
	return f.creditRet, f.creditErr
}

func (f *fakeClient) Draw(ctx context.Context, amount float64, description string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.drawCalls++
	f.lastAmount, f.lastDescription = amount, description
	return f.drawErr
}

func (f *fakeClient) Transactions(ctx context.Context, limit, offset int) ([]models.TransactionRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.txCalls++
	f.txLastLimit, f.txLastOffset = limit, offset
	return f.txRet, nil
}

func (f *fakeClient) networkCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.walletCalls + f.depositCalls + f.withdrawCalls + f.creditCalls + f.drawCalls + f.txCalls
}

// ---- amount parsing ----

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
		ok    bool
	}{
		{"integer", "100", 100, true},
		{"decimal", "10.50", 10.5, true},
		{"padded", "  5 ", 5, true},
		{"negative", "-5", 0, false},
		{"zero", "0", 0, false},
		{"garbage", "abc", 0, false},
		{"empty", "", 0, false},
		{"nan", "NaN", 0, false},
		{"inf", "Inf", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if !tt.ok {
				require.ErrorIs(t, err, common.ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

// ---- wallet flow ----

func TestDepositInvalidAmountNeverReachesNetwork(t *testing.T) {
	f := &fakeClient{}
	s := NewWalletService(f, testLogger())

	_, err := s.Deposit(context.Background(), -5, "")
	require.ErrorIs(t, err, common.ErrInvalidAmount)
	require.Equal(t, 0, f.networkCalls())

	_, err = s.Deposit(context.Background(), 0, "")
	require.ErrorIs(t, err, common.ErrInvalidAmount)
	require.Equal(t, 0, f.networkCalls())
}

func TestDepositRefetchesSnapshotExactlyOnce(t *testing.T) {
	f := &fakeClient{walletRet: &models.WalletSnapshot{ID: 1, Balance: 110, Currency: "USD"}}
	s := NewWalletService(f, testLogger())

	snapshot, err := s.Deposit(context.Background(), 10, "wire transfer")
	require.NoError(t, err)
	require.Equal(t, 1, f.depositCalls)
	require.Equal(t, 1, f.walletCalls)
	require.Equal(t, 10.0, f.lastAmount)
	require.Equal(t, "wire transfer", f.lastDescription)

	// The returned balance is the server's, not a local adjustment.
	require.Equal(t, 110.0, snapshot.Balance)
}

func TestWithdrawRejectionSkipsRefetch(t *testing.T) {
	f := &fakeClient{withdrawErr: &api.Error{Status: 400, Reason: "Insufficient balance"}}
	s := NewWalletService(f, testLogger())

	_, err := s.Withdraw(context.Background(), 1000, "")
	require.Error(t, err)
	require.Equal(t, "Insufficient balance", api.Reason(err))
	require.Equal(t, 0, f.walletCalls, "a failed mutation must not trigger reconciliation")
}

func TestDepositRefetchFailureStillSucceeds(t *testing.T) {
	f := &fakeClient{walletErr: api.ErrUnavailable}
	s := NewWalletService(f, testLogger())

	snapshot, err := s.Deposit(context.Background(), 10, "")
	require.NoError(t, err)
	require.Nil(t, snapshot)
}

func TestConcurrentSubmitRejected(t *testing.T) {
	gate := make(chan struct{})
	f := &fakeClient{depositGate: gate, walletRet: &models.WalletSnapshot{}}
	s := NewWalletService(f, testLogger())

	done := make(chan error, 1)
	go func() {
		_, err := s.Deposit(context.Background(), 10, "")
		done <- err
	}()

	// Wait until the first submission is inside the client call.
	require.Eventually(t, func() bool {
		f.mu.Lock()
		defer f.mu.Unlock()
		return f.depositCalls == 1
	}, 2*time.Second, 10*time.Millisecond)

	_, err := s.Withdraw(context.Background(), 5, "")
	require.ErrorIs(t, err, common.ErrBusy)
	require.Equal(t, 0, f.withdrawCalls)

	close(gate)
	require.NoError(t, <-done)

	// Guard released: the flow is re-submittable.
	_, err = s.Withdraw(context.Background(), 5, "")
	require.NoError(t, err)
}

// ---- credit flow ----

func TestDrawAboveDisplayedAvailableIsStillSent(t *testing.T) {
	// Scenario: displayed available is 300, user draws 500. The client bound
	// is advisory; the server rejects and its reason is surfaced verbatim.
	f := &fakeClient{
		creditRet: &models.CreditLineSnapshot{ID: 1, AvailableAmount: 300, Currency: "USD", Status: models.CreditLineStatusActive},
		drawErr:   &api.Error{Status: 400, Reason: "insufficient available credit"},
	}
	s := NewCreditService(f, testLogger())

	before, err := s.Snapshot(context.Background())
	require.NoError(t, err)

	_, err = s.Draw(context.Background(), 500, "")
	require.Error(t, err)
	require.Equal(t, 1, f.drawCalls, "advisory bound must not block the request")
	require.Equal(t, "insufficient available credit", api.Reason(err))

	// No local mutation of the snapshot we fetched earlier.
	require.Equal(t, 300.0, before.AvailableAmount)
}

func TestDrawSuccessReconciles(t *testing.T) {
	f := &fakeClient{
		creditRet: &models.CreditLineSnapshot{ID: 1, UsedAmount: 500, AvailableAmount: 4500, Currency: "USD"},
	}
	s := NewCreditService(f, testLogger())

	snapshot, err := s.Draw(context.Background(), 500, "working capital")
	require.NoError(t, err)
	require.Equal(t, 1, f.drawCalls)
	require.Equal(t, 1, f.creditCalls)
	require.Equal(t, 4500.0, snapshot.AvailableAmount)
}

func TestDrawInvalidAmountNeverReachesNetwork(t *testing.T) {
	f := &fakeClient{}
	s := NewCreditService(f, testLogger())

	_, err := s.Draw(context.Background(), 0, "")
	require.ErrorIs(t, err, common.ErrInvalidAmount)
	require.Equal(t, 0, f.networkCalls())
}

// ---- transactions ----

func TestTransactionListDefaults(t *testing.T) {
	f := &fakeClient{}
	s := NewTransactionService(f)

	_, err := s.List(context.Background(), 0, -3)
	require.NoError(t, err)
	require.Equal(t, DefaultHistoryLimit, f.txLastLimit)
	require.Equal(t, 0, f.txLastOffset)

	_, err = s.List(context.Background(), 25, 50)
	require.NoError(t, err)
	require.Equal(t, 25, f.txLastLimit)
	require.Equal(t, 50, f.txLastOffset)
}
