// Package session holds the client's belief about who is authenticated and
// with what credential. All mutation goes through the named transitions below
// (Restore, Login, Logout, StartValidating, ValidationSucceeded,
// ValidationFailed, Clear); nothing else may touch the token.
//
// State machine: Unknown → Validating → {Authenticated, Anonymous}.
// A durable token from a prior run starts the store in Unknown until the
// who-am-I probe confirms or rejects it.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/bankport/internal/client/models"
	"github.com/dmitrijs2005/bankport/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/bankport/internal/common"
	"github.com/dmitrijs2005/bankport/internal/dbx"
	"github.com/dmitrijs2005/bankport/internal/logging"
)

type State string

const (
	StateUnknown       State = "unknown"
	StateValidating    State = "validating"
	StateAuthenticated State = "authenticated"
	StateAnonymous     State = "anonymous"
)

// Durable cache keys. The values survive restarts and are wiped on logout
// and on any authorization rejection.
const (
	cacheKeyToken = "token"
	cacheKeyUser  = "user"
)

// Store is the process-wide session state. A mutex serializes every
// transition; flows read through accessors and never hold references into
// the store's internals.
type Store struct {
	mu sync.Mutex

	state State
	token string
	user  *models.UserProfile

	// provisional marks a profile hydrated from the cache without server
	// validation. It may be displayed but must never gate actions.
	provisional bool

	// probedToken is the last token a who-am-I probe was issued for.
	// Exactly one probe runs per token value.
	probedToken string

	db  *sql.DB
	log logging.Logger
}

func NewStore(db *sql.DB, log logging.Logger) *Store {
	return &Store{state: StateUnknown, db: db, log: log}
}

func (s *Store) repo() metadata.Repository {
	return metadata.NewSQLiteRepository(s.db)
}

// Restore hydrates the store from the durable cache. With a cached token the
// store stays in Unknown, pending validation. Without one, a cached profile
// (if any) is surfaced as provisional and the store goes Anonymous.
func (s *Store) Restore(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cache := s.repo()

	token, err := cache.Get(ctx, cacheKeyToken)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("failed to restore session: %w", err)
	}

	userData, err := cache.Get(ctx, cacheKeyUser)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("failed to restore session: %w", err)
	}

	var user *models.UserProfile
	if len(userData) > 0 {
		var u models.UserProfile
		if err := json.Unmarshal(userData, &u); err != nil {
			// A corrupt cached profile is dropped, not fatal.
			s.log.Warn(ctx, "discarding unreadable cached profile", "error", err)
		} else {
			user = &u
		}
	}

	if len(token) > 0 {
		s.state = StateUnknown
		s.token = string(token)
		s.user = user
		s.provisional = user != nil
		return nil
	}

	s.state = StateAnonymous
	s.token = ""
	s.user = user
	s.provisional = user != nil
	return nil
}

// StartValidating moves Unknown→Validating and returns the token to probe.
// It returns false when there is nothing to validate: no token, or the
// current token was already probed this run.
func (s *Store) StartValidating() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == "" || s.token == s.probedToken {
		if s.token == "" && s.state == StateUnknown {
			s.state = StateAnonymous
		}
		return "", false
	}

	s.state = StateValidating
	s.probedToken = s.token
	return s.token, true
}

// ValidationSucceeded installs the server-confirmed profile and refreshes
// the durable cache.
func (s *Store) ValidationSucceeded(ctx context.Context, user *models.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateAuthenticated
	s.user = user
	s.provisional = false

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := s.repo().Set(ctx, cacheKeyUser, data); err != nil {
		return fmt.Errorf("failed to persist profile: %w", err)
	}
	return nil
}

// ValidationFailed clears the session entirely: the token could not be
// confirmed, so neither it nor the cached profile is trustworthy.
func (s *Store) ValidationFailed(ctx context.Context) {
	s.Clear(ctx)
}

// Login installs a token and profile issued together by the server (login or
// register) and persists both. It bypasses Validating: the pair is fresh.
func (s *Store) Login(ctx context.Context, token string, user *models.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateAuthenticated
	s.token = token
	s.probedToken = token // issued by the server just now, no probe needed
	s.user = user
	s.provisional = false

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	// Token and profile are issued together; they are persisted together.
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		cache := metadata.NewSQLiteRepository(tx)
		if err := cache.Set(ctx, cacheKeyToken, []byte(token)); err != nil {
			return err
		}
		return cache.Set(ctx, cacheKeyUser, data)
	})
	if err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

// Logout transitions to Anonymous synchronously. No network round-trip is
// involved; the durable cache is wiped immediately.
func (s *Store) Logout(ctx context.Context) {
	s.Clear(ctx)
}

// Clear wipes the session in memory and on disk. Idempotent: clearing an
// already-empty session does nothing and reports false, so the gateway's
// unauthorized hook cannot loop or emit duplicate notices.
func (s *Store) Clear(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateAnonymous && s.token == "" && s.user == nil {
		return false
	}

	s.state = StateAnonymous
	s.token = ""
	s.user = nil
	s.provisional = false

	if err := s.repo().Clear(ctx); err != nil {
		s.log.Error(ctx, "failed to clear session cache", "error", err)
	}
	return true
}

// Token returns the current credential, or "" when anonymous. The gateway
// uses this as its token source.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns the current profile and whether it is provisional (cached,
// not validated this run). Provisional profiles are display-only.
func (s *Store) User() (*models.UserProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil, false
	}
	u := *s.user
	return &u, s.provisional
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Loading reports whether the startup validation probe is still unresolved.
// Gated UI must not render while this is true.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateValidating || (s.state == StateUnknown && s.token != "")
}

// IsAuthenticated reports whether a server-confirmed session is active.
func (s *Store) IsAuthenticated() bool {
	return s.State() == StateAuthenticated
}
