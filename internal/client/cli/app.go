package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/dmitrijs2005/bankport/internal/client/api"
	"github.com/dmitrijs2005/bankport/internal/client/config"
	"github.com/dmitrijs2005/bankport/internal/client/services"
	"github.com/dmitrijs2005/bankport/internal/client/session"
	"github.com/dmitrijs2005/bankport/internal/client/storage"
	"github.com/dmitrijs2005/bankport/internal/common"
	"github.com/dmitrijs2005/bankport/internal/logging"

	_ "modernc.org/sqlite"
)

// App is the interactive client: one session store, one API gateway, and the
// services the REPL commands dispatch into.
type App struct {
	config  *config.Config
	session *session.Store
	auth    services.AuthService
	wallet  services.WalletService
	credit  services.CreditService
	history services.TransactionService
	db      *sql.DB
	reader  *bufio.Reader
	log     logging.Logger
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := storage.InitDatabase(ctx, cfg.CacheDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache database: %w", err)
	}

	store := session.NewStore(db, log)
	if err := store.Restore(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	// The unauthorized hook is the client's equivalent of the portal's hard
	// redirect to the login page: clear everything, tell the user once.
	// Store.Clear reports whether anything was cleared, so concurrent 401s
	// produce a single notice.
	apiClient, err := api.NewHTTPClient(cfg.ServerBaseURL, log,
		api.WithTokenSource(store.Token),
		api.WithTimeout(cfg.RequestTimeout),
		api.WithUnauthorizedHook(func() {
			if store.Clear(context.Background()) {
				printlnFn("Your session has expired. Please log in again.")
			}
		}),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &App{
		config:  cfg,
		session: store,
		auth:    services.NewAuthService(apiClient, store, log),
		wallet:  services.NewWalletService(apiClient, log),
		credit:  services.NewCreditService(apiClient, log),
		history: services.NewTransactionService(apiClient),
		db:      db,
		reader:  bufio.NewReader(os.Stdin),
		log:     log,
	}, nil
}

// Run validates any restored session and enters the REPL. Blocks until the
// user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	if a.session.Loading() {
		if err := a.auth.Validate(ctx); err != nil {
			// Session already cleared; the user simply starts anonymous.
			a.log.Warn(ctx, "startup validation failed", "error", err)
		}
	}

	printlnFn("Welcome to the bankport CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

// getStatus renders the prompt suffix: the signed-in email, with a trailing
// "?" when the profile is only a provisional cache hydration.
func (a *App) getStatus() string {
	user, provisional := a.session.User()
	if user == nil {
		return ""
	}
	s := user.Email
	if provisional {
		s += "?"
	}
	return fmt.Sprintf("(%s)", s)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// requireLogin gates the account commands. An anonymous invocation is
// answered locally with a hint; no request leaves the client.
func (a *App) requireLogin() error {
	if a.isLoggedIn() {
		return nil
	}
	printlnFn("Please log in first")
	return common.ErrNotAuthenticated
}
