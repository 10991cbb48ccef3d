package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/bankport/internal/client/models"
	"github.com/dmitrijs2005/bankport/internal/logging"
	"github.com/google/uuid"
)

const defaultTimeout = 15 * time.Second

// HTTPClient is the concrete Client speaking JSON over HTTP to the portal.
//
// It is the single place that knows about credentials on the wire: tokenFn
// supplies the current token before each request, and onUnauthorized fires
// after any response that rejects the credential. The hook fires once per
// offending response; it is the session layer's job to make clearing an
// already-empty session a no-op.
type HTTPClient struct {
	baseURL        *url.URL
	http           *http.Client
	tokenFn        func() string
	onUnauthorized func()
	log            logging.Logger
}

type Option func(*HTTPClient)

// WithTokenSource sets the function consulted before every request for the
// bearer credential. An empty string dispatches the request unauthenticated.
func WithTokenSource(fn func() string) Option {
	return func(c *HTTPClient) { c.tokenFn = fn }
}

// WithUnauthorizedHook registers the global reaction to an authorization
// rejection. Every consumer of the client is subject to it.
func WithUnauthorizedHook(fn func()) Option {
	return func(c *HTTPClient) { c.onUnauthorized = fn }
}

func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.http.Timeout = d }
}

func WithLogger(log logging.Logger) Option {
	return func(c *HTTPClient) { c.log = log }
}

func NewHTTPClient(baseURL string, log logging.Logger, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}

	c := &HTTPClient{
		baseURL: u,
		http:    &http.Client{Timeout: defaultTimeout},
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// errorPayload is the portal's error body shape.
type errorPayload struct {
	Detail string `json:"detail"`
}

// do performs one round-trip: marshal body, attach headers and credential,
// execute, map the response. A non-nil out receives the decoded 2xx body.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if c.tokenFn != nil {
		if token := c.tokenFn(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.log.Warn(ctx, "credential rejected", "method", method, "path", path)
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
	}

	if resp.StatusCode >= 400 {
		return &Error{Status: resp.StatusCode, Reason: reasonFrom(data)}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func reasonFrom(data []byte) string {
	var p errorPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return ""
	}
	return p.Detail
}

func (c *HTTPClient) Register(ctx context.Context, req RegisterRequest) (*models.AuthResult, error) {
	var res models.AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.AuthResult, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var res models.AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) Me(ctx context.Context) (*models.UserProfile, error) {
	var user models.UserProfile
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) Wallet(ctx context.Context) (*models.WalletSnapshot, error) {
	var w models.WalletSnapshot
	if err := c.do(ctx, http.MethodGet, "/wallets/me", nil, nil, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// moneyRequest is the shared body of all three money-movement calls.
type moneyRequest struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description,omitempty"`
}

func (c *HTTPClient) Deposit(ctx context.Context, amount float64, description string) error {
	return c.do(ctx, http.MethodPost, "/wallets/deposit", nil, moneyRequest{Amount: amount, Description: description}, nil)
}

func (c *HTTPClient) Withdraw(ctx context.Context, amount float64, description string) error {
	return c.do(ctx, http.MethodPost, "/wallets/withdraw", nil, moneyRequest{Amount: amount, Description: description}, nil)
}

func (c *HTTPClient) CreditLine(ctx context.Context) (*models.CreditLineSnapshot, error) {
	var cl models.CreditLineSnapshot
	if err := c.do(ctx, http.MethodGet, "/credit/me", nil, nil, &cl); err != nil {
		return nil, err
	}
	return &cl, nil
}

func (c *HTTPClient) Draw(ctx context.Context, amount float64, description string) error {
	return c.do(ctx, http.MethodPost, "/credit/draw", nil, moneyRequest{Amount: amount, Description: description}, nil)
}

func (c *HTTPClient) Transactions(ctx context.Context, limit, offset int) ([]models.TransactionRecord, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))

	var records []models.TransactionRecord
	if err := c.do(ctx, http.MethodGet, "/transactions/me", query, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}
