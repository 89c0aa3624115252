// Package api implements the HTTP client for the finance backend.
//
// The backend is an external collaborator: it owns authentication and
// persistence, and serves each collection as rows in a fixed column order
// (see the wire package). This client shapes requests, surfaces typed
// errors, and decodes rows; it holds no state of its own.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/wire"
)

// ErrInvalidCredentials is returned by Login when the backend accepts the
// request but matches no user.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Error is a backend failure: a non-2xx status plus the message from the
// response's error field when the backend supplied one.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed: %d", e.Status)
}

// Client talks to the finance backend.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger
}

// NewClient creates a backend client. The timeout bounds every request;
// there are no retries, a failed call is surfaced to the caller as is.
func NewClient(baseURL string, timeout time.Duration, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger.WithComponent(log.ComponentAPI),
	}
}

// Login authenticates and returns the user decoded from the users-order row
// in the response. A response without a user row means bad credentials.
func (c *Client) Login(ctx context.Context, email, password string) (core.User, error) {
	body := map[string]string{"email": email, "password": password}
	var resp struct {
		Message string          `json:"message"`
		User    json.RawMessage `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/login", body, &resp); err != nil {
		return core.User{}, err
	}
	if isNull(resp.User) {
		return core.User{}, ErrInvalidCredentials
	}
	user, err := wire.DecodeUser(resp.User)
	if err != nil {
		return core.User{}, fmt.Errorf("login response: %w", err)
	}
	return user, nil
}

// UserPayload is the registration request body.
type UserPayload struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// CreateUser registers a new user.
func (c *Client) CreateUser(ctx context.Context, p UserPayload) error {
	return c.do(ctx, http.MethodPost, "/users", p, nil)
}

// Categories fetches the global category list.
func (c *Client) Categories(ctx context.Context) ([]core.Category, error) {
	rows, err := c.rows(ctx, "/categories")
	if err != nil {
		return nil, err
	}
	return wire.DecodeCategories(rows), nil
}

// Accounts fetches the user's accounts.
func (c *Client) Accounts(ctx context.Context, userID int) ([]core.Account, error) {
	rows, err := c.rows(ctx, "/accounts/"+strconv.Itoa(userID))
	if err != nil {
		return nil, err
	}
	return wire.DecodeAccounts(rows), nil
}

// Transactions fetches the user's transactions.
func (c *Client) Transactions(ctx context.Context, userID int) ([]core.Transaction, error) {
	rows, err := c.rows(ctx, "/transactions/"+strconv.Itoa(userID))
	if err != nil {
		return nil, err
	}
	return wire.DecodeTransactions(rows), nil
}

// Budgets fetches the user's budgets, scoped to the period when one is set.
func (c *Client) Budgets(ctx context.Context, userID int, period *core.Period) ([]core.Budget, error) {
	path := "/budgets/" + strconv.Itoa(userID)
	if period != nil {
		q := url.Values{}
		q.Set("month", strconv.Itoa(period.Month))
		q.Set("year", strconv.Itoa(period.Year))
		path += "?" + q.Encode()
	}
	rows, err := c.rows(ctx, path)
	if err != nil {
		return nil, err
	}
	return wire.DecodeBudgets(rows), nil
}

// AccountPayload is the writable field set of an account. UserID is only
// sent on insert; updates are scoped by the URL id. Balance travels as a
// JSON number, matching what the backend expects on the wire.
type AccountPayload struct {
	UserID  int         `json:"user_id,omitempty"`
	Name    string      `json:"account_name"`
	Type    string      `json:"account_type"`
	Balance json.Number `json:"current_balance"`
}

func (c *Client) CreateAccount(ctx context.Context, p AccountPayload) error {
	return c.do(ctx, http.MethodPost, "/accounts", p, nil)
}

func (c *Client) UpdateAccount(ctx context.Context, id int, p AccountPayload) error {
	p.UserID = 0 // omitted from update bodies
	return c.do(ctx, http.MethodPut, "/accounts/"+strconv.Itoa(id), p, nil)
}

func (c *Client) DeleteAccount(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/accounts/"+strconv.Itoa(id), nil, nil)
}

// TransactionPayload is the writable field set of a transaction.
type TransactionPayload struct {
	UserID      int         `json:"user_id"`
	AccountID   int         `json:"account_id"`
	CategoryID  int         `json:"category_id"`
	Date        string      `json:"transaction_date"`
	Amount      json.Number `json:"amount"`
	Description string      `json:"description"`
}

func (c *Client) CreateTransaction(ctx context.Context, p TransactionPayload) error {
	return c.do(ctx, http.MethodPost, "/transactions", p, nil)
}

func (c *Client) DeleteTransaction(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/transactions/"+strconv.Itoa(id), nil, nil)
}

// BudgetPayload is the writable field set of a budget.
type BudgetPayload struct {
	UserID     int         `json:"user_id,omitempty"`
	CategoryID int         `json:"category_id"`
	Limit      json.Number `json:"amount_limit"`
	Month      int         `json:"budget_month"`
	Year       int         `json:"budget_year"`
}

func (c *Client) CreateBudget(ctx context.Context, p BudgetPayload) error {
	return c.do(ctx, http.MethodPost, "/budgets", p, nil)
}

func (c *Client) UpdateBudget(ctx context.Context, id int, p BudgetPayload) error {
	p.UserID = 0
	return c.do(ctx, http.MethodPut, "/budgets/"+strconv.Itoa(id), p, nil)
}

func (c *Client) DeleteBudget(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/budgets/"+strconv.Itoa(id), nil, nil)
}

// rows fetches a collection endpoint as raw rows, leaving shape decisions
// to the wire package.
func (c *Client) rows(ctx context.Context, path string) ([]json.RawMessage, error) {
	var rows []json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.ErrorContext(ctx, "Backend request failed",
			log.FieldRequestID, requestID,
			log.FieldMethod, method,
			log.FieldPath, path,
			log.FieldError, err.Error())
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	c.logger.DebugContext(ctx, "Backend request completed",
		log.FieldRequestID, requestID,
		log.FieldMethod, method,
		log.FieldPath, path,
		log.FieldStatusCode, resp.StatusCode,
		log.FieldDuration, time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Status: resp.StatusCode, Message: errorMessage(payload)}
	}

	if out != nil && !isNull(payload) {
		if err := json.Unmarshal(payload, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// errorMessage extracts the optional error field from a failure body.
func errorMessage(payload []byte) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(payload, &body); err == nil {
		return body.Error
	}
	return ""
}

// isNull reports whether a raw JSON value is absent or the null literal.
func isNull(b []byte) bool {
	trimmed := bytes.TrimSpace(b)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
