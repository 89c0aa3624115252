package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fintrack/internal/core"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, 5*time.Second, nil)
}

func TestLogin(t *testing.T) {
	t.Run("decodes the user row", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/login" {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
			var body map[string]string
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Errorf("bad body: %v", err)
			}
			if body["email"] != "ada@example.com" {
				t.Errorf("email = %q", body["email"])
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"message": "Login successful", "user": [10, "Ada", "Lovelace", "ada@example.com", "secret", "2024-01-01"]}`))
		})

		user, err := client.Login(context.Background(), "ada@example.com", "pw")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.ID != 10 || user.FirstName != "Ada" {
			t.Fatalf("user = %+v", user)
		}
	})

	t.Run("null user means bad credentials", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"message": "Login successful", "user": null}`))
		})
		_, err := client.Login(context.Background(), "x@example.com", "bad")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("got %v", err)
		}
	})
}

func TestErrorSurface(t *testing.T) {
	t.Run("uses the backend error message", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error": "account name already taken"}`))
		})
		err := client.CreateAccount(context.Background(), AccountPayload{UserID: 10, Name: "X", Type: "other", Balance: "0.00"})
		var apiErr *Error
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected *Error, got %v", err)
		}
		if apiErr.Status != http.StatusBadRequest || apiErr.Message != "account name already taken" {
			t.Fatalf("error = %+v", apiErr)
		}
	})

	t.Run("falls back to a generic message", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		err := client.DeleteAccount(context.Background(), 3)
		var apiErr *Error
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected *Error, got %v", err)
		}
		if apiErr.Error() != "request failed: 500" {
			t.Fatalf("message = %q", apiErr.Error())
		}
	})
}

func TestReads(t *testing.T) {
	t.Run("categories decode positional rows", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/categories" {
				t.Errorf("path = %s", r.URL.Path)
			}
			w.Write([]byte(`[[1, "Groceries", "expense"], [2, "Salary", "income"]]`))
		})
		categories, err := client.Categories(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(categories) != 2 || categories[0].Name != "Groceries" {
			t.Fatalf("categories = %+v", categories)
		}
	})

	t.Run("budgets forward the period as query params", func(t *testing.T) {
		var gotQuery string
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.RawQuery
			w.Write([]byte(`[]`))
		})
		period := &core.Period{Month: 5, Year: 2024}
		if _, err := client.Budgets(context.Background(), 10, period); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotQuery != "month=5&year=2024" {
			t.Fatalf("query = %q", gotQuery)
		}
	})

	t.Run("budgets omit the query without a period", func(t *testing.T) {
		var gotQuery string
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.RawQuery
			w.Write([]byte(`[]`))
		})
		if _, err := client.Budgets(context.Background(), 10, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotQuery != "" {
			t.Fatalf("query = %q", gotQuery)
		}
	})

	t.Run("transactions hit the user-scoped path", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/transactions/10" {
				t.Errorf("path = %s", r.URL.Path)
			}
			w.Write([]byte(`[[1, 10, 2, 3, "2024-05-17", -120.5, "groceries"]]`))
		})
		txs, err := client.Transactions(context.Background(), 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(txs) != 1 || txs[0].Amount.StringFixed(2) != "-120.50" {
			t.Fatalf("transactions = %+v", txs)
		}
	})
}

func TestWrites(t *testing.T) {
	t.Run("update bodies omit user_id", func(t *testing.T) {
		var body map[string]any
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPut || r.URL.Path != "/accounts/7" {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Errorf("bad body: %v", err)
			}
			w.WriteHeader(http.StatusOK)
		})
		p := AccountPayload{UserID: 10, Name: "Everyday", Type: "checking", Balance: "1500.25"}
		if err := client.UpdateAccount(context.Background(), 7, p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, present := body["user_id"]; present {
			t.Fatalf("update body carries user_id: %v", body)
		}
		if body["account_name"] != "Everyday" {
			t.Fatalf("body = %v", body)
		}
	})

	t.Run("monetary fields travel as JSON numbers", func(t *testing.T) {
		var raw []byte
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			b, err := io.ReadAll(r.Body)
			if err != nil {
				t.Errorf("read body: %v", err)
			}
			raw = b
			w.WriteHeader(http.StatusCreated)
		})
		p := TransactionPayload{
			UserID: 10, AccountID: 3, CategoryID: 2,
			Date: "2024-05-17", Amount: "-120.50", Description: "groceries",
		}
		if err := client.CreateTransaction(context.Background(), p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(string(raw), `"amount":-120.50`) {
			t.Fatalf("amount not a bare number: %s", raw)
		}

		var body map[string]any
		if err := json.Unmarshal(raw, &body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if _, ok := body["amount"].(float64); !ok {
			t.Fatalf("amount decoded as %T", body["amount"])
		}
	})

	t.Run("requests carry a request id", func(t *testing.T) {
		var gotID string
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotID = r.Header.Get("X-Request-Id")
			w.WriteHeader(http.StatusCreated)
		})
		if err := client.DeleteBudget(context.Background(), 4); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotID == "" {
			t.Fatal("missing X-Request-Id header")
		}
	})

	t.Run("transport failure wraps the cause", func(t *testing.T) {
		client := NewClient("http://127.0.0.1:1", time.Second, nil)
		err := client.DeleteTransaction(context.Background(), 1)
		if err == nil {
			t.Fatal("expected error")
		}
		var apiErr *Error
		if errors.As(err, &apiErr) {
			t.Fatal("transport failures are not backend errors")
		}
	})
}
