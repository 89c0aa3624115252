package state

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

// fakeFetcher serves canned collections and records the budgets period.
type fakeFetcher struct {
	categories   []core.Category
	accounts     []core.Account
	transactions []core.Transaction
	budgets      []core.Budget

	failOn       string
	budgetPeriod *core.Period
}

var errBackendDown = errors.New("backend down")

func (f *fakeFetcher) Categories(ctx context.Context) ([]core.Category, error) {
	if f.failOn == "categories" {
		return nil, errBackendDown
	}
	return f.categories, nil
}

func (f *fakeFetcher) Accounts(ctx context.Context, userID int) ([]core.Account, error) {
	if f.failOn == "accounts" {
		return nil, errBackendDown
	}
	return f.accounts, nil
}

func (f *fakeFetcher) Transactions(ctx context.Context, userID int) ([]core.Transaction, error) {
	if f.failOn == "transactions" {
		return nil, errBackendDown
	}
	return f.transactions, nil
}

func (f *fakeFetcher) Budgets(ctx context.Context, userID int, period *core.Period) ([]core.Budget, error) {
	f.budgetPeriod = period
	if f.failOn == "budgets" {
		return nil, errBackendDown
	}
	return f.budgets, nil
}

func newTestSession() *Session {
	return NewSession(core.User{ID: 10, FirstName: "Ada"}, testNow)
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("success swaps all four collections", func(t *testing.T) {
		fetcher := &fakeFetcher{
			categories:   []core.Category{{ID: 1, Name: "Groceries"}},
			accounts:     []core.Account{{ID: 3, Name: "Everyday"}},
			transactions: []core.Transaction{{ID: 5, Amount: decimal.RequireFromString("-10")}},
			budgets:      []core.Budget{{ID: 7, Month: 5, Year: 2024}},
		}
		session := newTestSession()
		coordinator := NewCoordinator(fetcher, nil)

		if err := coordinator.Refresh(ctx, session); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		snap := session.Snapshot()
		if len(snap.Categories) != 1 || len(snap.Accounts) != 1 ||
			len(snap.Transactions) != 1 || len(snap.Budgets) != 1 {
			t.Fatalf("snapshot not swapped: %+v", snap)
		}
	})

	t.Run("any fetch failure keeps the previous snapshot", func(t *testing.T) {
		for _, failOn := range []string{"categories", "accounts", "transactions", "budgets"} {
			t.Run(failOn, func(t *testing.T) {
				session := newTestSession()
				session.Replace(Snapshot{Categories: []core.Category{{ID: 1, Name: "Old"}}})

				fetcher := &fakeFetcher{
					failOn:     failOn,
					categories: []core.Category{{ID: 2, Name: "New"}},
				}
				coordinator := NewCoordinator(fetcher, nil)

				err := coordinator.Refresh(ctx, session)
				if !errors.Is(err, errBackendDown) {
					t.Fatalf("expected backend error, got %v", err)
				}
				snap := session.Snapshot()
				if len(snap.Categories) != 1 || snap.Categories[0].Name != "Old" {
					t.Fatalf("snapshot torn after failed refresh: %+v", snap)
				}
			})
		}
	})

	t.Run("budgets fetch carries the explicit period", func(t *testing.T) {
		fetcher := &fakeFetcher{}
		session := newTestSession()
		session.Filter.Set(5, 2024)
		coordinator := NewCoordinator(fetcher, nil)

		if err := coordinator.Refresh(ctx, session); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if fetcher.budgetPeriod == nil || fetcher.budgetPeriod.Month != 5 || fetcher.budgetPeriod.Year != 2024 {
			t.Fatalf("budget period = %+v", fetcher.budgetPeriod)
		}
	})

	t.Run("no explicit filter means no period parameter", func(t *testing.T) {
		fetcher := &fakeFetcher{}
		session := newTestSession()
		coordinator := NewCoordinator(fetcher, nil)

		if err := coordinator.Refresh(ctx, session); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if fetcher.budgetPeriod != nil {
			t.Fatalf("expected nil period, got %+v", fetcher.budgetPeriod)
		}
	})

	t.Run("empty collections replace wholesale", func(t *testing.T) {
		session := newTestSession()
		session.Replace(Snapshot{Transactions: []core.Transaction{{ID: 5}}})
		coordinator := NewCoordinator(&fakeFetcher{}, nil)

		if err := coordinator.Refresh(ctx, session); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(session.Snapshot().Transactions) != 0 {
			t.Fatal("stale transactions survived the refresh")
		}
	})
}
