package state

import (
	"testing"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/forms"
)

func TestSession(t *testing.T) {
	now := time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)

	t.Run("starts with empty collections and create forms", func(t *testing.T) {
		session := NewSession(core.User{ID: 10, FirstName: "Ada"}, now)

		if session.User.ID != 10 {
			t.Fatalf("user = %+v", session.User)
		}
		if snap := session.Snapshot(); len(snap.Accounts) != 0 || len(snap.Categories) != 0 {
			t.Fatalf("snapshot not empty: %+v", snap)
		}
		if session.AccountForm.Mode() != forms.ModeCreate {
			t.Fatal("account form not in create mode")
		}
		if session.BudgetForm.Month != 8 || session.BudgetForm.Year != 2026 {
			t.Fatalf("budget form period = %d/%d", session.BudgetForm.Month, session.BudgetForm.Year)
		}
	})

	t.Run("replace swaps the snapshot wholesale", func(t *testing.T) {
		session := NewSession(core.User{ID: 10}, now)
		session.Replace(Snapshot{Categories: []core.Category{{ID: 1, Name: "Groceries"}}})
		session.Replace(Snapshot{Accounts: []core.Account{{ID: 3, Name: "Everyday"}}})

		snap := session.Snapshot()
		if len(snap.Categories) != 0 {
			t.Fatalf("stale categories survived: %+v", snap.Categories)
		}
		if len(snap.Accounts) != 1 {
			t.Fatalf("accounts = %+v", snap.Accounts)
		}
	})

	t.Run("reset returns every form to defaults", func(t *testing.T) {
		session := NewSession(core.User{ID: 10}, now)
		session.AccountForm.BeginEdit(core.Account{ID: 3, Name: "Everyday", Type: core.AccountChecking})
		session.BudgetForm.CategoryID = 2
		session.TransactionForm.Description = "coffee"

		session.ResetForms(now)

		if session.AccountForm.Mode() != forms.ModeCreate || session.AccountForm.Name != "" {
			t.Fatalf("account form not reset: %+v", session.AccountForm)
		}
		if session.BudgetForm.CategoryID != 0 {
			t.Fatalf("budget form not reset: %+v", session.BudgetForm)
		}
		if session.TransactionForm.Description != "" {
			t.Fatalf("transaction form not reset: %+v", session.TransactionForm)
		}
	})
}
