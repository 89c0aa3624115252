package state

import (
	"time"

	"fintrack/internal/core"
	"fintrack/internal/forms"
)

// Session is the per-login application state: the authenticated user, the
// current snapshot, the period filter, and the entry forms. It is created
// at login and discarded at logout; there are no ambient globals.
//
// The session follows the single-flow model: collaborator calls complete
// before state mutates, so no locking is needed.
type Session struct {
	User   core.User
	Filter PeriodFilter

	AccountForm     forms.AccountForm
	BudgetForm      forms.BudgetForm
	TransactionForm forms.TransactionForm

	snapshot Snapshot
}

// NewSession starts a session for an authenticated user with empty
// collections and default forms.
func NewSession(user core.User, now time.Time) *Session {
	return &Session{
		User:            user,
		AccountForm:     forms.NewAccountForm(),
		BudgetForm:      forms.NewBudgetForm(now),
		TransactionForm: forms.NewTransactionForm(now),
	}
}

// Snapshot returns the current snapshot.
func (s *Session) Snapshot() *Snapshot {
	return &s.snapshot
}

// Replace swaps in a new snapshot wholesale.
func (s *Session) Replace(next Snapshot) {
	s.snapshot = next
}

// ResetForms returns every form to its default Create state, as happens
// after login and after any successful mutation.
func (s *Session) ResetForms(now time.Time) {
	s.AccountForm.Cancel()
	s.BudgetForm.Cancel(now)
	s.TransactionForm = forms.NewTransactionForm(now)
}
