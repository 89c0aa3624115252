// Package forms models the create-vs-edit duality of the account and
// budget forms.
//
// Each form is an independent machine with a tagged state: Create (the
// idle default) or Editing with exactly one target id. The submit label is
// derived from the state on demand, never stored, so it cannot drift.
package forms

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/api"
	"fintrack/internal/core"
)

// Mode is the form's tagged state.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEditing
)

// labels exposed to the presentation layer
const (
	LabelCreate = "Create"
	LabelUpdate = "Update"
)

// AccountForm holds the account form's fields and edit target.
type AccountForm struct {
	mode   Mode
	editID int

	Name    string
	Type    string
	Balance string
}

// NewAccountForm returns the form in Create mode with default fields.
func NewAccountForm() AccountForm {
	f := AccountForm{}
	f.reset()
	return f
}

func (f *AccountForm) reset() {
	f.mode = ModeCreate
	f.editID = 0
	f.Name = ""
	f.Type = ""
	f.Balance = "0"
}

// BeginEdit switches the form to Editing the given account, snapshotting
// its current values into the fields. A prior edit target is replaced
// outright; the two targets never blend.
func (f *AccountForm) BeginEdit(a core.Account) {
	f.mode = ModeEditing
	f.editID = a.ID
	f.Name = a.Name
	f.Type = string(a.Type)
	f.Balance = core.FormatAmount(a.Balance)
}

// Cancel returns to Create mode and restores default fields.
func (f *AccountForm) Cancel() {
	f.reset()
}

// Mode returns the current tagged state.
func (f *AccountForm) Mode() Mode {
	return f.mode
}

// EditID returns the edit target, or 0 in Create mode.
func (f *AccountForm) EditID() int {
	if f.mode != ModeEditing {
		return 0
	}
	return f.editID
}

// SubmitLabel derives the submit affordance from the state.
func (f *AccountForm) SubmitLabel() string {
	if f.mode == ModeEditing {
		return LabelUpdate
	}
	return LabelCreate
}

// Validate checks required fields before anything is sent to the backend.
func (f *AccountForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return core.ErrEmptyName
	}
	if strings.TrimSpace(f.Type) == "" {
		return core.ErrEmptyType
	}
	if _, err := core.ParseStrictAmount(f.Balance); err != nil {
		return err
	}
	return nil
}

// Payload builds the request body for the current state. UserID is only
// attached in Create mode; updates are scoped by the target id.
func (f *AccountForm) Payload(userID int) api.AccountPayload {
	balance, err := core.ParseStrictAmount(f.Balance)
	if err != nil {
		balance = decimal.Zero
	}
	p := api.AccountPayload{
		Name:    strings.TrimSpace(f.Name),
		Type:    strings.TrimSpace(f.Type),
		Balance: json.Number(core.FormatAmount(balance)),
	}
	if f.mode == ModeCreate {
		p.UserID = userID
	}
	return p
}

// Submitted records a mutation outcome. Success resets to Create; failure
// leaves the state untouched so the user may retry or cancel.
func (f *AccountForm) Submitted(success bool) {
	if success {
		f.reset()
	}
}

// BudgetForm holds the budget form's fields and edit target. It is fully
// independent of the account form.
type BudgetForm struct {
	mode   Mode
	editID int

	CategoryID int
	Limit      string
	Month      int
	Year       int
}

// NewBudgetForm returns the form in Create mode, with month and year
// defaulting to the current calendar period.
func NewBudgetForm(now time.Time) BudgetForm {
	f := BudgetForm{}
	f.resetAt(now)
	return f
}

func (f *BudgetForm) resetAt(now time.Time) {
	f.mode = ModeCreate
	f.editID = 0
	f.CategoryID = 0
	f.Limit = ""
	f.Month = int(now.Month())
	f.Year = now.Year()
}

// BeginEdit switches the form to Editing the given budget, snapshotting
// its current values.
func (f *BudgetForm) BeginEdit(b core.Budget) {
	f.mode = ModeEditing
	f.editID = b.ID
	f.CategoryID = b.CategoryID
	f.Limit = core.FormatAmount(b.Limit)
	f.Month = b.Month
	f.Year = b.Year
}

// Cancel returns to Create mode and restores default fields.
func (f *BudgetForm) Cancel(now time.Time) {
	f.resetAt(now)
}

// Mode returns the current tagged state.
func (f *BudgetForm) Mode() Mode {
	return f.mode
}

// EditID returns the edit target, or 0 in Create mode.
func (f *BudgetForm) EditID() int {
	if f.mode != ModeEditing {
		return 0
	}
	return f.editID
}

// SubmitLabel derives the submit affordance from the state.
func (f *BudgetForm) SubmitLabel() string {
	if f.mode == ModeEditing {
		return LabelUpdate
	}
	return LabelCreate
}

// Validate checks required fields before anything is sent to the backend.
func (f *BudgetForm) Validate() error {
	if f.CategoryID == 0 {
		return core.ErrNoCategory
	}
	if _, err := core.ParseStrictAmount(f.Limit); err != nil {
		return err
	}
	if f.Month == 0 {
		return core.ErrNoMonth
	}
	if f.Year == 0 {
		return core.ErrNoYear
	}
	return nil
}

// Payload builds the request body for the current state.
func (f *BudgetForm) Payload(userID int) api.BudgetPayload {
	limit, err := core.ParseStrictAmount(f.Limit)
	if err != nil {
		limit = decimal.Zero
	}
	p := api.BudgetPayload{
		CategoryID: f.CategoryID,
		Limit:      json.Number(core.FormatAmount(limit)),
		Month:      f.Month,
		Year:       f.Year,
	}
	if f.mode == ModeCreate {
		p.UserID = userID
	}
	return p
}

// Submitted records a mutation outcome. Success resets to Create; failure
// leaves the state untouched.
func (f *BudgetForm) Submitted(success bool, now time.Time) {
	if success {
		f.resetAt(now)
	}
}
