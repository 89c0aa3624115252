package forms

import (
	"encoding/json"
	"strings"
	"time"

	"fintrack/internal/api"
	"fintrack/internal/core"
)

// TransactionForm is the transaction entry form. Transactions are
// create-only; there is no edit state to reconcile.
type TransactionForm struct {
	AccountID   int
	CategoryID  int
	Date        string // YYYY-MM-DD
	Amount      string // signed; positive = income, negative = expense
	Description string
}

// NewTransactionForm returns the form with today's date pre-filled.
func NewTransactionForm(now time.Time) TransactionForm {
	return TransactionForm{Date: now.Format("2006-01-02")}
}

// Validate checks required fields before anything is sent to the backend.
func (f *TransactionForm) Validate() error {
	if f.AccountID == 0 {
		return core.ErrNoAccount
	}
	if f.CategoryID == 0 {
		return core.ErrNoCategory
	}
	if strings.TrimSpace(f.Date) == "" {
		return core.ErrNoDate
	}
	if _, err := core.ParseDate(f.Date); err != nil {
		return err
	}
	if _, err := core.ParseStrictAmount(f.Amount); err != nil {
		return err
	}
	return nil
}

// Payload builds the insert request body.
func (f *TransactionForm) Payload(userID int) api.TransactionPayload {
	amount, err := core.ParseStrictAmount(f.Amount)
	var rendered string
	if err != nil {
		rendered = "0.00"
	} else {
		rendered = core.FormatAmount(amount)
	}
	return api.TransactionPayload{
		UserID:      userID,
		AccountID:   f.AccountID,
		CategoryID:  f.CategoryID,
		Date:        strings.TrimSpace(f.Date),
		Amount:      json.Number(rendered),
		Description: strings.TrimSpace(f.Description),
	}
}
