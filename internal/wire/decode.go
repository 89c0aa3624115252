package wire

import (
	"encoding/json"
	"fmt"

	"fintrack/internal/core"
)

// DecodeUser builds a User from a users-order row.
func DecodeUser(row json.RawMessage) (core.User, error) {
	rec, err := Normalize(row, UserFields)
	if err != nil {
		return core.User{}, fmt.Errorf("decode user: %w", err)
	}
	return core.User{
		ID:        rec.Int("user_id"),
		FirstName: rec.String("first_name"),
		LastName:  rec.String("last_name"),
		Email:     rec.String("email"),
		Created:   rec.String("created"),
	}, nil
}

// DecodeCategories builds the category collection. Malformed rows are
// skipped rather than failing the whole decode.
func DecodeCategories(rows []json.RawMessage) []core.Category {
	out := make([]core.Category, 0, len(rows))
	for _, row := range rows {
		rec, err := Normalize(row, CategoryFields)
		if err != nil {
			continue
		}
		out = append(out, core.Category{
			ID:   rec.Int("category_id"),
			Name: rec.String("category_name"),
			Type: rec.String("category_type"),
		})
	}
	return out
}

// DecodeAccounts builds the account collection.
func DecodeAccounts(rows []json.RawMessage) []core.Account {
	out := make([]core.Account, 0, len(rows))
	for _, row := range rows {
		rec, err := Normalize(row, AccountFields)
		if err != nil {
			continue
		}
		out = append(out, core.Account{
			ID:      rec.Int("account_id"),
			UserID:  rec.Int("user_id"),
			Name:    rec.String("account_name"),
			Type:    core.AccountType(rec.String("account_type")),
			Balance: core.ParseAmount(rec.String("current_balance")),
		})
	}
	return out
}

// DecodeTransactions builds the transaction collection. A bad date leaves
// the zero Date; a bad amount reads as zero, per the degrade-to-zero rule.
func DecodeTransactions(rows []json.RawMessage) []core.Transaction {
	out := make([]core.Transaction, 0, len(rows))
	for _, row := range rows {
		rec, err := Normalize(row, TransactionFields)
		if err != nil {
			continue
		}
		date, _ := core.ParseDate(rec.String("transaction_date"))
		out = append(out, core.Transaction{
			ID:          rec.Int("transaction_id"),
			UserID:      rec.Int("user_id"),
			AccountID:   rec.Int("account_id"),
			CategoryID:  rec.Int("category_id"),
			Date:        date,
			Amount:      core.ParseAmount(rec.String("amount")),
			Description: rec.String("description"),
		})
	}
	return out
}

// DecodeBudgets builds the budget collection.
func DecodeBudgets(rows []json.RawMessage) []core.Budget {
	out := make([]core.Budget, 0, len(rows))
	for _, row := range rows {
		rec, err := Normalize(row, BudgetFields)
		if err != nil {
			continue
		}
		out = append(out, core.Budget{
			ID:         rec.Int("budget_id"),
			UserID:     rec.Int("user_id"),
			CategoryID: rec.Int("category_id"),
			Limit:      core.ParseAmount(rec.String("amount_limit")),
			Month:      rec.Int("budget_month"),
			Year:       rec.Int("budget_year"),
		})
	}
	return out
}
