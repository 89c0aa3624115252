// Package state holds the application state: the current snapshot of all
// four collections, the active period filter, and the session lifecycle.
//
// A snapshot is replaced wholesale on every refresh; nothing is patched in
// place and no record identity survives a refresh beyond id equality.
package state

import (
	"fmt"
	"strings"

	"fintrack/internal/core"
)

// Snapshot is the complete set of a user's collections as of the last
// successful refresh.
type Snapshot struct {
	Categories   []core.Category
	Accounts     []core.Account
	Transactions []core.Transaction
	Budgets      []core.Budget
}

// CategoryName resolves a category id to its display name. Ids compare by
// value after string coercion, so 3 and "3" match. Unresolved ids degrade
// to a placeholder rather than failing.
func (s *Snapshot) CategoryName(id any) string {
	want := idKey(id)
	for _, c := range s.Categories {
		if idKey(c.ID) == want {
			return c.Name
		}
	}
	return "Category " + want
}

// AccountName resolves an account id to its display name, with the same
// coercion and placeholder behavior as CategoryName.
func (s *Snapshot) AccountName(id any) string {
	want := idKey(id)
	for _, a := range s.Accounts {
		if idKey(a.ID) == want {
			return a.Name
		}
	}
	return "Account " + want
}

// idKey canonicalizes an id for comparison regardless of its wire type.
func idKey(id any) string {
	switch v := id.(type) {
	case string:
		return strings.TrimSpace(v)
	default:
		return fmt.Sprint(v)
	}
}
