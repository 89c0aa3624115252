// Package wire normalizes raw backend rows into typed records.
//
// The backend returns each collection as a sequence of rows that may be
// positional JSON arrays (database tuples in declared column order) or
// already-keyed JSON objects. Both shapes normalize into the same keyed
// record, and no code outside this package ever indexes into a raw row.
package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Declared field order per entity type. These match the backend's column
// order exactly; positional rows are assigned left to right.
var (
	UserFields        = []string{"user_id", "first_name", "last_name", "email", "password", "created"}
	AccountFields     = []string{"account_id", "user_id", "account_name", "account_type", "current_balance"}
	CategoryFields    = []string{"category_id", "category_name", "category_type"}
	TransactionFields = []string{"transaction_id", "user_id", "account_id", "category_id", "transaction_date", "amount", "description"}
	BudgetFields      = []string{"budget_id", "user_id", "category_id", "amount_limit", "budget_month", "budget_year"}
)

// Record is a keyed row: one raw value per declared field name. Fields past
// the end of a short positional row are simply absent.
type Record map[string]json.RawMessage

// Normalize converts a raw row into a Record using the declared field order.
// Keyed objects pass through unchanged; positional arrays are assigned one
// value per name. A row shorter than the field list leaves trailing fields
// absent; extra positions are ignored.
func Normalize(row json.RawMessage, fields []string) (Record, error) {
	trimmed := bytes.TrimSpace(row)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, fmt.Errorf("normalize: empty row")
	}

	switch trimmed[0] {
	case '{':
		rec := make(Record, len(fields))
		if err := json.Unmarshal(trimmed, &rec); err != nil {
			return nil, fmt.Errorf("normalize keyed row: %w", err)
		}
		return rec, nil
	case '[':
		var values []json.RawMessage
		if err := json.Unmarshal(trimmed, &values); err != nil {
			return nil, fmt.Errorf("normalize positional row: %w", err)
		}
		rec := make(Record, len(fields))
		for i, name := range fields {
			if i >= len(values) {
				break
			}
			rec[name] = values[i]
		}
		return rec, nil
	default:
		return nil, fmt.Errorf("normalize: row is neither array nor object")
	}
}

// Has reports whether the field was present in the row.
func (r Record) Has(name string) bool {
	raw, ok := r[name]
	return ok && !bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// String returns the field as a string. JSON strings unquote, numbers keep
// their literal text, absent or null fields come back empty.
func (r Record) String(name string) string {
	if !r.Has(name) {
		return ""
	}
	raw := r[name]
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// Int returns the field as an integer, accepting both JSON numbers and
// numeric strings so id 3 and id "3" read identically. Absent or
// unparseable fields degrade to zero.
func (r Record) Int(name string) int {
	if !r.Has(name) {
		return 0
	}
	raw := r[name]
	var i int
	if err := json.Unmarshal(raw, &i); err == nil {
		return i
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		var parsed int
		if _, err := fmt.Sscanf(s, "%d", &parsed); err == nil {
			return parsed
		}
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return int(f)
	}
	return 0
}
