// Package core provides the domain model plus money parsing and formatting.
//
// Amounts are signed decimals carried end to end with shopspring/decimal;
// the sign is the sole income/expense discriminator. Display always uses two
// fraction digits.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a wire value to a decimal amount. It accepts dot and
// comma decimal separators and tolerates surrounding space. Absent or
// unparseable input degrades to zero so a malformed row never aborts
// aggregation.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseStrictAmount is ParseAmount for user input: unparseable input is an
// error rather than a silent zero.
func ParseStrictAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// FormatAmount renders an amount with exactly two fraction digits.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
