package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	AccountChecking   AccountType = "checking"
	AccountSavings    AccountType = "savings"
	AccountCredit     AccountType = "credit"
	AccountInvestment AccountType = "investment"
	AccountOther      AccountType = "other"
)

type (
	// AccountType is an open enum; unknown values from the backend are
	// carried through unchanged.
	AccountType string

	// Date is a calendar day with no time component.
	Date struct {
		time.Time
	}

	User struct {
		ID        int
		FirstName string
		LastName  string
		Email     string
		Created   string // opaque backend timestamp, display only
	}

	Account struct {
		ID      int
		UserID  int
		Name    string
		Type    AccountType
		Balance decimal.Decimal // snapshot value, not derived from transactions
	}

	// Category is global, not user-scoped. Type is an income/expense label
	// used for display only; aggregation trusts the transaction amount sign.
	Category struct {
		ID   int
		Name string
		Type string
	}

	Transaction struct {
		ID          int
		UserID      int
		AccountID   int
		CategoryID  int
		Date        Date
		Amount      decimal.Decimal // positive = income, negative = expense
		Description string
	}

	Budget struct {
		ID         int
		UserID     int
		CategoryID int
		Limit      decimal.Decimal
		Month      int // 1-12
		Year       int // 4-digit
	}

	// Period is a (month, year) pair scoping budget-vs-actual comparison.
	Period struct {
		Month int
		Year  int
	}
)

var (
	ErrEmptyName     = errors.New("empty name")
	ErrEmptyType     = errors.New("empty type")
	ErrEmptyEmail    = errors.New("empty email")
	ErrEmptyPassword = errors.New("empty password")
	ErrNoCategory    = errors.New("no category selected")
	ErrNoAccount     = errors.New("no account selected")
	ErrNoDate        = errors.New("no date")
	ErrNoMonth       = errors.New("no budget month")
	ErrNoYear        = errors.New("no budget year")
	ErrInvalidAmount = errors.New("invalid amount")
)

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a calendar day in YYYY-MM-DD form. Longer strings are
// truncated to the first ten characters, so backend timestamps with a time
// suffix still parse.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if len(s) > 10 {
		s = s[:10]
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

// Month returns the calendar month (1-12).
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the calendar year.
func (d Date) Year() int {
	return d.Time.Year()
}

// ISO renders the date as YYYY-MM-DD.
func (d Date) ISO() string {
	return d.Time.Format("2006-01-02")
}

// In reports whether the date falls inside the period's calendar month.
func (d Date) In(p Period) bool {
	return d.Month() == p.Month && d.Year() == p.Year
}

// Covers reports whether the budget targets the given period.
func (b Budget) Covers(p Period) bool {
	return b.Month == p.Month && b.Year == p.Year
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// FullName joins first and last name for display.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
