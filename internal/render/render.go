// Package render draws the dashboard and entity lists for the terminal.
// All numbers and labels come in pre-computed; nothing here touches the
// snapshot beyond reading it.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"fintrack/internal/core"
	"fintrack/internal/report"
	"fintrack/internal/state"
)

// Theme selects the style palette, mirroring the web client's light/dark
// preference.
type Theme struct {
	Title  lipgloss.Style
	Header lipgloss.Style
	Label  lipgloss.Style
	Income lipgloss.Style
	Spend  lipgloss.Style
	Muted  lipgloss.Style
}

// Light returns styles suited to light terminal backgrounds.
func Light() Theme {
	return Theme{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1a1b26")),
		Header: lipgloss.NewStyle().Bold(true).Underline(true),
		Label:  lipgloss.NewStyle().Foreground(lipgloss.Color("#44475a")),
		Income: lipgloss.NewStyle().Foreground(lipgloss.Color("#2f9e44")),
		Spend:  lipgloss.NewStyle().Foreground(lipgloss.Color("#c92a2a")),
		Muted:  lipgloss.NewStyle().Faint(true),
	}
}

// Dark returns styles suited to dark terminal backgrounds.
func Dark() Theme {
	return Theme{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#cdd6f4")),
		Header: lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("#b4befe")),
		Label:  lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8")),
		Income: lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1")),
		Spend:  lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8")),
		Muted:  lipgloss.NewStyle().Faint(true),
	}
}

// ForName maps a stored theme preference to its palette.
func ForName(name string) Theme {
	if name == "dark" {
		return Dark()
	}
	return Light()
}

// Dashboard renders totals, the spend ranking, and budget-vs-actual rows.
func Dashboard(th Theme, snap *state.Snapshot, totals report.Totals, ranking []report.CategorySpend, rows []report.BudgetRow, periodLabel string) string {
	var b strings.Builder

	b.WriteString(th.Title.Render("Dashboard") + "\n\n")
	b.WriteString(fmt.Sprintf("%s  %s\n",
		th.Label.Render("Income"), th.Income.Render(core.FormatAmount(totals.Income))))
	b.WriteString(fmt.Sprintf("%s  %s\n",
		th.Label.Render("Expense"), th.Spend.Render(core.FormatAmount(totals.Expense))))
	b.WriteString(fmt.Sprintf("%s  %s\n\n",
		th.Label.Render("Net"), core.FormatAmount(totals.Net)))

	b.WriteString(th.Header.Render("Spending by category") + "\n")
	if len(ranking) == 0 {
		b.WriteString(th.Muted.Render("No expense transactions yet") + "\n")
	} else {
		for _, r := range ranking {
			b.WriteString(fmt.Sprintf("  %-24s %12s\n",
				snap.CategoryName(r.CategoryID), core.FormatAmount(r.Total)))
		}
	}
	b.WriteString("\n")

	b.WriteString(th.Header.Render("Budgets") + "  " + th.Muted.Render(periodLabel) + "\n")
	if len(rows) == 0 {
		b.WriteString(th.Muted.Render("No budgets for this month and year") + "\n")
	} else {
		b.WriteString(th.Label.Render(fmt.Sprintf("  %-24s %12s %12s %12s", "Category", "Limit", "Spent", "Left")) + "\n")
		for _, row := range rows {
			left := core.FormatAmount(row.Remaining)
			if row.Remaining.IsNegative() {
				left = th.Spend.Render(left)
			}
			b.WriteString(fmt.Sprintf("  %-24s %12s %12s %12s\n",
				snap.CategoryName(row.Budget.CategoryID),
				core.FormatAmount(row.Budget.Limit),
				core.FormatAmount(row.Spent),
				left))
		}
	}

	return b.String()
}

// Categories renders the shared category catalog.
func Categories(th Theme, categories []core.Category) string {
	var b strings.Builder
	b.WriteString(th.Title.Render("Categories") + "\n")
	if len(categories) == 0 {
		b.WriteString(th.Muted.Render("No categories defined") + "\n")
		return b.String()
	}
	b.WriteString(th.Label.Render(fmt.Sprintf("  %4s %-24s %-12s", "ID", "Name", "Type")) + "\n")
	for _, c := range categories {
		b.WriteString(fmt.Sprintf("  %4d %-24s %-12s\n", c.ID, c.Name, c.Type))
	}
	return b.String()
}

// Accounts renders the account list.
func Accounts(th Theme, accounts []core.Account) string {
	var b strings.Builder
	b.WriteString(th.Title.Render("Accounts") + "\n")
	if len(accounts) == 0 {
		b.WriteString(th.Muted.Render("No accounts yet") + "\n")
		return b.String()
	}
	b.WriteString(th.Label.Render(fmt.Sprintf("  %4s %-24s %-12s %12s", "ID", "Name", "Type", "Balance")) + "\n")
	for _, a := range accounts {
		b.WriteString(fmt.Sprintf("  %4d %-24s %-12s %12s\n",
			a.ID, a.Name, a.Type, core.FormatAmount(a.Balance)))
	}
	return b.String()
}

// Transactions renders the transaction list with resolved names.
func Transactions(th Theme, snap *state.Snapshot) string {
	var b strings.Builder
	b.WriteString(th.Title.Render("Transactions") + "\n")
	if len(snap.Transactions) == 0 {
		b.WriteString(th.Muted.Render("No transactions yet") + "\n")
		return b.String()
	}
	b.WriteString(th.Label.Render(fmt.Sprintf("  %4s %-10s %-18s %-18s %12s  %s",
		"ID", "Date", "Account", "Category", "Amount", "Description")) + "\n")
	for _, t := range snap.Transactions {
		amount := core.FormatAmount(t.Amount)
		if t.Amount.IsNegative() {
			amount = th.Spend.Render(amount)
		} else {
			amount = th.Income.Render(amount)
		}
		b.WriteString(fmt.Sprintf("  %4d %-10s %-18s %-18s %12s  %s\n",
			t.ID, t.Date.ISO(), snap.AccountName(t.AccountID),
			snap.CategoryName(t.CategoryID), amount, t.Description))
	}
	return b.String()
}

// Budgets renders the budget list with resolved category names.
func Budgets(th Theme, snap *state.Snapshot) string {
	var b strings.Builder
	b.WriteString(th.Title.Render("Budgets") + "\n")
	if len(snap.Budgets) == 0 {
		b.WriteString(th.Muted.Render("No budgets yet") + "\n")
		return b.String()
	}
	b.WriteString(th.Label.Render(fmt.Sprintf("  %4s %-24s %12s %7s %6s", "ID", "Category", "Limit", "Month", "Year")) + "\n")
	for _, bd := range snap.Budgets {
		b.WriteString(fmt.Sprintf("  %4d %-24s %12s %7d %6d\n",
			bd.ID, snap.CategoryName(bd.CategoryID), core.FormatAmount(bd.Limit), bd.Month, bd.Year))
	}
	return b.String()
}

// Whoami renders the session header line.
func Whoami(th Theme, user core.User, now time.Time) string {
	return th.Title.Render(user.FullName()) + "  " +
		lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf("User id %d  %s  %s",
			user.ID, user.Email, now.Format("2006-01-02")))
}
