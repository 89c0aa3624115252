// Package report computes the dashboard views: overall totals, per-category
// spend ranking, and budget-vs-actual rows for a resolved period.
//
// All three are pure functions over the snapshot's transactions and budgets.
// The transaction amount's sign is the sole income/expense discriminator;
// the category's income/expense label is never consulted.
package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

// Totals are the whole-snapshot income and expense sums. They are not
// period-filtered: every transaction contributes regardless of date.
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
}

// ComputeTotals sums non-negative amounts into Income and the absolute
// value of negative amounts into Expense. Net is always exactly
// Income - Expense.
func ComputeTotals(txs []core.Transaction) Totals {
	income := decimal.Zero
	expense := decimal.Zero
	for _, t := range txs {
		if t.Amount.IsNegative() {
			expense = expense.Add(t.Amount.Abs())
		} else {
			income = income.Add(t.Amount)
		}
	}
	return Totals{
		Income:  income,
		Expense: expense,
		Net:     income.Sub(expense),
	}
}

// CategorySpend is one spend-ranking bucket.
type CategorySpend struct {
	CategoryID int
	Total      decimal.Decimal
}

// SpendRanking groups negative-amount transactions by category, summing
// absolute values, ordered descending by total. Ties keep the order in
// which categories were first encountered. An empty result is a valid
// state, not an error.
func SpendRanking(txs []core.Transaction) []CategorySpend {
	totals := make(map[int]decimal.Decimal)
	var order []int
	for _, t := range txs {
		if !t.Amount.IsNegative() {
			continue
		}
		if _, seen := totals[t.CategoryID]; !seen {
			order = append(order, t.CategoryID)
		}
		totals[t.CategoryID] = totals[t.CategoryID].Add(t.Amount.Abs())
	}

	ranking := make([]CategorySpend, 0, len(order))
	for _, id := range order {
		ranking = append(ranking, CategorySpend{CategoryID: id, Total: totals[id]})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Total.GreaterThan(ranking[j].Total)
	})
	return ranking
}

// BudgetRow is one budget-vs-actual comparison.
type BudgetRow struct {
	Budget    core.Budget
	Spent     decimal.Decimal
	Remaining decimal.Decimal // limit - spent; negative signals overspend
}

// BudgetRows compares each budget targeting the period against the
// period's actual spend per category. Budgets for other periods are
// excluded entirely. Remaining is never clamped. Duplicate budgets for
// one category each produce their own row.
func BudgetRows(budgets []core.Budget, txs []core.Transaction, period core.Period) []BudgetRow {
	spentByCategory := make(map[int]decimal.Decimal)
	for _, t := range txs {
		if t.Amount.IsNegative() && t.Date.In(period) {
			spentByCategory[t.CategoryID] = spentByCategory[t.CategoryID].Add(t.Amount.Abs())
		}
	}

	var rows []BudgetRow
	for _, b := range budgets {
		if !b.Covers(period) {
			continue
		}
		spent := spentByCategory[b.CategoryID]
		rows = append(rows, BudgetRow{
			Budget:    b,
			Spent:     spent,
			Remaining: b.Limit.Sub(spent),
		})
	}
	return rows
}
