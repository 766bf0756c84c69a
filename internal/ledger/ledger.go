// Package ledger computes balances, period reports and statistics over a
// user's operations.
package ledger

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/finance-bot/internal/models"
)

// Summary holds totals and per-category sums for a set of operations.
type Summary struct {
	TotalIncome       decimal.Decimal
	TotalExpense      decimal.Decimal
	IncomeByCategory  map[string]decimal.Decimal
	ExpenseByCategory map[string]decimal.Decimal
	Count             int
}

// Balance is income minus expense.
func (s Summary) Balance() decimal.Decimal {
	return s.TotalIncome.Sub(s.TotalExpense)
}

// Empty reports whether the summary covers no operations.
func (s Summary) Empty() bool {
	return s.Count == 0
}

// Summarize accumulates operations by kind and category. No rounding is applied.
func Summarize(ops []models.Operation) Summary {
	s := Summary{
		IncomeByCategory:  map[string]decimal.Decimal{},
		ExpenseByCategory: map[string]decimal.Decimal{},
	}
	for _, op := range ops {
		switch op.Kind {
		case models.KindIncome:
			s.TotalIncome = s.TotalIncome.Add(op.Amount)
			s.IncomeByCategory[op.Category] = s.IncomeByCategory[op.Category].Add(op.Amount)
		case models.KindExpense:
			s.TotalExpense = s.TotalExpense.Add(op.Amount)
			s.ExpenseByCategory[op.Category] = s.ExpenseByCategory[op.Category].Add(op.Amount)
		default:
			continue
		}
		s.Count++
	}
	return s
}

// CategoryStat is the sum and count of one category.
type CategoryStat struct {
	Category string
	Total    decimal.Decimal
	Count    int
}

// Stats extends Summary with per-category counts sorted by descending sum.
type Stats struct {
	Summary
	Income  []CategoryStat
	Expense []CategoryStat
}

// Statistics computes full statistics for ops.
func Statistics(ops []models.Operation) Stats {
	st := Stats{Summary: Summarize(ops)}

	counts := map[models.OperationKind]map[string]int{
		models.KindIncome:  {},
		models.KindExpense: {},
	}
	for _, op := range ops {
		if c, ok := counts[op.Kind]; ok {
			c[op.Category]++
		}
	}

	st.Income = ranked(st.IncomeByCategory, counts[models.KindIncome])
	st.Expense = ranked(st.ExpenseByCategory, counts[models.KindExpense])
	return st
}

// Top returns at most n leading categories of list.
func Top(list []CategoryStat, n int) []CategoryStat {
	if len(list) <= n {
		return list
	}
	return list[:n]
}

// Rank orders category sums by descending total.
func Rank(sums map[string]decimal.Decimal) []CategoryStat {
	return ranked(sums, nil)
}

func ranked(sums map[string]decimal.Decimal, counts map[string]int) []CategoryStat {
	out := make([]CategoryStat, 0, len(sums))
	for cat, total := range sums {
		out = append(out, CategoryStat{Category: cat, Total: total, Count: counts[cat]})
	}
	// Ties broken by name so output is deterministic.
	slices.SortFunc(out, func(a, b CategoryStat) int {
		if c := b.Total.Cmp(a.Total); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	return out
}

// FormatMoney renders an amount rounded to two places with the currency symbol.
func FormatMoney(amount decimal.Decimal, currency string) string {
	return amount.StringFixed(2) + " " + models.CurrencySymbol(currency)
}
