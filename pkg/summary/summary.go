package summary

import (
	"time"

	"github.com/fintrack/fintrack/pkg/budget"
	"github.com/fintrack/fintrack/pkg/transaction"
	"github.com/shopspring/decimal"
)

// TrendMonths is the number of calendar months in the monthly trend, the current one included.
const TrendMonths = 6

var savingsRate = decimal.RequireFromString("0.4")

type MonthlyPoint struct {
	Label string
	Month time.Month
	Year  int
	Net   decimal.Decimal
}

type Breakdown struct {
	Total      decimal.Decimal
	Categories []budget.Category
}

type Summary struct {
	CurrentBalance  decimal.Decimal
	TotalIncome     decimal.Decimal
	TotalExpenses   decimal.Decimal
	MonthlyData     []MonthlyPoint
	BudgetBreakdown Breakdown
}

// MonthStart returns the first instant of t's month in t's location.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// MonthEnd returns the last instant of t's month in t's location.
func MonthEnd(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// Totals sums income and expenses of the transactions with from <= occurred-at <= to.
func Totals(transactions []transaction.Transaction, from time.Time, to time.Time) (income decimal.Decimal, expenses decimal.Decimal) {
	income, expenses = decimal.Zero, decimal.Zero
	for _, t := range transactions {
		if t.OccurredAt.Before(from) || t.OccurredAt.After(to) {
			continue
		}
		switch t.Kind {
		case transaction.Income:
			income = income.Add(t.Amount)
		case transaction.Expense:
			expenses = expenses.Add(t.Amount)
		}
	}
	return income, expenses
}

// Trend returns the net value of each of the TrendMonths calendar months ending with asOf's month,
// oldest first.
func Trend(transactions []transaction.Transaction, asOf time.Time) []MonthlyPoint {
	current := MonthStart(asOf)
	points := make([]MonthlyPoint, 0, TrendMonths)
	for i := TrendMonths - 1; i >= 0; i-- {
		start := current.AddDate(0, -i, 0)
		income, expenses := Totals(transactions, start, MonthEnd(start))
		points = append(points, MonthlyPoint{
			Label: MonthLabel(start.Month()),
			Month: start.Month(),
			Year:  start.Year(),
			Net:   income.Sub(expenses),
		})
	}
	return points
}

// MonthLabel returns the three-letter English abbreviation of m, independent of locale.
func MonthLabel(m time.Month) string {
	return m.String()[:3]
}

// DeriveCategories splits the budget into savings (40% of a positive balance), expenses and
// what is left of the total. Negative results are reported as zero.
func DeriveCategories(balance decimal.Decimal, expenses decimal.Decimal, total decimal.Decimal) []budget.Category {
	savings := decimal.Max(decimal.Zero, balance.Mul(savingsRate))
	leftInBudget := decimal.Max(decimal.Zero, total.Sub(expenses))
	return []budget.Category{
		{Name: budget.SavingsCategory, Amount: savings, Color: budget.SavingsColor},
		{Name: budget.ExpensesCategory, Amount: expenses, Color: budget.ExpensesColor},
		{Name: budget.LeftInBudgetCategory, Amount: leftInBudget, Color: budget.LeftInBudgetColor},
	}
}
