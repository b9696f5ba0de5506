package summary

import (
	"testing"
	"time"

	"github.com/fintrack/fintrack/pkg/budget"
	"github.com/fintrack/fintrack/pkg/transaction"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(date string, kind transaction.Kind, amount string) transaction.Transaction {
	occurredAt, err := transaction.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return transaction.Transaction{
		Description: "test",
		Category:    "test",
		Amount:      decimal.RequireFromString(amount),
		OccurredAt:  occurredAt,
		Kind:        kind,
	}
}

func amounts(categories []budget.Category) []float64 {
	result := make([]float64, 0, len(categories))
	for _, c := range categories {
		result = append(result, c.Amount.InexactFloat64())
	}
	return result
}

func TestMonthBoundaries(t *testing.T) {
	asOf := time.Date(2024, time.February, 10, 15, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), MonthStart(asOf))
	assert.Equal(t, time.Date(2024, time.February, 29, 23, 59, 59, 999999999, time.UTC), MonthEnd(asOf))
}

func TestTotals(t *testing.T) {
	transactions := []transaction.Transaction{
		tx("2024-02-29T23:59:59Z", transaction.Income, "50"),
		tx("2024-03-01", transaction.Income, "1000"),
		tx("2024-03-10", transaction.Expense, "300"),
		tx("2024-03-15T00:00:00Z", transaction.Expense, "20"),
		tx("2024-03-16", transaction.Expense, "999"),
	}
	from := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	income, expenses := Totals(transactions, from, to)

	assert.True(t, decimal.NewFromInt(1000).Equal(income))
	assert.True(t, decimal.NewFromInt(320).Equal(expenses), "both window ends are inclusive")
}

func TestTotals_EmptyWindow(t *testing.T) {
	now := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	income, expenses := Totals(nil, MonthStart(now), now)

	assert.True(t, income.IsZero())
	assert.True(t, expenses.IsZero())
}

func TestTrend(t *testing.T) {
	t.Run("should cover six months ending with the reference month", func(t *testing.T) {
		transactions := []transaction.Transaction{
			tx("2023-10-05", transaction.Income, "100"),
			tx("2024-01-31T23:59:59Z", transaction.Expense, "40"),
			tx("2024-03-01", transaction.Income, "1000"),
			tx("2024-03-10", transaction.Expense, "300"),
			tx("2024-03-31", transaction.Expense, "50"),
		}

		trend := Trend(transactions, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC))

		require.Len(t, trend, TrendMonths)
		labels := make([]string, 0, len(trend))
		nets := make([]float64, 0, len(trend))
		for _, p := range trend {
			labels = append(labels, p.Label)
			nets = append(nets, p.Net.InexactFloat64())
		}
		assert.Equal(t, []string{"Oct", "Nov", "Dec", "Jan", "Feb", "Mar"}, labels)
		assert.Equal(t, []float64{100, 0, 0, -40, 0, 650}, nets)
	})

	t.Run("should roll over the year", func(t *testing.T) {
		trend := Trend(nil, time.Date(2024, time.February, 29, 12, 0, 0, 0, time.UTC))

		require.Len(t, trend, TrendMonths)
		assert.Equal(t, time.September, trend[0].Month)
		assert.Equal(t, 2023, trend[0].Year)
		assert.Equal(t, time.February, trend[5].Month)
		assert.Equal(t, 2024, trend[5].Year)
		for i := 1; i < len(trend); i++ {
			prev := time.Date(trend[i-1].Year, trend[i-1].Month, 1, 0, 0, 0, 0, time.UTC)
			curr := time.Date(trend[i].Year, trend[i].Month, 1, 0, 0, 0, 0, time.UTC)
			assert.Equal(t, prev.AddDate(0, 1, 0), curr)
		}
	})

	t.Run("should not skip months when the reference day does not exist in earlier months", func(t *testing.T) {
		trend := Trend(nil, time.Date(2024, time.August, 31, 0, 0, 0, 0, time.UTC))

		labels := make([]string, 0, len(trend))
		for _, p := range trend {
			labels = append(labels, p.Label)
		}
		assert.Equal(t, []string{"Mar", "Apr", "May", "Jun", "Jul", "Aug"}, labels)
	})
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "Jan", MonthLabel(time.January))
	assert.Equal(t, "Sep", MonthLabel(time.September))
	assert.Equal(t, "Dec", MonthLabel(time.December))
}

func TestDeriveCategories(t *testing.T) {
	tests := []struct {
		name     string
		balance  string
		expenses string
		total    string
		want     []float64
	}{
		{"savings are 40% of the balance", "700", "300", "0", []float64{280, 300, 0}},
		{"left in budget is the remaining total", "700", "300", "2000", []float64{280, 300, 1700}},
		{"negative balance means no savings", "-200", "500", "300", []float64{0, 500, 0}},
		{"overspent budget leaves nothing", "100", "900", "500", []float64{40, 900, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			categories := DeriveCategories(
				decimal.RequireFromString(tt.balance),
				decimal.RequireFromString(tt.expenses),
				decimal.RequireFromString(tt.total),
			)

			require.Len(t, categories, 3)
			assert.Equal(t, tt.want, amounts(categories))
			assert.Equal(t, budget.SavingsCategory, categories[0].Name)
			assert.Equal(t, budget.ExpensesColor, categories[1].Color)
			assert.Equal(t, budget.LeftInBudgetCategory, categories[2].Name)
		})
	}
}
