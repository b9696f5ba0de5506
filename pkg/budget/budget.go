package budget

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	SavingsCategory      = "Savings"
	ExpensesCategory     = "Expenses"
	LeftInBudgetCategory = "Left in budget"

	SavingsColor      = "#10B981"
	ExpensesColor     = "#6366F1"
	LeftInBudgetColor = "#F59E0B"
)

// Budget is the monthly budget of one user. Month is zero-based (January is 0).
type Budget struct {
	Id         int
	UserId     int
	Month      int
	Year       int
	Total      decimal.Decimal
	Categories []Category
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Category struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	Color  string          `json:"color"`
}

// DefaultCategories returns the three categories every budget starts with, all at zero.
func DefaultCategories() []Category {
	return []Category{
		{Name: SavingsCategory, Amount: decimal.Zero, Color: SavingsColor},
		{Name: ExpensesCategory, Amount: decimal.Zero, Color: ExpensesColor},
		{Name: LeftInBudgetCategory, Amount: decimal.Zero, Color: LeftInBudgetColor},
	}
}

// PeriodOf returns the zero-based month and the year t falls into, in t's location.
func PeriodOf(t time.Time) (month int, year int) {
	return int(t.Month()) - 1, t.Year()
}

// NewEmpty returns an unsaved budget for the given period with a zero total and default categories.
func NewEmpty(userId, month, year int) Budget {
	return Budget{
		UserId:     userId,
		Month:      month,
		Year:       year,
		Total:      decimal.Zero,
		Categories: DefaultCategories(),
	}
}
