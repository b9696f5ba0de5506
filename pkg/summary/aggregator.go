package summary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fintrack/fintrack/internal/apperrors"
	"github.com/fintrack/fintrack/pkg/budget"
	"github.com/fintrack/fintrack/pkg/transaction"
	log "github.com/sirupsen/logrus"
)

// BudgetLookup returns the owner's budget for the period or nil when there is none.
type BudgetLookup func(ctx context.Context, userId int, month int, year int) (*budget.Budget, error)

// BudgetUpsert creates the budget or replaces the categories of the stored one, keeping its total.
type BudgetUpsert func(ctx context.Context, userId int, b budget.Budget) (budget.Budget, error)

// ComputeSummary aggregates the owner's transactions as of asOf and persists the recomputed
// budget categories. transactions must cover at least the TrendMonths months ending with asOf's
// month. Any store failure aborts the computation.
func ComputeSummary(
	ctx context.Context,
	owner int,
	asOf time.Time,
	transactions []transaction.Transaction,
	lookup BudgetLookup,
	upsert BudgetUpsert,
) (Summary, error) {
	if owner == 0 {
		return Summary{}, fmt.Errorf("failed to compute summary: %w", apperrors.ErrUnauthorized)
	}

	income, expenses := Totals(transactions, MonthStart(asOf), asOf)
	balance := income.Sub(expenses)

	month, year := budget.PeriodOf(asOf)
	current, err := resolveBudget(ctx, owner, month, year, lookup, upsert)
	if err != nil {
		return Summary{}, err
	}

	trend := Trend(transactions, asOf)

	current.Categories = DeriveCategories(balance, expenses, current.Total)
	if _, err := upsert(ctx, owner, current); err != nil {
		return Summary{}, fmt.Errorf("failed to save budget categories: %w", err)
	}

	return Summary{
		CurrentBalance: balance,
		TotalIncome:    income,
		TotalExpenses:  expenses,
		MonthlyData:    trend,
		BudgetBreakdown: Breakdown{
			Total:      current.Total,
			Categories: current.Categories,
		},
	}, nil
}

// resolveBudget finds the period's budget, creating an empty one when missing. A conflict while
// creating means another request created it first, so the lookup is repeated once.
func resolveBudget(ctx context.Context, owner, month, year int, lookup BudgetLookup, upsert BudgetUpsert) (budget.Budget, error) {
	found, err := lookup(ctx, owner, month, year)
	if err != nil {
		return budget.Budget{}, fmt.Errorf("failed to look up budget: %w", err)
	}
	if found != nil {
		return *found, nil
	}

	log.Debugf("creating budget for %d/%d of user %d", month+1, year, owner)
	created, err := upsert(ctx, owner, budget.NewEmpty(owner, month, year))
	if err == nil {
		return created, nil
	}
	if !errors.Is(err, apperrors.ErrConflict) {
		return budget.Budget{}, fmt.Errorf("failed to create budget: %w", err)
	}

	log.Debugf("budget for %d/%d of user %d created concurrently, looking it up again", month+1, year, owner)
	found, err = lookup(ctx, owner, month, year)
	if err != nil {
		return budget.Budget{}, fmt.Errorf("failed to look up budget: %w", err)
	}
	if found == nil {
		return budget.Budget{}, apperrors.NewStoreError("resolve budget", apperrors.ErrConflict)
	}
	return *found, nil
}
