package summary

import (
	"context"
	"fmt"
	"time"

	"github.com/fintrack/fintrack/internal/apperrors"
	"github.com/fintrack/fintrack/internal/utils"
	"github.com/fintrack/fintrack/pkg/budget"
	"github.com/fintrack/fintrack/pkg/transaction"
	"github.com/fintrack/fintrack/pkg/user"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	// GetSummary computes the current user's summary as of asOf. A zero asOf means now.
	GetSummary(ctx context.Context, asOf time.Time) (Summary, error)
}

type ServiceImpl struct {
	transactions transaction.Repository
	budgets      budget.Repository
	clock        utils.Clock
}

func NewService(transactions transaction.Repository, budgets budget.Repository, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{
		transactions: transactions,
		budgets:      budgets,
		clock:        clock,
	}
}

func (s *ServiceImpl) GetSummary(ctx context.Context, asOf time.Time) (Summary, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to get current user: %w", apperrors.ErrUnauthorized)
	}
	if asOf.IsZero() {
		asOf = s.clock.Now().UTC()
	}

	from := MonthStart(asOf).AddDate(0, -(TrendMonths - 1), 0)
	to := MonthEnd(asOf)
	transactions, err := s.transactions.FindBetween(ctx, userId, from, to)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to load transactions: %w", err)
	}
	log.Tracef("computing summary of user %d from %d transactions", userId, len(transactions))

	return ComputeSummary(ctx, userId, asOf, transactions, s.budgets.FindOne, s.budgets.Upsert)
}
