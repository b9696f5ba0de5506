package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/fintrack/fintrack/internal/apperrors"
	"github.com/fintrack/fintrack/internal/event_bus"
	"github.com/fintrack/fintrack/internal/money"
	"github.com/fintrack/fintrack/pkg/user"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	// UpdateTotal sets the total of the budget for the month asOf falls into. Categories are not recomputed.
	UpdateTotal(ctx context.Context, asOf time.Time, total decimal.Decimal) (Budget, error)
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus}
}

func (s *ServiceImpl) UpdateTotal(ctx context.Context, asOf time.Time, total decimal.Decimal) (Budget, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Budget{}, fmt.Errorf("failed to get current user: %w", apperrors.ErrUnauthorized)
	}
	if total.IsNegative() {
		return Budget{}, apperrors.NewValidationError("total", "must not be negative")
	}
	if err := money.Check(total); err != nil {
		return Budget{}, apperrors.NewValidationError("total", err.Error())
	}

	month, year := PeriodOf(asOf)
	updated, err := s.repo.UpsertTotal(ctx, userId, month, year, total)
	if err != nil {
		return Budget{}, err
	}
	log.Debugf("budget total for %d/%d of user %d set to %s", month+1, year, userId, total)

	err = s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.BudgetTotalUpdatedEvent, event_bus.BudgetTotalUpdated{
		UserId: userId,
		Month:  updated.Month,
		Year:   updated.Year,
		Total:  updated.Total,
	}))
	if err != nil {
		log.Errorf("failed to publish budget total updated event: %v", err)
	}
	return updated, nil
}
