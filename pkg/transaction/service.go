package transaction

import (
	"context"
	"fmt"

	"github.com/fintrack/fintrack/internal/apperrors"
	"github.com/fintrack/fintrack/internal/event_bus"
	"github.com/fintrack/fintrack/pkg/user"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultRecentLimit = 10
	MaxRecentLimit     = 100
)

type Service interface {
	AddTransaction(ctx context.Context, fields NewTransaction) (Transaction, error)
	// ListRecent returns up to limit transactions, most recent first. A limit <= 0 means DefaultRecentLimit.
	ListRecent(ctx context.Context, limit int) ([]Transaction, error)
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus}
}

func (s *ServiceImpl) AddTransaction(ctx context.Context, fields NewTransaction) (Transaction, error) {
	userId, err := currentUserId(ctx)
	if err != nil {
		return Transaction{}, err
	}

	t, err := fields.Validate()
	if err != nil {
		log.Debugf("rejected transaction: %v", err)
		return Transaction{}, err
	}

	stored, err := s.repo.Store(ctx, userId, t)
	if err != nil {
		return Transaction{}, err
	}
	log.Debugf("stored %s transaction %d for user %d", stored.Kind, stored.Id, userId)

	// publish failures are logged only, the transaction is already stored
	err = s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.TransactionAddedEvent, event_bus.TransactionAdded{
		UserId:        userId,
		TransactionId: stored.Id,
		Kind:          string(stored.Kind),
		Category:      stored.Category,
		Amount:        stored.Amount,
		OccurredAt:    stored.OccurredAt,
	}))
	if err != nil {
		log.Errorf("failed to publish transaction added event: %v", err)
	}
	return stored, nil
}

func (s *ServiceImpl) ListRecent(ctx context.Context, limit int) ([]Transaction, error) {
	userId, err := currentUserId(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.FindRecent(ctx, userId, NormalizeLimit(limit))
}

func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		return MaxRecentLimit
	}
	return limit
}

func currentUserId(ctx context.Context) (int, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get current user: %w", apperrors.ErrUnauthorized)
	}
	return userId, nil
}
