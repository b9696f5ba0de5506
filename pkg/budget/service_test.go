package budget

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fintrack/fintrack/internal/apperrors"
	"github.com/fintrack/fintrack/internal/event_bus"
	"github.com/fintrack/fintrack/internal/utils"
	"github.com/fintrack/fintrack/pkg/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var repoStub = NewRepositoryStub()
var eventBus = event_bus.NewEventBus(utils.SystemClock{})

const ownerId = 3

var march2024 = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

func setup(t *testing.T) (context.Context, Service, func()) {
	ctx := user.WithUser(context.Background(), user.User{Id: ownerId})
	service := NewService(repoStub, eventBus)
	return ctx, service, func() {
		t.Log("Teardown after test")
		repoStub.Reset()
	}
}

func TestServiceImpl_UpdateTotal(t *testing.T) {
	t.Run("should create the budget with default categories", func(t *testing.T) {
		ctx, service, teardown := setup(t)
		defer teardown()

		// when
		updated, err := service.UpdateTotal(ctx, march2024, decimal.NewFromInt(2000))

		// then
		require.NoError(t, err)
		assert.Equal(t, 2, updated.Month)
		assert.Equal(t, 2024, updated.Year)
		assert.True(t, decimal.NewFromInt(2000).Equal(updated.Total))
		assert.Len(t, updated.Categories, 3)
		assert.Equal(t, 1, repoStub.Count(ownerId))
	})

	t.Run("should only change the total of an existing budget", func(t *testing.T) {
		ctx, service, teardown := setup(t)
		defer teardown()
		existing := NewEmpty(ownerId, 2, 2024)
		existing.Categories[1].Amount = decimal.NewFromInt(300)
		_, err := repoStub.Upsert(ctx, ownerId, existing)
		require.NoError(t, err)

		// when
		updated, err := service.UpdateTotal(ctx, march2024, decimal.NewFromInt(500))

		// then
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(500).Equal(updated.Total))
		assert.True(t, decimal.NewFromInt(300).Equal(updated.Categories[1].Amount))
		assert.Equal(t, 1, repoStub.Count(ownerId))
	})

	t.Run("should publish the new total", func(t *testing.T) {
		ctx, service, teardown := setup(t)
		defer teardown()
		var published []event_bus.BudgetTotalUpdated
		unsubscribe := event_bus.SubscribeTyped(eventBus, event_bus.BudgetTotalUpdatedEvent,
			func(e event_bus.EventT[event_bus.BudgetTotalUpdated]) error {
				published = append(published, e.Data)
				return nil
			})
		defer unsubscribe()

		// when
		_, err := service.UpdateTotal(ctx, march2024, decimal.NewFromInt(750))

		// then
		require.NoError(t, err)
		require.Len(t, published, 1)
		assert.Equal(t, 2, published[0].Month)
		assert.True(t, decimal.NewFromInt(750).Equal(published[0].Total))
	})

	t.Run("should reject a negative total", func(t *testing.T) {
		ctx, service, teardown := setup(t)
		defer teardown()

		// when
		_, err := service.UpdateTotal(ctx, march2024, decimal.NewFromInt(-1))

		// then
		assert.True(t, apperrors.IsValidationError(err))
		assert.Equal(t, 0, repoStub.Count(ownerId))
	})

	for _, total := range []string{"1000000000000", "10.005"} {
		t.Run(fmt.Sprintf("should reject total %s outside the stored precision", total), func(t *testing.T) {
			ctx, service, teardown := setup(t)
			defer teardown()

			// when
			_, err := service.UpdateTotal(ctx, march2024, decimal.RequireFromString(total))

			// then
			assert.True(t, apperrors.IsValidationError(err))
			assert.Equal(t, 0, repoStub.Count(ownerId))
		})
	}

	t.Run("should fail without an owner", func(t *testing.T) {
		_, service, teardown := setup(t)
		defer teardown()

		// when
		_, err := service.UpdateTotal(context.Background(), march2024, decimal.NewFromInt(10))

		// then
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("should propagate store failures", func(t *testing.T) {
		ctx, service, teardown := setup(t)
		defer teardown()
		repoStub.FailUpsertWith(apperrors.NewStoreError("update budget total", errors.New("timeout")))

		// when
		_, err := service.UpdateTotal(ctx, march2024, decimal.NewFromInt(10))

		// then
		assert.True(t, apperrors.IsStoreError(err))
	})
}
