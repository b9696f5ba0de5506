package event_bus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fintrack/fintrack/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_PublishStampsEventsFromTheClock(t *testing.T) {
	// given
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	bus := NewEventBus(utils.NewMockClock(now))
	var stamped []time.Time
	bus.Subscribe("test", func(e Event) error {
		stamped = append(stamped, e.Timestamp)
		return nil
	})
	earlier := NewEvent(context.Background(), "test", nil)
	earlier.Timestamp = now.Add(-time.Hour)

	// when
	require.NoError(t, bus.Publish(NewEvent(context.Background(), "test", nil)))
	require.NoError(t, bus.Publish(earlier))

	// then
	assert.Equal(t, []time.Time{now, now.Add(-time.Hour)}, stamped)
}

func TestEventBus_PublishRunsHandlersInSubscriptionOrder(t *testing.T) {
	// given
	bus := NewEventBus(utils.SystemClock{})
	var calls []int
	for i := 1; i <= 5; i++ {
		bus.Subscribe("test", func(e Event) error {
			calls = append(calls, i)
			return nil
		})
	}

	// when
	err := bus.Publish(NewEvent(context.Background(), "test", nil))

	// then
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, calls)
}

func TestEventBus_Unsubscribe(t *testing.T) {
	bus := NewEventBus(utils.SystemClock{})
	called := 0
	unsubscribe := bus.Subscribe("test", func(e Event) error {
		called++
		return nil
	})

	unsubscribe()
	require.NoError(t, bus.Publish(NewEvent(context.Background(), "test", nil)))

	assert.Zero(t, called)
}

func TestEventBus_CollectsHandlerErrorsAndPanics(t *testing.T) {
	// given
	bus := NewEventBus(utils.SystemClock{})
	failure := errors.New("handler failed")
	reached := false
	bus.Subscribe("test", func(e Event) error { return failure })
	bus.Subscribe("test", func(e Event) error { panic("boom") })
	bus.Subscribe("test", func(e Event) error {
		reached = true
		return nil
	})

	// when
	err := bus.Publish(NewEvent(context.Background(), "test", nil))

	// then
	assert.ErrorIs(t, err, failure)
	assert.Contains(t, err.Error(), "panicked")
	assert.True(t, reached)
}

func TestEventBus_CancelledContext(t *testing.T) {
	bus := NewEventBus(utils.SystemClock{})
	called := false
	bus.Subscribe("test", func(e Event) error {
		called = true
		return nil
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := bus.Publish(NewEvent(ctx, "test", nil))

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestSubscribeTyped(t *testing.T) {
	// given
	bus := NewEventBus(utils.SystemClock{})
	var received []TransactionAdded
	SubscribeTyped(bus, TransactionAddedEvent, func(e EventT[TransactionAdded]) error {
		received = append(received, e.Data)
		return nil
	})

	// when
	require.NoError(t, bus.Publish(NewEvent(context.Background(), TransactionAddedEvent, TransactionAdded{TransactionId: 1, Kind: "income"})))
	require.NoError(t, bus.Publish(NewEvent(context.Background(), TransactionAddedEvent, "unexpected payload")))

	// then
	require.Len(t, received, 1)
	assert.Equal(t, 1, received[0].TransactionId)
}
