package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrors(t *testing.T) {
	t.Run("no errors collected yields nil", func(t *testing.T) {
		var ve ValidationErrors
		assert.NoError(t, ve.ErrOrNil())
	})

	t.Run("collected errors are joined and recognised", func(t *testing.T) {
		var ve ValidationErrors
		ve.Add("amount", "must not be negative")
		ve.Add("kind", "must be income or expense")

		err := fmt.Errorf("adding transaction: %w", ve.ErrOrNil())

		assert.True(t, IsValidationError(err))
		assert.Contains(t, err.Error(), "amount: must not be negative")
		assert.Contains(t, err.Error(), "kind: must be income or expense")
	})

	t.Run("single validation error is recognised", func(t *testing.T) {
		err := fmt.Errorf("wrapped: %w", NewValidationError("total", "must not be negative"))
		assert.True(t, IsValidationError(err))
		assert.False(t, IsStoreError(err))
	})
}

func TestStoreError(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("summary: %w", NewStoreError("upsert budget", cause))

	assert.True(t, IsStoreError(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "store: upsert budget: connection reset")
}

func TestStoreError_WrapsConflict(t *testing.T) {
	err := NewStoreError("create user", ErrConflict)

	assert.ErrorIs(t, err, ErrConflict)
}
