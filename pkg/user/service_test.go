package user

import (
	"context"
	"testing"

	"github.com/fintrack/fintrack/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var repoStub = NewStubUserRepository()

func setup(t *testing.T) (Service, func()) {
	service := NewUserService(repoStub)
	return service, func() {
		t.Log("Teardown after test")
		repoStub.Reset()
	}
}

func TestServiceImpl_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("should register a user with a hashed password", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		// when
		u, err := service.Register(ctx, " Jane ", "Jane@Example.com", "correct horse")

		// then
		require.NoError(t, err)
		assert.NotZero(t, u.Id)
		assert.NotEmpty(t, u.Uid)
		assert.Equal(t, "Jane", u.Name)
		assert.Equal(t, "jane@example.com", u.Email)
		assert.NotEqual(t, "correct horse", u.PasswordHash)
	})

	t.Run("should reject invalid input with a validation error", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		// when
		_, err := service.Register(ctx, "", "not-an-email", "short")

		// then
		require.Error(t, err)
		assert.True(t, apperrors.IsValidationError(err))
		assert.Contains(t, err.Error(), "name")
		assert.Contains(t, err.Error(), "email")
		assert.Contains(t, err.Error(), "password")
	})

	t.Run("should report a duplicate email as a conflict", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()
		_, err := service.Register(ctx, "Jane", "jane@example.com", "correct horse")
		require.NoError(t, err)

		// when
		_, err = service.Register(ctx, "Other Jane", "JANE@example.com", "another password")

		// then
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})
}

func TestServiceImpl_Authenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("should authenticate with correct credentials", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()
		registered, err := service.Register(ctx, "Jane", "jane@example.com", "correct horse")
		require.NoError(t, err)

		// when
		u, err := service.Authenticate(ctx, "jane@example.com", "correct horse")

		// then
		require.NoError(t, err)
		assert.Equal(t, registered.Uid, u.Uid)
	})

	t.Run("should reject a wrong password", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()
		_, err := service.Register(ctx, "Jane", "jane@example.com", "correct horse")
		require.NoError(t, err)

		// when
		_, err = service.Authenticate(ctx, "jane@example.com", "battery staple")

		// then
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	})

	t.Run("should reject an unknown email", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		// when
		_, err := service.Authenticate(ctx, "nobody@example.com", "whatever1")

		// then
		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	})
}

func TestServiceImpl_GetCurrentUser(t *testing.T) {
	t.Run("should return the user stored in context", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()
		registered, err := service.Register(context.Background(), "Jane", "jane@example.com", "correct horse")
		require.NoError(t, err)

		// when
		u, err := service.GetCurrentUser(WithUser(context.Background(), registered))

		// then
		require.NoError(t, err)
		assert.Equal(t, registered.Email, u.Email)
	})

	t.Run("should return error when context has no user", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		// when
		_, err := service.GetCurrentUser(context.Background())

		// then
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
		assert.Contains(t, err.Error(), "failed to get current user")
	})
}
