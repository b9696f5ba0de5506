package database

import (
	"errors"

	"github.com/fintrack/fintrack/internal/apperrors"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// StoreError wraps a pgx failure into an apperrors.StoreError. Unique constraint violations are
// reported as apperrors.ErrConflict so callers can match them with errors.Is.
func StoreError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return apperrors.NewStoreError(op, apperrors.ErrConflict)
	}
	return apperrors.NewStoreError(op, err)
}
