package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnauthenticated is returned when a credential cannot be resolved to a user.
	ErrUnauthenticated = errors.New("user not authenticated")
	// ErrUnauthorized is returned when an operation is invoked without an owner.
	ErrUnauthorized = errors.New("owner is missing or cannot be resolved")
	// ErrConflict is returned when a uniqueness constraint rejects a write.
	ErrConflict = errors.New("conflicting record already exists")
)

type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func NewValidationError(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}

// ValidationErrors collects every field problem of a single request.
type ValidationErrors struct {
	Errors []error
}

func (ve *ValidationErrors) Error() string {
	messages := make([]string, len(ve.Errors))
	for i, err := range ve.Errors {
		messages[i] = err.Error()
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

func (ve *ValidationErrors) Add(field, msg string) {
	ve.Errors = append(ve.Errors, NewValidationError(field, msg))
}

// ErrOrNil returns nil when nothing was collected.
func (ve *ValidationErrors) ErrOrNil() error {
	if len(ve.Errors) == 0 {
		return nil
	}
	return ve
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	var validationErrors *ValidationErrors
	return errors.As(err, &validationError) || errors.As(err, &validationErrors)
}

// StoreError wraps a persistence failure with the operation that failed.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func NewStoreError(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

func IsStoreError(err error) bool {
	var storeError *StoreError
	return errors.As(err, &storeError)
}
