package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Amounts are persisted as NUMERIC(14,2).
const (
	Scale         = 2
	integerDigits = 12
)

var upperBound = decimal.New(1, integerDigits)

var (
	ErrTooManyDecimals = fmt.Errorf("must have at most %d decimal places", Scale)
	ErrTooLarge        = errors.New("must be less than 1000000000000")
)

// Check reports whether d fits the stored precision without rounding.
func Check(d decimal.Decimal) error {
	if !d.Equal(d.Truncate(Scale)) {
		return ErrTooManyDecimals
	}
	if d.Abs().GreaterThanOrEqual(upperBound) {
		return ErrTooLarge
	}
	return nil
}
