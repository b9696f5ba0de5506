package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		amount string
		want   error
	}{
		{"0", nil},
		{"1000.50", nil},
		{"1.500", nil},
		{"999999999999.99", nil},
		{"0.005", ErrTooManyDecimals},
		{"12.345", ErrTooManyDecimals},
		{"1000000000000", ErrTooLarge},
		{"-1000000000000", ErrTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, Check(decimal.RequireFromString(tt.amount)))
		})
	}
}
