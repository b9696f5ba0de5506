package transaction

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fintrack/fintrack/internal/apperrors"
	"github.com/fintrack/fintrack/internal/money"
	"github.com/shopspring/decimal"
)

type Kind string

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

func (k Kind) Valid() bool {
	return k == Income || k == Expense
}

type Transaction struct {
	Id          int
	UserId      int
	Account     string
	Description string
	Category    string
	Amount      decimal.Decimal
	OccurredAt  time.Time
	Kind        Kind
	CreatedAt   time.Time
}

// NewTransaction holds the raw, unvalidated fields of a transaction as submitted by a client.
type NewTransaction struct {
	Account     string
	Description string
	Category    string
	Amount      string
	Date        string
	Kind        string
}

const (
	dateOnlyLayout = "2006-01-02"
	// MaxTextLength is the column width of account, description and category.
	MaxTextLength = 255
)

// ParseDate accepts RFC3339 timestamps and plain YYYY-MM-DD dates. Plain dates are midnight UTC.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.ParseInLocation(dateOnlyLayout, value, time.UTC)
}

// Validate checks every field and returns all problems at once as apperrors.ValidationErrors.
func (n NewTransaction) Validate() (Transaction, error) {
	var validation apperrors.ValidationErrors
	t := Transaction{
		Account:     strings.TrimSpace(n.Account),
		Description: strings.TrimSpace(n.Description),
		Category:    strings.TrimSpace(n.Category),
		Kind:        Kind(strings.ToLower(strings.TrimSpace(n.Kind))),
	}

	if t.Description == "" {
		validation.Add("description", "is required")
	}
	if t.Category == "" {
		validation.Add("category", "is required")
	}
	for _, text := range []struct{ field, value string }{
		{"account", t.Account},
		{"description", t.Description},
		{"category", t.Category},
	} {
		if utf8.RuneCountInString(text.value) > MaxTextLength {
			validation.Add(text.field, fmt.Sprintf("must be at most %d characters", MaxTextLength))
		}
	}

	amount := strings.TrimSpace(n.Amount)
	if amount == "" {
		validation.Add("amount", "is required")
	} else if parsed, err := decimal.NewFromString(amount); err != nil {
		validation.Add("amount", "must be a number")
	} else if parsed.IsNegative() {
		validation.Add("amount", "must not be negative")
	} else if err := money.Check(parsed); err != nil {
		validation.Add("amount", err.Error())
	} else {
		t.Amount = parsed
	}

	if strings.TrimSpace(n.Date) == "" {
		validation.Add("date", "is required")
	} else if occurredAt, err := ParseDate(n.Date); err != nil {
		validation.Add("date", "must be a date (YYYY-MM-DD) or an RFC3339 timestamp")
	} else {
		t.OccurredAt = occurredAt
	}

	if t.Kind == "" {
		validation.Add("type", "is required")
	} else if !t.Kind.Valid() {
		validation.Add("type", "must be income or expense")
	}

	if err := validation.ErrOrNil(); err != nil {
		return Transaction{}, err
	}
	return t, nil
}
