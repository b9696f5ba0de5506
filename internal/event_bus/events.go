package event_bus

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TransactionAddedEvent   EventType = "transaction.added"
	BudgetTotalUpdatedEvent EventType = "budget.total.updated"
)

type TransactionAdded struct {
	UserId        int
	TransactionId int
	Kind          string
	Category      string
	Amount        decimal.Decimal
	OccurredAt    time.Time
}

// BudgetTotalUpdated reports a new total. Month is zero-based.
type BudgetTotalUpdated struct {
	UserId int
	Month  int
	Year   int
	Total  decimal.Decimal
}
