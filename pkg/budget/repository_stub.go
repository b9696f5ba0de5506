package budget

import (
	"context"
	"time"

	"github.com/fintrack/fintrack/internal/apperrors"
	"github.com/shopspring/decimal"
)

type periodKey struct {
	userId int
	month  int
	year   int
}

type RepositoryStub struct {
	nextId      int
	budgets     map[periodKey]Budget
	findErr     error
	upsertErr   error
	concurrent  *Budget
	UpsertCalls int
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{budgets: map[periodKey]Budget{}}
}

func (s *RepositoryStub) FindOne(ctx context.Context, userId int, month int, year int) (*Budget, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	b, ok := s.budgets[periodKey{userId, month, year}]
	if !ok {
		return nil, nil
	}
	b.Categories = append([]Category(nil), b.Categories...)
	return &b, nil
}

func (s *RepositoryStub) Upsert(ctx context.Context, userId int, budget Budget) (Budget, error) {
	s.UpsertCalls++
	if s.upsertErr != nil {
		return Budget{}, s.upsertErr
	}
	key := periodKey{userId, budget.Month, budget.Year}
	if s.concurrent != nil {
		s.store(key, *s.concurrent)
		s.concurrent = nil
		return Budget{}, apperrors.NewStoreError("create budget", apperrors.ErrConflict)
	}
	existing, ok := s.budgets[key]
	if !ok {
		return s.store(key, budget), nil
	}
	existing.Categories = append([]Category(nil), budget.Categories...)
	existing.UpdatedAt = time.Now()
	s.budgets[key] = existing
	return existing, nil
}

func (s *RepositoryStub) UpsertTotal(ctx context.Context, userId int, month int, year int, total decimal.Decimal) (Budget, error) {
	if s.upsertErr != nil {
		return Budget{}, s.upsertErr
	}
	key := periodKey{userId, month, year}
	existing, ok := s.budgets[key]
	if !ok {
		created := NewEmpty(userId, month, year)
		created.Total = total
		return s.store(key, created), nil
	}
	existing.Total = total
	existing.UpdatedAt = time.Now()
	s.budgets[key] = existing
	return existing, nil
}

func (s *RepositoryStub) store(key periodKey, budget Budget) Budget {
	s.nextId++
	budget.Id = s.nextId
	budget.UserId = key.userId
	budget.Month = key.month
	budget.Year = key.year
	budget.CreatedAt = time.Now()
	budget.UpdatedAt = budget.CreatedAt
	s.budgets[key] = budget
	return budget
}

// FailFindWith makes FindOne return err.
func (s *RepositoryStub) FailFindWith(err error) {
	s.findErr = err
}

// FailUpsertWith makes Upsert and UpsertTotal return err.
func (s *RepositoryStub) FailUpsertWith(err error) {
	s.upsertErr = err
}

// CreateConcurrently makes the next Upsert behave as if another writer created budget first:
// budget is stored and the call reports a conflict.
func (s *RepositoryStub) CreateConcurrently(budget Budget) {
	s.concurrent = &budget
}

func (s *RepositoryStub) Count(userId int) int {
	count := 0
	for key := range s.budgets {
		if key.userId == userId {
			count++
		}
	}
	return count
}

func (s *RepositoryStub) Reset() {
	s.nextId = 0
	s.budgets = map[periodKey]Budget{}
	s.findErr = nil
	s.upsertErr = nil
	s.concurrent = nil
	s.UpsertCalls = 0
}
