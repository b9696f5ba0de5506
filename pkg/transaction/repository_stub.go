package transaction

import (
	"context"
	"sort"
	"time"
)

type RepositoryStub struct {
	nextId       int
	transactions map[int][]Transaction // userId -> transactions
	err          error
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{transactions: map[int][]Transaction{}}
}

func (s *RepositoryStub) Store(ctx context.Context, userId int, transaction Transaction) (Transaction, error) {
	if s.err != nil {
		return Transaction{}, s.err
	}
	s.nextId++
	transaction.Id = s.nextId
	transaction.UserId = userId
	transaction.CreatedAt = time.Now()
	s.transactions[userId] = append(s.transactions[userId], transaction)
	return transaction, nil
}

func (s *RepositoryStub) FindBetween(ctx context.Context, userId int, from time.Time, to time.Time) ([]Transaction, error) {
	if s.err != nil {
		return nil, s.err
	}
	found := make([]Transaction, 0)
	for _, t := range s.transactions[userId] {
		if !t.OccurredAt.Before(from) && !t.OccurredAt.After(to) {
			found = append(found, t)
		}
	}
	sort.SliceStable(found, func(i, j int) bool {
		return found[i].OccurredAt.Before(found[j].OccurredAt)
	})
	return found, nil
}

func (s *RepositoryStub) FindRecent(ctx context.Context, userId int, limit int) ([]Transaction, error) {
	if s.err != nil {
		return nil, s.err
	}
	all := append([]Transaction(nil), s.transactions[userId]...)
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].OccurredAt.Equal(all[j].OccurredAt) {
			return all[i].Id > all[j].Id
		}
		return all[i].OccurredAt.After(all[j].OccurredAt)
	})
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// FailWith makes every following call return err.
func (s *RepositoryStub) FailWith(err error) {
	s.err = err
}

func (s *RepositoryStub) Count(userId int) int {
	return len(s.transactions[userId])
}

func (s *RepositoryStub) Reset() {
	s.nextId = 0
	s.transactions = map[int][]Transaction{}
	s.err = nil
}
