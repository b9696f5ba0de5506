package transaction

import (
	"context"
	"time"

	"github.com/fintrack/fintrack/internal/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	Store(ctx context.Context, userId int, transaction Transaction) (Transaction, error)
	// FindBetween returns the user's transactions with from <= occurred_at <= to, oldest first.
	FindBetween(ctx context.Context, userId int, from time.Time, to time.Time) ([]Transaction, error)
	// FindRecent returns at most limit transactions, most recent first.
	FindRecent(ctx context.Context, userId int, limit int) ([]Transaction, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const transactionColumns = `id, user_id, account, description, category, amount, occurred_at, kind, created_at`

func (r *RepositoryImpl) Store(ctx context.Context, userId int, transaction Transaction) (Transaction, error) {
	query := `INSERT INTO transactions (user_id, account, description, category, amount, occurred_at, kind)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
				RETURNING ` + transactionColumns

	stored, err := scanTransaction(r.db.QueryRow(ctx, query,
		userId,
		transaction.Account,
		transaction.Description,
		transaction.Category,
		transaction.Amount,
		transaction.OccurredAt,
		string(transaction.Kind),
	))
	if err != nil {
		log.Errorf("could not store transaction: %v", err)
		return Transaction{}, database.StoreError("store transaction", err)
	}
	return stored, nil
}

func (r *RepositoryImpl) FindBetween(ctx context.Context, userId int, from time.Time, to time.Time) ([]Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions
				WHERE user_id = $1 AND occurred_at >= $2 AND occurred_at <= $3
				ORDER BY occurred_at, id`
	rows, err := r.db.Query(ctx, query, userId, from, to)
	if err != nil {
		log.Errorf("could not query transactions: %v", err)
		return nil, database.StoreError("find transactions", err)
	}
	return collectTransactions(rows)
}

func (r *RepositoryImpl) FindRecent(ctx context.Context, userId int, limit int) ([]Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions
				WHERE user_id = $1
				ORDER BY occurred_at DESC, id DESC
				LIMIT $2`
	rows, err := r.db.Query(ctx, query, userId, limit)
	if err != nil {
		log.Errorf("could not query recent transactions: %v", err)
		return nil, database.StoreError("find recent transactions", err)
	}
	return collectTransactions(rows)
}

func collectTransactions(rows pgx.Rows) ([]Transaction, error) {
	defer rows.Close()
	transactions := make([]Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			log.Errorf("error scanning row: %v", err)
			return nil, database.StoreError("scan transaction", err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		log.Errorf("error iterating over rows: %v", err)
		return nil, database.StoreError("iterate transactions", err)
	}
	return transactions, nil
}

func scanTransaction(row pgx.Row) (Transaction, error) {
	var t Transaction
	var kind string
	err := row.Scan(
		&t.Id,
		&t.UserId,
		&t.Account,
		&t.Description,
		&t.Category,
		&t.Amount,
		&t.OccurredAt,
		&kind,
		&t.CreatedAt,
	)
	t.Kind = Kind(kind)
	return t, err
}
