package budget

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fintrack/fintrack/internal/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	// FindOne returns nil when the user has no budget for the period.
	FindOne(ctx context.Context, userId int, month int, year int) (*Budget, error)
	// Upsert creates the budget or replaces the categories of the existing one. The total of an
	// existing budget is left untouched.
	Upsert(ctx context.Context, userId int, budget Budget) (Budget, error)
	// UpsertTotal sets the total of the period's budget, creating it with default categories if needed.
	UpsertTotal(ctx context.Context, userId int, month int, year int, total decimal.Decimal) (Budget, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const budgetColumns = `id, user_id, month, year, total, categories, created_at, updated_at`

func (r *RepositoryImpl) FindOne(ctx context.Context, userId int, month int, year int) (*Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE user_id = $1 AND month = $2 AND year = $3`
	b, err := scanBudget(r.db.QueryRow(ctx, query, userId, month, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		log.Errorf("could not find budget: %v", err)
		return nil, database.StoreError("find budget", err)
	}
	return &b, nil
}

func (r *RepositoryImpl) Upsert(ctx context.Context, userId int, budget Budget) (Budget, error) {
	categories, err := json.Marshal(budget.Categories)
	if err != nil {
		return Budget{}, fmt.Errorf("failed to encode budget categories: %w", err)
	}
	query := `INSERT INTO budgets (user_id, month, year, total, categories)
				VALUES ($1, $2, $3, $4, $5)
				ON CONFLICT (user_id, month, year)
				DO UPDATE SET categories = EXCLUDED.categories, updated_at = now()
				RETURNING ` + budgetColumns

	stored, err := scanBudget(r.db.QueryRow(ctx, query, userId, budget.Month, budget.Year, budget.Total, categories))
	if err != nil {
		log.Errorf("could not upsert budget: %v", err)
		return Budget{}, database.StoreError("upsert budget", err)
	}
	return stored, nil
}

func (r *RepositoryImpl) UpsertTotal(ctx context.Context, userId int, month int, year int, total decimal.Decimal) (Budget, error) {
	categories, err := json.Marshal(DefaultCategories())
	if err != nil {
		return Budget{}, fmt.Errorf("failed to encode budget categories: %w", err)
	}
	query := `INSERT INTO budgets (user_id, month, year, total, categories)
				VALUES ($1, $2, $3, $4, $5)
				ON CONFLICT (user_id, month, year)
				DO UPDATE SET total = EXCLUDED.total, updated_at = now()
				RETURNING ` + budgetColumns

	stored, err := scanBudget(r.db.QueryRow(ctx, query, userId, month, year, total, categories))
	if err != nil {
		log.Errorf("could not update budget total: %v", err)
		return Budget{}, database.StoreError("update budget total", err)
	}
	return stored, nil
}

func scanBudget(row pgx.Row) (Budget, error) {
	var b Budget
	var categories []byte
	err := row.Scan(
		&b.Id,
		&b.UserId,
		&b.Month,
		&b.Year,
		&b.Total,
		&categories,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return Budget{}, err
	}
	if err := json.Unmarshal(categories, &b.Categories); err != nil {
		return Budget{}, fmt.Errorf("failed to decode budget categories: %w", err)
	}
	return b, nil
}
