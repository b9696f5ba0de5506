package test_utils

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CreateTestUser inserts a user with a unique email and returns its id.
// Repository tests need it because every owned row references users(id).
func CreateTestUser(ctx context.Context, db *pgxpool.Pool) (int, error) {
	uid := uuid.NewString()
	var id int
	err := db.QueryRow(ctx,
		`INSERT INTO users (uid, name, email, password_hash) VALUES ($1, $2, $3, $4) RETURNING id`,
		uid, "Test User", fmt.Sprintf("%s@example.com", uid), "not-a-real-hash",
	).Scan(&id)
	return id, err
}
