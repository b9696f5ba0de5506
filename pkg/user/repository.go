package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/fintrack/fintrack/internal/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrUserNotFound = errors.New("user not found")

type Repo interface {
	CreateUser(ctx context.Context, user User) (User, error)
	GetUser(ctx context.Context, id int) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
}

type RepoImpl struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) *RepoImpl {
	return &RepoImpl{db: db}
}

const userColumns = `id, uid, name, email, password_hash, created_at`

func (u *RepoImpl) CreateUser(ctx context.Context, user User) (User, error) {
	query := `INSERT INTO users (uid, name, email, password_hash) VALUES ($1, $2, $3, $4)
				RETURNING ` + userColumns
	created, err := scanUser(u.db.QueryRow(ctx, query, user.Uid, user.Name, user.Email, user.PasswordHash))
	if err != nil {
		log.Errorf("failed to create user: %v", err)
		return User{}, database.StoreError("create user", err)
	}
	return created, nil
}

func (u *RepoImpl) GetUser(ctx context.Context, id int) (User, error) {
	return u.findOne(ctx, "id", id)
}

func (u *RepoImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	return u.findOne(ctx, "uid", uid)
}

func (u *RepoImpl) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return u.findOne(ctx, "email", email)
}

func (u *RepoImpl) findOne(ctx context.Context, column string, value any) (User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE %s = $1`, userColumns, column)
	user, err := scanUser(u.db.QueryRow(ctx, query, value))
	if errors.Is(err, pgx.ErrNoRows) {
		log.Debugf("user with %s %v not found", column, value)
		return User{}, ErrUserNotFound
	} else if err != nil {
		log.Errorf("failed to get user: %v", err)
		return User{}, database.StoreError("get user", err)
	}
	return user, nil
}

func scanUser(row pgx.Row) (User, error) {
	var user User
	err := row.Scan(
		&user.Id,
		&user.Uid,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	return user, err
}
