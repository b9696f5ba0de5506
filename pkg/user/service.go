package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/badoux/checkmail"
	"github.com/fintrack/fintrack/internal/apperrors"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 72 // bcrypt ignores anything longer
	maxNameLength     = 255
)

var ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthenticated)

type Service interface {
	Register(ctx context.Context, name, email, password string) (User, error)
	Authenticate(ctx context.Context, email, password string) (User, error)
	GetCurrentUser(ctx context.Context) (User, error)
	GetUser(ctx context.Context, id int) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
}

type ServiceImpl struct {
	repo Repo
}

func NewUserService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) Register(ctx context.Context, name, email, password string) (User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	var validation apperrors.ValidationErrors
	if name == "" {
		validation.Add("name", "is required")
	} else if len(name) > maxNameLength {
		validation.Add("name", fmt.Sprintf("must be at most %d characters", maxNameLength))
	}
	if err := checkmail.ValidateFormat(email); err != nil {
		validation.Add("email", "is not a valid email address")
	}
	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		validation.Add("password", fmt.Sprintf("must be between %d and %d characters", minPasswordLength, maxPasswordLength))
	}
	if err := validation.ErrOrNil(); err != nil {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.repo.CreateUser(ctx, User{
		Uid:          uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			log.Debugf("registration rejected, email already exists: %s", email)
			return User{}, fmt.Errorf("email already exists: %w", err)
		}
		return User{}, err
	}
	log.Infof("user registered: %s", created.Uid)
	return created, nil
}

func (s *ServiceImpl) Authenticate(ctx context.Context, email, password string) (User, error) {
	u, err := s.repo.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		log.Debugf("invalid password for user %s", u.Uid)
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *ServiceImpl) GetCurrentUser(ctx context.Context) (User, error) {
	userId, err := CurrentId(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to get current user: %w", apperrors.ErrUnauthorized)
	}
	return s.GetUser(ctx, userId)
}

func (s *ServiceImpl) GetUser(ctx context.Context, id int) (User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *ServiceImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	return s.repo.GetUserByUid(ctx, uid)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
