package app

import (
	"context"

	"github.com/fintrack/fintrack/internal/auth"
	"github.com/fintrack/fintrack/internal/config"
	"github.com/fintrack/fintrack/internal/event_bus"
	"github.com/fintrack/fintrack/internal/metrics"
	"github.com/fintrack/fintrack/internal/utils"
	"github.com/fintrack/fintrack/pkg/budget"
	"github.com/fintrack/fintrack/pkg/summary"
	"github.com/fintrack/fintrack/pkg/transaction"
	"github.com/fintrack/fintrack/pkg/user"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	DB       Pinger
	Clock    utils.Clock
	EventBus *event_bus.EventBus

	Tokens        auth.TokenManager
	Authenticator *auth.Authenticator
	AuthHandler   *auth.Handler

	UserService user.Service
	UserHandler *user.Handler

	TransactionRepo    transaction.Repository
	TransactionService transaction.Service
	TransactionHandler *transaction.Handler

	BudgetRepo    budget.Repository
	BudgetService budget.Service
	BudgetHandler *budget.Handler

	SummaryService summary.Service
	SummaryHandler *summary.Handler

	Metrics *metrics.Metrics
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application) *Dependencies {
	return buildDependencies(
		db,
		cfg,
		user.NewUserRepo(db),
		transaction.NewRepository(db),
		budget.NewRepository(db),
		utils.SystemClock{},
	)
}

func buildDependencies(
	db Pinger,
	cfg config.Application,
	userRepo user.Repo,
	transactionRepo transaction.Repository,
	budgetRepo budget.Repository,
	clock utils.Clock,
) *Dependencies {
	deps := &Dependencies{DB: db, Clock: clock, EventBus: event_bus.NewEventBus(clock)}

	secret := cfg.Auth.JwtSecret
	if secret == "" {
		log.Warn("generating a random JWT secret for this process")
		secret = uuid.NewString() + uuid.NewString()
	}
	deps.Tokens = auth.NewJWTManager(secret, cfg.Auth.TokenTTL, clock)

	deps.UserService = user.NewUserService(userRepo)
	deps.UserHandler = user.NewHandler(deps.UserService)
	deps.Authenticator = auth.NewAuthenticator(deps.Tokens, deps.UserService)
	deps.AuthHandler = auth.NewHandler(deps.UserService, deps.Tokens)

	deps.TransactionRepo = transactionRepo
	deps.TransactionService = transaction.NewService(deps.TransactionRepo, deps.EventBus)
	deps.TransactionHandler = transaction.NewHandler(deps.TransactionService)

	deps.BudgetRepo = budgetRepo
	deps.BudgetService = budget.NewService(deps.BudgetRepo, deps.EventBus)
	deps.BudgetHandler = budget.NewHandler(deps.BudgetService, clock)

	deps.SummaryService = summary.NewService(deps.TransactionRepo, deps.BudgetRepo, clock)
	deps.SummaryHandler = summary.NewHandler(deps.SummaryService)

	if cfg.Metrics.Enabled {
		deps.Metrics = metrics.New()
		deps.Metrics.Subscribe(deps.EventBus)
	}

	return deps
}
