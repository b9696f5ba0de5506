package app

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/fintrack/fintrack/internal/config"
	"github.com/fintrack/fintrack/internal/rest"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {
	r.HandleFunc("/health", healthHandler(deps.DB)).Methods("GET")
	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics.Handler()).Methods("GET")
	}

	// Authentication
	r.HandleFunc("/api/auth/signup", deps.AuthHandler.Signup).Methods("POST")
	r.HandleFunc("/api/auth/login", deps.AuthHandler.Login).Methods("POST")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(deps.Authenticator.Middleware)

	// User
	api.HandleFunc("/user/current", deps.UserHandler.CurrentUser).Methods("GET")

	// Finance
	api.HandleFunc("/finance/summary", deps.SummaryHandler.GetSummary).Methods("GET")
	api.HandleFunc("/finance/transactions", deps.TransactionHandler.Create).Methods("POST")
	api.HandleFunc("/finance/transactions/recent", deps.TransactionHandler.Recent).Methods("GET")
	api.HandleFunc("/finance/budget", deps.BudgetHandler.UpdateTotal).Methods("PUT")
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

func healthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			log.Errorf("health check failed: %v", err)
			rest.WriteErrorResponse(w, http.StatusServiceUnavailable, "Database unavailable", "")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(healthResponse{Status: "ok", Database: "up"}); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}
