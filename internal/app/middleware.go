package app

import (
	"net/http"
	"time"

	"github.com/fintrack/fintrack/internal/config"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// SetupMiddleware wires the middlewares shared by every route. Authentication is applied
// per subrouter in RegisterRoutes.
func SetupMiddleware(r *mux.Router, deps *Dependencies, cfg config.Application) {
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}

	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, req)
			log.Debugf("%s %s took %s", req.Method, req.URL.Path, time.Since(start))
		})
	})
}

// WithCORS lets the web client at cfg.Host call the API with credentials. It wraps the whole router
// so preflight requests are answered before route matching and authentication.
func WithCORS(h http.Handler, cfg config.Application) http.Handler {
	if cfg.Host == "" {
		log.Warn("host is not set, cross-origin requests are not allowed")
		return h
	}
	return handlers.CORS(
		handlers.AllowedOrigins([]string{cfg.Host}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
		handlers.AllowCredentials(),
	)(h)
}
