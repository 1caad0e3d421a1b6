package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/clankbot/wagerbank/internal/adapter/http/handler"
	"github.com/clankbot/wagerbank/internal/adapter/http/middleware"
	"github.com/clankbot/wagerbank/internal/infrastructure/metrics"
	"github.com/clankbot/wagerbank/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	UserHandler           *handler.UserHandler
	BalanceHandler        *handler.BalanceHandler
	WagerHandler          *handler.WagerHandler
	ReconciliationHandler *handler.ReconciliationHandler
	HealthHandler         *handler.HealthHandler
	IdempotencyStore      usecase.IdempotencyStore
	Metrics               *metrics.Metrics
	RateLimiter           *middleware.RateLimiter
	Logger                *zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	if cfg.Logger != nil {
		r.Use(middleware.NewLoggingMiddleware(*cfg.Logger).Wrap)
	} else {
		r.Use(chimiddleware.Logger)
	}
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and observability endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.Metrics)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Users
		r.Route("/users", func(r chi.Router) {
			r.Post("/", cfg.UserHandler.Ensure)
			r.Get("/", cfg.UserHandler.List)
			r.Get("/{id}", cfg.UserHandler.Get)
			r.Get("/{id}/balance", cfg.BalanceHandler.Get)
			r.Get("/{id}/entries", cfg.BalanceHandler.History)
			r.Get("/{id}/wagers", cfg.BalanceHandler.Participations)
		})

		// Balances
		r.Route("/balances", func(r chi.Router) {
			r.Post("/credit", cfg.BalanceHandler.Credit)
			r.Post("/debit", cfg.BalanceHandler.Debit)
		})
		r.Get("/leaderboard", cfg.BalanceHandler.Leaderboard)

		// Wagers
		r.Route("/wagers", func(r chi.Router) {
			r.Post("/", cfg.WagerHandler.Open)
			r.Get("/", cfg.WagerHandler.List)
			r.Post("/sweep", cfg.WagerHandler.Sweep)
			r.Get("/{id}", cfg.WagerHandler.Get)
			r.Post("/{id}/join", cfg.WagerHandler.Join)
			r.Post("/{id}/close", cfg.WagerHandler.Close)
			r.Post("/{id}/settle", cfg.WagerHandler.Settle)
			r.Get("/{id}/participants", cfg.WagerHandler.Participants)
		})

		// Reconciliation
		r.Route("/reconciliation", func(r chi.Router) {
			r.Post("/run", cfg.ReconciliationHandler.Run)
			r.Get("/{id}", cfg.ReconciliationHandler.CheckUser)
		})
	})

	return r
}
