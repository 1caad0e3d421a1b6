package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/clankbot/wagerbank/internal/adapter/http"
	"github.com/clankbot/wagerbank/internal/adapter/http/handler"
	"github.com/clankbot/wagerbank/internal/adapter/http/middleware"
	postgresRepo "github.com/clankbot/wagerbank/internal/adapter/repository/postgres"
	redisRepo "github.com/clankbot/wagerbank/internal/adapter/repository/redis"
	"github.com/clankbot/wagerbank/internal/infrastructure/config"
	"github.com/clankbot/wagerbank/internal/infrastructure/eventpublisher"
	"github.com/clankbot/wagerbank/internal/infrastructure/logger"
	"github.com/clankbot/wagerbank/internal/infrastructure/metrics"
	"github.com/clankbot/wagerbank/internal/infrastructure/postgres"
	"github.com/clankbot/wagerbank/internal/infrastructure/redis"
	"github.com/clankbot/wagerbank/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	m := metrics.New()

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	balanceRepo := postgresRepo.NewBalanceRepository(pool)
	entryRepo := postgresRepo.NewEntryRepository(pool)
	wagerRepo := postgresRepo.NewWagerRepository(pool)
	participantRepo := postgresRepo.NewParticipantRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier()

	// Initialize use cases
	escrowUC := usecase.NewEscrowUseCase(txManager, balanceRepo, entryRepo, outboxRepo, idGen, m)
	userUC := usecase.NewUserUseCase(txManager, userRepo, balanceRepo, outboxRepo, escrowUC, idGen, cfg.StartingBalance, m)
	wagerUC := usecase.NewWagerUseCase(txManager, userRepo, wagerRepo, participantRepo, balanceRepo, outboxRepo, escrowUC, idGen, retrier, m)
	settlementUC := usecase.NewSettlementUseCase(txManager, wagerRepo, participantRepo, balanceRepo, outboxRepo, escrowUC, idGen, retrier, m)
	ledgerUC := usecase.NewLedgerUseCase(balanceRepo, entryRepo, participantRepo, redisRepo.NewCache(redisClient), cfg.LeaderboardCacheTTL)
	reconciliationUC := usecase.NewReconciliationUseCase(balanceRepo, entryRepo, m)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userUC)
	balanceHandler := handler.NewBalanceHandler(escrowUC, ledgerUC)
	wagerHandler := handler.NewWagerHandler(wagerUC, settlementUC)
	reconciliationHandler := handler.NewReconciliationHandler(reconciliationUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		UserHandler:           userHandler,
		BalanceHandler:        balanceHandler,
		WagerHandler:          wagerHandler,
		ReconciliationHandler: reconciliationHandler,
		HealthHandler:         healthHandler,
		IdempotencyStore:      idempotencyStore,
		Metrics:               m,
		RateLimiter:           middleware.NewRateLimiter(50, 100),
		Logger:                &appLogger,
	})

	// Background workers stop on shutdown
	workerCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()

	// Outbox drain: announce committed events on the Redis channel
	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  redisRepo.NewEventPublisher(redisClient),
		Metrics:    m,
		BatchSize:  cfg.OutboxBatch,
		Interval:   cfg.OutboxInterval,
	})
	go func() {
		if err := publisher.Start(workerCtx); err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("event publisher stopped")
		}
	}()

	// Close expired wagers so joins stop at the deadline even if nobody
	// calls close explicitly
	go runSweeper(workerCtx, wagerUC, cfg.SweepInterval)

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	stopWorkers()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// sweeper is the part of WagerService the sweep worker needs.
type sweeper interface {
	SweepExpired(ctx context.Context, now time.Time) (int, error)
}

func runSweeper(ctx context.Context, uc sweeper, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			closed, err := uc.SweepExpired(ctx, time.Now())
			if err != nil {
				log.Error().Err(err).Msg("sweep failed")
				continue
			}
			if closed > 0 {
				log.Info().Int("closed", closed).Msg("closed expired wagers")
			}
		}
	}
}
