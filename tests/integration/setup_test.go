package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"

	adaptershttp "github.com/clankbot/wagerbank/internal/adapter/http"
	"github.com/clankbot/wagerbank/internal/adapter/http/handler"
	postgresrepo "github.com/clankbot/wagerbank/internal/adapter/repository/postgres"
	redisrepo "github.com/clankbot/wagerbank/internal/adapter/repository/redis"
	infraredis "github.com/clankbot/wagerbank/internal/infrastructure/redis"
	"github.com/clankbot/wagerbank/internal/usecase"
	"github.com/clankbot/wagerbank/tests/testutil"
)

const startingBalance = 100

// testEnv wires the full stack against real Postgres and Redis.
type testEnv struct {
	DB     *testutil.TestDB
	Redis  *redis.Client
	Server *httptest.Server

	UserUC           *usecase.UserUseCase
	EscrowUC         *usecase.EscrowUseCase
	WagerUC          *usecase.WagerUseCase
	SettlementUC     *usecase.SettlementUseCase
	LedgerUC         *usecase.LedgerUseCase
	ReconciliationUC *usecase.ReconciliationUseCase
	OutboxRepo       *postgresrepo.OutboxRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	testDB.TruncateAll(ctx)

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}
	redisClient, err := infraredis.NewClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}

	pool := testDB.Pool
	txManager := postgresrepo.NewTxManager(pool)
	userRepo := postgresrepo.NewUserRepository(pool)
	balanceRepo := postgresrepo.NewBalanceRepository(pool)
	entryRepo := postgresrepo.NewEntryRepository(pool)
	wagerRepo := postgresrepo.NewWagerRepository(pool)
	participantRepo := postgresrepo.NewParticipantRepository(pool)
	outboxRepo := postgresrepo.NewOutboxRepository(pool)
	idGen := postgresrepo.NewULIDGenerator()
	retrier := postgresrepo.NewRetrier()

	escrowUC := usecase.NewEscrowUseCase(txManager, balanceRepo, entryRepo, outboxRepo, idGen, nil)
	userUC := usecase.NewUserUseCase(txManager, userRepo, balanceRepo, outboxRepo, escrowUC, idGen, startingBalance, nil)
	wagerUC := usecase.NewWagerUseCase(txManager, userRepo, wagerRepo, participantRepo, balanceRepo, outboxRepo, escrowUC, idGen, retrier, nil)
	settlementUC := usecase.NewSettlementUseCase(txManager, wagerRepo, participantRepo, balanceRepo, outboxRepo, escrowUC, idGen, retrier, nil)
	ledgerUC := usecase.NewLedgerUseCase(balanceRepo, entryRepo, participantRepo, nil, 0)
	reconciliationUC := usecase.NewReconciliationUseCase(balanceRepo, entryRepo, nil)

	router := adaptershttp.NewRouter(adaptershttp.RouterConfig{
		UserHandler:           handler.NewUserHandler(userUC),
		BalanceHandler:        handler.NewBalanceHandler(escrowUC, ledgerUC),
		WagerHandler:          handler.NewWagerHandler(wagerUC, settlementUC),
		ReconciliationHandler: handler.NewReconciliationHandler(reconciliationUC),
		HealthHandler:         handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:      redisrepo.NewIdempotencyStore(redisClient),
	})
	server := httptest.NewServer(router)

	t.Cleanup(func() {
		server.Close()
		redisClient.Close()
		testDB.Cleanup()
	})

	return &testEnv{
		DB:               testDB,
		Redis:            redisClient,
		Server:           server,
		UserUC:           userUC,
		EscrowUC:         escrowUC,
		WagerUC:          wagerUC,
		SettlementUC:     settlementUC,
		LedgerUC:         ledgerUC,
		ReconciliationUC: reconciliationUC,
		OutboxRepo:       outboxRepo,
	}
}

func (env *testEnv) postJSON(t *testing.T, path string, body any) (int, []byte) {
	t.Helper()

	encoded, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}

	resp, err := http.Post(env.Server.URL+path, "application/json", bytes.NewReader(encoded))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	return resp.StatusCode, data
}

func (env *testEnv) getJSON(t *testing.T, path string) (int, []byte) {
	t.Helper()

	resp, err := http.Get(env.Server.URL + path)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	return resp.StatusCode, data
}

func decodeJSON[T any](t *testing.T, data []byte) T {
	t.Helper()

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("failed to decode response %s: %v", data, err)
	}
	return v
}

// assertClean runs a full reconciliation and fails on any mismatch.
func (env *testEnv) assertClean(t *testing.T) {
	t.Helper()

	mismatches, err := env.ReconciliationUC.ReconcileAll(context.Background())
	if err != nil {
		t.Fatalf("reconciliation failed: %v", err)
	}
	if len(mismatches) != 0 {
		t.Fatalf("expected clean books, got %d mismatches: %+v", len(mismatches), mismatches)
	}
}
