package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/clankbot/wagerbank/internal/adapter/http/handler"
	apimiddleware "github.com/clankbot/wagerbank/internal/adapter/http/middleware"
	"github.com/clankbot/wagerbank/internal/domain"
	"github.com/clankbot/wagerbank/internal/usecase"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	}))

	body := `{"user_id":"u1","username":"alice"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if !store.checkCalled {
		t.Fatalf("expected idempotency store to be used")
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"POST /api/v1/users/",
		"GET /api/v1/users/{id}/balance",
		"GET /api/v1/users/{id}/entries",
		"POST /api/v1/balances/credit",
		"GET /api/v1/leaderboard",
		"POST /api/v1/wagers/",
		"POST /api/v1/wagers/{id}/join",
		"POST /api/v1/wagers/{id}/settle",
		"POST /api/v1/wagers/sweep",
		"POST /api/v1/reconciliation/run",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	cfg := RouterConfig{
		HealthHandler:         &handler.HealthHandler{},
		UserHandler:           handler.NewUserHandler(&stubUserService{}),
		BalanceHandler:        handler.NewBalanceHandler(&stubEscrowService{}, &stubLedgerService{}),
		WagerHandler:          handler.NewWagerHandler(&stubWagerService{}, &stubSettlementService{}),
		ReconciliationHandler: handler.NewReconciliationHandler(&stubReconciliationService{}),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type stubUserService struct{}

func (stubUserService) Ensure(ctx context.Context, userID, username string) (*domain.User, *domain.Balance, error) {
	return &domain.User{ID: userID, Username: username}, &domain.Balance{UserID: userID}, nil
}

func (stubUserService) Get(ctx context.Context, userID string) (*domain.User, error) {
	return &domain.User{ID: userID}, nil
}

func (stubUserService) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	return []*domain.User{}, nil
}

type stubEscrowService struct{}

func (stubEscrowService) Credit(ctx context.Context, input usecase.CreditInput) (*domain.Balance, error) {
	return &domain.Balance{UserID: input.UserID}, nil
}

func (stubEscrowService) Debit(ctx context.Context, input usecase.DebitInput) (*domain.Balance, error) {
	return &domain.Balance{UserID: input.UserID}, nil
}

type stubLedgerService struct{}

func (stubLedgerService) GetBalance(ctx context.Context, userID string) (*domain.Balance, error) {
	return &domain.Balance{UserID: userID}, nil
}

func (stubLedgerService) History(ctx context.Context, userID string, limit, offset int) ([]*domain.Entry, error) {
	return []*domain.Entry{}, nil
}

func (stubLedgerService) Leaderboard(ctx context.Context, limit, offset int) ([]*domain.Balance, error) {
	return []*domain.Balance{}, nil
}

func (stubLedgerService) ListParticipations(ctx context.Context, userID string, limit, offset int) ([]*domain.Participant, error) {
	return []*domain.Participant{}, nil
}

type stubWagerService struct{}

func (stubWagerService) Open(ctx context.Context, input usecase.OpenWagerInput) (*domain.Wager, error) {
	return &domain.Wager{ID: "wager"}, nil
}

func (stubWagerService) Join(ctx context.Context, input usecase.JoinWagerInput) (*domain.Wager, error) {
	return &domain.Wager{ID: input.WagerID}, nil
}

func (stubWagerService) Close(ctx context.Context, wagerID string) (*domain.Wager, error) {
	return &domain.Wager{ID: wagerID}, nil
}

func (stubWagerService) Get(ctx context.Context, wagerID string) (*domain.Wager, error) {
	return &domain.Wager{ID: wagerID}, nil
}

func (stubWagerService) ListByStatus(ctx context.Context, status domain.WagerStatus, limit, offset int) ([]*domain.Wager, error) {
	return []*domain.Wager{}, nil
}

func (stubWagerService) ListParticipants(ctx context.Context, wagerID string) ([]*domain.Participant, error) {
	return []*domain.Participant{}, nil
}

func (stubWagerService) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	return 0, nil
}

type stubSettlementService struct{}

func (stubSettlementService) Settle(ctx context.Context, wagerID string, outcome domain.Outcome) (*usecase.SettlementResult, error) {
	return &usecase.SettlementResult{Wager: &domain.Wager{ID: wagerID}}, nil
}

type stubReconciliationService struct{}

func (stubReconciliationService) ReconcileUser(ctx context.Context, userID string) (*usecase.ReconciliationResult, error) {
	return &usecase.ReconciliationResult{UserID: userID, Reconciled: true}, nil
}

func (stubReconciliationService) ReconcileAll(ctx context.Context) ([]*usecase.ReconciliationResult, error) {
	return []*usecase.ReconciliationResult{}, nil
}

type stubIdempotencyStore struct {
	checkCalled bool
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return nil
}
