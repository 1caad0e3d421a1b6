package integration

import (
	"context"
	"net/http"
	"testing"

	"github.com/clankbot/wagerbank/internal/adapter/http/dto"
	"github.com/clankbot/wagerbank/internal/domain"
)

func TestCreditAndDebitFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.DB.CreateTestUser(ctx, "alice", "Alice")

	status, body := env.postJSON(t, "/api/v1/balances/credit", dto.CreditRequest{
		UserID:  "alice",
		Amount:  50,
		RefType: domain.RefTypeCommand,
		RefID:   "cmd-1",
	})
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}
	balance := decodeJSON[dto.BalanceResponse](t, body)
	if balance.Current != 50 {
		t.Errorf("expected 50 after credit, got %d", balance.Current)
	}

	status, body = env.postJSON(t, "/api/v1/balances/debit", dto.DebitRequest{
		UserID:  "alice",
		Amount:  20,
		RefType: domain.RefTypeCommand,
		RefID:   "cmd-2",
	})
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}
	balance = decodeJSON[dto.BalanceResponse](t, body)
	if balance.Current != 30 || balance.LifetimeSpent != 20 {
		t.Errorf("expected 30 current and 20 spent, got %d/%d", balance.Current, balance.LifetimeSpent)
	}

	env.assertClean(t)
}

func TestCreditReplayIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.DB.CreateTestUser(ctx, "alice", "Alice")

	req := dto.CreditRequest{UserID: "alice", Amount: 50, RefType: domain.RefTypeCommand, RefID: "cmd-1"}
	if status, body := env.postJSON(t, "/api/v1/balances/credit", req); status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}

	// Same reference: the retried command must not double-credit.
	status, body := env.postJSON(t, "/api/v1/balances/credit", req)
	if status != http.StatusOK {
		t.Fatalf("expected 200 on replay, got %d: %s", status, body)
	}
	balance := decodeJSON[dto.BalanceResponse](t, body)
	if balance.Current != 50 {
		t.Errorf("expected 50 after replay, got %d", balance.Current)
	}

	status, body = env.getJSON(t, "/api/v1/users/alice/entries")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}
	entries := decodeJSON[dto.ListEntriesResponse](t, body)
	if len(entries.Entries) != 1 {
		t.Errorf("expected a single ledger entry, got %d", len(entries.Entries))
	}
}

func TestDebitInsufficientFunds(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.DB.CreateTestUserWithBalance(ctx, "alice", "Alice", 30)

	status, body := env.postJSON(t, "/api/v1/balances/debit", dto.DebitRequest{
		UserID:  "alice",
		Amount:  31,
		RefType: domain.RefTypeCommand,
		RefID:   "cmd-1",
	})
	if status != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", status, body)
	}

	// The failed debit must leave no trace in the ledger.
	_, body = env.getJSON(t, "/api/v1/users/alice/balance")
	balance := decodeJSON[dto.BalanceResponse](t, body)
	if balance.Current != 30 {
		t.Errorf("expected balance untouched at 30, got %d", balance.Current)
	}

	env.assertClean(t)
}

func TestLeaderboardOrdersByNetWorth(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.DB.CreateTestUserWithBalance(ctx, "alice", "Alice", 100)
	env.DB.CreateTestUserWithBalance(ctx, "bob", "Bob", 500)
	env.DB.CreateTestUserWithBalance(ctx, "carol", "Carol", 50)

	status, body := env.getJSON(t, "/api/v1/leaderboard?limit=2")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}

	balances := decodeJSON[[]*dto.BalanceResponse](t, body)
	if len(balances) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(balances))
	}
	if balances[0].UserID != "bob" || balances[1].UserID != "alice" {
		t.Errorf("expected bob then alice, got %s then %s", balances[0].UserID, balances[1].UserID)
	}
}
