package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clankbot/wagerbank/internal/adapter/http/dto"
	"github.com/clankbot/wagerbank/internal/domain"
	"github.com/clankbot/wagerbank/internal/usecase"
)

// EscrowService defines the mutating balance operations needed by
// BalanceHandler.
type EscrowService interface {
	Credit(ctx context.Context, input usecase.CreditInput) (*domain.Balance, error)
	Debit(ctx context.Context, input usecase.DebitInput) (*domain.Balance, error)
}

// LedgerService defines the read-only balance and history operations
// needed by BalanceHandler.
type LedgerService interface {
	GetBalance(ctx context.Context, userID string) (*domain.Balance, error)
	History(ctx context.Context, userID string, limit, offset int) ([]*domain.Entry, error)
	Leaderboard(ctx context.Context, limit, offset int) ([]*domain.Balance, error)
	ListParticipations(ctx context.Context, userID string, limit, offset int) ([]*domain.Participant, error)
}

// BalanceHandler handles balance and ledger HTTP requests.
type BalanceHandler struct {
	escrowUC EscrowService
	ledgerUC LedgerService
}

// NewBalanceHandler creates a new BalanceHandler.
func NewBalanceHandler(escrowUC EscrowService, ledgerUC LedgerService) *BalanceHandler {
	return &BalanceHandler{
		escrowUC: escrowUC,
		ledgerUC: ledgerUC,
	}
}

// Credit grants currency to a user.
func (h *BalanceHandler) Credit(w http.ResponseWriter, r *http.Request) {
	var req dto.CreditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	balance, err := h.escrowUC.Credit(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to credit balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceFromDomain(balance))
}

// Debit removes currency from a user's spendable balance.
func (h *BalanceHandler) Debit(w http.ResponseWriter, r *http.Request) {
	var req dto.DebitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	balance, err := h.escrowUC.Debit(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to debit balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceFromDomain(balance))
}

// Get retrieves a user's balance.
func (h *BalanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", "")
		return
	}

	balance, err := h.ledgerUC.GetBalance(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceFromDomain(balance))
}

// History retrieves a user's ledger entries, newest first.
func (h *BalanceHandler) History(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", "")
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	entries, err := h.ledgerUC.History(r.Context(), id, limit, offset)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get ledger history", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListEntriesResponse{
		Entries: dto.EntriesFromDomain(entries),
		Total:   int64(len(entries)),
	})
}

// Leaderboard retrieves balances ordered by net worth.
func (h *BalanceHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 10)
	offset := parseIntQuery(r, "offset", 0)

	balances, err := h.ledgerUC.Leaderboard(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get leaderboard", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalancesFromDomain(balances))
}

// Participations retrieves a user's stakes across wagers.
func (h *BalanceHandler) Participations(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", "")
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	participants, err := h.ledgerUC.ListParticipations(r.Context(), id, limit, offset)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list participations", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ParticipantsFromDomain(participants))
}
