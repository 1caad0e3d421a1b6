package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/clankbot/wagerbank/internal/adapter/http/dto"
	"github.com/clankbot/wagerbank/internal/domain"
	"github.com/clankbot/wagerbank/internal/usecase"
)

// WagerService defines the wager lifecycle operations needed by
// WagerHandler.
type WagerService interface {
	Open(ctx context.Context, input usecase.OpenWagerInput) (*domain.Wager, error)
	Join(ctx context.Context, input usecase.JoinWagerInput) (*domain.Wager, error)
	Close(ctx context.Context, wagerID string) (*domain.Wager, error)
	Get(ctx context.Context, wagerID string) (*domain.Wager, error)
	ListByStatus(ctx context.Context, status domain.WagerStatus, limit, offset int) ([]*domain.Wager, error)
	ListParticipants(ctx context.Context, wagerID string) ([]*domain.Participant, error)
	SweepExpired(ctx context.Context, now time.Time) (int, error)
}

// SettlementService defines the settlement operation needed by
// WagerHandler.
type SettlementService interface {
	Settle(ctx context.Context, wagerID string, outcome domain.Outcome) (*usecase.SettlementResult, error)
}

// WagerHandler handles wager-related HTTP requests.
type WagerHandler struct {
	wagerUC      WagerService
	settlementUC SettlementService
}

// NewWagerHandler creates a new WagerHandler.
func NewWagerHandler(wagerUC WagerService, settlementUC SettlementService) *WagerHandler {
	return &WagerHandler{
		wagerUC:      wagerUC,
		settlementUC: settlementUC,
	}
}

// Open creates a new wager.
func (h *WagerHandler) Open(w http.ResponseWriter, r *http.Request) {
	var req dto.OpenWagerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	wager, err := h.wagerUC.Open(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to open wager", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.WagerFromDomain(wager))
}

// Get retrieves a wager by ID.
func (h *WagerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing wager ID", "")
		return
	}

	wager, err := h.wagerUC.Get(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get wager", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.WagerFromDomain(wager))
}

// List lists wagers filtered by status. Defaults to open wagers.
func (h *WagerHandler) List(w http.ResponseWriter, r *http.Request) {
	status := domain.WagerStatus(r.URL.Query().Get("status"))
	if status == "" {
		status = domain.WagerStatusOpen
	}
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	wagers, err := h.wagerUC.ListByStatus(r.Context(), status, limit, offset)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list wagers", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListWagersResponse{
		Wagers: dto.WagersFromDomain(wagers),
		Total:  int64(len(wagers)),
	})
}

// Join stakes currency on one side of an open wager.
func (h *WagerHandler) Join(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing wager ID", "")
		return
	}

	var req dto.JoinWagerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	wager, err := h.wagerUC.Join(r.Context(), req.ToUseCaseInput(id))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to join wager", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.WagerFromDomain(wager))
}

// Close stops further participation on a wager.
func (h *WagerHandler) Close(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing wager ID", "")
		return
	}

	wager, err := h.wagerUC.Close(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to close wager", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.WagerFromDomain(wager))
}

// Settle resolves a closed wager and distributes the pool.
func (h *WagerHandler) Settle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing wager ID", "")
		return
	}

	var req dto.SettleWagerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.settlementUC.Settle(r.Context(), id, domain.Outcome(req.Outcome))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to settle wager", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SettlementFromResult(result))
}

// Participants lists the stakes placed on a wager.
func (h *WagerHandler) Participants(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing wager ID", "")
		return
	}

	participants, err := h.wagerUC.ListParticipants(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list participants", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ParticipantsFromDomain(participants))
}

// Sweep closes all open wagers whose close time has passed.
func (h *WagerHandler) Sweep(w http.ResponseWriter, r *http.Request) {
	closed, err := h.wagerUC.SweepExpired(r.Context(), time.Now())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to sweep expired wagers", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SweepResponse{Closed: closed})
}
