package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clankbot/wagerbank/internal/adapter/http/dto"
	"github.com/clankbot/wagerbank/internal/usecase"
)

// ReconciliationService defines the ledger audit operations needed by
// ReconciliationHandler.
type ReconciliationService interface {
	ReconcileUser(ctx context.Context, userID string) (*usecase.ReconciliationResult, error)
	ReconcileAll(ctx context.Context) ([]*usecase.ReconciliationResult, error)
}

// ReconciliationHandler handles ledger reconciliation HTTP requests.
type ReconciliationHandler struct {
	reconcileUC ReconciliationService
}

// NewReconciliationHandler creates a new ReconciliationHandler.
func NewReconciliationHandler(reconcileUC ReconciliationService) *ReconciliationHandler {
	return &ReconciliationHandler{reconcileUC: reconcileUC}
}

// CheckUser replays one user's ledger and compares it against the
// balance aggregate.
func (h *ReconciliationHandler) CheckUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", "")
		return
	}

	result, err := h.reconcileUC.ReconcileUser(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to reconcile user", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationFromResult(result))
}

// Run checks every balance against its ledger and reports mismatches.
func (h *ReconciliationHandler) Run(w http.ResponseWriter, r *http.Request) {
	mismatches, err := h.reconcileUC.ReconcileAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to run reconciliation", err.Error())
		return
	}

	resp := dto.ReconcileAllResponse{
		Mismatches: make([]*dto.ReconciliationResponse, len(mismatches)),
		Clean:      len(mismatches) == 0,
	}
	for i, m := range mismatches {
		resp.Mismatches[i] = dto.ReconciliationFromResult(m)
	}
	writeJSON(w, http.StatusOK, resp)
}
