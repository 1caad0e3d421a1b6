package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clankbot/wagerbank/internal/adapter/http/dto"
	"github.com/clankbot/wagerbank/internal/domain"
)

// UserService defines the behavior needed by UserHandler.
type UserService interface {
	Ensure(ctx context.Context, userID, username string) (*domain.User, *domain.Balance, error)
	Get(ctx context.Context, userID string) (*domain.User, error)
	List(ctx context.Context, limit, offset int) ([]*domain.User, error)
}

// UserHandler handles user-related HTTP requests.
type UserHandler struct {
	userUC UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userUC UserService) *UserHandler {
	return &UserHandler{userUC: userUC}
}

// Ensure registers a chat user if unknown. Safe to call on every command.
func (h *UserHandler) Ensure(w http.ResponseWriter, r *http.Request) {
	var req dto.EnsureUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	user, balance, err := h.userUC.Ensure(r.Context(), req.UserID, req.Username)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to register user", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EnsureUserResponse{
		User:    dto.UserFromDomain(user),
		Balance: dto.BalanceFromDomain(balance),
	})
}

// Get retrieves a user by ID.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", "")
		return
	}

	user, err := h.userUC.Get(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get user", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.UserFromDomain(user))
}

// List lists registered users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	users, err := h.userUC.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list users", err.Error())
		return
	}

	result := make([]*dto.UserResponse, len(users))
	for i, u := range users {
		result[i] = dto.UserFromDomain(u)
	}
	writeJSON(w, http.StatusOK, result)
}
