package handler

import (
	"log/slog"
	"net/http"

	"notebook/internal/domain/services"
	"notebook/internal/httputil"
)

// AccountHandler handles requests about the authenticated user
type AccountHandler struct {
	accountService services.AccountService
	logger         *slog.Logger
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountService services.AccountService, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		logger:         logger,
	}
}

// GetAccount returns the requester's user record
// GET /api/users/me
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	user, err := h.accountService.GetAccount(r.Context(), userID)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, user)
}

// UpdateAccount changes the requester's username and/or email
// PATCH /api/users/me
func (h *AccountHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req services.UpdateAccountRequest
	if !parseBody(w, r, &req) {
		return
	}

	user, err := h.accountService.UpdateAccount(r.Context(), userID, &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, user)
}

// DeleteAccount deletes the requester and everything they own
// DELETE /api/users/me
func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.accountService.DeleteAccount(r.Context(), userID); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
