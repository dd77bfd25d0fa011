package handler

import (
	"log/slog"
	"net/http"

	"github.com/signet/signet/internal/handler/dto"
)

// UserHandler handles user listing endpoints.
type UserHandler struct {
	logger *slog.Logger
	store  UserStore
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(logger *slog.Logger, store UserStore) *UserHandler {
	return &UserHandler{
		logger: logger,
		store:  store,
	}
}

// List handles GET /api/v1/users.
// Protected by the auth middleware; performs no auth logic of its own.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("failed to list users", slog.String("error", err.Error()))
		writeError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Temporary service failure")
		return
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, dto.ToUserResponse(user))
	}

	writeJSON(w, http.StatusOK, dto.UserListResponse{Data: responses})
}
