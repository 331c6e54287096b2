package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	service UserService
	logger  *slog.Logger
}

func NewUserHandler(service UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{service: service, logger: logger}
}

// HandleList returns every user.
//
// HTTP: GET /api/users → 200 {"users": [...]}
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, r, http.StatusOK, envelope{"users": users})
}

// HandleGet returns one user.
//
// HTTP: GET /api/users/{username} → 200 {"user": {...}} | 404
func (h *UserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	u, err := h.service.Get(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, r, http.StatusOK, envelope{"user": u})
}
