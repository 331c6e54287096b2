package handler

import (
	"log/slog"
	"net/http"
)

type TopicHandler struct {
	service TopicService
	logger  *slog.Logger
}

func NewTopicHandler(service TopicService, logger *slog.Logger) *TopicHandler {
	return &TopicHandler{service: service, logger: logger}
}

// HandleList returns every topic.
//
// HTTP: GET /api/topics → 200 {"topics": [...]}
func (h *TopicHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	topics, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, r, http.StatusOK, envelope{"topics": topics})
}
