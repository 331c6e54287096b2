package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
)

type CommentHandler struct {
	service CommentService
	logger  *slog.Logger
}

func NewCommentHandler(service CommentService, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{service: service, logger: logger}
}

// HandleList returns an article's comments, newest first. An article with
// no comments is a 200 with an empty list.
//
// HTTP: GET /api/articles/{article_id}/comments
func (h *CommentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	articleID, err := idParam(r, "article_id", "article")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	comments, err := h.service.ListByArticle(r.Context(), articleID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, r, http.StatusOK, envelope{"comments": comments})
}

// HandleCreate posts a comment.
//
// HTTP: POST /api/articles/{article_id}/comments
// REQUEST BODY: {"username": "butter_bridge", "body": "..."}
// RESPONSE: 201 {"comment": {...}}
func (h *CommentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	articleID, err := idParam(r, "article_id", "article")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req postCommentRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	comment, err := h.service.Create(r.Context(), articleID, *req.Username, *req.Body)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, envelope{"comment": comment})
}

// HandleDelete removes a comment.
//
// HTTP: DELETE /api/comments/{comment_id} → 204, no body
func (h *CommentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "comment_id", "comment")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	render.NoContent(w, r)
}
