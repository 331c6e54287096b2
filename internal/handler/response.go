package handler

// RESPONSE HELPERS:
// Every handler answers through writeJSON or writeError so the wire format
// stays uniform:
//
//	success: {"<resource>": ...}      e.g. {"article": {...}}, {"comments": [...]}
//	failure: {"message": "Not Found"}
//
// The failure body carries only a message. The status code says what kind
// of failure it was; the message never leaks internals for a 500.

import (
	"log/slog"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/sakif/newsboard/internal/apperror"
)

// envelope wraps a payload under its resource name.
type envelope map[string]any

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Message string `json:"message"`
}

// writeJSON sends data with the given status. render.Status stores the
// status in the request context and render.JSON writes header and body.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	render.Status(r, status)
	render.JSON(w, r, data)
}

// writeError is the Error Translator: it maps err's kind to a status code
// and responds with {message}.
//
//	apperror.ErrBadRequest → 400, the error's own message
//	apperror.ErrNotFound   → 404 "Not Found"
//	anything else          → 500 "Internal Server Error"
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status := apperror.Status(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			slog.String("request_id", chimiddleware.GetReqID(r.Context())),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}

	writeJSON(w, r, status, ErrorResponse{Message: apperror.Message(err)})
}

// NotFound answers any unmatched route or method.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusNotFound, ErrorResponse{Message: apperror.MsgNotFound})
}
