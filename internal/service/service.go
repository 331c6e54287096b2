// Package service contains the Data Access Operations: one method per
// resource-and-action pair the API exposes.
//
// THE LAYERS:
//
//	Handler (HTTP layer)     → parses route params and bodies, writes JSON
//	Service (this package)   → validates, checks referenced rows exist, orchestrates
//	Repository (data layer)  → one SQL statement per call
//
// Services accept plain Go values, never *http.Request, and return apperror
// kinds (BadRequest, NotFound) rather than status codes. The handler package
// translates those kinds to HTTP.
//
// Every service takes repository interfaces, not a concrete store, so the
// tests here run against an in-memory fake and the server can swap SQLite
// for PostgreSQL without touching this package.
package service

import (
	"errors"
	"log/slog"

	"github.com/sakif/newsboard/internal/apperror"
)

// isClientError reports whether err is an expected, client-caused failure.
// Those are not logged as errors: a 404 is a normal response.
func isClientError(err error) bool {
	return errors.Is(err, apperror.ErrNotFound) || errors.Is(err, apperror.ErrBadRequest)
}

// logFailure logs err at Error level unless it is a client error.
func logFailure(logger *slog.Logger, msg string, err error, attrs ...any) {
	if isClientError(err) {
		return
	}
	logger.Error(msg, append(attrs, slog.String("error", err.Error()))...)
}
