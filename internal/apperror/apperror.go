// Package apperror defines the closed set of failure kinds the API reports.
//
// Every operation fails with one of three kinds:
//
//	ErrBadRequest → malformed or mistyped input (400)
//	ErrNotFound   → referenced entity does not exist (404)
//	ErrInternal   → anything the store did not expect (500)
//
// Callers wrap an *AppError freely with fmt.Errorf("...: %w", err);
// errors.Is and errors.As still find the kind and the client message.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrBadRequest = errors.New("bad request")
	ErrNotFound   = errors.New("not found")
	ErrInternal   = errors.New("internal error")
)

// Client-facing messages.
const (
	MsgBadRequest = "Bad Request"
	MsgNotFound   = "Not Found"
	MsgInternal   = "Internal Server Error"
)

type AppError struct {
	Err      error  // kind sentinel
	Message  string // safe to show to the client
	Field    string // optional: input field or query parameter at fault
	Resource string // optional: entity type for NotFound
	ID       string // optional: entity key for NotFound
	cause    error  // optional: underlying error, never shown to the client
}

func (e *AppError) Error() string {
	switch {
	case e.Resource != "":
		return fmt.Sprintf("%s %s: %s", e.Resource, e.ID, e.Message)
	case e.cause != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() []error {
	if e.cause != nil {
		return []error{e.Err, e.cause}
	}
	return []error{e.Err}
}

// BadRequest reports malformed input with a client message.
func BadRequest(message string) *AppError {
	return &AppError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// InvalidField is BadRequest tagged with the offending body field.
func InvalidField(field string) *AppError {
	return &AppError{
		Err:     ErrBadRequest,
		Message: MsgBadRequest,
		Field:   field,
	}
}

// InvalidQuery reports a query parameter that failed its allow-list,
// e.g. InvalidQuery("sort_by") → "Invalid sort_by Query".
func InvalidQuery(param string) *AppError {
	return &AppError{
		Err:     ErrBadRequest,
		Message: fmt.Sprintf("Invalid %s Query", param),
		Field:   param,
	}
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:      ErrNotFound,
		Message:  MsgNotFound,
		Resource: resource,
		ID:       id,
	}
}

// Internal hides err behind a generic message.
func Internal(err error) *AppError {
	return &AppError{
		Err:     ErrInternal,
		Message: MsgInternal,
		cause:   err,
	}
}

// Status maps err to an HTTP status code. Errors that carry no kind are 500.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-safe message for err.
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && !errors.Is(err, ErrInternal) {
		return appErr.Message
	}
	return MsgInternal
}
