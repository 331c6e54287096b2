package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/sakif/newsboard/internal/apperror"
)

// validate is safe for concurrent use and caches struct metadata, so one
// instance serves every request.
var validate = validator.New(validator.WithRequiredStructEnabled())

// idParam parses the named route parameter as an integer id. Anything
// that is not a base-10 integer is a 400 before any store is touched.
//
// Ids are 32-bit in every store. A well-formed integer outside that range
// cannot name a row, so it is reported as NotFound for resource.
func idParam(r *http.Request, name, resource string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, apperror.NotFound(resource, raw)
		}
		return 0, apperror.BadRequest(apperror.MsgBadRequest)
	}
	return id, nil
}

// decodeBody decodes a JSON request body into dst and runs its validate
// tags. Malformed JSON, a field of the wrong JSON type and a missing
// required field all come back as BadRequest.
//
// Request structs use pointer fields with validate:"required": a nil
// pointer means the key was absent (or null), which is different from a
// present zero value such as {"inc_votes": 0}.
func decodeBody(r *http.Request, dst any) error {
	if err := render.DecodeJSON(r.Body, dst); err != nil {
		return apperror.BadRequest(apperror.MsgBadRequest)
	}
	if err := validate.Struct(dst); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			return apperror.InvalidField(verrs[0].Field())
		}
		return apperror.BadRequest(apperror.MsgBadRequest)
	}
	return nil
}

type postCommentRequest struct {
	Username *string `json:"username" validate:"required"`
	Body     *string `json:"body" validate:"required"`
}

// inc_votes is bounded to the 32-bit votes column so one request cannot
// overflow the stored count.
type patchVotesRequest struct {
	IncVotes *int `json:"inc_votes" validate:"required,min=-2147483648,max=2147483647"`
}
