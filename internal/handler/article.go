package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/newsboard/internal/query"
)

type ArticleHandler struct {
	service ArticleService
	logger  *slog.Logger
}

func NewArticleHandler(service ArticleService, logger *slog.Logger) *ArticleHandler {
	return &ArticleHandler{service: service, logger: logger}
}

// HandleList lists articles with comment counts.
//
// HTTP: GET /api/articles?topic=&sort_by=&order=
//
// The raw strings are passed through untouched; validation happens in the
// query builder. A topic key that is present but empty ("?topic=") counts
// as present, so it is validated like any other slug.
func (h *ArticleHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	p := query.Params{
		SortBy: values.Get("sort_by"),
		Order:  values.Get("order"),
	}
	if topics, ok := values["topic"]; ok && len(topics) > 0 {
		topic := topics[0]
		p.Topic = &topic
	}

	articles, err := h.service.List(r.Context(), p)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, r, http.StatusOK, envelope{"articles": articles})
}

// HandleGet returns one article.
//
// HTTP: GET /api/articles/{article_id} → 200 {"article": {...}} | 400 | 404
func (h *ArticleHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "article_id", "article")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	article, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, r, http.StatusOK, envelope{"article": article})
}

// HandleVote applies a signed vote delta.
//
// HTTP: PATCH /api/articles/{article_id}
// REQUEST BODY: {"inc_votes": -5}
//
// inc_votes must be a JSON integer: a string, a fraction or a missing key
// is a 400.
func (h *ArticleHandler) HandleVote(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "article_id", "article")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req patchVotesRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	article, err := h.service.Vote(r.Context(), id, *req.IncVotes)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, r, http.StatusOK, envelope{"article": article})
}
