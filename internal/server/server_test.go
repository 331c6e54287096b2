package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/newsboard/internal/config"
	"github.com/sakif/newsboard/internal/model"
	sqliteRepo "github.com/sakif/newsboard/internal/repository/sqlite"
)

// newTestServer wires a Server around a private in-memory SQLite store,
// seeded through the same startup path the binary uses.
func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	store, err := sqliteRepo.NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	cfg := config.Config{
		Server:   config.ServerConfig{Port: 0, LogLevel: "error", ShutdownTimeout: time.Second},
		Database: config.DatabaseConfig{Driver: config.DriverSQLite, URL: ":memory:", Seed: true},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	srv, err := New(context.Background(), cfg, store, logger)
	require.NoError(t, err)
	return srv.Router()
}

func request(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), "body: %s", rec.Body.String())
	return v
}

type articlesResponse struct {
	Articles []model.ArticleSummary `json:"articles"`
}

type articleResponse struct {
	Article model.Article `json:"article"`
}

type commentsResponse struct {
	Comments []model.Comment `json:"comments"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// =========================================================================
// TOPICS & USERS
// =========================================================================

func TestGetTopics(t *testing.T) {
	rec := request(t, newTestServer(t), http.MethodGet, "/api/topics", "")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[struct {
		Topics []model.Topic `json:"topics"`
	}](t, rec)

	require.Len(t, resp.Topics, 3)
	for _, tp := range resp.Topics {
		assert.NotEmpty(t, tp.Slug)
		assert.NotEmpty(t, tp.Description)
	}
}

func TestGetUsers(t *testing.T) {
	h := newTestServer(t)

	rec := request(t, h, http.MethodGet, "/api/users", "")
	require.Equal(t, http.StatusOK, rec.Code)
	users := decode[struct {
		Users []model.User `json:"users"`
	}](t, rec)
	assert.Len(t, users.Users, 4)

	rec = request(t, h, http.MethodGet, "/api/users/rogersop", "")
	require.Equal(t, http.StatusOK, rec.Code)
	one := decode[struct {
		User model.User `json:"user"`
	}](t, rec)
	assert.Equal(t, "paul", one.User.Name)

	rec = request(t, h, http.MethodGet, "/api/users/nobody", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// =========================================================================
// ARTICLES
// =========================================================================

func TestGetArticles_Default(t *testing.T) {
	rec := request(t, newTestServer(t), http.MethodGet, "/api/articles", "")
	require.Equal(t, http.StatusOK, rec.Code)

	articles := decode[articlesResponse](t, rec).Articles
	require.Len(t, articles, 12)
	assert.True(t, sort.SliceIsSorted(articles, func(i, j int) bool {
		return articles[i].CreatedAt.After(articles[j].CreatedAt)
	}), "sorted by created_at descending")

	for _, a := range articles {
		if a.ArticleID == 1 {
			assert.Equal(t, 11, a.CommentCount)
		}
	}
}

func TestGetArticles_Order(t *testing.T) {
	h := newTestServer(t)

	for _, order := range []string{"asc", "ASC", "desc", "DESC"} {
		t.Run(order, func(t *testing.T) {
			rec := request(t, h, http.MethodGet, "/api/articles?sort_by=votes&order="+order, "")
			require.Equal(t, http.StatusOK, rec.Code)

			articles := decode[articlesResponse](t, rec).Articles
			asc := strings.EqualFold(order, "asc")
			for i := 1; i < len(articles); i++ {
				if asc {
					assert.LessOrEqual(t, articles[i-1].Votes, articles[i].Votes)
				} else {
					assert.GreaterOrEqual(t, articles[i-1].Votes, articles[i].Votes)
				}
			}
		})
	}
}

func TestGetArticles_SortBy(t *testing.T) {
	h := newTestServer(t)

	for _, col := range []string{"article_id", "created_at", "votes", "comment_count"} {
		t.Run(col, func(t *testing.T) {
			rec := request(t, h, http.MethodGet, "/api/articles?sort_by="+col, "")
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Len(t, decode[articlesResponse](t, rec).Articles, 12)
		})
	}

	rec := request(t, h, http.MethodGet, "/api/articles?sort_by=comment_count&order=asc", "")
	articles := decode[articlesResponse](t, rec).Articles
	require.NotEmpty(t, articles)
	assert.Equal(t, 0, articles[0].CommentCount)
	assert.Equal(t, 11, articles[len(articles)-1].CommentCount)
}

func TestGetArticles_Topic(t *testing.T) {
	h := newTestServer(t)

	rec := request(t, h, http.MethodGet, "/api/articles?topic=mitch", "")
	require.Equal(t, http.StatusOK, rec.Code)
	articles := decode[articlesResponse](t, rec).Articles
	assert.Len(t, articles, 11)
	for _, a := range articles {
		assert.Equal(t, "mitch", a.Topic)
	}

	rec = request(t, h, http.MethodGet, "/api/articles?topic=paper", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"articles":[]}`, rec.Body.String(), "known topic without articles is an empty list")
}

func TestGetArticles_InvalidQueries(t *testing.T) {
	tests := []struct {
		target  string
		message string
	}{
		{"/api/articles?order=sideways", "Invalid order Query"},
		{"/api/articles?order=asc%3BDROP%20TABLE%20articles", "Invalid order Query"},
		{"/api/articles?sort_by=title", "Invalid sort_by Query"},
		{"/api/articles?sort_by=votes%3B--", "Invalid sort_by Query"},
		{"/api/articles?topic=dogs", "Invalid topic Query"},
		{"/api/articles?topic=", "Invalid topic Query"},
		{"/api/articles?topic=x'%20OR%20'1'='1", "Invalid topic Query"},
		{"/api/articles?order=up&sort_by=nope&topic=dogs", "Invalid order Query"},
	}

	h := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := request(t, h, http.MethodGet, tt.target, "")

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.message, decode[messageResponse](t, rec).Message)
		})
	}
}

func TestGetArticleByID(t *testing.T) {
	h := newTestServer(t)

	rec := request(t, h, http.MethodGet, "/api/articles/2", "")
	require.Equal(t, http.StatusOK, rec.Code)

	a := decode[articleResponse](t, rec).Article
	assert.Equal(t, int64(2), a.ArticleID)
	assert.Equal(t, "Sony Vaio; or, The Laptop", a.Title)
	assert.Equal(t, "mitch", a.Topic)
	assert.Equal(t, "icellusedkars", a.Author)
	assert.Equal(t, 0, a.Votes)
	assert.True(t, a.CreatedAt.Equal(time.Date(2020, 10, 16, 5, 3, 0, 0, time.UTC)))

	rec = request(t, h, http.MethodGet, "/api/articles/9999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not Found", decode[messageResponse](t, rec).Message)

	rec = request(t, h, http.MethodGet, "/api/articles/banana", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Bad Request", decode[messageResponse](t, rec).Message)
}

func TestPatchArticleVotes(t *testing.T) {
	h := newTestServer(t)

	rec := request(t, h, http.MethodPatch, "/api/articles/1", `{"inc_votes": 5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 105, decode[articleResponse](t, rec).Article.Votes)

	rec = request(t, h, http.MethodPatch, "/api/articles/2", `{"inc_votes": -5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, -5, decode[articleResponse](t, rec).Article.Votes, "votes may go negative")

	rec = request(t, h, http.MethodGet, "/api/articles/2", "")
	assert.Equal(t, -5, decode[articleResponse](t, rec).Article.Votes, "the new count is stored")

	rec = request(t, h, http.MethodPatch, "/api/articles/1", `{"inc_votes": "cat"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = request(t, h, http.MethodPatch, "/api/articles/9999", `{"inc_votes": 1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = request(t, h, http.MethodPatch, "/api/articles/one", `{"inc_votes": 1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPatchArticleVotes_ExtremeDelta(t *testing.T) {
	h := newTestServer(t)

	for _, body := range []string{
		`{"inc_votes": 9223372036854775807}`,
		`{"inc_votes": -9223372036854775808}`,
		`{"inc_votes": 2147483648}`,
	} {
		rec := request(t, h, http.MethodPatch, "/api/articles/1", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}

	rec := request(t, h, http.MethodGet, "/api/articles/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 100, decode[articleResponse](t, rec).Article.Votes, "rejected deltas are not applied")

	rec = request(t, h, http.MethodGet, "/api/articles", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[articlesResponse](t, rec).Articles, 12)
}

func TestGetArticle_OversizedID(t *testing.T) {
	h := newTestServer(t)

	rec := request(t, h, http.MethodGet, "/api/articles/9999999999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not Found", decode[messageResponse](t, rec).Message)

	rec = request(t, h, http.MethodPatch, "/api/articles/9999999999", `{"inc_votes": 1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = request(t, h, http.MethodDelete, "/api/comments/9999999999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// =========================================================================
// COMMENTS
// =========================================================================

func TestGetComments(t *testing.T) {
	h := newTestServer(t)

	rec := request(t, h, http.MethodGet, "/api/articles/1/comments", "")
	require.Equal(t, http.StatusOK, rec.Code)
	comments := decode[commentsResponse](t, rec).Comments
	require.Len(t, comments, 11)
	for i := 1; i < len(comments); i++ {
		assert.False(t, comments[i].CreatedAt.After(comments[i-1].CreatedAt), "newest first")
	}

	rec = request(t, h, http.MethodGet, "/api/articles/2/comments", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"comments":[]}`, rec.Body.String())

	rec = request(t, h, http.MethodGet, "/api/articles/9999/comments", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = request(t, h, http.MethodGet, "/api/articles/x/comments", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostComment_RoundTrip(t *testing.T) {
	h := newTestServer(t)

	rec := request(t, h, http.MethodPost, "/api/articles/2/comments",
		`{"username": "butter_bridge", "body": "What a laptop"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	created := decode[struct {
		Comment model.Comment `json:"comment"`
	}](t, rec).Comment
	assert.NotZero(t, created.CommentID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, 0, created.Votes)
	assert.Equal(t, "butter_bridge", created.Author)

	rec = request(t, h, http.MethodGet, "/api/articles/2/comments", "")
	comments := decode[commentsResponse](t, rec).Comments
	require.Len(t, comments, 1)
	assert.Equal(t, created.CommentID, comments[0].CommentID)
	assert.Equal(t, "What a laptop", comments[0].Body)
}

func TestPostComment_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		body   string
		status int
	}{
		{"unknown article", "/api/articles/9999/comments", `{"username": "lurker", "body": "hi"}`, 404},
		{"unknown user", "/api/articles/1/comments", `{"username": "ghost", "body": "boo"}`, 404},
		{"body not a string", "/api/articles/1/comments", `{"username": "lurker", "body": 12}`, 400},
		{"username not a string", "/api/articles/1/comments", `{"username": true, "body": "hi"}`, 400},
		{"missing body", "/api/articles/1/comments", `{"username": "lurker"}`, 400},
		// Stricter than "body is a string": whitespace-only bodies are
		// rejected on purpose.
		{"blank body is rejected", "/api/articles/1/comments", `{"username": "lurker", "body": "  "}`, 400},
		{"blank username is rejected", "/api/articles/1/comments", `{"username": " ", "body": "hi"}`, 400},
		{"malformed json", "/api/articles/1/comments", `{"username":`, 400},
		{"bad article id", "/api/articles/abc/comments", `{"username": "lurker", "body": "hi"}`, 400},
	}

	h := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := request(t, h, http.MethodPost, tt.target, tt.body)
			assert.Equal(t, tt.status, rec.Code, "body: %s", rec.Body.String())
		})
	}

	rec := request(t, h, http.MethodGet, "/api/articles/1/comments", "")
	assert.Len(t, decode[commentsResponse](t, rec).Comments, 11, "no rejected comment was stored")
}

func TestDeleteComment(t *testing.T) {
	h := newTestServer(t)

	rec := request(t, h, http.MethodDelete, "/api/comments/2", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = request(t, h, http.MethodGet, "/api/articles/1/comments", "")
	for _, c := range decode[commentsResponse](t, rec).Comments {
		assert.NotEqual(t, int64(2), c.CommentID)
	}

	rec = request(t, h, http.MethodDelete, "/api/comments/2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = request(t, h, http.MethodDelete, "/api/comments/two", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// =========================================================================
// FALLBACKS
// =========================================================================

func TestUnmatchedRoutes(t *testing.T) {
	tests := []struct{ method, target string }{
		{http.MethodGet, "/api/not-a-route"},
		{http.MethodGet, "/"},
		{http.MethodPut, "/api/topics"},
		{http.MethodDelete, "/api/articles/1"},
		{http.MethodPost, "/api/users"},
	}

	h := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rec := request(t, h, tt.method, tt.target, "")

			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.JSONEq(t, `{"message":"Not Found"}`, rec.Body.String())
		})
	}
}
