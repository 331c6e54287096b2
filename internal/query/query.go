// Package query turns untrusted article-listing parameters into a safe,
// parameterized SQL statement.
//
// Three parameters arrive straight from the URL: topic, sort_by and order.
// Only two of them shape the statement text (the ORDER BY column and
// direction), and neither is ever spliced in as received. Each is resolved
// through a fixed lookup table to a literal chosen here; anything not in
// the table is rejected. The topic only ever travels as a bound value, and
// it must name a topic that exists right now.
package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/sakif/newsboard/internal/apperror"
)

// Defaults applied when a parameter is absent.
const (
	DefaultSortBy = "created_at"
	DefaultOrder  = "DESC"
)

// Column is a sortable article column.
type Column int

const (
	ColumnCreatedAt Column = iota
	ColumnArticleID
	ColumnVotes
	ColumnCommentCount
)

// sortColumns is the sort_by allow-list. The values are the only
// identifiers that ever reach ORDER BY.
var sortColumns = map[string]Column{
	"article_id":    ColumnArticleID,
	"created_at":    ColumnCreatedAt,
	"votes":         ColumnVotes,
	"comment_count": ColumnCommentCount,
}

var columnSQL = map[Column]string{
	ColumnArticleID:    "a.article_id",
	ColumnCreatedAt:    "a.created_at",
	ColumnVotes:        "a.votes",
	ColumnCommentCount: "comment_count",
}

// Direction is a sort direction.
type Direction bool

const (
	Descending Direction = false
	Ascending  Direction = true
)

func (d Direction) String() string {
	if d == Ascending {
		return "ASC"
	}
	return "DESC"
}

// SlugSet is the set of topic slugs that currently exist.
type SlugSet map[string]struct{}

// NewSlugSet builds a SlugSet from a list of slugs.
func NewSlugSet(slugs ...string) SlugSet {
	set := make(SlugSet, len(slugs))
	for _, s := range slugs {
		set[s] = struct{}{}
	}
	return set
}

func (s SlugSet) Has(slug string) bool {
	_, ok := s[slug]
	return ok
}

// TopicSource supplies the live topic allow-list. It is consulted on every
// Build call that carries a topic; nothing is cached.
type TopicSource interface {
	TopicSlugs(ctx context.Context) (SlugSet, error)
}

// Params are the raw query-string values. A nil Topic means "no filter";
// empty SortBy and Order fall back to the defaults.
type Params struct {
	Topic  *string
	SortBy string
	Order  string
}

// ArticleQuery is a fully validated listing request. It can only be
// produced by Builder.Build (or by hand from the exported enums), so every
// value in it is already safe.
type ArticleQuery struct {
	Topic    string
	HasTopic bool
	SortBy   Column
	Order    Direction
}

// Builder validates Params against the static column allow-list and the
// topic allow-list provided by its TopicSource.
type Builder struct {
	topics TopicSource
}

func NewBuilder(topics TopicSource) *Builder {
	return &Builder{topics: topics}
}

// Build checks order, then sort_by, then topic, and returns the resolved
// query. The first two checks need no I/O; the topic check is a round trip
// to the store. Each parameter fails with its own message:
//
//	"Invalid order Query", "Invalid sort_by Query", "Invalid topic Query"
func (b *Builder) Build(ctx context.Context, p Params) (ArticleQuery, error) {
	var q ArticleQuery

	order := p.Order
	if order == "" {
		order = DefaultOrder
	}
	switch strings.ToLower(order) {
	case "asc":
		q.Order = Ascending
	case "desc":
		q.Order = Descending
	default:
		return ArticleQuery{}, apperror.InvalidQuery("order")
	}

	sortBy := p.SortBy
	if sortBy == "" {
		sortBy = DefaultSortBy
	}
	col, ok := sortColumns[sortBy]
	if !ok {
		return ArticleQuery{}, apperror.InvalidQuery("sort_by")
	}
	q.SortBy = col

	if p.Topic != nil {
		slugs, err := b.topics.TopicSlugs(ctx)
		if err != nil {
			return ArticleQuery{}, fmt.Errorf("query: loading topic allow-list: %w", err)
		}
		if !slugs.Has(*p.Topic) {
			return ArticleQuery{}, apperror.InvalidQuery("topic")
		}
		q.Topic = *p.Topic
		q.HasTopic = true
	}

	return q, nil
}

// Placeholder renders the n-th (1-based) bind parameter for a driver.
type Placeholder func(n int) string

// Question renders "?" placeholders (SQLite, MySQL).
func Question(int) string { return "?" }

// Dollar renders "$n" placeholders (PostgreSQL).
func Dollar(n int) string { return fmt.Sprintf("$%d", n) }

const listArticlesSQL = `SELECT
	a.article_id, a.title, a.topic, a.author, a.body, a.created_at, a.votes,
	CAST(COUNT(c.comment_id) AS INTEGER) AS comment_count
FROM articles a
LEFT JOIN comments c ON c.article_id = a.article_id`

// SQL renders the listing statement and its bind arguments. Comments are
// left-joined and counted per article; ties on the sort column are broken
// by article_id in the same direction so results are stable.
//
// SQL panics if SortBy is not one of the Column constants.
func (q ArticleQuery) SQL(ph Placeholder) (string, []any) {
	var (
		sb   strings.Builder
		args []any
	)
	sb.WriteString(listArticlesSQL)

	if q.HasTopic {
		args = append(args, q.Topic)
		sb.WriteString("\nWHERE a.topic = ")
		sb.WriteString(ph(len(args)))
	}

	col, ok := columnSQL[q.SortBy]
	if !ok {
		panic(fmt.Sprintf("query: unknown sort column %d", q.SortBy))
	}
	dir := q.Order.String()

	sb.WriteString("\nGROUP BY a.article_id, a.title, a.topic, a.author, a.body, a.created_at, a.votes")
	fmt.Fprintf(&sb, "\nORDER BY %s %s", col, dir)
	if q.SortBy != ColumnArticleID {
		fmt.Fprintf(&sb, ", a.article_id %s", dir)
	}

	return sb.String(), args
}
