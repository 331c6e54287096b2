// Package repository declares the Persistence Gateway: what the services
// need from a relational store, independent of the driver behind it.
//
// Implementations translate "no such row" and foreign-key violations into
// apperror.NotFound and wrap everything else with their package prefix.
package repository

import (
	"context"

	"github.com/sakif/newsboard/internal/fixture"
	"github.com/sakif/newsboard/internal/model"
	"github.com/sakif/newsboard/internal/query"
)

type TopicRepository interface {
	ListTopics(ctx context.Context) ([]model.Topic, error)
	// TopicSlugs is the live topic allow-list used by query.Builder.
	TopicSlugs(ctx context.Context) (query.SlugSet, error)
}

type ArticleRepository interface {
	ListArticles(ctx context.Context, q query.ArticleQuery) ([]model.ArticleSummary, error)
	GetArticle(ctx context.Context, id int64) (*model.Article, error)
	// IncrementVotes applies delta server-side in a single statement
	// (votes = votes + delta) and returns the updated row.
	IncrementVotes(ctx context.Context, id int64, delta int) (*model.Article, error)
}

type CommentRepository interface {
	// ListComments returns an article's comments, newest first.
	// It does not check that the article exists.
	ListComments(ctx context.Context, articleID int64) ([]model.Comment, error)
	// CreateComment inserts c and fills in CommentID, Votes and CreatedAt.
	CreateComment(ctx context.Context, c *model.Comment) error
	DeleteComment(ctx context.Context, id int64) error
}

type UserRepository interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, username string) (*model.User, error)
}

// Store is a complete gateway as opened by the server and the seed tool.
type Store interface {
	TopicRepository
	ArticleRepository
	CommentRepository
	UserRepository

	// Seed replaces every row with the given dataset and restarts id
	// generation so ids match the dataset.
	Seed(ctx context.Context, d fixture.Data) error
	Close() error
}
