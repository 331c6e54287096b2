// Package handler contains the Request Handlers: thin HTTP adapters that
// parse route parameters, query strings and JSON bodies, call one service
// method and encode the result.
//
// Handlers depend on the small interfaces below rather than on concrete
// services, so their tests can substitute stubs.
package handler

import (
	"context"

	"github.com/sakif/newsboard/internal/model"
	"github.com/sakif/newsboard/internal/query"
)

type TopicService interface {
	List(ctx context.Context) ([]model.Topic, error)
}

type ArticleService interface {
	List(ctx context.Context, p query.Params) ([]model.ArticleSummary, error)
	Get(ctx context.Context, id int64) (*model.Article, error)
	Vote(ctx context.Context, id int64, delta int) (*model.Article, error)
}

type CommentService interface {
	ListByArticle(ctx context.Context, articleID int64) ([]model.Comment, error)
	Create(ctx context.Context, articleID int64, username, body string) (*model.Comment, error)
	Delete(ctx context.Context, id int64) error
}

type UserService interface {
	List(ctx context.Context) ([]model.User, error)
	Get(ctx context.Context, username string) (*model.User, error)
}
