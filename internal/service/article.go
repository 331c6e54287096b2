package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/newsboard/internal/model"
	"github.com/sakif/newsboard/internal/query"
	"github.com/sakif/newsboard/internal/repository"
)

// ArticleService lists, fetches and votes on articles.
//
// Listing goes through a query.Builder: the raw topic, sort_by and order
// strings are validated there before anything reaches the repository.
type ArticleService struct {
	repo    repository.ArticleRepository
	builder *query.Builder
	logger  *slog.Logger
}

// NewArticleService wires the article repository with the live topic
// allow-list used to validate the topic filter.
func NewArticleService(repo repository.ArticleRepository, topics query.TopicSource, logger *slog.Logger) *ArticleService {
	return &ArticleService{
		repo:    repo,
		builder: query.NewBuilder(topics),
		logger:  logger,
	}
}

// List validates p and returns the matching articles with comment counts.
// A rejected parameter comes back as a BadRequest naming it, e.g.
// "Invalid sort_by Query".
func (s *ArticleService) List(ctx context.Context, p query.Params) ([]model.ArticleSummary, error) {
	q, err := s.builder.Build(ctx, p)
	if err != nil {
		logFailure(s.logger, "failed to build article query", err)
		return nil, err
	}

	articles, err := s.repo.ListArticles(ctx, q)
	if err != nil {
		logFailure(s.logger, "failed to list articles", err,
			slog.String("sort_by", p.SortBy),
			slog.String("order", p.Order),
		)
		return nil, fmt.Errorf("listing articles: %w", err)
	}
	return articles, nil
}

func (s *ArticleService) Get(ctx context.Context, id int64) (*model.Article, error) {
	a, err := s.repo.GetArticle(ctx, id)
	if err != nil {
		logFailure(s.logger, "failed to get article", err, slog.Int64("article_id", id))
		return nil, fmt.Errorf("getting article %d: %w", id, err)
	}
	return a, nil
}

// Vote adds delta (which may be negative) to the article's votes and
// returns the updated article. A zero delta is allowed and returns the
// article unchanged.
func (s *ArticleService) Vote(ctx context.Context, id int64, delta int) (*model.Article, error) {
	a, err := s.repo.IncrementVotes(ctx, id, delta)
	if err != nil {
		logFailure(s.logger, "failed to update votes", err,
			slog.Int64("article_id", id),
			slog.Int("inc_votes", delta),
		)
		return nil, fmt.Errorf("voting on article %d: %w", id, err)
	}

	s.logger.Info("article votes updated",
		slog.Int64("article_id", id),
		slog.Int("inc_votes", delta),
		slog.Int("votes", a.Votes),
	)
	return a, nil
}
