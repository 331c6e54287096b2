package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/newsboard/internal/apperror"
	"github.com/sakif/newsboard/internal/model"
	"github.com/sakif/newsboard/internal/repository"
)

// CommentService lists, posts and deletes comments.
//
// It needs the article and user repositories too: a comment can only be
// listed for, or posted to, an article that exists, by a user that exists.
type CommentService struct {
	comments repository.CommentRepository
	articles repository.ArticleRepository
	users    repository.UserRepository
	logger   *slog.Logger
}

func NewCommentService(
	comments repository.CommentRepository,
	articles repository.ArticleRepository,
	users repository.UserRepository,
	logger *slog.Logger,
) *CommentService {
	return &CommentService{
		comments: comments,
		articles: articles,
		users:    users,
		logger:   logger,
	}
}

// ListByArticle returns the article's comments, newest first. An article
// with no comments yields an empty slice; a missing article is NotFound.
func (s *CommentService) ListByArticle(ctx context.Context, articleID int64) ([]model.Comment, error) {
	if _, err := s.articles.GetArticle(ctx, articleID); err != nil {
		logFailure(s.logger, "failed to check article", err, slog.Int64("article_id", articleID))
		return nil, fmt.Errorf("listing comments: %w", err)
	}

	comments, err := s.comments.ListComments(ctx, articleID)
	if err != nil {
		logFailure(s.logger, "failed to list comments", err, slog.Int64("article_id", articleID))
		return nil, fmt.Errorf("listing comments for article %d: %w", articleID, err)
	}
	return comments, nil
}

// Create posts a comment by username on the given article.
//
// Checks run in this order: body and username present (BadRequest), article
// exists (NotFound), user exists (NotFound). The store's foreign keys back
// up the last two if a row disappears between the check and the insert.
func (s *CommentService) Create(ctx context.Context, articleID int64, username, body string) (*model.Comment, error) {
	if strings.TrimSpace(username) == "" {
		return nil, apperror.InvalidField("username")
	}
	if strings.TrimSpace(body) == "" {
		return nil, apperror.InvalidField("body")
	}

	if _, err := s.articles.GetArticle(ctx, articleID); err != nil {
		logFailure(s.logger, "failed to check article", err, slog.Int64("article_id", articleID))
		return nil, fmt.Errorf("creating comment: %w", err)
	}
	if _, err := s.users.GetUser(ctx, username); err != nil {
		logFailure(s.logger, "failed to check user", err, slog.String("username", username))
		return nil, fmt.Errorf("creating comment: %w", err)
	}

	c := &model.Comment{
		ArticleID: articleID,
		Author:    username,
		Body:      body,
	}
	if err := s.comments.CreateComment(ctx, c); err != nil {
		logFailure(s.logger, "failed to create comment", err,
			slog.Int64("article_id", articleID),
			slog.String("username", username),
		)
		return nil, fmt.Errorf("creating comment: %w", err)
	}

	s.logger.Info("comment created",
		slog.Int64("comment_id", c.CommentID),
		slog.Int64("article_id", articleID),
		slog.String("author", username),
	)
	return c, nil
}

// Delete removes a comment permanently. A missing comment is NotFound.
func (s *CommentService) Delete(ctx context.Context, id int64) error {
	if err := s.comments.DeleteComment(ctx, id); err != nil {
		logFailure(s.logger, "failed to delete comment", err, slog.Int64("comment_id", id))
		return fmt.Errorf("deleting comment %d: %w", id, err)
	}

	s.logger.Info("comment deleted", slog.Int64("comment_id", id))
	return nil
}
