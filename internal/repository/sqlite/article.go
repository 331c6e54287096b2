package sqlite

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sakif/newsboard/internal/apperror"
	"github.com/sakif/newsboard/internal/model"
	"github.com/sakif/newsboard/internal/query"
)

// ListArticles runs a validated listing query. The statement text comes
// from q.SQL; the only request-derived value, the topic, is bound.
func (db *DB) ListArticles(ctx context.Context, q query.ArticleQuery) ([]model.ArticleSummary, error) {
	stmt, args := q.SQL(query.Question)

	rows, err := db.conn.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing articles: %w", err)
	}
	defer rows.Close()

	articles := []model.ArticleSummary{}
	for rows.Next() {
		var a model.ArticleSummary
		if err := rows.Scan(
			&a.ArticleID, &a.Title, &a.Topic, &a.Author, &a.Body,
			&a.CreatedAt, &a.Votes, &a.CommentCount,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning article row: %w", err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating articles: %w", err)
	}

	return articles, nil
}

// GetArticle returns one article, or apperror.NotFound.
func (db *DB) GetArticle(ctx context.Context, id int64) (*model.Article, error) {
	var a model.Article
	err := db.conn.QueryRowContext(ctx,
		`SELECT article_id, title, topic, author, body, created_at, votes
		 FROM articles
		 WHERE article_id = ?`,
		id,
	).Scan(&a.ArticleID, &a.Title, &a.Topic, &a.Author, &a.Body, &a.CreatedAt, &a.Votes)
	if err != nil {
		key := strconv.FormatInt(id, 10)
		return nil, notFoundOr(err, "article", key, "getting article "+key)
	}

	return &a, nil
}

// IncrementVotes adds delta to the stored vote count.
//
// The increment happens inside SQLite (votes = votes + ?), so concurrent
// updates to the same article commute and none is lost. The row is read
// back afterwards; RowsAffected tells us whether the article exists.
func (db *DB) IncrementVotes(ctx context.Context, id int64, delta int) (*model.Article, error) {
	key := strconv.FormatInt(id, 10)

	result, err := db.conn.ExecContext(ctx,
		`UPDATE articles SET votes = votes + ? WHERE article_id = ?`,
		delta, id,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: updating votes for article %s: %w", key, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, apperror.NotFound("article", key)
	}

	return db.GetArticle(ctx, id)
}
