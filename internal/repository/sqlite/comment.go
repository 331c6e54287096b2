package sqlite

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sakif/newsboard/internal/apperror"
	"github.com/sakif/newsboard/internal/model"
)

// ListComments returns the comments on an article, newest first. An
// article without comments yields an empty, non-nil slice.
func (db *DB) ListComments(ctx context.Context, articleID int64) ([]model.Comment, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT comment_id, article_id, author, body, votes, created_at
		 FROM comments
		 WHERE article_id = ?
		 ORDER BY created_at DESC, comment_id DESC`,
		articleID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing comments for article %d: %w", articleID, err)
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.CommentID, &c.ArticleID, &c.Author, &c.Body, &c.Votes, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning comment row: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating comments: %w", err)
	}

	return comments, nil
}

// CreateComment inserts c. CommentID and CreatedAt are generated here and
// Votes starts at zero. An unknown article or author is rejected by the
// foreign keys and reported as apperror.NotFound.
func (db *DB) CreateComment(ctx context.Context, c *model.Comment) error {
	c.CreatedAt = time.Now().UTC()
	c.Votes = 0

	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO comments (body, article_id, author, votes, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		c.Body,
		c.ArticleID,
		c.Author,
		c.Votes,
		c.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperror.NotFound("article or user", fmt.Sprintf("%d/%s", c.ArticleID, c.Author))
		}
		return fmt.Errorf("sqlite: creating comment: %w", err)
	}

	c.CommentID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading comment id: %w", err)
	}

	return nil
}

// DeleteComment removes a comment permanently.
func (db *DB) DeleteComment(ctx context.Context, id int64) error {
	key := strconv.FormatInt(id, 10)

	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM comments WHERE comment_id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting comment %s: %w", key, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("comment", key)
	}

	return nil
}
