package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sakif/newsboard/internal/fixture"
)

// Seed wipes every table and loads d, keeping the dataset's ids.
// It runs in one transaction so a failed seed leaves the old data intact.
func (db *DB) Seed(ctx context.Context, d fixture.Data) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: seeding: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM comments`,
		`DELETE FROM articles`,
		`DELETE FROM users`,
		`DELETE FROM topics`,
		`DELETE FROM sqlite_sequence WHERE name IN ('articles', 'comments')`,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("sqlite: seeding: clearing tables: %w", err)
		}
	}

	if err := seedRows(ctx, tx, `INSERT INTO topics (slug, description) VALUES (?, ?)`,
		len(d.Topics), func(i int) []any {
			return []any{d.Topics[i].Slug, d.Topics[i].Description}
		}); err != nil {
		return fmt.Errorf("sqlite: seeding topics: %w", err)
	}

	if err := seedRows(ctx, tx, `INSERT INTO users (username, name, avatar_url) VALUES (?, ?, ?)`,
		len(d.Users), func(i int) []any {
			u := d.Users[i]
			return []any{u.Username, u.Name, u.AvatarURL}
		}); err != nil {
		return fmt.Errorf("sqlite: seeding users: %w", err)
	}

	if err := seedRows(ctx, tx,
		`INSERT INTO articles (article_id, title, topic, author, body, created_at, votes)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		len(d.Articles), func(i int) []any {
			a := d.Articles[i]
			return []any{a.ArticleID, a.Title, a.Topic, a.Author, a.Body, a.CreatedAt.UTC(), a.Votes}
		}); err != nil {
		return fmt.Errorf("sqlite: seeding articles: %w", err)
	}

	if err := seedRows(ctx, tx,
		`INSERT INTO comments (comment_id, body, article_id, author, votes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		len(d.Comments), func(i int) []any {
			c := d.Comments[i]
			return []any{c.CommentID, c.Body, c.ArticleID, c.Author, c.Votes, c.CreatedAt.UTC()}
		}); err != nil {
		return fmt.Errorf("sqlite: seeding comments: %w", err)
	}

	return tx.Commit()
}

// seedRows prepares stmt once and executes it n times with args(i).
func seedRows(ctx context.Context, tx *sql.Tx, stmt string, n int, args func(i int) []any) error {
	prepared, err := tx.PrepareContext(ctx, stmt)
	if err != nil {
		return err
	}
	defer prepared.Close()

	for i := 0; i < n; i++ {
		if _, err := prepared.ExecContext(ctx, args(i)...); err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
	}
	return nil
}
