package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sakif/newsboard/internal/fixture"
)

// Seed truncates every table and bulk-loads d with COPY, then moves the
// id sequences past the loaded ids.
func (p *Postgres) Seed(ctx context.Context, d fixture.Data) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: seeding: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`TRUNCATE comments, articles, users, topics RESTART IDENTITY CASCADE`); err != nil {
		return fmt.Errorf("postgres: seeding: truncating: %w", err)
	}

	copies := []struct {
		table   string
		columns []string
		n       int
		row     func(i int) ([]any, error)
	}{
		{"topics", []string{"slug", "description"}, len(d.Topics), func(i int) ([]any, error) {
			return []any{d.Topics[i].Slug, d.Topics[i].Description}, nil
		}},
		{"users", []string{"username", "name", "avatar_url"}, len(d.Users), func(i int) ([]any, error) {
			u := d.Users[i]
			return []any{u.Username, u.Name, u.AvatarURL}, nil
		}},
		{"articles", []string{"article_id", "title", "topic", "author", "body", "created_at", "votes"}, len(d.Articles), func(i int) ([]any, error) {
			a := d.Articles[i]
			return []any{int32(a.ArticleID), a.Title, a.Topic, a.Author, a.Body, a.CreatedAt, int32(a.Votes)}, nil
		}},
		{"comments", []string{"comment_id", "body", "article_id", "author", "votes", "created_at"}, len(d.Comments), func(i int) ([]any, error) {
			c := d.Comments[i]
			return []any{int32(c.CommentID), c.Body, int32(c.ArticleID), c.Author, int32(c.Votes), c.CreatedAt}, nil
		}},
	}

	for _, c := range copies {
		if _, err := tx.CopyFrom(ctx, pgx.Identifier{c.table}, c.columns, pgx.CopyFromSlice(c.n, c.row)); err != nil {
			return fmt.Errorf("postgres: seeding %s: %w", c.table, err)
		}
	}

	for _, seq := range []struct{ table, column string }{
		{"articles", "article_id"},
		{"comments", "comment_id"},
	} {
		stmt := fmt.Sprintf(
			`SELECT setval(pg_get_serial_sequence('%[1]s', '%[2]s'), COALESCE(MAX(%[2]s), 0) + 1, false) FROM %[1]s`,
			seq.table, seq.column)
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("postgres: seeding: resetting %s sequence: %w", seq.table, err)
		}
	}

	return tx.Commit(ctx)
}
