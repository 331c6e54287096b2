// Package postgres implements repository.Store on PostgreSQL through a
// pgx connection pool.
//
// The pool is safe for concurrent use; every method borrows a connection
// for one statement and returns it. No method holds a connection across
// two round trips.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sakif/newsboard/internal/apperror"
	"github.com/sakif/newsboard/internal/repository"
)

var _ repository.Store = (*Postgres)(nil)

// PostgreSQL error codes.
const (
	foreignKeyViolationCode = "23503"
	outOfRangeCode          = "22003"
)

type Postgres struct {
	pool *pgxpool.Pool
}

// New connects to the database at url and creates any missing tables.
func New(ctx context.Context, url string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("postgres: connecting: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: pinging: %w", err)
	}

	p := &Postgres{pool: pool}
	if err := p.createSchema(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: creating schema: %w", err)
	}

	return p, nil
}

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

func (p *Postgres) createSchema(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS topics (
			slug        VARCHAR PRIMARY KEY,
			description VARCHAR NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS users (
			username   VARCHAR PRIMARY KEY,
			name       VARCHAR NOT NULL,
			avatar_url VARCHAR NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS articles (
			article_id SERIAL PRIMARY KEY,
			title      VARCHAR NOT NULL,
			topic      VARCHAR NOT NULL REFERENCES topics(slug),
			author     VARCHAR NOT NULL REFERENCES users(username),
			body       VARCHAR NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			votes      INT NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_articles_topic ON articles(topic);

		CREATE TABLE IF NOT EXISTS comments (
			comment_id SERIAL PRIMARY KEY,
			body       VARCHAR NOT NULL,
			article_id INT NOT NULL REFERENCES articles(article_id) ON DELETE CASCADE,
			author     VARCHAR NOT NULL REFERENCES users(username),
			votes      INT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_comments_article_id ON comments(article_id, created_at);
	`)
	return err
}

func isForeignKeyViolation(err error) bool {
	return hasCode(err, foreignKeyViolationCode)
}

// isOutOfRange reports an integer result that does not fit its column,
// e.g. a vote total pushed past the INT range.
func isOutOfRange(err error) bool {
	return hasCode(err, outOfRangeCode)
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

// notFoundOr maps pgx.ErrNoRows to a NotFound error and wraps anything else.
func notFoundOr(err error, resource, id, op string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperror.NotFound(resource, id)
	}
	return fmt.Errorf("postgres: %s: %w", op, err)
}
