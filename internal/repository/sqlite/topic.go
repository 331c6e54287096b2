package sqlite

import (
	"context"
	"fmt"

	"github.com/sakif/newsboard/internal/model"
	"github.com/sakif/newsboard/internal/query"
)

// ListTopics returns every topic in slug order.
func (db *DB) ListTopics(ctx context.Context) ([]model.Topic, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT slug, description FROM topics ORDER BY slug`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing topics: %w", err)
	}
	defer rows.Close()

	topics := []model.Topic{}
	for rows.Next() {
		var tp model.Topic
		if err := rows.Scan(&tp.Slug, &tp.Description); err != nil {
			return nil, fmt.Errorf("sqlite: scanning topic row: %w", err)
		}
		topics = append(topics, tp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating topics: %w", err)
	}

	return topics, nil
}

// TopicSlugs reads the topic allow-list fresh from the table.
func (db *DB) TopicSlugs(ctx context.Context) (query.SlugSet, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT slug FROM topics`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing topic slugs: %w", err)
	}
	defer rows.Close()

	slugs := query.SlugSet{}
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, fmt.Errorf("sqlite: scanning topic slug: %w", err)
		}
		slugs[slug] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating topic slugs: %w", err)
	}

	return slugs, nil
}
