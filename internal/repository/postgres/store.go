package postgres

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/sakif/newsboard/internal/apperror"
	"github.com/sakif/newsboard/internal/model"
	"github.com/sakif/newsboard/internal/query"
)

func (p *Postgres) ListTopics(ctx context.Context) ([]model.Topic, error) {
	rows, err := p.pool.Query(ctx, `SELECT slug, description FROM topics ORDER BY slug`)
	if err != nil {
		return nil, fmt.Errorf("postgres: listing topics: %w", err)
	}
	topics, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Topic, error) {
		var tp model.Topic
		err := row.Scan(&tp.Slug, &tp.Description)
		return tp, err
	})
	if err != nil {
		return nil, fmt.Errorf("postgres: scanning topics: %w", err)
	}
	return topics, nil
}

func (p *Postgres) TopicSlugs(ctx context.Context) (query.SlugSet, error) {
	rows, err := p.pool.Query(ctx, `SELECT slug FROM topics`)
	if err != nil {
		return nil, fmt.Errorf("postgres: listing topic slugs: %w", err)
	}
	slugs, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("postgres: scanning topic slugs: %w", err)
	}
	return query.NewSlugSet(slugs...), nil
}

func (p *Postgres) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := p.pool.Query(ctx, `SELECT username, name, avatar_url FROM users ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("postgres: listing users: %w", err)
	}
	users, err := pgx.CollectRows(rows, scanUser)
	if err != nil {
		return nil, fmt.Errorf("postgres: scanning users: %w", err)
	}
	return users, nil
}

func (p *Postgres) GetUser(ctx context.Context, username string) (*model.User, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT username, name, avatar_url FROM users WHERE username = $1`, username)
	if err != nil {
		return nil, fmt.Errorf("postgres: getting user %s: %w", username, err)
	}
	u, err := pgx.CollectExactlyOneRow(rows, scanUser)
	if err != nil {
		return nil, notFoundOr(err, "user", username, "getting user "+username)
	}
	return &u, nil
}

func scanUser(row pgx.CollectableRow) (model.User, error) {
	var u model.User
	err := row.Scan(&u.Username, &u.Name, &u.AvatarURL)
	return u, err
}

// ListArticles runs a validated listing query with $n placeholders.
func (p *Postgres) ListArticles(ctx context.Context, q query.ArticleQuery) ([]model.ArticleSummary, error) {
	stmt, args := q.SQL(query.Dollar)

	rows, err := p.pool.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: listing articles: %w", err)
	}
	articles, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.ArticleSummary, error) {
		var a model.ArticleSummary
		err := row.Scan(&a.ArticleID, &a.Title, &a.Topic, &a.Author, &a.Body,
			&a.CreatedAt, &a.Votes, &a.CommentCount)
		return a, err
	})
	if err != nil {
		return nil, fmt.Errorf("postgres: scanning articles: %w", err)
	}
	return articles, nil
}

const articleColumns = `article_id, title, topic, author, body, created_at, votes`

func scanArticle(row pgx.CollectableRow) (model.Article, error) {
	var a model.Article
	err := row.Scan(&a.ArticleID, &a.Title, &a.Topic, &a.Author, &a.Body, &a.CreatedAt, &a.Votes)
	return a, err
}

func (p *Postgres) GetArticle(ctx context.Context, id int64) (*model.Article, error) {
	key := strconv.FormatInt(id, 10)
	rows, err := p.pool.Query(ctx,
		`SELECT `+articleColumns+` FROM articles WHERE article_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("postgres: getting article %s: %w", key, err)
	}
	a, err := pgx.CollectExactlyOneRow(rows, scanArticle)
	if err != nil {
		return nil, notFoundOr(err, "article", key, "getting article "+key)
	}
	return &a, nil
}

// IncrementVotes is one UPDATE ... RETURNING: the increment and the read
// of the new row are a single atomic statement.
func (p *Postgres) IncrementVotes(ctx context.Context, id int64, delta int) (*model.Article, error) {
	key := strconv.FormatInt(id, 10)
	rows, err := p.pool.Query(ctx,
		`UPDATE articles SET votes = votes + $1 WHERE article_id = $2 RETURNING `+articleColumns,
		delta, id)
	if err != nil {
		return nil, fmt.Errorf("postgres: updating votes for article %s: %w", key, err)
	}
	a, err := pgx.CollectExactlyOneRow(rows, scanArticle)
	if err != nil {
		if isOutOfRange(err) {
			return nil, apperror.BadRequest(apperror.MsgBadRequest)
		}
		return nil, notFoundOr(err, "article", key, "updating votes for article "+key)
	}
	return &a, nil
}

const commentColumns = `comment_id, article_id, author, body, votes, created_at`

func scanComment(row pgx.CollectableRow) (model.Comment, error) {
	var c model.Comment
	err := row.Scan(&c.CommentID, &c.ArticleID, &c.Author, &c.Body, &c.Votes, &c.CreatedAt)
	return c, err
}

func (p *Postgres) ListComments(ctx context.Context, articleID int64) ([]model.Comment, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+commentColumns+` FROM comments
		 WHERE article_id = $1
		 ORDER BY created_at DESC, comment_id DESC`, articleID)
	if err != nil {
		return nil, fmt.Errorf("postgres: listing comments for article %d: %w", articleID, err)
	}
	comments, err := pgx.CollectRows(rows, scanComment)
	if err != nil {
		return nil, fmt.Errorf("postgres: scanning comments: %w", err)
	}
	if comments == nil {
		comments = []model.Comment{}
	}
	return comments, nil
}

// CreateComment inserts c and fills it from the stored row.
func (p *Postgres) CreateComment(ctx context.Context, c *model.Comment) error {
	rows, err := p.pool.Query(ctx,
		`INSERT INTO comments (body, article_id, author)
		 VALUES ($1, $2, $3)
		 RETURNING `+commentColumns,
		c.Body, c.ArticleID, c.Author)
	if err != nil {
		return commentInsertError(c, err)
	}
	// A constraint violation usually surfaces while reading the result,
	// not from Query itself.
	stored, err := pgx.CollectExactlyOneRow(rows, scanComment)
	if err != nil {
		return commentInsertError(c, err)
	}
	*c = stored
	return nil
}

func commentInsertError(c *model.Comment, err error) error {
	if isForeignKeyViolation(err) {
		return apperror.NotFound("article or user", fmt.Sprintf("%d/%s", c.ArticleID, c.Author))
	}
	return fmt.Errorf("postgres: creating comment: %w", err)
}

func (p *Postgres) DeleteComment(ctx context.Context, id int64) error {
	key := strconv.FormatInt(id, 10)
	tag, err := p.pool.Exec(ctx, `DELETE FROM comments WHERE comment_id = $1`, id)
	if err != nil {
		return fmt.Errorf("postgres: deleting comment %s: %w", key, err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("comment", key)
	}
	return nil
}
