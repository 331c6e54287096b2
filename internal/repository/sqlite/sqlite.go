// Package sqlite implements the repository interfaces using SQLite as the storage backend.
//
// WHY modernc.org/sqlite?
// It is a pure Go translation of SQLite: no C compiler, no CGo, cross-compiles
// anywhere Go does. The driver registers itself with database/sql as "sqlite".
//
// CONNECTION SETTINGS:
// PRAGMAs such as foreign_keys apply per connection, and sql.DB is a pool of
// connections. Running "PRAGMA foreign_keys=ON" once would only configure
// whichever connection happened to run it. Instead every PRAGMA is passed in
// the DSN (_pragma=...), so the driver applies it to each connection it opens.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/xid"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/sakif/newsboard/internal/apperror"
	"github.com/sakif/newsboard/internal/repository"
)

var _ repository.Store = (*DB)(nil)

// connParams are appended to every DSN.
//   - foreign_keys: comment.author and comment.article_id are enforced
//   - busy_timeout: writers wait for a lock instead of failing with SQLITE_BUSY
//   - _time_format=sqlite: time.Time is written as "2006-01-02 15:04:05.999999999-07:00"
//     so DATETIME columns compare correctly as text
var connParams = []string{
	"_pragma=foreign_keys(1)",
	"_pragma=busy_timeout(5000)",
	"_time_format=sqlite",
}

// DB wraps a sql.DB connection pool and implements repository.Store.
type DB struct {
	conn *sql.DB
}

// New opens (creating if needed) the SQLite database at dbPath and makes
// sure the schema exists.
//
// dbPath examples:
//   - "data/news.db"             → file-based database
//   - "file:data/news.db?mode=ro" → URI form, extra parameters kept
func New(dbPath string) (*DB, error) {
	dsn := buildDSN(dbPath, append([]string{"_pragma=journal_mode(WAL)"}, connParams...))
	return open(dsn, 0)
}

// NewMemory opens a private in-memory database. Each call gets a fresh,
// uniquely named database, so tests never see each other's rows.
//
// An in-memory database lives only as long as a connection to it, and each
// pool connection to ":memory:" would get its own empty database. The pool
// is therefore pinned to a single connection.
func NewMemory() (*DB, error) {
	dsn := buildDSN("file:"+xid.New().String()+"?mode=memory&cache=shared", connParams)
	return open(dsn, 1)
}

func buildDSN(path string, params []string) string {
	if path == ":memory:" {
		path = "file::memory:"
	}
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + strings.Join(params, "&")
}

func open(dsn string, maxConns int) (*DB, error) {
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}
	if maxConns > 0 {
		conn.SetMaxOpenConns(maxConns)
		conn.SetMaxIdleConns(maxConns)
		conn.SetConnMaxLifetime(0)
		conn.SetConnMaxIdleTime(0)
	}

	// sql.Open does not connect; Ping surfaces a bad path or permissions now
	// rather than on the first request.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.createSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: creating schema: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// createSchema creates any missing table or index. It is safe to run on
// every start: CREATE ... IF NOT EXISTS never touches existing data.
func (db *DB) createSchema() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS topics (
			slug        TEXT PRIMARY KEY,
			description TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS users (
			username   TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			avatar_url TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS articles (
			article_id INTEGER PRIMARY KEY AUTOINCREMENT,
			title      TEXT NOT NULL,
			topic      TEXT NOT NULL REFERENCES topics(slug),
			author     TEXT NOT NULL REFERENCES users(username),
			body       TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			votes      INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_articles_topic ON articles(topic);

		CREATE TABLE IF NOT EXISTS comments (
			comment_id INTEGER PRIMARY KEY AUTOINCREMENT,
			body       TEXT NOT NULL,
			article_id INTEGER NOT NULL REFERENCES articles(article_id) ON DELETE CASCADE,
			author     TEXT NOT NULL REFERENCES users(username),
			votes      INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_comments_article_id ON comments(article_id, created_at);
	`)
	return err
}

// isForeignKeyViolation reports whether err is SQLite rejecting a row whose
// reference (article or author) does not exist.
func isForeignKeyViolation(err error) bool {
	var sqlErr *msqlite.Error
	if !errors.As(err, &sqlErr) {
		return false
	}
	code := sqlErr.Code()
	if code == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY {
		return true
	}
	// Without extended result codes only the primary code is reported.
	return code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(sqlErr.Error(), "FOREIGN KEY")
}

// notFoundOr maps sql.ErrNoRows to a NotFound error and wraps anything else.
func notFoundOr(err error, resource, id, op string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperror.NotFound(resource, id)
	}
	return fmt.Errorf("sqlite: %s: %w", op, err)
}
