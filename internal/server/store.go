package server

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sakif/newsboard/internal/config"
	"github.com/sakif/newsboard/internal/repository"
	"github.com/sakif/newsboard/internal/repository/postgres"
	sqliteRepo "github.com/sakif/newsboard/internal/repository/sqlite"
)

// OpenStore opens the configured Persistence Gateway and makes sure its
// schema exists. The caller owns the store and must Close it.
func OpenStore(ctx context.Context, cfg config.DatabaseConfig) (repository.Store, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		if err := ensureDir(cfg.URL); err != nil {
			return nil, err
		}
		return sqliteRepo.New(cfg.URL)
	case config.DriverPostgres:
		return postgres.New(ctx, cfg.URL)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// ensureDir creates the parent directory of a plain sqlite file path, like
// `mkdir -p`. URIs and in-memory databases are left alone.
func ensureDir(path string) error {
	if path == ":memory:" || strings.HasPrefix(path, "file:") {
		return nil
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating database directory %s: %w", dir, err)
	}
	return nil
}
