// Command seed resets the configured store to the embedded reference
// dataset: 3 topics, 4 users, 12 articles and 18 comments.
//
// Every existing row is deleted first, and ids restart at 1.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/sakif/newsboard/internal/config"
	"github.com/sakif/newsboard/internal/fixture"
	"github.com/sakif/newsboard/internal/logging"
	"github.com/sakif/newsboard/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to a config file (yaml, toml or json)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, logCloser, err := logging.New(cfg.Server)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logCloser.Close()

	if err := seed(context.Background(), cfg.Database, logger); err != nil {
		logger.Error("seeding failed", slog.String("error", err.Error()))
		logCloser.Close()
		os.Exit(1)
	}
}

func seed(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) error {
	d, err := fixture.Load()
	if err != nil {
		return err
	}

	store, err := server.OpenStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close()

	if err := store.Seed(ctx, d); err != nil {
		return err
	}

	logger.Info("store seeded",
		slog.String("driver", cfg.Driver),
		slog.Int("topics", len(d.Topics)),
		slog.Int("users", len(d.Users)),
		slog.Int("articles", len(d.Articles)),
		slog.Int("comments", len(d.Comments)),
	)
	return nil
}
