// Package main is the entry point for the news API server.
//
// main stays minimal. It reads configuration, builds the logger, opens the
// store and hands all three to internal/server. All real logic lives in the
// internal packages.
//
// Usage:
//
//	server [-config path/to/news.yaml] [-routes]
//
// -routes prints the route table as markdown and exits without touching
// the database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-chi/docgen"
	"github.com/joho/godotenv"

	"github.com/sakif/newsboard/internal/config"
	"github.com/sakif/newsboard/internal/logging"
	"github.com/sakif/newsboard/internal/repository"
	"github.com/sakif/newsboard/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to a config file (yaml, toml or json)")
	printRoutes := flag.Bool("routes", false, "print the route table as markdown and exit")
	flag.Parse()

	// A missing .env is normal; real environment variables still apply.
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

	if *printRoutes {
		if err := writeRoutes(cfg, logger); err != nil {
			logger.Error("failed to document routes", slog.String("error", err.Error()))
			os.Exit(1)
		}
		return
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		logCloser.Close()
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx := context.Background()

	store, err := server.OpenStore(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}

	srv, err := server.New(ctx, *cfg, store, logger)
	if err != nil {
		store.Close()
		return fmt.Errorf("creating server: %w", err)
	}

	// Start blocks until SIGINT/SIGTERM and closes the store on the way out.
	return srv.Start()
}

// writeRoutes wires the router against a store that is never called and
// prints chi's route tree.
func writeRoutes(cfg *config.Config, logger *slog.Logger) error {
	docCfg := *cfg
	docCfg.Database.Seed = false

	srv, err := server.New(context.Background(), docCfg, repository.Store(nil), logger)
	if err != nil {
		return err
	}

	fmt.Println(docgen.MarkdownRoutesDoc(srv.Router(), docgen.MarkdownOpts{
		ProjectPath: "github.com/sakif/newsboard",
		Intro:       "News API routes. Every error response is {\"message\": \"...\"}.",
	}))
	return nil
}
