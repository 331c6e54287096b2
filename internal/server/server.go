// Package server sets up the HTTP server, router, and all route definitions.
//
// This package is the composition root: it is the one place where the
// store, services, handlers and middleware are wired together.
//
//	Store (sqlite or postgres) → Services → Handlers → chi routes
//
// Each layer only receives what it needs. Services get repository
// interfaces, handlers get services.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/sakif/newsboard/internal/config"
	"github.com/sakif/newsboard/internal/fixture"
	"github.com/sakif/newsboard/internal/handler"
	"github.com/sakif/newsboard/internal/middleware"
	"github.com/sakif/newsboard/internal/repository"
	"github.com/sakif/newsboard/internal/service"
)

// Server represents the HTTP server and all its dependencies.
//
// The Server owns the store: Start closes it once the HTTP server has
// drained.
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	store  repository.Store
}

// New wires a Server around an open store. When cfg.Database.Seed is set,
// the store is first reset to the embedded reference dataset.
func New(ctx context.Context, cfg config.Config, store repository.Store, logger *slog.Logger) (*Server, error) {
	if cfg.Database.Seed {
		d, err := fixture.Load()
		if err != nil {
			return nil, fmt.Errorf("loading fixture: %w", err)
		}
		if err := store.Seed(ctx, d); err != nil {
			return nil, fmt.Errorf("seeding store: %w", err)
		}
		logger.Info("store seeded",
			slog.Int("topics", len(d.Topics)),
			slog.Int("users", len(d.Users)),
			slog.Int("articles", len(d.Articles)),
			slog.Int("comments", len(d.Comments)),
		)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		store:  store,
	}
	s.setupRoutes()

	return s, nil
}

// Router exposes the fully wired router, for tests and route docs.
func (s *Server) Router() chi.Router {
	return s.router
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTES:
// GET    /api/topics                          → list topics
// GET    /api/articles?topic&sort_by&order    → list articles with comment_count
// GET    /api/articles/{article_id}           → one article
// PATCH  /api/articles/{article_id}           → apply {inc_votes}
// GET    /api/articles/{article_id}/comments  → an article's comments
// POST   /api/articles/{article_id}/comments  → post {username, body}
// DELETE /api/comments/{comment_id}           → delete a comment
// GET    /api/users                           → list users
// GET    /api/users/{username}                → one user
// anything else                               → 404 {"message": "Not Found"}
//
// MIDDLEWARE ORDER MATTERS:
// 1. RequestID: assigns a unique ID to each request (the logger reads it)
// 2. RealIP: extracts the real client IP from proxy headers
// 3. Logger: logs each request with timing info
// 4. Recoverer: catches panics and returns 500 instead of crashing
func (s *Server) setupRoutes() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)

	// An unknown method on a known path is answered like an unknown path.
	s.router.NotFound(handler.NotFound)
	s.router.MethodNotAllowed(handler.NotFound)

	topicService := service.NewTopicService(s.store, s.logger)
	articleService := service.NewArticleService(s.store, s.store, s.logger)
	commentService := service.NewCommentService(s.store, s.store, s.store, s.logger)
	userService := service.NewUserService(s.store, s.logger)

	topicHandler := handler.NewTopicHandler(topicService, s.logger)
	articleHandler := handler.NewArticleHandler(articleService, s.logger)
	commentHandler := handler.NewCommentHandler(commentService, s.logger)
	userHandler := handler.NewUserHandler(userService, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Get("/topics", topicHandler.HandleList)

		r.Route("/articles", func(r chi.Router) {
			r.Get("/", articleHandler.HandleList)
			r.Route("/{article_id}", func(r chi.Router) {
				r.Get("/", articleHandler.HandleGet)
				r.Patch("/", articleHandler.HandleVote)
				r.Get("/comments", commentHandler.HandleList)
				r.Post("/comments", commentHandler.HandleCreate)
			})
		})

		r.Delete("/comments/{comment_id}", commentHandler.HandleDelete)

		r.Get("/users", userHandler.HandleList)
		r.Get("/users/{username}", userHandler.HandleGet)
	})
}

// Start serves HTTP until SIGINT or SIGTERM, then shuts down gracefully:
//  1. stop accepting new connections
//  2. wait up to server.shutdown_timeout for in-flight requests
//  3. close the store
func (s *Server) Start() error {
	defer func() {
		if err := s.store.Close(); err != nil {
			s.logger.Error("closing store", slog.String("error", err.Error()))
		}
	}()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Server.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Server.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d/api", s.config.Server.Port)),
			slog.String("driver", s.config.Database.Driver),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
