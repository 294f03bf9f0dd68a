// Package server wires the application together: it builds the token store,
// the GitHub client, the service layer, and the chi router, and runs the
// HTTP server with graceful shutdown. main.go stays minimal; every
// dependency is assembled here, in one place.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakib/vibe-post/internal/ai"
	"github.com/sakib/vibe-post/internal/config"
	"github.com/sakib/vibe-post/internal/crypto"
	"github.com/sakib/vibe-post/internal/github"
	"github.com/sakib/vibe-post/internal/handler"
	"github.com/sakib/vibe-post/internal/middleware"
	"github.com/sakib/vibe-post/internal/migrate"
	"github.com/sakib/vibe-post/internal/repository"
	pgRepo "github.com/sakib/vibe-post/internal/repository/postgres"
	sqliteRepo "github.com/sakib/vibe-post/internal/repository/sqlite"
	"github.com/sakib/vibe-post/internal/service"
)

// Server owns the router and the resources that must be released on
// shutdown. The token store is the only stateful dependency.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	tokens repository.TokenRepository
}

// New assembles the full dependency chain:
// store → cipher → github client → services → handlers → routes.
//
// A postgres:// or postgresql:// DATABASE_URL selects the pgx store and
// runs pending migrations first; any other value is treated as a SQLite
// file path, which creates its own schema on open.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Server, error) {
	tokens, err := openStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	cipher, err := crypto.New([]byte(cfg.EncryptionKey))
	if err != nil {
		tokens.Close()
		return nil, fmt.Errorf("building cipher: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		tokens: tokens,
	}
	s.setupRoutes(cipher)

	return s, nil
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repository.TokenRepository, error) {
	if strings.HasPrefix(cfg.DatabaseURL, "postgres://") || strings.HasPrefix(cfg.DatabaseURL, "postgresql://") {
		if err := migrate.Up(ctx, cfg.DatabaseURL); err != nil {
			return nil, fmt.Errorf("running migrations: %w", err)
		}
		db, err := pgRepo.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("opening postgres: %w", err)
		}
		logger.Info("token store ready", slog.String("backend", "postgres"))
		return pgRepo.NewTokenRepo(db), nil
	}

	db, err := sqliteRepo.New(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}
	logger.Info("token store ready",
		slog.String("backend", "sqlite"),
		slog.String("path", cfg.DatabaseURL))
	return db, nil
}

// setupRoutes configures middleware and routes.
//
// Middleware order matters: RequestID first so every later stage can tag
// its output, then RealIP, the panic recoverer, and the request logger.
func (s *Server) setupRoutes(cipher *crypto.Cipher) {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Recoverer(s.logger))
	s.router.Use(middleware.Logger(s.logger))

	gh := github.New(s.config.GitHubClientID, s.config.GitHubClientSecret, s.config.GitHubRedirectURI)

	authHandler := handler.NewAuthHandler(
		service.NewAuth(gh, s.tokens, cipher, s.logger), gh, s.logger)
	activityHandler := handler.NewActivityHandler(
		service.NewActivity(gh, s.tokens, cipher, s.logger), s.logger)
	aiHandler := handler.NewAIHandler(
		service.NewPost(ai.Mock{}, s.logger), s.logger)

	s.router.Get("/healthz", handler.HandleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/auth/github/login", authHandler.HandleLogin)
		r.Get("/auth/github", authHandler.HandleCallback)
		r.Get("/github/activity", activityHandler.HandleFetch)
		r.Post("/ai", aiHandler.HandleGenerate)
	})
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Start runs the HTTP server until SIGINT/SIGTERM or a listener error.
// In-flight requests get up to 30 seconds to finish, then the token store
// is closed.
func (s *Server) Start() error {
	defer s.tokens.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
