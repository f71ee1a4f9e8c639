// Package internal provides the main application initialization and runtime logic.
package internal

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
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/noteful/internal/api"
	"github.com/starford/noteful/internal/confwatch"
	"github.com/starford/noteful/internal/mcpserver"
	"github.com/starford/noteful/internal/noteservice"
	"github.com/starford/noteful/internal/sse"
	"github.com/starford/noteful/internal/store"
	pkgconfig "github.com/starford/noteful/pkg/config"
)

func newApplication(opts []Option) (*application, error) {
	app := &application{
		logOutput: os.Stdout,
		version:   "dev",
	}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	return app, nil
}

func (a *application) newLogger(level *slog.LevelVar) *slog.Logger {
	level.Set(a.config.App.LogLevel)
	return slog.New(slog.NewJSONHandler(a.logOutput, &slog.HandlerOptions{
		Level: level,
	}))
}

// Run starts the HTTP server with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config

	// Initialize structured JSON logger.
	level := new(slog.LevelVar)
	logger := app.newLogger(level)
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("env", cfg.App.Env),
		slog.String("static_dir", cfg.Static.Dir),
		slog.String("log_level", cfg.App.LogLevel.String()))

	db, err := store.Open(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer db.Close()
	logger.Info("Database ready", slog.String("dialect", string(db.Dialect())))

	// SSE broker.
	broker := sse.NewBroker(30 * time.Second)
	defer broker.Close()

	svc := noteservice.NewService(
		store.NewFolderRepo(db),
		store.NewNoteRepo(db),
		noteservice.WithLogger(logger),
		noteservice.WithPublisher(broker),
	)

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           NewRouter(cfg, db, svc, broker),
		ReadHeaderTimeout: 10 * time.Second,
	}
	// Open event streams never go idle; end them so Shutdown can finish.
	httpServer.RegisterOnShutdown(broker.Close)

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Reload the log level whenever the config file changes.
	if app.configPath != "" {
		g.Go(func() error {
			err := confwatch.Watch(gCtx, app.configPath, logger, func() {
				reloadLogLevel(app.configPath, level, logger)
			})
			if err != nil {
				logger.Warn("config watcher disabled", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// errShutdown cancels the group once the HTTP server has been shut down so
// the config watcher stops too.
var errShutdown = errors.New("shutdown")

// RunMCP serves the MCP tools on stdio. Logs go to stderr since stdout
// carries the protocol.
func RunMCP(ctx context.Context, opts ...Option) error {
	opts = append([]Option{WithLogOutput(os.Stderr)}, opts...)
	app, err := newApplication(opts)
	if err != nil {
		return err
	}

	logger := app.newLogger(new(slog.LevelVar))
	slog.SetDefault(logger)

	db, err := store.Open(ctx, app.config.Database.URL)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer db.Close()

	svc := noteservice.NewService(
		store.NewFolderRepo(db),
		store.NewNoteRepo(db),
		noteservice.WithLogger(logger),
	)

	logger.Info("MCP server starting on stdio")
	return mcpserver.New(svc, app.version).ServeStdio()
}

// NewRouter builds the root handler: health checks, the API under /api and
// static files for everything else.
func NewRouter(cfg *Config, db *store.DB, svc *noteservice.Service, events http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(api.Recoverer(cfg.App.Production()))
	r.Use(api.SecurityHeaders()...)

	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		writeStatus(w, http.StatusOK, "ok")
	})
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			slog.Error("readiness check failed", slog.String("error", err.Error()))
			writeStatus(w, http.StatusServiceUnavailable, "unavailable")
			return
		}
		writeStatus(w, http.StatusOK, "ok")
	})

	r.Mount("/api", api.NewRouter(svc, cfg.App.Production(), events))

	if fi, err := os.Stat(cfg.Static.Dir); err == nil && fi.IsDir() {
		r.Handle("/*", http.FileServer(http.Dir(cfg.Static.Dir)))
	}

	return r
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = fmt.Fprintf(w, `{"status":%q}`, status)
}

func reloadLogLevel(path string, level *slog.LevelVar, logger *slog.Logger) {
	next := NewDefaultConfig()
	if err := pkgconfig.Load(path, next); err != nil {
		logger.Warn("config reload failed", slog.String("error", err.Error()))
		return
	}
	if next.App.LogLevel == level.Level() {
		return
	}
	level.Set(next.App.LogLevel)
	logger.Info("log level changed", slog.String("log_level", next.App.LogLevel.String()))
}
