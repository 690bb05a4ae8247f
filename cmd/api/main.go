// Package main is the entry point for the Lunar Calendar API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zapponejosh/lunar-calendar-api/internal/api"
	"github.com/zapponejosh/lunar-calendar-api/internal/config"
	"github.com/zapponejosh/lunar-calendar-api/internal/database"
	"github.com/zapponejosh/lunar-calendar-api/internal/logger"
	"github.com/zapponejosh/lunar-calendar-api/internal/lunar"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Setup structured logging
	log := logger.Setup(cfg)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	log.Info("starting lunar calendar API",
		slog.String("env", cfg.Env),
		slog.Int("port", cfg.Port),
		slog.String("log_level", cfg.LogLevel),
		slog.String("lunar_range", fmt.Sprintf("%s..%s",
			lunar.Epoch.Format(time.DateOnly), lunar.LastDate().Format(time.DateOnly))),
	)

	if cfg.DatabasePath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}

	db, err := database.Open(database.DefaultConfig(cfg.DatabasePath), log)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	applied, err := db.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	log.Info("database ready", slog.String("path", cfg.DatabasePath), slog.Int("migrations_applied", applied))

	if cfg.APIKey == "" {
		log.Warn("no API key configured, wardrobe mutations are open")
	}

	handlers := api.NewHandlers(db, cfg, log)

	httpServer := &http.Server{
		Addr:              cfg.Address(),
		Handler:           api.NewRouter(handlers, cfg, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	// Start HTTP server.
	g.Go(func() error {
		log.Info("HTTP server listening", slog.String("address", cfg.Address()))
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
			log.Info("received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			log.Info("context cancelled, initiating shutdown")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownDuration())
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP server shutdown error", slog.Any("error", err))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info("server stopped")
	return nil
}
