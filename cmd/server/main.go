// Weekshift scheduling engine service.
// Entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/weekshift/weekshift/internal/config"
	"github.com/weekshift/weekshift/internal/database"
	"github.com/weekshift/weekshift/internal/httpapi"
	"github.com/weekshift/weekshift/internal/store"
	"github.com/weekshift/weekshift/pkg/logger"
	"github.com/weekshift/weekshift/pkg/scheduler"
)

// Build info, injected via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logFormat := "console"
	if cfg.IsProduction() {
		logFormat = "json"
	}
	logger.Init(logger.Config{
		Level:  cfg.App.LogLevel,
		Format: logFormat,
	})

	fmt.Printf("weekshift v%s\n", Version)
	fmt.Printf("build: %s (%s)\n", BuildTime, GitCommit)
	fmt.Println()

	engine := scheduler.NewEngine()

	var historyStore *store.Store
	db, err := database.New(&cfg.Database)
	if err != nil {
		logger.Warn().Err(err).Msg("schedule history database unavailable, persistence disabled")
	} else {
		defer db.Close()
		historyStore = store.New(db)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := historyStore.Migrate(ctx); err != nil {
			logger.Warn().Err(err).Msg("schedule history migration failed, persistence disabled")
			historyStore = nil
		}
		cancel()
	}

	server := httpapi.New(engine, historyStore, cfg.API.Timeout)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      server.Routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info().
			Int("port", cfg.App.Port).
			Str("version", Version).
			Str("url", fmt.Sprintf("http://localhost:%d", cfg.App.Port)).
			Msg("server starting")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("server failed to start")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
		os.Exit(1)
	}

	logger.Info().Msg("server shut down")
}
