// Cinelog - Personal Movie Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelog

// Command server runs the Cinelog web application: the movie catalog pages,
// the JSON API under /api/v1, and Prometheus metrics on /metrics.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/cinelog/internal/api"
	"github.com/tomtom215/cinelog/internal/catalog"
	"github.com/tomtom215/cinelog/internal/config"
	"github.com/tomtom215/cinelog/internal/database"
	"github.com/tomtom215/cinelog/internal/logging"
	"github.com/tomtom215/cinelog/internal/tmdb"
	"github.com/tomtom215/cinelog/internal/web"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	if cfg.TMDB.APIKey == "" {
		logging.Warn().Msg("API_KEY not set, TMDB search and import will fail")
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Str("path", cfg.Database.Path).Msg("Failed to open database")
	}

	renderer, err := web.NewRenderer()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to parse templates")
	}

	tmdbClient := tmdb.NewClient(&cfg.TMDB)
	svc := catalog.NewService(db, tmdbClient)
	handler := api.NewHandler(db, svc, tmdbClient, renderer, cfg, db)
	server := api.NewServer(handler)

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("Server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Shutting down")
	case err := <-errCh:
		logging.Error().Err(err).Msg("Server failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
	}

	if err := db.Close(); err != nil {
		logging.Error().Err(err).Msg("Database close failed")
	}

	logging.Info().Msg("Server stopped")
}
