// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/careerpath/internal/api"
	"github.com/tomtom215/careerpath/internal/config"
	"github.com/tomtom215/careerpath/internal/logging"
	"github.com/tomtom215/careerpath/internal/profile"
	"github.com/tomtom215/careerpath/internal/supervisor"
	"github.com/tomtom215/careerpath/internal/supervisor/services"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(cfg.LoggerConfig())
	logger := logging.Logger()

	logging.Info().
		Str("store", cfg.Store.Backend).
		Str("strategy", cfg.Recommend.Strategy).
		Str("addr", cfg.Server.Addr()).
		Msg("Starting CareerPath with supervisor tree")

	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS_ORIGINS allows any origin (*); restrict it in production")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := initStore(ctx, cfg, logger)
	if err != nil {
		logging.Fatal().Err(err).Str("backend", cfg.Store.Backend).Msg("Failed to initialize profile store")
	}
	resilient := profile.NewResilient(store, cfg.ResilienceConfig(), logger)
	defer func() {
		if err := resilient.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing profile store")
		}
	}()
	logging.Info().Str("backend", resilient.Name()).Msg("Profile store initialized")

	engine, err := initRecommend(cfg, resilient, logger)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to initialize recommendation engine")
		exit(resilient, 1)
	}

	handler := api.NewHandler(api.HandlerConfig{
		Engine:         engine,
		Courses:        resilient,
		Store:          resilient,
		RequestTimeout: cfg.Server.RequestTimeout,
	}, logger)

	mw := api.DefaultChiMiddlewareConfig()
	mw.CORSAllowedOrigins = cfg.Security.CORSOrigins
	mw.RateLimitRequests = cfg.Security.RateLimitReqs
	mw.RateLimitWindow = cfg.Security.RateLimitWindow
	mw.RateLimitDisabled = cfg.Security.RateLimitDisabled

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      api.NewRouter(handler, mw, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// sutureslog needs slog; bridge it onto the zerolog logger.
	slogLogger := slog.New(logging.NewSlogHandler(logger))

	tree, err := supervisor.NewSupervisorTree(slogLogger, supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Error().Err(err).Msg("Failed to create supervisor tree")
		exit(resilient, 1)
	}

	tree.AddDataService(services.NewCatalogRefreshService(resilient, cfg.Fetch.RefreshInterval, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logger))
	logging.Info().
		Dur("catalog_refresh_interval", cfg.Fetch.RefreshInterval).
		Msg("Services added to supervisor tree")

	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("CareerPath stopped gracefully")
}

// exit closes the store before terminating, since os.Exit skips deferred calls.
func exit(store profile.Store, code int) {
	if err := store.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing profile store")
	}
	os.Exit(code)
}
