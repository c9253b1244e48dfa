// Linkside - Golf Meetup Social Feed Service
// Copyright 2026 Linkside Developers
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linksideapp/linkside

// Command server runs the Linkside feed ranking service.
//
// The server exposes the friends and public feed endpoints, health probes
// and a Prometheus exporter. Configuration is layered: built-in defaults,
// an optional YAML config file, then environment variables.
//
// Quick start:
//
//	SEED_DEMO_DATA=true ./server
//	curl -H 'X-Viewer-ID: viewer-demo' localhost:8720/api/v1/feed/friends
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/linksideapp/linkside/internal/api"
	"github.com/linksideapp/linkside/internal/config"
	"github.com/linksideapp/linkside/internal/feed"
	"github.com/linksideapp/linkside/internal/logging"
	"github.com/linksideapp/linkside/internal/metrics"
	"github.com/linksideapp/linkside/internal/store"
	"github.com/linksideapp/linkside/internal/supervisor"
	"github.com/linksideapp/linkside/internal/supervisor/services"
)

// version is stamped by the build via -ldflags.
var version = "dev"

func main() {
	// Load configuration first to get logging settings.
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", version).
		Int("page_size", cfg.Ranking.Limits.PageSize).
		Int("port", cfg.Server.Port).
		Msg("Starting Linkside feed service")
	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	startTime := time.Now()
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			metrics.AppUptime.Set(time.Since(startTime).Seconds())
		}
	}()

	engine, err := feed.NewEngine(&cfg.Ranking, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create ranking engine")
	}

	postStore := store.NewMemoryStore(&cfg.Ranking, logging.Logger())
	if cfg.Store.SeedDemoData {
		logging.Info().Msg("Demo data seeding enabled (SEED_DEMO_DATA=true)")
		if err := postStore.SeedDemoData(time.Now()); err != nil {
			logging.Fatal().Err(err).Msg("Failed to seed demo data")
		}
	}

	svc := feed.NewService(engine, postStore, postStore, logging.Logger())

	handler := api.NewHandler(svc, postStore, version)
	mw := api.NewChiMiddleware(&api.ChiMiddlewareConfig{
		CORSAllowedOrigins: cfg.API.CORSOrigins,
		CORSAllowedMethods: []string{"GET", "OPTIONS"},
		CORSAllowedHeaders: []string{"Content-Type", "X-Request-ID", api.ViewerIDHeader},
		CORSMaxAge:         86400,
		RateLimitRequests:  cfg.API.RateLimitReqs,
		RateLimitWindow:    cfg.API.RateLimitWindow,
		RateLimitDisabled:  cfg.API.RateLimitDisabled,
	})
	router := api.NewRouter(handler, mw)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bridge zerolog to slog for sutureslog compatibility.
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
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
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
	}

	logging.Info().Msg("Service stopped gracefully")
}
