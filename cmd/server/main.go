// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/strainspotter/internal/api"
	"github.com/tomtom215/strainspotter/internal/config"
	"github.com/tomtom215/strainspotter/internal/logging"
	"github.com/tomtom215/strainspotter/internal/supervisor"
	"github.com/tomtom215/strainspotter/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("version", version).
		Str("catalog_source", cfg.Catalog.Source).
		Bool("events_enabled", cfg.Events.Enabled).
		Msg("Starting StrainSpotter")

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("StrainSpotter stopped with error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cat, err := initCatalog(cfg)
	if err != nil {
		return err
	}
	defer cat.Close()

	engine, err := initRecommend(cfg, cat.Store)
	if err != nil {
		return err
	}
	bindEngineCache(cat.Loader, engine)

	tree, err := supervisor.NewSupervisorTree(
		logging.NewComponentSlogLogger("supervisor"),
		supervisor.TreeConfig{ShutdownTimeout: cfg.Server.ShutdownTimeout},
	)
	if err != nil {
		return err
	}

	// Catalog layer
	tree.AddCatalogService(services.NewCatalogRefresherService(cat.Loader, services.CatalogRefresherConfig{
		RefreshInterval: cfg.Catalog.RefreshInterval,
	}, logging.WithComponent("catalog")))

	// Messaging layer
	evt, err := initEvents(&cfg.Events, cat.Loader)
	if err != nil {
		return err
	}
	defer evt.Close()
	evt.addToSupervisor(tree, cfg.Server.ShutdownTimeout)

	// API layer
	handler := api.NewHandler(engine, cat.Store, version)
	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(&cfg.Security)))
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	if cfg.Recommend.CacheEnabled {
		tree.AddAPIService(services.NewCacheJanitorService(engine, cfg.Recommend.CacheTTL, logging.WithComponent("recommend")))
	}
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	logging.Info().Msg("Starting supervisor tree...")
	err = tree.Serve(ctx)

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
