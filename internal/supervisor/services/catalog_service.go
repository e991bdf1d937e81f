// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/strainspotter/internal/catalog"
)

// CatalogLoader loads the catalog into the served store.
// Satisfied by *catalog.Loader.
type CatalogLoader interface {
	Load(ctx context.Context) (*catalog.Snapshot, error)
}

// CatalogRefresherConfig holds configuration for the catalog refresher.
type CatalogRefresherConfig struct {
	// RefreshInterval is how often to reload after the first success.
	// Zero disables periodic reloads.
	RefreshInterval time.Duration

	// InitialBackoff is the first retry delay while no catalog is loaded.
	// Default: 1s
	InitialBackoff time.Duration

	// MaxBackoff caps the retry delay.
	// Default: 1m
	MaxBackoff time.Duration
}

// CatalogRefresherService performs the initial catalog load and then
// optional periodic reloads.
//
// Until the configured source succeeds once it retries with exponential
// backoff, so the API becomes ready as soon as the source (or the persisted
// snapshot) is available. Afterwards a failed reload is only logged: the
// loader keeps the previous snapshot.
type CatalogRefresherService struct {
	loader CatalogLoader
	config CatalogRefresherConfig
	logger zerolog.Logger
	name   string
}

// NewCatalogRefresherService creates a refresher for loader.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCatalogRefresherService(loader CatalogLoader, cfg CatalogRefresherConfig, logger zerolog.Logger) *CatalogRefresherService {
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = time.Second
	}
	if cfg.MaxBackoff < cfg.InitialBackoff {
		cfg.MaxBackoff = time.Minute
		if cfg.MaxBackoff < cfg.InitialBackoff {
			cfg.MaxBackoff = cfg.InitialBackoff
		}
	}
	return &CatalogRefresherService{
		loader: loader,
		config: cfg,
		logger: logger.With().Str("service", "catalog-refresher").Logger(),
		name:   "catalog-refresher",
	}
}

// Serve implements suture.Service.
func (s *CatalogRefresherService) Serve(ctx context.Context) error {
	s.logger.Info().
		Dur("refresh_interval", s.config.RefreshInterval).
		Msg("catalog refresher starting")

	if err := s.initialLoad(ctx); err != nil {
		return err
	}

	if s.config.RefreshInterval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(s.config.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("catalog refresher shutting down")
			return ctx.Err()

		case <-ticker.C:
			if _, err := s.loader.Load(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("scheduled catalog reload failed, keeping current snapshot")
			}
		}
	}
}

// initialLoad retries until the configured source delivers a catalog or
// ctx ends. A snapshot published from the persisted fallback makes the API
// ready but does not end the retries.
func (s *CatalogRefresherService) initialLoad(ctx context.Context) error {
	backoff := s.config.InitialBackoff
	for attempt := 1; ; attempt++ {
		snap, err := s.loader.Load(ctx)
		switch {
		case err == nil && !snap.Fallback:
			s.logger.Info().
				Int("attempt", attempt).
				Int("strains", len(snap.Strains)).
				Uint64("version", snap.Version).
				Msg("initial catalog load complete")
			return nil
		case err == nil:
			s.logger.Warn().
				Int("attempt", attempt).
				Dur("retry_in", backoff).
				Msg("serving persisted catalog while source is unavailable")
		default:
			s.logger.Warn().
				Err(err).
				Int("attempt", attempt).
				Dur("retry_in", backoff).
				Msg("initial catalog load failed")
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
		if backoff > s.config.MaxBackoff {
			backoff = s.config.MaxBackoff
		}
	}
}

// String names the service in supervisor events.
func (s *CatalogRefresherService) String() string {
	return s.name
}
