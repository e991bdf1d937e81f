// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

package main

import (
	"fmt"

	"github.com/tomtom215/strainspotter/internal/catalog"
	"github.com/tomtom215/strainspotter/internal/config"
	"github.com/tomtom215/strainspotter/internal/logging"
	"github.com/tomtom215/strainspotter/internal/recommend"
)

// initRecommend creates the engine over provider.
func initRecommend(cfg *config.Config, provider recommend.CatalogProvider) (*recommend.Engine, error) {
	engineCfg := buildEngineConfig(&cfg.Recommend)
	engine, err := recommend.NewEngine(engineCfg, provider, logging.Logger())
	if err != nil {
		return nil, fmt.Errorf("create recommendation engine: %w", err)
	}

	effective := engine.GetConfig()
	logging.Info().
		Int("default_limit", effective.Limits.DefaultLimit).
		Int("max_limit", effective.Limits.MaxLimit).
		Bool("clamp_numeric", effective.Scoring.ClampNumeric).
		Bool("cache_enabled", effective.Cache.Enabled).
		Dur("cache_ttl", effective.Cache.TTL).
		Msg("Recommendation engine initialized")
	return engine, nil
}

// bindEngineCache drops cached responses whenever loader publishes a new
// catalog version.
func bindEngineCache(loader *catalog.Loader, engine *recommend.Engine) {
	loader.OnPublish(func(snap *catalog.Snapshot) {
		engine.ClearCache()
		logging.Debug().Uint64("version", snap.Version).Msg("Response cache cleared for new catalog")
	})
}

// buildEngineConfig maps application config onto the engine config.
// Zero values keep the engine defaults.
func buildEngineConfig(rc *config.RecommendConfig) *recommend.Config {
	cfg := recommend.DefaultConfig()

	if rc.DefaultLimit > 0 {
		cfg.Limits.DefaultLimit = rc.DefaultLimit
	}
	if rc.MaxLimit >= 0 {
		cfg.Limits.MaxLimit = rc.MaxLimit
	}
	if rc.TopEffectPairs > 0 {
		cfg.Limits.TopEffectPairs = rc.TopEffectPairs
	}
	if rc.THCSpread > 0 {
		cfg.Scoring.THCSpread = rc.THCSpread
	}
	if rc.CBDSpread > 0 {
		cfg.Scoring.CBDSpread = rc.CBDSpread
	}
	cfg.Scoring.ClampNumeric = rc.ClampNumeric

	cfg.Cache.Enabled = rc.CacheEnabled
	if rc.CacheTTL > 0 {
		cfg.Cache.TTL = rc.CacheTTL
	}
	if rc.CacheMaxEntries > 0 {
		cfg.Cache.MaxEntries = rc.CacheMaxEntries
	}
	return cfg
}
