// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tomtom215/strainspotter/internal/config"
	"github.com/tomtom215/strainspotter/internal/recommend"
)

func TestBuildEngineConfig(t *testing.T) {
	t.Parallel()

	t.Run("zero values keep defaults", func(t *testing.T) {
		t.Parallel()
		got := buildEngineConfig(&config.RecommendConfig{CacheEnabled: true})
		want := recommend.DefaultConfig()
		if got.Limits != want.Limits {
			t.Errorf("Limits = %+v, want %+v", got.Limits, want.Limits)
		}
		if got.Scoring != want.Scoring {
			t.Errorf("Scoring = %+v, want %+v", got.Scoring, want.Scoring)
		}
		if got.Cache != want.Cache {
			t.Errorf("Cache = %+v, want %+v", got.Cache, want.Cache)
		}
	})

	t.Run("explicit values are applied", func(t *testing.T) {
		t.Parallel()
		got := buildEngineConfig(&config.RecommendConfig{
			DefaultLimit:    7,
			MaxLimit:        50,
			TopEffectPairs:  10,
			THCSpread:       20,
			CBDSpread:       15,
			ClampNumeric:    true,
			CacheEnabled:    false,
			CacheTTL:        time.Minute,
			CacheMaxEntries: 64,
		})
		if got.Limits.DefaultLimit != 7 || got.Limits.MaxLimit != 50 || got.Limits.TopEffectPairs != 10 {
			t.Errorf("Limits = %+v", got.Limits)
		}
		if got.Scoring.THCSpread != 20 || got.Scoring.CBDSpread != 15 || !got.Scoring.ClampNumeric {
			t.Errorf("Scoring = %+v", got.Scoring)
		}
		if got.Cache.Enabled || got.Cache.TTL != time.Minute || got.Cache.MaxEntries != 64 {
			t.Errorf("Cache = %+v", got.Cache)
		}
		if err := got.Validate(); err != nil {
			t.Errorf("Validate() = %v", err)
		}
	})
}

func TestBindEngineCache_ClearsOnReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strains.json")
	if err := os.WriteFile(path, []byte(`[{"slug":"blue-dream","effects":["Happy"]}]`), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg := &config.Config{
		Catalog: config.CatalogConfig{Source: config.CatalogSourceFile, Path: path},
		Recommend: config.RecommendConfig{
			CacheEnabled:    true,
			CacheTTL:        time.Minute,
			CacheMaxEntries: 16,
		},
	}

	cat, err := initCatalog(cfg)
	if err != nil {
		t.Fatalf("initCatalog() error = %v", err)
	}
	defer cat.Close()

	engine, err := initRecommend(cfg, cat.Store)
	if err != nil {
		t.Fatalf("initRecommend() error = %v", err)
	}
	bindEngineCache(cat.Loader, engine)

	ctx := context.Background()
	if _, err := cat.Loader.Load(ctx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, err := engine.Effects(ctx); err != nil {
		t.Fatalf("Effects() error = %v", err)
	}
	if got := engine.Stats().Cache.Size; got != 1 {
		t.Fatalf("Cache.Size = %d, want 1", got)
	}

	if _, err := cat.Loader.Load(ctx); err != nil {
		t.Fatalf("reload error = %v", err)
	}
	if got := engine.Stats().Cache.Size; got != 0 {
		t.Errorf("Cache.Size after reload = %d, want 0", got)
	}
}
