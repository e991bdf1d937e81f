// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

package recommend

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/strainspotter/internal/cache"
	"github.com/tomtom215/strainspotter/internal/metrics"
	"github.com/tomtom215/strainspotter/internal/models"
)

// ErrStrainNotFound is returned when a requested slug is not in the catalog.
var ErrStrainNotFound = errors.New("strain not found")

// Operation names used for caching, logging and metrics.
const (
	opSimilar     = "similar"
	opRecommend   = "recommend"
	opEffectPairs = "effect_pairs"
	opEffects     = "effects"
)

// CatalogProvider supplies the strain catalog. The returned slice is a
// read-only snapshot; the engine never modifies it.
type CatalogProvider interface {
	Strains() []models.Strain
}

// VersionedProvider is a CatalogProvider whose snapshots carry a version
// that changes whenever the contents change. The engine caches responses
// only for versioned providers, keyed by that version.
type VersionedProvider interface {
	CatalogProvider
	VersionedStrains() ([]models.Strain, uint64)
}

// StaticCatalog is a fixed in-memory catalog.
type StaticCatalog []models.Strain

// Strains returns the catalog itself.
func (c StaticCatalog) Strains() []models.Strain {
	return c
}

// Engine answers similarity, recommendation and co-occurrence queries
// against the catalog supplied by its provider. It is safe for concurrent use.
type Engine struct {
	config   *Config
	scorer   Scorer
	provider CatalogProvider
	logger   zerolog.Logger

	cache *cache.LRU[any]

	requestCount atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
	notFound     atomic.Int64
}

// SimilarResult is the outcome of a similarity query.
type SimilarResult struct {
	Target  models.Strain
	Similar []models.SimilarStrain
}

// Stats contains engine counters.
type Stats struct {
	Requests    int64       `json:"requests"`
	CacheHits   int64       `json:"cache_hits"`
	CacheMisses int64       `json:"cache_misses"`
	NotFound    int64       `json:"not_found"`
	Cache       cache.Stats `json:"cache"`
}

// NewEngine creates an engine reading from provider.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, provider CatalogProvider, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if provider == nil {
		return nil, errors.New("catalog provider is required")
	}

	e := &Engine{
		config:   cfg.Clone(),
		scorer:   cfg.scorer(),
		provider: provider,
		logger:   logger.With().Str("component", "recommend").Logger(),
	}
	if cfg.Cache.Enabled {
		e.cache = cache.NewLRU[any](cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}
	return e, nil
}

// Similar ranks the catalog strains most similar to the strain with the
// given slug. It returns ErrStrainNotFound when no strain has that slug.
func (e *Engine) Similar(ctx context.Context, slug string, limit int) (*SimilarResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.requestCount.Add(1)
	limit = e.config.resolveLimit(limit)

	strains, version, cacheable := e.snapshot()
	key := opSimilar + "|" + slug + "|" + strconv.Itoa(limit)
	if cached, ok := e.lookup(opSimilar, key, version, cacheable); ok {
		return cached.(*SimilarResult), nil
	}

	start := time.Now()
	target, ok := findBySlug(strains, slug)
	if !ok {
		e.notFound.Add(1)
		e.logger.Debug().Str("slug", slug).Msg("similarity target not found")
		return nil, fmt.Errorf("%w: %s", ErrStrainNotFound, slug)
	}

	result := &SimilarResult{
		Target:  *target,
		Similar: e.scorer.RankSimilar(target, strains, limit),
	}
	e.finish(opSimilar, key, version, cacheable, result, start, len(result.Similar))
	return result, nil
}

// Recommend returns the catalog strains best matching criteria.
func (e *Engine) Recommend(ctx context.Context, criteria *Criteria, limit int) ([]models.RecommendedStrain, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.requestCount.Add(1)
	limit = e.config.resolveLimit(limit)

	strains, version, cacheable := e.snapshot()
	key := opRecommend + "|" + criteria.cacheKey() + "|" + strconv.Itoa(limit)
	if cached, ok := e.lookup(opRecommend, key, version, cacheable); ok {
		return cached.([]models.RecommendedStrain), nil
	}

	start := time.Now()
	results := Recommend(strains, criteria, limit)
	e.finish(opRecommend, key, version, cacheable, results, start, len(results))
	return results, nil
}

// EffectCombinations returns the most frequent effect pairs in the catalog.
func (e *Engine) EffectCombinations(ctx context.Context) ([]models.EffectPair, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.requestCount.Add(1)

	strains, version, cacheable := e.snapshot()
	if cached, ok := e.lookup(opEffectPairs, opEffectPairs, version, cacheable); ok {
		return cached.([]models.EffectPair), nil
	}

	start := time.Now()
	pairs := TopEffectPairs(strains, e.config.Limits.TopEffectPairs)
	e.finish(opEffectPairs, opEffectPairs, version, cacheable, pairs, start, len(pairs))
	return pairs, nil
}

// Effects returns the distinct effect vocabulary with per-effect strain counts.
func (e *Engine) Effects(ctx context.Context) ([]models.EffectCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.requestCount.Add(1)

	strains, version, cacheable := e.snapshot()
	if cached, ok := e.lookup(opEffects, opEffects, version, cacheable); ok {
		return cached.([]models.EffectCount), nil
	}

	start := time.Now()
	counts := EffectCounts(strains)
	e.finish(opEffects, opEffects, version, cacheable, counts, start, len(counts))
	return counts, nil
}

// Strain returns the catalog strain with the given slug.
func (e *Engine) Strain(ctx context.Context, slug string) (*models.Strain, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	strains, _, _ := e.snapshot()
	s, ok := findBySlug(strains, slug)
	if !ok {
		e.notFound.Add(1)
		return nil, fmt.Errorf("%w: %s", ErrStrainNotFound, slug)
	}
	clone := *s
	return &clone, nil
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() Stats {
	s := Stats{
		Requests:    e.requestCount.Load(),
		CacheHits:   e.cacheHits.Load(),
		CacheMisses: e.cacheMisses.Load(),
		NotFound:    e.notFound.Load(),
	}
	if e.cache != nil {
		s.Cache = e.cache.Stats()
	}
	return s
}

// GetConfig returns a copy of the engine configuration.
func (e *Engine) GetConfig() *Config {
	return e.config.Clone()
}

// ClearCache drops every cached response. Entries are keyed by catalog
// version, so once a new version is published nothing older can hit again.
func (e *Engine) ClearCache() {
	if e.cache != nil {
		e.cache.Clear()
	}
}

// PruneCache removes expired responses and returns how many were dropped.
func (e *Engine) PruneCache() int {
	if e.cache == nil {
		return 0
	}
	return e.cache.CleanupExpired()
}

// snapshot reads the catalog once. cacheable is false for providers that
// cannot report a version.
func (e *Engine) snapshot() (strains []models.Strain, version uint64, cacheable bool) {
	if vp, ok := e.provider.(VersionedProvider); ok {
		strains, version = vp.VersionedStrains()
		return strains, version, e.cache != nil
	}
	return e.provider.Strains(), 0, false
}

func (e *Engine) lookup(op, key string, version uint64, cacheable bool) (any, bool) {
	if !cacheable {
		return nil, false
	}
	v, ok := e.cache.Get(versionedKey(key, version))
	metrics.RecordCacheLookup(op, ok)
	if ok {
		e.cacheHits.Add(1)
	} else {
		e.cacheMisses.Add(1)
	}
	return v, ok
}

func (e *Engine) finish(op, key string, version uint64, cacheable bool, value any, start time.Time, n int) {
	elapsed := time.Since(start)
	metrics.RecordComputation(op, elapsed)
	if cacheable {
		e.cache.Add(versionedKey(key, version), value)
	}
	e.logger.Debug().
		Str("operation", op).
		Int("results", n).
		Uint64("catalog_version", version).
		Dur("elapsed", elapsed).
		Msg("computation complete")
}

func versionedKey(key string, version uint64) string {
	return strconv.FormatUint(version, 10) + "#" + key
}
