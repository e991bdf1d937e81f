// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

package recommend

import (
	"fmt"
	"time"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Scoring contains the similarity factor parameters.
	Scoring ScoringConfig `json:"scoring"`

	// Limits contains result size limits.
	Limits LimitsConfig `json:"limits"`

	// Cache contains response caching parameters.
	Cache CacheConfig `json:"cache"`
}

// ScoringConfig controls the numeric similarity factors.
type ScoringConfig struct {
	// THCSpread is the THC difference, in percentage points, at which the
	// THC factor reaches zero.
	// Default: 30.
	THCSpread float64 `json:"thc_spread"`

	// CBDSpread is the CBD counterpart of THCSpread.
	// Default: 30.
	CBDSpread float64 `json:"cbd_spread"`

	// ClampNumeric clamps the THC and CBD factors to [0, 1]. When false a
	// difference wider than the spread contributes a negative addend.
	// Default: false.
	ClampNumeric bool `json:"clamp_numeric"`
}

// LimitsConfig contains result size limits.
type LimitsConfig struct {
	// DefaultLimit is used when a caller gives no usable limit.
	// Default: 5.
	DefaultLimit int `json:"default_limit"`

	// MaxLimit caps caller supplied limits. Zero disables the cap.
	// Default: 0.
	MaxLimit int `json:"max_limit"`

	// TopEffectPairs is the number of effect pairs returned by the
	// co-occurrence aggregation.
	// Default: 20.
	TopEffectPairs int `json:"top_effect_pairs"`
}

// CacheConfig contains response caching parameters.
type CacheConfig struct {
	// Enabled controls whether caching is active.
	// Default: true.
	Enabled bool `json:"enabled"`

	// TTL is the cache entry time-to-live.
	// Default: 5m.
	TTL time.Duration `json:"ttl"`

	// MaxEntries is the maximum number of cached responses.
	// Default: 1000.
	MaxEntries int `json:"max_entries"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		Scoring: ScoringConfig{
			THCSpread:    DefaultNumericSpread,
			CBDSpread:    DefaultNumericSpread,
			ClampNumeric: false,
		},
		Limits: LimitsConfig{
			DefaultLimit:   DefaultLimit,
			MaxLimit:       0,
			TopEffectPairs: DefaultTopEffectPairs,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        5 * time.Minute,
			MaxEntries: 1000,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Scoring.THCSpread <= 0 {
		return fmt.Errorf("scoring.thc_spread must be positive, got %f", c.Scoring.THCSpread)
	}
	if c.Scoring.CBDSpread <= 0 {
		return fmt.Errorf("scoring.cbd_spread must be positive, got %f", c.Scoring.CBDSpread)
	}

	if c.Limits.DefaultLimit < 1 {
		return fmt.Errorf("limits.default_limit must be positive, got %d", c.Limits.DefaultLimit)
	}
	if c.Limits.MaxLimit < 0 {
		return fmt.Errorf("limits.max_limit must not be negative, got %d", c.Limits.MaxLimit)
	}
	if c.Limits.MaxLimit > 0 && c.Limits.MaxLimit < c.Limits.DefaultLimit {
		return fmt.Errorf("limits.max_limit must be >= limits.default_limit, got %d < %d", c.Limits.MaxLimit, c.Limits.DefaultLimit)
	}
	if c.Limits.TopEffectPairs < 1 {
		return fmt.Errorf("limits.top_effect_pairs must be positive, got %d", c.Limits.TopEffectPairs)
	}

	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive when cache is enabled, got %v", c.Cache.TTL)
		}
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be positive when cache is enabled, got %d", c.Cache.MaxEntries)
		}
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// scorer builds the similarity scorer described by the scoring section.
func (c *Config) scorer() Scorer {
	return Scorer{
		THCSpread:    c.Scoring.THCSpread,
		CBDSpread:    c.Scoring.CBDSpread,
		ClampNumeric: c.Scoring.ClampNumeric,
	}
}

// resolveLimit maps a caller supplied limit onto the configured bounds.
// Non-positive values select the default. A zero MaxLimit leaves
// larger limits uncapped.
func (c *Config) resolveLimit(limit int) int {
	if limit <= 0 {
		return c.Limits.DefaultLimit
	}
	if c.Limits.MaxLimit > 0 && limit > c.Limits.MaxLimit {
		return c.Limits.MaxLimit
	}
	return limit
}
