// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/strainspotter/internal/logging"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateSecurity,
		c.validateLogging,
		c.validateRecommend,
		c.validateCatalog,
		c.validateEvents,
	}

	for _, validator := range validators {
		if err := validator(); err != nil {
			return err
		}
	}
	return nil
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("HTTP_READ_TIMEOUT and HTTP_WRITE_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

// Rate limit bounds
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

// validateSecurity validates rate limiting configuration
func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}

	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// validateLogging validates the log level and format
func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL %q is not a recognized level (trace, debug, info, warn, error, fatal, panic, disabled)", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// validateRecommend validates scoring, limits and cache settings
func (c *Config) validateRecommend() error {
	r := &c.Recommend
	if r.DefaultLimit < 1 {
		return fmt.Errorf("RECOMMEND_DEFAULT_LIMIT must be at least 1")
	}
	if r.MaxLimit < 0 {
		return fmt.Errorf("RECOMMEND_MAX_LIMIT must not be negative")
	}
	if r.MaxLimit > 0 && r.MaxLimit < r.DefaultLimit {
		return fmt.Errorf("RECOMMEND_MAX_LIMIT (%d) must not be less than RECOMMEND_DEFAULT_LIMIT (%d)", r.MaxLimit, r.DefaultLimit)
	}
	if r.TopEffectPairs < 1 {
		return fmt.Errorf("RECOMMEND_TOP_EFFECT_PAIRS must be at least 1")
	}
	if r.THCSpread <= 0 || r.CBDSpread <= 0 {
		return fmt.Errorf("RECOMMEND_THC_SPREAD and RECOMMEND_CBD_SPREAD must be positive")
	}
	if r.CacheEnabled {
		if r.CacheTTL <= 0 {
			return fmt.Errorf("RECOMMEND_CACHE_TTL must be positive when caching is enabled")
		}
		if r.CacheMaxEntries < 1 {
			return fmt.Errorf("RECOMMEND_CACHE_MAX_ENTRIES must be at least 1 when caching is enabled")
		}
	}
	return nil
}

// validateCatalog validates the catalog source selection
func (c *Config) validateCatalog() error {
	cat := &c.Catalog

	switch cat.Source {
	case CatalogSourceFile:
		if cat.Path == "" {
			return fmt.Errorf("CATALOG_PATH is required when CATALOG_SOURCE=file")
		}
	case CatalogSourceDuckDB:
		if cat.Table == "" {
			return fmt.Errorf("CATALOG_TABLE is required when CATALOG_SOURCE=duckdb")
		}
		if !validTableName(cat.Table) {
			return fmt.Errorf("CATALOG_TABLE must contain only letters, digits and underscores, got: %s", cat.Table)
		}
	case CatalogSourceRemote:
		if cat.URL == "" {
			return fmt.Errorf("CATALOG_URL is required when CATALOG_SOURCE=remote")
		}
		if err := validateHTTPURL(cat.URL, "CATALOG_URL"); err != nil {
			return fmt.Errorf("CATALOG_URL is invalid: %w", err)
		}
		if cat.RemoteRPS <= 0 {
			return fmt.Errorf("CATALOG_REMOTE_RPS must be positive")
		}
	case CatalogSourceBadger:
		if cat.SnapshotPath == "" && !cat.SnapshotInMemory {
			return fmt.Errorf("CATALOG_SNAPSHOT_PATH is required when CATALOG_SOURCE=badger")
		}
	default:
		return fmt.Errorf("CATALOG_SOURCE must be one of: file, duckdb, remote, badger")
	}

	if cat.Timeout <= 0 {
		return fmt.Errorf("CATALOG_TIMEOUT must be positive")
	}
	if cat.RefreshInterval < 0 {
		return fmt.Errorf("CATALOG_REFRESH_INTERVAL must not be negative")
	}
	if cat.RefreshInterval > 0 && cat.RefreshInterval < time.Second {
		return fmt.Errorf("CATALOG_REFRESH_INTERVAL must be at least 1s when set")
	}
	return nil
}

// validateEvents validates the NATS subscription (only if enabled)
func (c *Config) validateEvents() error {
	ev := &c.Events
	if !ev.Enabled {
		return nil
	}

	if err := validateNATSURL(ev.URL); err != nil {
		return fmt.Errorf("NATS_URL is invalid: %w", err)
	}
	if ev.Subject == "" {
		return fmt.Errorf("EVENTS_SUBJECT is required when EVENTS_ENABLED=true")
	}
	if ev.ReconnectWait <= 0 {
		return fmt.Errorf("NATS_RECONNECT_WAIT must be positive")
	}
	if ev.EmbeddedServer && (ev.EmbeddedPort < 1 || ev.EmbeddedPort > 65535) {
		return fmt.Errorf("NATS_EMBEDDED_PORT must be between 1 and 65535")
	}
	return nil
}

// validTableName reports whether name is a bare SQL identifier.
func validTableName(name string) bool {
	for _, r := range name {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		if !isLetter && !isDigit && r != '_' {
			return false
		}
	}
	return name != ""
}
