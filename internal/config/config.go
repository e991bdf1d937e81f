// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all settings
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any setting via environment variables
//
// Configuration Categories:
//
//  1. Serving:
//     - Server: HTTP listener and timeouts
//     - Security: Rate limiting and CORS
//
//  2. Domain:
//     - Recommend: Scoring, limits and response caching
//     - Catalog: Where strains are loaded from and how often
//     - Events: Catalog change notifications over NATS
//
//  3. Observability:
//     - Logging: Log levels and output formats
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	server := http.Server{Addr: cfg.Server.Addr()}
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	Recommend RecommendConfig `koanf:"recommend"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Events    EventsConfig    `koanf:"events"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SecurityConfig holds request limiting and cross-origin settings
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging configuration.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// RecommendConfig holds similarity scoring, result limits and response
// cache settings.
//
// Environment Variables:
//   - RECOMMEND_DEFAULT_LIMIT: Results returned when no limit is given (default: 5)
//   - RECOMMEND_MAX_LIMIT: Upper bound on caller limits, 0 for none (default: 0)
//   - RECOMMEND_TOP_EFFECT_PAIRS: Effect pairs returned by /effects/combinations (default: 20)
//   - RECOMMEND_THC_SPREAD / RECOMMEND_CBD_SPREAD: Difference at which the factor hits 0 (default: 30)
//   - RECOMMEND_CLAMP_NUMERIC: Clamp THC/CBD factors to [0,1] (default: false)
//   - RECOMMEND_CACHE_ENABLED, RECOMMEND_CACHE_TTL, RECOMMEND_CACHE_MAX_ENTRIES
type RecommendConfig struct {
	DefaultLimit    int           `koanf:"default_limit"`
	MaxLimit        int           `koanf:"max_limit"`
	TopEffectPairs  int           `koanf:"top_effect_pairs"`
	THCSpread       float64       `koanf:"thc_spread"`
	CBDSpread       float64       `koanf:"cbd_spread"`
	ClampNumeric    bool          `koanf:"clamp_numeric"`
	CacheEnabled    bool          `koanf:"cache_enabled"`
	CacheTTL        time.Duration `koanf:"cache_ttl"`
	CacheMaxEntries int           `koanf:"cache_max_entries"`
}

// Catalog source kinds.
const (
	CatalogSourceFile   = "file"
	CatalogSourceDuckDB = "duckdb"
	CatalogSourceRemote = "remote"
	CatalogSourceBadger = "badger"
)

// CatalogConfig selects and tunes the catalog source.
//
// Source kinds:
//   - file: JSON or YAML file at Path
//   - duckdb: table Table in the DuckDB database at DSN
//   - remote: JSON array served at URL
//   - badger: the last persisted snapshot only
//
// Environment Variables:
//   - CATALOG_SOURCE, CATALOG_PATH, CATALOG_DSN, CATALOG_TABLE, CATALOG_URL
//   - CATALOG_TIMEOUT: Per-load timeout (default: 30s)
//   - CATALOG_REFRESH_INTERVAL: Periodic reload, 0 disables (default: 0)
//   - CATALOG_STRICT: Reject the whole load when any record is invalid (default: false)
//   - CATALOG_REMOTE_RPS: Client-side request rate for the remote source (default: 1)
//   - CATALOG_SNAPSHOT_PATH: Badger directory for the last-known-good snapshot, empty disables
//   - CATALOG_SNAPSHOT_IN_MEMORY: Keep the snapshot store in memory (default: false)
type CatalogConfig struct {
	Source           string        `koanf:"source"`
	Path             string        `koanf:"path"`
	DSN              string        `koanf:"dsn"`
	Table            string        `koanf:"table"`
	URL              string        `koanf:"url"`
	Timeout          time.Duration `koanf:"timeout"`
	RefreshInterval  time.Duration `koanf:"refresh_interval"`
	Strict           bool          `koanf:"strict"`
	RemoteRPS        float64       `koanf:"remote_rps"`
	SnapshotPath     string        `koanf:"snapshot_path"`
	SnapshotInMemory bool          `koanf:"snapshot_in_memory"`
}

// SnapshotEnabled reports whether a badger snapshot store is configured.
func (c CatalogConfig) SnapshotEnabled() bool {
	return c.SnapshotPath != "" || c.SnapshotInMemory || c.Source == CatalogSourceBadger
}

// EventsConfig holds catalog change notification settings.
//
// Environment Variables:
//   - EVENTS_ENABLED: Subscribe to catalog change events (default: false)
//   - NATS_URL: Broker URL (default: nats://127.0.0.1:4222)
//   - EVENTS_SUBJECT: Subject carrying catalog updates (default: catalog.updated)
//   - NATS_EMBEDDED: Run an in-process NATS server (default: false)
//   - NATS_EMBEDDED_HOST / NATS_EMBEDDED_PORT
//   - NATS_RECONNECT_WAIT: Delay between reconnect attempts (default: 2s)
//
// Events use core NATS fan-out: every replica receives every update and
// reloads its own catalog, so there is no queue group or durable consumer.
type EventsConfig struct {
	Enabled        bool          `koanf:"enabled"`
	URL            string        `koanf:"url"`
	Subject        string        `koanf:"subject"`
	EmbeddedServer bool          `koanf:"embedded_server"`
	EmbeddedHost   string        `koanf:"embedded_host"`
	EmbeddedPort   int           `koanf:"embedded_port"`
	ReconnectWait  time.Duration `koanf:"reconnect_wait"`
}

// Load reads configuration from all sources with the following precedence
// (highest to lowest):
//  1. Environment variables
//  2. Config file (config.yaml if exists, or path specified in CONFIG_PATH env var)
//  3. Built-in defaults
//
// See LoadWithKoanf() for the underlying implementation.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
