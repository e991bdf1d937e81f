// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/strainspotter/config.yaml",
	"/etc/strainspotter/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   1 * time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Recommend: RecommendConfig{
			DefaultLimit:    5,
			MaxLimit:        0,
			TopEffectPairs:  20,
			THCSpread:       30,
			CBDSpread:       30,
			ClampNumeric:    false,
			CacheEnabled:    true,
			CacheTTL:        5 * time.Minute,
			CacheMaxEntries: 1000,
		},
		Catalog: CatalogConfig{
			Source:          CatalogSourceFile,
			Path:            "/data/strains.json",
			Table:           "strains",
			Timeout:         30 * time.Second,
			RefreshInterval: 0, // Disabled; reload on events or restart
			Strict:          false,
			RemoteRPS:       1,
		},
		Events: EventsConfig{
			Enabled:        false,
			URL:            "nats://127.0.0.1:4222",
			Subject:        "catalog.updated",
			EmbeddedServer: false,
			EmbeddedHost:   "127.0.0.1",
			EmbeddedPort:   4222,
			ReconnectWait:  2 * time.Second,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// CATALOG_SOURCE -> catalog.source
	// RECOMMEND_MAX_LIMIT -> recommend.max_limit
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Server mappings
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_idle_timeout":     "server.idle_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",

	// Security mappings
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	// Logging mappings
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Recommendation engine mappings
	"recommend_default_limit":     "recommend.default_limit",
	"recommend_max_limit":         "recommend.max_limit",
	"recommend_top_effect_pairs":  "recommend.top_effect_pairs",
	"recommend_thc_spread":        "recommend.thc_spread",
	"recommend_cbd_spread":        "recommend.cbd_spread",
	"recommend_clamp_numeric":     "recommend.clamp_numeric",
	"recommend_cache_enabled":     "recommend.cache_enabled",
	"recommend_cache_ttl":         "recommend.cache_ttl",
	"recommend_cache_max_entries": "recommend.cache_max_entries",

	// Catalog mappings
	"catalog_source":             "catalog.source",
	"catalog_path":               "catalog.path",
	"catalog_dsn":                "catalog.dsn",
	"catalog_table":              "catalog.table",
	"catalog_url":                "catalog.url",
	"catalog_timeout":            "catalog.timeout",
	"catalog_refresh_interval":   "catalog.refresh_interval",
	"catalog_strict":             "catalog.strict",
	"catalog_remote_rps":         "catalog.remote_rps",
	"catalog_snapshot_path":      "catalog.snapshot_path",
	"catalog_snapshot_in_memory": "catalog.snapshot_in_memory",

	// Events / NATS mappings
	"events_enabled":      "events.enabled",
	"events_subject":      "events.subject",
	"nats_url":            "events.url",
	"nats_embedded":       "events.embedded_server",
	"nats_embedded_host":  "events.embedded_host",
	"nats_embedded_port":  "events.embedded_port",
	"nats_reconnect_wait": "events.reconnect_wait",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unmapped variables return "" and are skipped so unrelated environment
// variables never leak into the configuration.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - CATALOG_SOURCE -> catalog.source
//   - NATS_URL -> events.url
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
