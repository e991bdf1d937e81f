// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

/*
Package config provides centralized configuration management for StrainSpotter.

# Configuration Sources

Configuration is layered with Koanf v2, later layers overriding earlier ones:
  - Built-in defaults (structs provider)
  - Optional YAML file: CONFIG_PATH, ./config.yaml or /etc/strainspotter/config.yaml
  - Environment variables, mapped explicitly by envTransformFunc

# Environment Variables

HTTP Server:
  - HTTP_HOST, HTTP_PORT (default: 0.0.0.0:8080)
  - HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT, HTTP_IDLE_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT

Security:
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
  - CORS_ORIGINS: Comma-separated allowed origins (default: *)

Recommendation engine:
  - RECOMMEND_DEFAULT_LIMIT, RECOMMEND_MAX_LIMIT, RECOMMEND_TOP_EFFECT_PAIRS
  - RECOMMEND_THC_SPREAD, RECOMMEND_CBD_SPREAD, RECOMMEND_CLAMP_NUMERIC
  - RECOMMEND_CACHE_ENABLED, RECOMMEND_CACHE_TTL, RECOMMEND_CACHE_MAX_ENTRIES

Catalog:
  - CATALOG_SOURCE: file, duckdb, remote or badger (default: file)
  - CATALOG_PATH, CATALOG_DSN, CATALOG_TABLE, CATALOG_URL
  - CATALOG_TIMEOUT, CATALOG_REFRESH_INTERVAL, CATALOG_STRICT, CATALOG_REMOTE_RPS
  - CATALOG_SNAPSHOT_PATH, CATALOG_SNAPSHOT_IN_MEMORY

Events:
  - EVENTS_ENABLED, EVENTS_SUBJECT, NATS_URL
  - NATS_EMBEDDED, NATS_EMBEDDED_HOST, NATS_EMBEDDED_PORT
  - NATS_RECONNECT_WAIT

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Example YAML

	server:
	  port: 8080
	catalog:
	  source: duckdb
	  dsn: /data/catalog.duckdb
	  table: strains
	  snapshot_path: /data/snapshot
	  refresh_interval: 15m
	events:
	  enabled: true
	  url: nats://nats:4222

# Validation

Load() validates every section and returns a descriptive error naming the
offending environment variable. The returned Config is immutable and safe
for concurrent reads.
*/
package config
