// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/knadh/koanf/v2"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Recommend.DefaultLimit != 5 {
		t.Errorf("Recommend.DefaultLimit = %d, want 5", cfg.Recommend.DefaultLimit)
	}
	if cfg.Recommend.TopEffectPairs != 20 {
		t.Errorf("Recommend.TopEffectPairs = %d, want 20", cfg.Recommend.TopEffectPairs)
	}
	if cfg.Recommend.THCSpread != 30 || cfg.Recommend.CBDSpread != 30 {
		t.Errorf("Recommend spreads = %v/%v, want 30/30", cfg.Recommend.THCSpread, cfg.Recommend.CBDSpread)
	}
	if cfg.Recommend.ClampNumeric {
		t.Error("Recommend.ClampNumeric should be false by default")
	}
	if cfg.Catalog.Source != CatalogSourceFile {
		t.Errorf("Catalog.Source = %q, want file", cfg.Catalog.Source)
	}
	if cfg.Events.Enabled {
		t.Error("Events.Enabled should be false by default")
	}
	if cfg.Events.Subject != "catalog.updated" {
		t.Errorf("Events.Subject = %q, want catalog.updated", cfg.Events.Subject)
	}
	if len(cfg.Security.CORSOrigins) != 1 || cfg.Security.CORSOrigins[0] != "*" {
		t.Errorf("Security.CORSOrigins = %v, want [*]", cfg.Security.CORSOrigins)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaultConfig().Validate() = %v, want nil", err)
	}
}

// TestEnvTransformFunc verifies environment variable name transformations
func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"HTTP_PORT", "server.port"},
		{"DISABLE_RATE_LIMIT", "security.rate_limit_disabled"},
		{"LOG_LEVEL", "logging.level"},
		{"RECOMMEND_MAX_LIMIT", "recommend.max_limit"},
		{"RECOMMEND_CLAMP_NUMERIC", "recommend.clamp_numeric"},
		{"CATALOG_SOURCE", "catalog.source"},
		{"CATALOG_SNAPSHOT_PATH", "catalog.snapshot_path"},
		{"NATS_URL", "events.url"},
		{"NATS_EMBEDDED", "events.embedded_server"},
		{"catalog_dsn", "catalog.dsn"},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := envTransformFunc(tt.input); got != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestProcessSliceFields(t *testing.T) {
	t.Parallel()

	k := koanf.New(".")
	if err := k.Set("security.cors_origins", " https://a.example , ,https://b.example"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := processSliceFields(k); err != nil {
		t.Fatalf("processSliceFields() error = %v", err)
	}

	got := k.Strings("security.cors_origins")
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Errorf("cors_origins = %v, want [https://a.example https://b.example]", got)
	}
}

// The tests below modify process environment and cannot run in parallel.

func TestLoadWithKoanf_Defaults(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Addr() != "0.0.0.0:8080" {
		t.Errorf("Server.Addr() = %q, want 0.0.0.0:8080", cfg.Server.Addr())
	}
}

func TestLoadWithKoanf_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
server:
  port: 9090
catalog:
  source: duckdb
  dsn: ""
  table: strain_catalog
  refresh_interval: 15m
recommend:
  max_limit: 50
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("RECOMMEND_MAX_LIMIT", "25")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090 from file", cfg.Server.Port)
	}
	if cfg.Catalog.Source != CatalogSourceDuckDB || cfg.Catalog.Table != "strain_catalog" {
		t.Errorf("Catalog = %+v, want duckdb/strain_catalog", cfg.Catalog)
	}
	if cfg.Catalog.RefreshInterval != 15*time.Minute {
		t.Errorf("Catalog.RefreshInterval = %v, want 15m", cfg.Catalog.RefreshInterval)
	}
	if cfg.Recommend.MaxLimit != 25 {
		t.Errorf("Recommend.MaxLimit = %d, want 25 from env", cfg.Recommend.MaxLimit)
	}
	if cfg.Recommend.DefaultLimit != 5 {
		t.Errorf("Recommend.DefaultLimit = %d, want default 5", cfg.Recommend.DefaultLimit)
	}
	if len(cfg.Security.CORSOrigins) != 2 {
		t.Errorf("Security.CORSOrigins = %v, want 2 entries", cfg.Security.CORSOrigins)
	}
}

func TestLoadWithKoanf_InvalidEnv(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("CATALOG_SOURCE", "ftp")

	if _, err := LoadWithKoanf(); err == nil {
		t.Error("LoadWithKoanf() error = nil, want validation error")
	}
}

func TestFindConfigFile_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 1\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	if got := findConfigFile(); got != path {
		t.Errorf("findConfigFile() = %q, want %q", got, path)
	}
}
