// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

package catalog

import (
	"errors"
	"testing"

	"github.com/tomtom215/strainspotter/internal/config"
)

func TestNewSource(t *testing.T) {
	t.Parallel()

	snapshot := newTestSnapshot(t)

	tests := []struct {
		name     string
		cfg      config.CatalogConfig
		snapshot *BadgerSnapshot
		wantName string
		wantErr  error
	}{
		{"file", config.CatalogConfig{Source: config.CatalogSourceFile, Path: "strains.json"}, nil, "file", nil},
		{"duckdb", config.CatalogConfig{Source: config.CatalogSourceDuckDB, Table: "strains"}, nil, "duckdb", nil},
		{"remote", config.CatalogConfig{Source: config.CatalogSourceRemote, URL: "http://catalog.local"}, nil, "remote", nil},
		{"badger", config.CatalogConfig{Source: config.CatalogSourceBadger}, snapshot, "badger", nil},
		{"badger without store", config.CatalogConfig{Source: config.CatalogSourceBadger}, nil, "", ErrUnsupportedSource},
		{"unknown", config.CatalogConfig{Source: "ftp"}, nil, "", ErrUnsupportedSource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src, err := NewSource(&tt.cfg, tt.snapshot)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("NewSource() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewSource() error = %v", err)
			}
			if src.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", src.Name(), tt.wantName)
			}
			if closer, ok := src.(*DuckDBSource); ok {
				closer.Close()
			}
		})
	}
}
