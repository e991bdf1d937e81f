// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

package catalog

import (
	"context"
	"fmt"

	"github.com/tomtom215/strainspotter/internal/config"
	"github.com/tomtom215/strainspotter/internal/models"
)

// Source produces a full catalog on demand.
type Source interface {
	// Name identifies the source in logs and metrics.
	Name() string

	// Load returns the complete catalog in its canonical order.
	Load(ctx context.Context) ([]models.Strain, error)
}

// NewSource builds the source selected by cfg. The snapshot is required for
// the badger source kind and ignored otherwise.
func NewSource(cfg *config.CatalogConfig, snapshot *BadgerSnapshot) (Source, error) {
	switch cfg.Source {
	case config.CatalogSourceFile:
		return NewFileSource(cfg.Path), nil
	case config.CatalogSourceDuckDB:
		return OpenDuckDBSource(cfg.DSN, cfg.Table)
	case config.CatalogSourceRemote:
		return NewRemoteSource(&RemoteConfig{
			URL:               cfg.URL,
			Timeout:           cfg.Timeout,
			RequestsPerSecond: cfg.RemoteRPS,
		}), nil
	case config.CatalogSourceBadger:
		if snapshot == nil {
			return nil, fmt.Errorf("%w: badger source requires a snapshot store", ErrUnsupportedSource)
		}
		return snapshot, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSource, cfg.Source)
	}
}
