// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

package main

import (
	"fmt"
	"io"

	"github.com/tomtom215/strainspotter/internal/catalog"
	"github.com/tomtom215/strainspotter/internal/config"
	"github.com/tomtom215/strainspotter/internal/logging"
)

// CatalogComponents holds the catalog store, its loader and the resources
// they own.
type CatalogComponents struct {
	Store    *catalog.Store
	Loader   *catalog.Loader
	snapshot *catalog.BadgerSnapshot
	source   catalog.Source
}

// initCatalog opens the snapshot store (if configured), builds the source
// and wires both into a loader. Nothing is loaded yet: the catalog
// refresher performs the first load under supervision.
func initCatalog(cfg *config.Config) (*CatalogComponents, error) {
	components := &CatalogComponents{Store: catalog.NewStore()}

	if cfg.Catalog.SnapshotEnabled() {
		snap, err := catalog.OpenBadgerSnapshot(cfg.Catalog.SnapshotPath, cfg.Catalog.SnapshotInMemory)
		if err != nil {
			return nil, fmt.Errorf("open catalog snapshot: %w", err)
		}
		components.snapshot = snap

		event := logging.Info().
			Str("path", cfg.Catalog.SnapshotPath).
			Bool("in_memory", cfg.Catalog.SnapshotInMemory)
		if meta, err := snap.Meta(); err == nil {
			event = event.
				Str("snapshot_source", meta.Source).
				Int("snapshot_strains", meta.Count).
				Time("snapshot_saved_at", meta.SavedAt)
		}
		event.Msg("Catalog snapshot store opened")
	}

	source, err := catalog.NewSource(&cfg.Catalog, components.snapshot)
	if err != nil {
		components.Close()
		return nil, fmt.Errorf("create catalog source: %w", err)
	}
	components.source = source

	components.Loader = catalog.NewLoader(source, components.Store, components.snapshot, catalog.LoaderConfig{
		Strict:  cfg.Catalog.Strict,
		Timeout: cfg.Catalog.Timeout,
	}, logging.Logger())

	logging.Info().
		Str("source", source.Name()).
		Bool("strict", cfg.Catalog.Strict).
		Dur("refresh_interval", cfg.Catalog.RefreshInterval).
		Msg("Catalog loader configured")
	return components, nil
}

// Close releases the source connection and the snapshot store.
func (c *CatalogComponents) Close() {
	if c == nil {
		return
	}
	// the badger source kind is the snapshot itself
	if closer, ok := c.source.(io.Closer); ok && c.source != catalog.Source(c.snapshot) {
		if err := closer.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing catalog source")
		}
	}
	if c.snapshot != nil {
		if err := c.snapshot.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing catalog snapshot")
		}
	}
}
