// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

/*
Package catalog loads, validates and serves the strain catalog.

# Components

  - Store: holds the current immutable Snapshot behind an atomic pointer.
    It implements recommend.VersionedProvider, so engine caches are keyed by
    the snapshot version and go stale automatically on reload.
  - Source: where strains come from. Implementations are FileSource (JSON
    or YAML), DuckDBSource (a table with LIST columns), RemoteSource (JSON
    over HTTP behind a rate limiter and circuit breaker) and BadgerSnapshot.
  - BadgerSnapshot: persists the last good catalog for cold starts.
  - Loader: one load cycle. It validates every record with
    internal/validation, drops duplicates, publishes to the Store, persists
    to the snapshot and falls back to it when the source is down at startup.

# Usage

	store := catalog.NewStore()
	source, err := catalog.NewSource(&cfg.Catalog, snapshot)
	loader := catalog.NewLoader(source, store, snapshot, catalog.LoaderConfig{
	    Strict:  cfg.Catalog.Strict,
	    Timeout: cfg.Catalog.Timeout,
	}, logging.Logger())
	if _, err := loader.Load(ctx); err != nil {
	    // not ready yet; the refresher keeps retrying
	}
	engine, err := recommend.NewEngine(engineCfg, store, logging.Logger())

# Thread Safety

Store readers never block. Loader.Load is serialized internally, so the
periodic refresher and the event listener can call it concurrently.
*/
package catalog
