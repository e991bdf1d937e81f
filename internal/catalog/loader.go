// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/strainspotter/internal/metrics"
	"github.com/tomtom215/strainspotter/internal/models"
	"github.com/tomtom215/strainspotter/internal/validation"
)

// LoaderConfig tunes catalog loading.
type LoaderConfig struct {
	// Strict rejects the whole load when any record fails validation.
	// Otherwise invalid records are dropped and counted.
	Strict bool

	// Timeout bounds a single load, fallback included.
	Timeout time.Duration
}

// Loader pulls the catalog from a Source, validates it and publishes it to
// a Store. Successful loads are persisted to the snapshot store when one is
// configured; if the source fails before anything has been served, the
// persisted snapshot is published instead.
type Loader struct {
	source   Source
	store    *Store
	snapshot *BadgerSnapshot
	config   LoaderConfig
	logger   zerolog.Logger

	// mu serializes loads triggered by the refresher and by events.
	mu        sync.Mutex
	onPublish []func(*Snapshot)
}

// NewLoader creates a loader. snapshot may be nil.
func NewLoader(source Source, store *Store, snapshot *BadgerSnapshot, cfg LoaderConfig, logger zerolog.Logger) *Loader {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Loader{
		source:   source,
		store:    store,
		snapshot: snapshot,
		config:   cfg,
		logger:   logger.With().Str("component", "catalog").Str("source", source.Name()).Logger(),
	}
}

// OnPublish registers fn to run after every snapshot the loader publishes,
// fallback snapshots included. Register hooks before the first Load.
func (l *Loader) OnPublish(fn func(*Snapshot)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onPublish = append(l.onPublish, fn)
}

func (l *Loader) notify(snap *Snapshot) {
	for _, fn := range l.onPublish {
		fn(snap)
	}
}

// Store returns the store this loader publishes to.
func (l *Loader) Store() *Store {
	return l.store
}

// Load performs one load cycle and returns the published snapshot. On
// failure the previously published snapshot stays in place.
func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, l.config.Timeout)
	defer cancel()

	start := time.Now()
	strains, err := l.loadValid(ctx)
	if err != nil {
		metrics.RecordCatalogReload(l.source.Name(), 0, time.Since(start), err)
		l.logger.Error().Err(err).Dur("duration", time.Since(start)).Msg("Catalog load failed")

		if snap, ok := l.fallback(ctx); ok {
			l.notify(snap)
			return snap, nil
		}
		return nil, err
	}

	snap := l.store.Replace(strains, l.source.Name())
	l.notify(snap)
	metrics.RecordCatalogReload(l.source.Name(), len(strains), time.Since(start), nil)
	l.logger.Info().
		Int("strains", len(strains)).
		Uint64("version", snap.Version).
		Dur("duration", time.Since(start)).
		Msg("Catalog loaded")

	l.persist(ctx, strains)
	return snap, nil
}

func (l *Loader) loadValid(ctx context.Context) ([]models.Strain, error) {
	raw, err := l.source.Load(ctx)
	if err != nil {
		return nil, err
	}

	strains, rejected := sanitize(raw, l.logger)
	if rejected > 0 {
		metrics.RecordRejectedRecords(rejected)
		if l.config.Strict {
			return nil, fmt.Errorf("catalog rejected: %d of %d records invalid", rejected, len(raw))
		}
		l.logger.Warn().Int("rejected", rejected).Int("total", len(raw)).Msg("Dropped invalid catalog records")
	}

	if len(strains) == 0 {
		return nil, ErrEmptyCatalog
	}
	return strains, nil
}

// fallback publishes the persisted snapshot when nothing is being served yet.
func (l *Loader) fallback(ctx context.Context) (*Snapshot, bool) {
	if l.snapshot == nil || l.store.Ready() || l.readsSnapshot() {
		return nil, false
	}

	strains, err := l.snapshot.Load(ctx)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			l.logger.Error().Err(err).Msg("Snapshot fallback failed")
		}
		return nil, false
	}
	if len(strains) == 0 {
		return nil, false
	}

	snap := l.store.publish(strains, l.snapshot.Name(), true)
	metrics.RecordCatalogFallback(l.snapshot.Name(), len(strains))
	l.logger.Warn().
		Int("strains", len(strains)).
		Uint64("version", snap.Version).
		Msg("Serving persisted catalog snapshot")
	return snap, true
}

func (l *Loader) persist(ctx context.Context, strains []models.Strain) {
	if l.snapshot == nil || l.readsSnapshot() {
		return
	}
	if err := l.snapshot.Save(ctx, strains, l.source.Name()); err != nil {
		l.logger.Warn().Err(err).Msg("Failed to persist catalog snapshot")
	}
}

// readsSnapshot reports whether the source is the snapshot store itself.
func (l *Loader) readsSnapshot() bool {
	bs, ok := l.source.(*BadgerSnapshot)
	return ok && bs == l.snapshot
}

// sanitize drops records that fail validation and later records repeating
// an earlier slug. It returns the kept records in their original order.
func sanitize(raw []models.Strain, logger zerolog.Logger) ([]models.Strain, int) {
	kept := make([]models.Strain, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	rejected := 0

	for i := range raw {
		s := &raw[i]
		if err := validation.ValidateStruct(s); err != nil {
			logger.Debug().Err(err).Int("index", i).Str("slug", s.Slug).Msg("Invalid catalog record")
			rejected++
			continue
		}
		if s.Slug != "" {
			if _, dup := seen[s.Slug]; dup {
				logger.Debug().Int("index", i).Str("slug", s.Slug).Msg("Duplicate catalog slug")
				rejected++
				continue
			}
			seen[s.Slug] = struct{}{}
		}
		kept = append(kept, *s)
	}
	return kept, rejected
}
