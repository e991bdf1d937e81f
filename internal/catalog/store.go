// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

package catalog

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/tomtom215/strainspotter/internal/models"
)

// Snapshot is an immutable catalog generation.
type Snapshot struct {
	Strains  []models.Strain
	Version  uint64
	LoadedAt time.Time
	Source   string

	// Fallback is set when the snapshot came from the persisted copy
	// because the configured source failed.
	Fallback bool
}

// Store holds the current catalog snapshot. Readers never block; Replace
// publishes a new snapshot with a single atomic pointer swap.
type Store struct {
	current atomic.Pointer[Snapshot]

	// writeMu orders concurrent Replace calls so versions only increase.
	writeMu sync.Mutex
	version uint64
	now     func() time.Time
}

// NewStore creates an empty store. It reports not ready until the first Replace.
func NewStore() *Store {
	return &Store{now: time.Now}
}

// Replace publishes strains as the new snapshot and returns it. The slice
// must not be modified afterwards.
func (s *Store) Replace(strains []models.Strain, source string) *Snapshot {
	return s.publish(strains, source, false)
}

func (s *Store) publish(strains []models.Strain, source string, fallback bool) *Snapshot {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.version++
	snap := &Snapshot{
		Strains:  strains,
		Version:  s.version,
		LoadedAt: s.now().UTC(),
		Source:   source,
		Fallback: fallback,
	}
	s.current.Store(snap)
	return snap
}

// Snapshot returns the current snapshot, or nil before the first load.
func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

// Strains returns the current catalog. It is nil before the first load.
func (s *Store) Strains() []models.Strain {
	strains, _ := s.VersionedStrains()
	return strains
}

// VersionedStrains returns the current catalog and its version. Version 0
// means nothing has been loaded.
func (s *Store) VersionedStrains() ([]models.Strain, uint64) {
	snap := s.current.Load()
	if snap == nil {
		return nil, 0
	}
	return snap.Strains, snap.Version
}

// Ready reports whether a catalog has been loaded.
func (s *Store) Ready() bool {
	return s.current.Load() != nil
}

// Status describes the current snapshot.
func (s *Store) Status() models.CatalogStatus {
	snap := s.current.Load()
	if snap == nil {
		return models.CatalogStatus{}
	}
	return models.CatalogStatus{
		Source:   snap.Source,
		Version:  snap.Version,
		LoadedAt: snap.LoadedAt,
		Count:    len(snap.Strains),
		Loaded:   true,
	}
}
