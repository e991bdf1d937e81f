// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/strainspotter/internal/models"
)

// Key layout in the snapshot store
const (
	snapshotStrainsKey = "catalog:strains"
	snapshotMetaKey    = "catalog:meta"
)

// SnapshotMeta describes a persisted catalog.
type SnapshotMeta struct {
	Source  string    `json:"source"`
	SavedAt time.Time `json:"saved_at"`
	Count   int       `json:"count"`
}

// BadgerSnapshot persists the last successfully loaded catalog so the
// service can start, or keep serving, while the primary source is down.
// It also acts as a Source in its own right.
type BadgerSnapshot struct {
	db  *badger.DB
	now func() time.Time
}

// OpenBadgerSnapshot opens (or creates) the snapshot store at path. With
// inMemory set the path is ignored and nothing touches disk.
func OpenBadgerSnapshot(path string, inMemory bool) (*BadgerSnapshot, error) {
	opts := badger.DefaultOptions(path)
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open snapshot store: %w", err)
	}
	return NewBadgerSnapshot(db), nil
}

// NewBadgerSnapshot wraps an open badger database.
func NewBadgerSnapshot(db *badger.DB) *BadgerSnapshot {
	return &BadgerSnapshot{db: db, now: time.Now}
}

// Name implements Source.
func (s *BadgerSnapshot) Name() string {
	return "badger"
}

// Save replaces the persisted catalog.
func (s *BadgerSnapshot) Save(ctx context.Context, strains []models.Strain, source string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(strains)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	meta, err := json.Marshal(SnapshotMeta{Source: source, SavedAt: s.now().UTC(), Count: len(strains)})
	if err != nil {
		return fmt.Errorf("marshal snapshot meta: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(snapshotStrainsKey), data); err != nil {
			return fmt.Errorf("set snapshot: %w", err)
		}
		if err := txn.Set([]byte(snapshotMetaKey), meta); err != nil {
			return fmt.Errorf("set snapshot meta: %w", err)
		}
		return nil
	})
}

// Load implements Source. It returns ErrNotFound when nothing was saved.
func (s *BadgerSnapshot) Load(ctx context.Context) ([]models.Strain, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var strains []models.Strain
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(snapshotStrainsKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get snapshot: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &strains)
		})
	})
	if err != nil {
		return nil, err
	}
	return strains, nil
}

// Meta returns the metadata of the persisted catalog.
func (s *BadgerSnapshot) Meta() (*SnapshotMeta, error) {
	var meta SnapshotMeta
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(snapshotMetaKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get snapshot meta: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &meta)
		})
	})
	if err != nil {
		return nil, err
	}
	return &meta, nil
}

// Close closes the underlying database.
func (s *BadgerSnapshot) Close() error {
	return s.db.Close()
}
