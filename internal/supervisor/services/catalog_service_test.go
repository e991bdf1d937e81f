// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/strainspotter/internal/catalog"
	"github.com/tomtom215/strainspotter/internal/models"
)

// scriptedLoader returns results from a script, repeating the last entry.
type scriptedLoader struct {
	mu     sync.Mutex
	script []loadResult
	calls  int
}

type loadResult struct {
	snap *catalog.Snapshot
	err  error
}

func (l *scriptedLoader) Load(ctx context.Context) (*catalog.Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	idx := l.calls
	if idx >= len(l.script) {
		idx = len(l.script) - 1
	}
	l.calls++
	return l.script[idx].snap, l.script[idx].err
}

func (l *scriptedLoader) Calls() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}

func okSnapshot(version uint64) loadResult {
	return loadResult{snap: &catalog.Snapshot{
		Strains: []models.Strain{{Slug: "blue-dream"}},
		Version: version,
		Source:  "file",
	}}
}

func waitForCalls(t *testing.T, l *scriptedLoader, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for l.Calls() < n {
		if time.Now().After(deadline) {
			t.Fatalf("loader called %d times, want at least %d", l.Calls(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestCatalogRefresher_RetriesInitialLoad(t *testing.T) {
	loader := &scriptedLoader{script: []loadResult{
		{err: errors.New("source down")},
		{err: errors.New("source down")},
		okSnapshot(1),
	}}
	svc := NewCatalogRefresherService(loader, CatalogRefresherConfig{
		InitialBackoff: time.Millisecond,
		MaxBackoff:     2 * time.Millisecond,
	}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	waitForCalls(t, loader, 3)
	time.Sleep(20 * time.Millisecond)
	if got := loader.Calls(); got != 3 {
		t.Errorf("loader calls = %d, want 3 (no reloads without a refresh interval)", got)
	}

	cancel()
	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
}

func TestCatalogRefresher_FallbackKeepsRetrying(t *testing.T) {
	fallback := loadResult{snap: &catalog.Snapshot{
		Strains:  []models.Strain{{Slug: "old"}},
		Version:  1,
		Source:   "badger",
		Fallback: true,
	}}
	loader := &scriptedLoader{script: []loadResult{
		fallback,
		{err: errors.New("source down")},
		okSnapshot(2),
	}}
	svc := NewCatalogRefresherService(loader, CatalogRefresherConfig{
		InitialBackoff: time.Millisecond,
	}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = svc.Serve(ctx) }()

	waitForCalls(t, loader, 3)
}

func TestCatalogRefresher_PeriodicReload(t *testing.T) {
	loader := &scriptedLoader{script: []loadResult{
		okSnapshot(1),
		{err: errors.New("transient")},
		okSnapshot(2),
	}}
	svc := NewCatalogRefresherService(loader, CatalogRefresherConfig{
		RefreshInterval: 5 * time.Millisecond,
	}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	// a failed scheduled reload does not stop the service
	waitForCalls(t, loader, 4)

	cancel()
	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
}

func TestCatalogRefresher_CancelDuringBackoff(t *testing.T) {
	loader := &scriptedLoader{script: []loadResult{{err: errors.New("down")}}}
	svc := NewCatalogRefresherService(loader, CatalogRefresherConfig{
		InitialBackoff: time.Hour,
	}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	waitForCalls(t, loader, 1)
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Serve did not return while backing off")
	}
}

func TestNewCatalogRefresherService_Defaults(t *testing.T) {
	svc := NewCatalogRefresherService(&scriptedLoader{}, CatalogRefresherConfig{}, zerolog.Nop())
	if svc.config.InitialBackoff != time.Second || svc.config.MaxBackoff != time.Minute {
		t.Errorf("backoff = %v/%v, want 1s/1m", svc.config.InitialBackoff, svc.config.MaxBackoff)
	}

	svc = NewCatalogRefresherService(&scriptedLoader{}, CatalogRefresherConfig{InitialBackoff: 2 * time.Minute}, zerolog.Nop())
	if svc.config.MaxBackoff != 2*time.Minute {
		t.Errorf("MaxBackoff = %v, want raised to InitialBackoff", svc.config.MaxBackoff)
	}
	if svc.String() != "catalog-refresher" {
		t.Errorf("String() = %q", svc.String())
	}
}

func TestCatalogRefresher_WithRealLoader(t *testing.T) {
	store := catalog.NewStore()
	source := catalog.NewFileSource(writeCatalogFile(t))
	loader := catalog.NewLoader(source, store, nil, catalog.LoaderConfig{}, zerolog.Nop())
	svc := NewCatalogRefresherService(loader, CatalogRefresherConfig{}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = svc.Serve(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for !store.Ready() {
		if time.Now().After(deadline) {
			t.Fatal("store never became ready")
		}
		time.Sleep(5 * time.Millisecond)
	}
	if got := store.Status().Count; got != 2 {
		t.Errorf("loaded %d strains, want 2", got)
	}
}

func writeCatalogFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "strains.json")
	data := `[{"slug":"blue-dream","name":"Blue Dream","effects":["Happy"]},{"slug":"og-kush","effects":["Relaxed"]}]`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return path
}
