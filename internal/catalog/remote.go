// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/strainspotter/internal/logging"
	"github.com/tomtom215/strainspotter/internal/models"
)

// defaultMaxRemoteBytes bounds the response body read from a remote catalog.
const defaultMaxRemoteBytes = 64 << 20

// RemoteConfig configures a RemoteSource.
type RemoteConfig struct {
	URL               string
	Timeout           time.Duration
	RequestsPerSecond float64

	// MaxBytes caps the response body. Larger catalogs are rejected.
	// Default: 64 MiB.
	MaxBytes int64

	// Client overrides the HTTP client. Tests use httptest clients.
	Client *http.Client
}

// RemoteSource fetches the catalog as JSON over HTTP. Requests are rate
// limited client-side and guarded by a circuit breaker so a failing catalog
// service is not hammered by refreshes and events.
type RemoteSource struct {
	url      string
	client   *http.Client
	maxBytes int64
	limiter  *rate.Limiter
	cb       *gobreaker.CircuitBreaker[[]models.Strain]
}

// NewRemoteSource creates a remote catalog source.
func NewRemoteSource(cfg *RemoteConfig) *RemoteSource {
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	maxBytes := cfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxRemoteBytes
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}

	cb := gobreaker.NewCircuitBreaker[[]models.Strain](gobreaker.Settings{
		Name:        "catalog-remote",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Catalog circuit breaker state changed")
		},
	})

	return &RemoteSource{
		url:      cfg.URL,
		client:   client,
		maxBytes: maxBytes,
		limiter:  rate.NewLimiter(rate.Limit(rps), 1),
		cb:       cb,
	}
}

// Name implements Source.
func (s *RemoteSource) Name() string {
	return "remote"
}

// Load implements Source.
func (s *RemoteSource) Load(ctx context.Context) ([]models.Strain, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("catalog rate limit: %w", err)
	}

	strains, err := s.cb.Execute(func() ([]models.Strain, error) {
		return s.fetch(ctx)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("catalog service unavailable: %w", err)
	}
	return strains, err
}

// State returns the circuit breaker state.
func (s *RemoteSource) State() gobreaker.State {
	return s.cb.State()
}

func (s *RemoteSource) fetch(ctx context.Context) ([]models.Strain, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch catalog: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read catalog response: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrCatalogTooLarge, s.maxBytes)
	}
	return decodeJSON(data)
}
