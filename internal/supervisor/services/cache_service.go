// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// CachePruner drops expired cache entries.
// Satisfied by *recommend.Engine.
type CachePruner interface {
	PruneCache() int
}

// CacheJanitorService prunes expired response cache entries on a fixed
// interval. Expired entries are also skipped lazily on lookup; pruning
// returns their memory without waiting for LRU eviction.
type CacheJanitorService struct {
	pruner   CachePruner
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewCacheJanitorService creates a janitor for pruner. A non-positive
// interval defaults to one minute.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCacheJanitorService(pruner CachePruner, interval time.Duration, logger zerolog.Logger) *CacheJanitorService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &CacheJanitorService{
		pruner:   pruner,
		interval: interval,
		logger:   logger.With().Str("service", "cache-janitor").Logger(),
		name:     "cache-janitor",
	}
}

// Serve implements suture.Service.
func (s *CacheJanitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if removed := s.pruner.PruneCache(); removed > 0 {
				s.logger.Debug().Int("removed", removed).Msg("pruned expired cache entries")
			}
		}
	}
}

// String names the service in supervisor events.
func (s *CacheJanitorService) String() string {
	return s.name
}
