// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

// Package recommend implements strain similarity scoring, criteria based
// recommendations and effect co-occurrence aggregation.
//
// # Components
//
//   - Scorer: multi-factor similarity between two strains (type, effects,
//     flavors, THC, CBD, lineage), averaged over the factors both strains
//     carry.
//   - RankSimilar: scores a catalog against a target strain, excluding the
//     target by slug, and returns the closest matches.
//   - Recommend: applies hard filters (type, THC range) and ranks the
//     survivors by recall of the desired effects and flavors.
//   - TopEffectPairs: counts co-occurring effect pairs across the catalog.
//
// These functions are pure and operate on a catalog slice that they never
// modify.
//
// # Engine
//
// Engine binds the components to a CatalogProvider. Each call reads one
// catalog snapshot, so a concurrent catalog swap is never observed halfway.
// When the provider reports a version the engine caches results in an LRU
// keyed by that version; a new snapshot therefore never serves stale results.
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), store, logger)
//	res, err := engine.Similar(ctx, "blue-dream", 5)
//	if errors.Is(err, recommend.ErrStrainNotFound) {
//	    // 404
//	}
//
// # Numeric Factors
//
// The THC and CBD factors are 1 - |a-b|/spread with a default spread of 30
// percentage points. They are not clamped by default, so strains further
// apart than the spread contribute a negative addend. Set
// ScoringConfig.ClampNumeric to clamp them to [0, 1].
package recommend
