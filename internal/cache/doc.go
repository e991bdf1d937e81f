// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

// Package cache provides a generic LRU cache with per-entry TTL, used by the
// recommendation engine to memoize responses per catalog version.
package cache
