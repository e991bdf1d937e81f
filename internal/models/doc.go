// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

/*
Package models defines the data structures shared across StrainSpotter.

Key Components:

  - Strain: a catalog record. All fields are optional; THC and CBD are
    pointers so a stored 0 differs from a missing value.
  - SimilarStrain, RecommendedStrain: a Strain plus its score, serialized
    flat ({"slug": ..., "similarity": 0.75}).
  - EffectPair, EffectCount: effect co-occurrence and vocabulary results.
  - Response types for the HTTP API (SimilarResponse, RecommendResponse,
    StrainListResponse, CatalogStatus, HealthResponse, ErrorResponse).

Models carry json tags for the API and catalog files, koanf tags for YAML
catalogs, and validate tags checked by internal/validation.
*/
package models
