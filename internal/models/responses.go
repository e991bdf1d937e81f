// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

package models

import "time"

// SimilarResponse is the body of GET /strains/{slug}/similar.
//
// Example:
//
//	{
//	  "strain": "Blue Dream",
//	  "similar": [{"slug": "harlequin", "name": "Harlequin", "similarity": 0.61}]
//	}
type SimilarResponse struct {
	Strain  string          `json:"strain"`
	Similar []SimilarStrain `json:"similar"`
}

// RecommendCriteria echoes the criteria a recommendation was computed for.
// Effects and Flavors are always arrays; Type is null when not given.
type RecommendCriteria struct {
	Effects []string `json:"effects"`
	Flavors []string `json:"flavors"`
	Type    *string  `json:"type"`
}

// RecommendResponse is the body of GET /recommend.
type RecommendResponse struct {
	Criteria        RecommendCriteria   `json:"criteria"`
	Recommendations []RecommendedStrain `json:"recommendations"`
}

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StrainListResponse is the body of GET /strains.
type StrainListResponse struct {
	Strains []Strain `json:"strains"`
	Count   int      `json:"count"`
}

// CatalogStatus describes the catalog snapshot currently being served.
type CatalogStatus struct {
	Source   string    `json:"source"`
	Version  uint64    `json:"version"`
	LoadedAt time.Time `json:"loaded_at"`
	Count    int       `json:"count"`
	Loaded   bool      `json:"loaded"`
}

// HealthResponse is the body of the health endpoints.
type HealthResponse struct {
	Status  string         `json:"status"`
	Version string         `json:"version,omitempty"`
	Uptime  float64        `json:"uptime_seconds"`
	Catalog *CatalogStatus `json:"catalog,omitempty"`
}
