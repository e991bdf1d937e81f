// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

package api

import (
	"net/http"

	"github.com/tomtom215/strainspotter/internal/models"
)

// Recommend handles GET /recommend.
//
// Query params:
//   - effects, flavors: desired labels, repeated or comma-separated
//   - type: hard filter on strain type
//   - minThc, maxThc: hard THC bounds (ignored when malformed)
//   - limit: number of results
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	req := parseRecommendRequest(r)

	results, err := h.engine.Recommend(r.Context(), &req.Criteria, req.Limit)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, &models.RecommendResponse{
		Criteria:        req.Echo,
		Recommendations: results,
	})
}

// EffectCombinations handles GET /effects/combinations. The body is a bare
// array of the most frequent effect pairs.
func (h *Handler) EffectCombinations(w http.ResponseWriter, r *http.Request) {
	pairs, err := h.engine.EffectCombinations(r.Context())
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, pairs)
}

// Effects handles GET /effects.
func (h *Handler) Effects(w http.ResponseWriter, r *http.Request) {
	counts, err := h.engine.Effects(r.Context())
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, counts)
}

// EngineStats handles GET /stats.
func (h *Handler) EngineStats(w http.ResponseWriter, r *http.Request) {
	respondUncached(w, http.StatusOK, h.engine.Stats())
}
