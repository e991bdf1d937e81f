// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/strainspotter/internal/models"
)

// SimilarStrains handles GET /strains/{slug}/similar.
//
// Query params:
//   - limit: number of results (default from config; malformed values use the default)
//
// Returns {"strain": <target name>, "similar": [...]} or 404 when the slug
// is not in the catalog.
func (h *Handler) SimilarStrains(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	limit := getIntParam(r, "limit", 0)

	result, err := h.engine.Similar(r.Context(), slug, limit)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, &models.SimilarResponse{
		Strain:  result.Target.DisplayName(),
		Similar: result.Similar,
	})
}

// GetStrain handles GET /strains/{slug}.
func (h *Handler) GetStrain(w http.ResponseWriter, r *http.Request) {
	strain, err := h.engine.Strain(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, strain)
}

// ListStrains handles GET /strains.
//
// Query params:
//   - type: keep strains of this type (case-insensitive)
//   - effect: keep strains listing this effect (case-insensitive)
//   - limit: page size (0 or missing returns every match)
//   - offset: number of matches to skip
//
// count is the number of matches before paging.
func (h *Handler) ListStrains(w http.ResponseWriter, r *http.Request) {
	strainType := strings.TrimSpace(r.URL.Query().Get("type"))
	effect := strings.TrimSpace(r.URL.Query().Get("effect"))
	limit := getIntParam(r, "limit", 0)
	offset := getIntParam(r, "offset", 0)

	matches := make([]models.Strain, 0)
	for _, s := range h.catalog.Strains() {
		if strainType != "" && !strings.EqualFold(s.Type, strainType) {
			continue
		}
		if effect != "" && !hasLabel(s.Effects, effect) {
			continue
		}
		matches = append(matches, s)
	}

	respondJSON(w, http.StatusOK, &models.StrainListResponse{
		Strains: page(matches, offset, limit),
		Count:   len(matches),
	})
}

// page returns the window [offset, offset+limit) of items. Negative offsets
// are treated as 0 and a non-positive limit means no upper bound.
func page(items []models.Strain, offset, limit int) []models.Strain {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []models.Strain{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func hasLabel(labels []string, want string) bool {
	for _, l := range labels {
		if strings.EqualFold(l, want) {
			return true
		}
	}
	return false
}
