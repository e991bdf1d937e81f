// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

package recommend

import (
	"sort"

	"github.com/tomtom215/strainspotter/internal/models"
)

// DefaultLimit is the number of results returned when a caller gives none.
const DefaultLimit = 5

// RankSimilar returns the limit catalog strains most similar to target,
// scored with the default scorer.
func RankSimilar(target *models.Strain, catalog []models.Strain, limit int) []models.SimilarStrain {
	return DefaultScorer().RankSimilar(target, catalog, limit)
}

// RankSimilar scores every catalog strain whose slug differs from the
// target's and returns the top limit entries by descending similarity.
// Ties keep catalog order. A non-positive limit selects DefaultLimit.
//
//nolint:gocritic // value receiver keeps Scorer usable as a plain value
func (s Scorer) RankSimilar(target *models.Strain, catalog []models.Strain, limit int) []models.SimilarStrain {
	if limit <= 0 {
		limit = DefaultLimit
	}

	ranked := make([]models.SimilarStrain, 0, len(catalog))
	for i := range catalog {
		candidate := &catalog[i]
		if candidate.Slug == target.Slug {
			continue
		}
		ranked = append(ranked, models.SimilarStrain{
			Strain:     *candidate,
			Similarity: s.Score(target, candidate),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Similarity > ranked[j].Similarity
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// findBySlug returns the first catalog strain with the given slug.
func findBySlug(catalog []models.Strain, slug string) (*models.Strain, bool) {
	for i := range catalog {
		if catalog[i].Slug == slug {
			return &catalog[i], true
		}
	}
	return nil, false
}
