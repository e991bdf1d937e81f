// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

package recommend

import (
	"sort"
	"strconv"
	"strings"

	"github.com/tomtom215/strainspotter/internal/models"
)

// Criteria describes what a caller is looking for.
//
// Effects and Flavors are desired labels and drive the score. Type, MinTHC
// and MaxTHC are hard filters: a strain failing any active filter is never
// scored. Empty Type and nil bounds leave the filter inactive.
type Criteria struct {
	Effects []string `json:"effects"`
	Flavors []string `json:"flavors"`
	Type    string   `json:"type,omitempty"`
	MinTHC  *float64 `json:"minThc,omitempty"`
	MaxTHC  *float64 `json:"maxThc,omitempty"`
}

// Matches reports whether s passes every active hard filter.
func (c *Criteria) Matches(s *models.Strain) bool {
	if c.Type != "" && !strings.EqualFold(s.Type, c.Type) {
		return false
	}
	if c.MinTHC != nil && (s.THC == nil || *s.THC < *c.MinTHC) {
		return false
	}
	if c.MaxTHC != nil && (s.THC == nil || *s.THC > *c.MaxTHC) {
		return false
	}
	return true
}

// Score returns the mean recall of desired effects and desired flavors
// found in s, compared case-insensitively. A factor applies only when the
// caller asked for at least one label and the strain lists at least one.
// With no applicable factor the score is 0.
func (c *Criteria) Score(s *models.Strain) float64 {
	var total float64
	var factors int

	if len(c.Effects) > 0 && len(s.Effects) > 0 {
		total += recall(c.Effects, s.Effects)
		factors++
	}
	if len(c.Flavors) > 0 && len(s.Flavors) > 0 {
		total += recall(c.Flavors, s.Flavors)
		factors++
	}

	if factors == 0 {
		return 0
	}
	return total / float64(factors)
}

// cacheKey renders the criteria as a stable string for response caching.
func (c *Criteria) cacheKey() string {
	var b strings.Builder
	b.WriteString("e=")
	b.WriteString(strings.Join(c.Effects, "\x1f"))
	b.WriteString("|f=")
	b.WriteString(strings.Join(c.Flavors, "\x1f"))
	b.WriteString("|t=")
	b.WriteString(strings.ToLower(c.Type))
	b.WriteString("|min=")
	if c.MinTHC != nil {
		b.WriteString(strconv.FormatFloat(*c.MinTHC, 'g', -1, 64))
	}
	b.WriteString("|max=")
	if c.MaxTHC != nil {
		b.WriteString(strconv.FormatFloat(*c.MaxTHC, 'g', -1, 64))
	}
	return b.String()
}

// Recommend filters the catalog by the hard filters in criteria, scores the
// survivors and returns the top limit strains with a positive score, best
// first. Ties keep catalog order. A non-positive limit selects DefaultLimit.
func Recommend(catalog []models.Strain, criteria *Criteria, limit int) []models.RecommendedStrain {
	if limit <= 0 {
		limit = DefaultLimit
	}

	results := make([]models.RecommendedStrain, 0)
	for i := range catalog {
		s := &catalog[i]
		if !criteria.Matches(s) {
			continue
		}
		score := criteria.Score(s)
		if score <= 0 {
			continue
		}
		results = append(results, models.RecommendedStrain{Strain: *s, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// recall returns the fraction of desired labels present in have. Repeated
// desired labels count once per occurrence.
func recall(desired, have []string) float64 {
	present := make(map[string]struct{}, len(have))
	for _, h := range have {
		present[strings.ToLower(h)] = struct{}{}
	}

	matched := 0
	for _, d := range desired {
		if _, ok := present[strings.ToLower(d)]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(desired))
}
