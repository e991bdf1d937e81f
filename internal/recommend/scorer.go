// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

package recommend

import (
	"math"

	"github.com/tomtom215/strainspotter/internal/models"
)

// DefaultNumericSpread is the THC/CBD difference, in percentage points, at
// which the numeric factors reach zero.
const DefaultNumericSpread = 30.0

// Scorer computes the multi-factor similarity between two strains.
//
// Each applicable factor contributes one addend and the result is the mean
// of those addends:
//
//	type     1 if both types are non-empty and equal (case-sensitive), else 0
//	effects  jaccard(effects_a, effects_b) when both are non-empty
//	flavors  jaccard(flavors_a, flavors_b) when both are non-empty
//	thc      1 - |thc_a - thc_b| / THCSpread when both are present
//	cbd      1 - |cbd_a - cbd_b| / CBDSpread when both are present
//	lineage  jaccard(lineage_a, lineage_b) when both are non-empty
//
// A pair with no applicable factor scores exactly 0. The numeric factors
// are unclamped unless ClampNumeric is set, so a wide THC gap can pull the
// mean below zero.
type Scorer struct {
	THCSpread    float64
	CBDSpread    float64
	ClampNumeric bool
}

// DefaultScorer returns the scorer with the default spreads and no clamping.
func DefaultScorer() Scorer {
	return Scorer{THCSpread: DefaultNumericSpread, CBDSpread: DefaultNumericSpread}
}

// Similarity scores a against b with the default scorer.
func Similarity(a, b *models.Strain) float64 {
	return DefaultScorer().Score(a, b)
}

// Score returns the similarity of a and b. The result is symmetric.
//
//nolint:gocritic // value receiver keeps Scorer usable as a plain value
func (s Scorer) Score(a, b *models.Strain) float64 {
	var total float64
	var factors int

	if a.Type != "" && b.Type != "" {
		if a.Type == b.Type {
			total++
		}
		factors++
	}

	if len(a.Effects) > 0 && len(b.Effects) > 0 {
		total += jaccardSimilarity(a.Effects, b.Effects)
		factors++
	}

	if len(a.Flavors) > 0 && len(b.Flavors) > 0 {
		total += jaccardSimilarity(a.Flavors, b.Flavors)
		factors++
	}

	if a.THC != nil && b.THC != nil {
		total += s.numericSimilarity(*a.THC, *b.THC, s.THCSpread)
		factors++
	}

	if a.CBD != nil && b.CBD != nil {
		total += s.numericSimilarity(*a.CBD, *b.CBD, s.CBDSpread)
		factors++
	}

	if len(a.Lineage) > 0 && len(b.Lineage) > 0 {
		total += jaccardSimilarity(a.Lineage, b.Lineage)
		factors++
	}

	if factors == 0 {
		return 0
	}
	return total / float64(factors)
}

//nolint:gocritic // value receiver keeps Scorer usable as a plain value
func (s Scorer) numericSimilarity(a, b, spread float64) float64 {
	if spread <= 0 {
		spread = DefaultNumericSpread
	}
	sim := 1.0 - math.Abs(a-b)/spread
	if s.ClampNumeric {
		sim = math.Max(0, math.Min(1, sim))
	}
	return sim
}

// jaccardSimilarity computes |A ∩ B| / |A ∪ B| over the distinct values of
// a and b. Comparison is exact. Two empty inputs yield 0.
func jaccardSimilarity(a, b []string) float64 {
	setA := make(map[string]struct{}, len(a))
	for _, v := range a {
		setA[v] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, v := range b {
		setB[v] = struct{}{}
	}

	intersection := 0
	for v := range setA {
		if _, ok := setB[v]; ok {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
