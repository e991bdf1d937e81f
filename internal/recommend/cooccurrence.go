// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

package recommend

import (
	"sort"

	"github.com/tomtom215/strainspotter/internal/models"
)

const (
	// DefaultTopEffectPairs is the number of pairs returned by TopEffectPairs
	// when no explicit count is configured.
	DefaultTopEffectPairs = 20

	// maxPairExamples is the number of example strain names kept per pair.
	maxPairExamples = 3
)

// pairKey is the canonical, alphabetically ordered form of an effect pair.
type pairKey struct {
	first, second string
}

func newPairKey(a, b string) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{first: a, second: b}
}

// pairStats accumulates one pair during the catalog scan.
type pairStats struct {
	key      pairKey
	count    int
	examples []string
	// lastIdx is the catalog index of the strain most recently added to
	// examples, so a strain listing an effect twice is not added twice.
	lastIdx int
}

// TopEffectPairs counts how often each unordered pair of effects appears
// together within a strain and returns the topN most frequent pairs.
//
// Every i<j index pair of a strain's effect list is counted, so a strain
// that repeats an effect contributes that pair more than once. Pairs are
// keyed by their alphabetically ordered names, which merges (Happy, Relaxed)
// and (Relaxed, Happy). Each result carries up to three example strain
// names in catalog order. Ties in count keep first-seen order. A
// non-positive topN selects DefaultTopEffectPairs.
func TopEffectPairs(catalog []models.Strain, topN int) []models.EffectPair {
	if topN <= 0 {
		topN = DefaultTopEffectPairs
	}

	index := make(map[pairKey]*pairStats)
	order := make([]*pairStats, 0)

	for idx := range catalog {
		effects := catalog[idx].Effects
		if len(effects) < 2 {
			continue
		}
		for i := 0; i < len(effects); i++ {
			for j := i + 1; j < len(effects); j++ {
				key := newPairKey(effects[i], effects[j])
				ps, ok := index[key]
				if !ok {
					ps = &pairStats{key: key, lastIdx: -1}
					index[key] = ps
					order = append(order, ps)
				}
				ps.count++
				if ps.lastIdx != idx && len(ps.examples) < maxPairExamples {
					ps.examples = append(ps.examples, catalog[idx].DisplayName())
					ps.lastIdx = idx
				}
			}
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].count > order[j].count
	})
	if len(order) > topN {
		order = order[:topN]
	}

	pairs := make([]models.EffectPair, 0, len(order))
	for _, ps := range order {
		examples := ps.examples
		if ps.key.first == ps.key.second {
			// A repeated effect forms a pair with itself; any strain
			// listing the effect at all is an example of it.
			examples = strainsWithEffect(catalog, ps.key.first)
		}
		if examples == nil {
			examples = []string{}
		}
		pairs = append(pairs, models.EffectPair{
			Effects: [2]string{ps.key.first, ps.key.second},
			Count:   ps.count,
			Strains: examples,
		})
	}
	return pairs
}

func strainsWithEffect(catalog []models.Strain, effect string) []string {
	names := make([]string, 0, maxPairExamples)
	for i := range catalog {
		for _, e := range catalog[i].Effects {
			if e == effect {
				names = append(names, catalog[i].DisplayName())
				break
			}
		}
		if len(names) == maxPairExamples {
			break
		}
	}
	return names
}

// EffectCounts returns every distinct effect label with the number of
// strains listing it, most common first and then alphabetically.
func EffectCounts(catalog []models.Strain) []models.EffectCount {
	counts := make(map[string]int)
	for i := range catalog {
		seen := make(map[string]struct{}, len(catalog[i].Effects))
		for _, e := range catalog[i].Effects {
			if _, dup := seen[e]; dup {
				continue
			}
			seen[e] = struct{}{}
			counts[e]++
		}
	}

	result := make([]models.EffectCount, 0, len(counts))
	for effect, n := range counts {
		result = append(result, models.EffectCount{Effect: effect, Count: n})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Effect < result[j].Effect
	})
	return result
}
