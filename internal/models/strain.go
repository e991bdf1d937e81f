// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

package models

// Strain is a catalog record. Every field is optional; absent numeric
// values are nil so that a present 0 can be told apart from a missing value.
type Strain struct {
	Slug    string   `json:"slug,omitempty" koanf:"slug" validate:"omitempty,max=128"`
	Name    string   `json:"name,omitempty" koanf:"name" validate:"omitempty,max=256"`
	Type    string   `json:"type,omitempty" koanf:"type" validate:"omitempty,max=64"`
	Effects []string `json:"effects,omitempty" koanf:"effects" validate:"omitempty,dive,label,max=64"`
	Flavors []string `json:"flavors,omitempty" koanf:"flavors" validate:"omitempty,dive,label,max=64"`
	Lineage []string `json:"lineage,omitempty" koanf:"lineage" validate:"omitempty,dive,label,max=256"`
	THC     *float64 `json:"thc,omitempty" koanf:"thc" validate:"omitempty,gte=0,lte=100"`
	CBD     *float64 `json:"cbd,omitempty" koanf:"cbd" validate:"omitempty,gte=0,lte=100"`
}

// DisplayName returns the name, falling back to the slug.
func (s *Strain) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Slug
}

// SimilarStrain is a catalog strain annotated with its similarity to a target.
type SimilarStrain struct {
	Strain
	Similarity float64 `json:"similarity"`
}

// RecommendedStrain is a catalog strain annotated with its criteria match score.
type RecommendedStrain struct {
	Strain
	Score float64 `json:"score"`
}

// EffectPair is an unordered pair of effects with its co-occurrence count
// and up to three example strain names.
type EffectPair struct {
	Effects [2]string `json:"effects"`
	Count   int       `json:"count"`
	Strains []string  `json:"strains"`
}

// EffectCount is a distinct effect label and the number of strains listing it.
type EffectCount struct {
	Effect string `json:"effect"`
	Count  int    `json:"count"`
}

// Float64 returns a pointer to v. Useful for building strains in code and tests.
func Float64(v float64) *float64 {
	return &v
}
