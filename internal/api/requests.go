// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

package api

import (
	"net/http"
	"strings"

	"github.com/tomtom215/strainspotter/internal/models"
	"github.com/tomtom215/strainspotter/internal/recommend"
)

// RecommendRequest is the normalized form of the /recommend query string.
//
// Fields:
//   - Criteria: effects, flavors, type and THC bounds for the engine
//   - Echo: the criteria as reported back to the client
//   - Limit: requested result count (0 selects the configured default)
type RecommendRequest struct {
	Criteria recommend.Criteria
	Echo     models.RecommendCriteria
	Limit    int
}

// parseRecommendRequest reads the /recommend query parameters. It never
// fails: malformed thresholds leave the filter off and a malformed limit
// selects the default.
func parseRecommendRequest(r *http.Request) *RecommendRequest {
	effects := getListParam(r, "effects")
	flavors := getListParam(r, "flavors")
	strainType := strings.TrimSpace(r.URL.Query().Get("type"))

	req := &RecommendRequest{
		Criteria: recommend.Criteria{
			Effects: effects,
			Flavors: flavors,
			Type:    strainType,
			MinTHC:  getFloatParam(r, "minThc"),
			MaxTHC:  getFloatParam(r, "maxThc"),
		},
		Echo: models.RecommendCriteria{
			Effects: effects,
			Flavors: flavors,
		},
		Limit: getIntParam(r, "limit", 0),
	}
	if strainType != "" {
		req.Echo.Type = &strainType
	}
	return req
}
