// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

package api

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/strainspotter/internal/logging"
	"github.com/tomtom215/strainspotter/internal/models"
)

// sanitizeLogValue replaces control characters so client-supplied values
// cannot forge log lines.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&result, "\\x%02x", r)
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON writes v as a cacheable JSON response body.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	writeJSON(w, status, v, "public, max-age=60")
}

// respondUncached writes v as a JSON response that clients must not cache.
// Used for health and status endpoints.
func respondUncached(w http.ResponseWriter, status int, v interface{}) {
	writeJSON(w, status, v, "no-store")
}

func writeJSON(w http.ResponseWriter, status int, v interface{}, cacheControl string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", cacheControl)
	w.Header().Set("Vary", "Accept-Encoding")

	data, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("ETag", generateETag(data))

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// generateETag creates a quoted ETag from data using FNV-1a.
func generateETag(data []byte) string {
	hash := uint32(2166136261)
	for _, b := range data {
		hash ^= uint32(b)
		hash *= 16777619
	}
	return `"` + strconv.FormatUint(uint64(hash), 16) + `"`
}

// respondError writes {"error": message}. err, when set, is logged with the
// request context and never sent to the client.
func respondError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	if err != nil {
		event := logging.Ctx(r.Context()).Warn()
		if status >= http.StatusInternalServerError {
			event = logging.Ctx(r.Context()).Error()
		}
		event.
			Int("status", status).
			Str("path", sanitizeLogValue(r.URL.Path)).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("API Error")
	}

	respondUncached(w, status, &models.ErrorResponse{Error: message})
}

// getIntParam extracts an integer query parameter, returning defaultValue
// when it is missing or malformed.
func getIntParam(r *http.Request, key string, defaultValue int) int {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

// getFloatParam extracts a finite float query parameter. Missing or
// malformed values return nil.
func getFloatParam(r *http.Request, key string) *float64 {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return nil
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// getListParam collects a multi-valued query parameter. Each occurrence of
// key is one entry, taken verbatim; empty values are dropped. The result is
// never nil.
func getListParam(r *http.Request, key string) []string {
	result := make([]string, 0)
	for _, raw := range r.URL.Query()[key] {
		if raw != "" {
			result = append(result, raw)
		}
	}
	return result
}
