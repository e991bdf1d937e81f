// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/strainspotter/internal/models"
)

// Health status values.
const (
	statusAlive    = "alive"
	statusReady    = "ready"
	statusNotReady = "not_ready"
)

// HealthLive handles GET /health/live. It reports that the process is
// serving HTTP and does not look at the catalog.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondUncached(w, http.StatusOK, &models.HealthResponse{
		Status:  statusAlive,
		Version: h.version,
		Uptime:  h.uptime(),
	})
}

// HealthReady handles GET /health/ready. It returns 503 until the first
// catalog snapshot has been loaded.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	status := h.catalog.Status()

	if !h.catalog.Ready() {
		respondUncached(w, http.StatusServiceUnavailable, &models.HealthResponse{
			Status:  statusNotReady,
			Version: h.version,
			Uptime:  h.uptime(),
			Catalog: &status,
		})
		return
	}

	respondUncached(w, http.StatusOK, &models.HealthResponse{
		Status:  statusReady,
		Version: h.version,
		Uptime:  h.uptime(),
		Catalog: &status,
	})
}

// CatalogStatus handles GET /catalog.
func (h *Handler) CatalogStatus(w http.ResponseWriter, r *http.Request) {
	respondUncached(w, http.StatusOK, h.catalog.Status())
}

func (h *Handler) uptime() float64 {
	return time.Since(h.startTime).Seconds()
}
