// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/strainspotter/internal/models"
	"github.com/tomtom215/strainspotter/internal/recommend"
)

// Messages returned in error bodies.
const (
	msgStrainNotFound = "Strain not found"
	msgNotFound       = "Not found"
	msgNotAllowed     = "Method not allowed"
	msgInternal       = "Internal server error"
	msgUnavailable    = "Service unavailable"
)

// CatalogReader is the read side of the catalog the handlers need beyond
// what the engine answers: listing, readiness and status.
type CatalogReader interface {
	Strains() []models.Strain
	Ready() bool
	Status() models.CatalogStatus
}

// Handler serves the HTTP API.
type Handler struct {
	engine    *recommend.Engine
	catalog   CatalogReader
	version   string
	startTime time.Time
}

// NewHandler creates a handler answering queries with engine and reporting
// catalog state from catalog.
func NewHandler(engine *recommend.Engine, catalog CatalogReader, version string) *Handler {
	return &Handler{
		engine:    engine,
		catalog:   catalog,
		version:   version,
		startTime: time.Now(),
	}
}

// respondEngineError maps engine errors onto HTTP responses.
func respondEngineError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, recommend.ErrStrainNotFound):
		respondError(w, r, http.StatusNotFound, msgStrainNotFound, nil)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respondError(w, r, http.StatusServiceUnavailable, msgUnavailable, err)
	default:
		respondError(w, r, http.StatusInternalServerError, msgInternal, err)
	}
}

// NotFound answers requests that match no route.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusNotFound, msgNotFound, nil)
}

// MethodNotAllowed answers requests whose path matches a route but whose
// method does not.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusMethodNotAllowed, msgNotAllowed, nil)
}
