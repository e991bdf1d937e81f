// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/strainspotter/internal/middleware"
)

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil middleware factory uses the defaults.
func NewRouter(handler *Handler, chiMiddleware *ChiMiddleware) *Router {
	if chiMiddleware == nil {
		chiMiddleware = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		chiMiddleware: chiMiddleware,
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to every route in order
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // must be global to answer OPTIONS preflight
	r.Use(chimiddleware.Compress(5, "application/json"))

	r.NotFound(router.handler.NotFound)
	r.MethodNotAllowed(router.handler.MethodNotAllowed)

	// Probes and scraping are not rate limited
	r.Handle("/metrics", promhttp.Handler())
	r.Route("/health", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// Query API
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)

		r.Get("/strains", router.handler.ListStrains)
		r.Get("/strains/{slug}", router.handler.GetStrain)
		r.Get("/strains/{slug}/similar", router.handler.SimilarStrains)
		r.Get("/recommend", router.handler.Recommend)
		r.Get("/effects", router.handler.Effects)
		r.Get("/effects/combinations", router.handler.EffectCombinations)
		r.Get("/catalog", router.handler.CatalogStatus)
		r.Get("/stats", router.handler.EngineStats)
	})

	return r
}
