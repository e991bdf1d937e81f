// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - API endpoint latency and throughput
// - Catalog loading and size
// - Recommendation engine computations and cache efficiency
// - Catalog change events

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strainspotter_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "strainspotter_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "strainspotter_api_active_requests",
			Help: "Number of API requests currently being served",
		},
	)

	// Catalog Metrics
	CatalogStrains = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "strainspotter_catalog_strains",
			Help: "Number of strains in the active catalog snapshot",
		},
	)

	CatalogReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strainspotter_catalog_reloads_total",
			Help: "Total number of catalog reload attempts",
		},
		[]string{"source", "status"}, // status: "success", "error", "fallback"
	)

	CatalogReloadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "strainspotter_catalog_reload_duration_seconds",
			Help:    "Duration of catalog reloads in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	CatalogRejectedRecords = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "strainspotter_catalog_rejected_records_total",
			Help: "Total number of catalog records dropped by validation",
		},
	)

	CatalogLastReload = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "strainspotter_catalog_last_reload_timestamp_seconds",
			Help: "Unix timestamp of the last successful catalog reload",
		},
	)

	// Recommendation Engine Metrics
	RecommendComputations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strainspotter_recommend_computations_total",
			Help: "Total number of uncached engine computations",
		},
		[]string{"operation"}, // "similar", "recommend", "effect_pairs", "effects"
	)

	RecommendComputeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "strainspotter_recommend_compute_duration_seconds",
			Help:    "Duration of engine computations in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
		[]string{"operation"},
	)

	RecommendCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strainspotter_recommend_cache_hits_total",
			Help: "Total number of engine response cache hits",
		},
		[]string{"operation"},
	)

	RecommendCacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strainspotter_recommend_cache_misses_total",
			Help: "Total number of engine response cache misses",
		},
		[]string{"operation"},
	)

	// Catalog Event Metrics
	CatalogEventsReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strainspotter_catalog_events_total",
			Help: "Total number of catalog change events consumed",
		},
		[]string{"result"}, // "acked", "nacked"
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordCatalogReload records the outcome of a catalog reload. On success
// the strain gauge and last reload timestamp are updated as well.
func RecordCatalogReload(source string, strains int, duration time.Duration, err error) {
	CatalogReloadDuration.WithLabelValues(source).Observe(duration.Seconds())
	if err != nil {
		CatalogReloads.WithLabelValues(source, "error").Inc()
		return
	}
	CatalogReloads.WithLabelValues(source, "success").Inc()
	CatalogStrains.Set(float64(strains))
	CatalogLastReload.Set(float64(time.Now().Unix()))
}

// RecordCatalogFallback records a reload served from the persisted snapshot.
func RecordCatalogFallback(source string, strains int) {
	CatalogReloads.WithLabelValues(source, "fallback").Inc()
	CatalogStrains.Set(float64(strains))
}

// RecordRejectedRecords adds n to the rejected catalog records counter.
func RecordRejectedRecords(n int) {
	if n > 0 {
		CatalogRejectedRecords.Add(float64(n))
	}
}

// RecordComputation records an uncached engine computation.
func RecordComputation(operation string, duration time.Duration) {
	RecommendComputations.WithLabelValues(operation).Inc()
	RecommendComputeDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordCacheLookup records an engine response cache hit or miss.
func RecordCacheLookup(operation string, hit bool) {
	if hit {
		RecommendCacheHits.WithLabelValues(operation).Inc()
	} else {
		RecommendCacheMisses.WithLabelValues(operation).Inc()
	}
}

// RecordCatalogEvent records a consumed catalog change event.
func RecordCatalogEvent(acked bool) {
	if acked {
		CatalogEventsReceived.WithLabelValues("acked").Inc()
	} else {
		CatalogEventsReceived.WithLabelValues("nacked").Inc()
	}
}
