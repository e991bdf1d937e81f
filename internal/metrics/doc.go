// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

/*
Package metrics provides Prometheus metrics collection and export for observability.

Metrics are registered with the default registry through promauto and exposed
at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

API:
  - strainspotter_api_requests_total{method, endpoint, status}
  - strainspotter_api_request_duration_seconds{method, endpoint}
  - strainspotter_api_active_requests

Catalog:
  - strainspotter_catalog_strains
  - strainspotter_catalog_reloads_total{source, status}
  - strainspotter_catalog_reload_duration_seconds{source}
  - strainspotter_catalog_rejected_records_total
  - strainspotter_catalog_last_reload_timestamp_seconds
  - strainspotter_catalog_events_total{result}

Recommendation engine:
  - strainspotter_recommend_computations_total{operation}
  - strainspotter_recommend_compute_duration_seconds{operation}
  - strainspotter_recommend_cache_hits_total{operation}
  - strainspotter_recommend_cache_misses_total{operation}

Endpoint labels use chi route patterns (for example /strains/{slug}/similar)
so that cardinality stays bounded.
*/
package metrics
