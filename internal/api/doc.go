// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

/*
Package api provides the HTTP interface of the strain similarity and
recommendation service, routed with chi.

# Endpoints

Query API (rate limited, instrumented):

  - GET /strains/{slug}/similar?limit=N: strains most similar to the target
  - GET /recommend?effects=..&flavors=..&type=..&minThc=..&maxThc=..&limit=N
  - GET /effects/combinations: most frequent effect pairs, as a bare array
  - GET /effects: effect vocabulary with strain counts
  - GET /strains?type=..&effect=..&limit=..&offset=..: catalog listing
  - GET /strains/{slug}: a single strain
  - GET /catalog: source, version and size of the served catalog
  - GET /stats: engine request and cache counters

Operational:

  - GET /health/live: always 200 while the process serves HTTP
  - GET /health/ready: 503 until the first catalog snapshot is loaded
  - GET /metrics: Prometheus exposition

# Error Handling

Every error body is {"error": "<message>"}. An unknown slug returns 404 with
"Strain not found". Malformed numeric query parameters never produce an
error: a bad limit selects the default, a bad minThc or maxThc leaves that
filter off. Server-side causes are logged with the request ID and not
echoed to clients.

# Middleware

RequestID, RealIP, AccessLog, Recoverer, CORS and Compress run on every
route. The query API adds per-IP rate limiting (go-chi/httprate), security
headers and Prometheus metrics.
*/
package api
