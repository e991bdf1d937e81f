// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

/*
Package middleware provides the chi-compatible HTTP middleware that runs in
front of every API route.

Key Components:

  - RequestID: assigns or propagates X-Request-ID and seeds the logging
    context with request and correlation IDs
  - AccessLog: one structured zerolog line per request
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled
    by chi route pattern

Middleware Stack:

The router installs them in this order so that the access log and metrics
see the final status code and the request ID is available to both:

	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)

Route patterns are only known after chi has routed the request, so the
metrics and access log middleware read them after calling the next handler.
Requests that match no route are labelled "unmatched".
*/
package middleware
