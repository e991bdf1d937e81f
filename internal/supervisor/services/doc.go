// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

/*
Package services adapts StrainSpotter components to suture.Service.

  - HTTPServerService: ListenAndServe with graceful Shutdown on cancellation.
  - CatalogRefresherService: initial catalog load with exponential backoff,
    then optional periodic reloads.
  - EventListenerService: runs the catalog-change subscriber; a closed
    subscription is reported as a failure so the supervisor restarts it.
  - EmbeddedNATSService: owns the in-process NATS server's shutdown and
    stops supervision for good if the server dies underneath it.

Every wrapper returns ctx.Err() when stopped through its context and
implements fmt.Stringer so supervisor logs carry a readable name.
*/
package services
