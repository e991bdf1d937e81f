// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

/*
Package supervisor runs StrainSpotter's long-lived services under a suture v4
supervisor tree.

# Tree

	strainspotter
	├── catalog-layer
	│   └── catalog-refresher
	├── messaging-layer
	│   ├── embedded-nats   (if NATS_EMBEDDED)
	│   └── catalog-events  (if EVENTS_ENABLED)
	└── api-layer
	    └── http-server

Each layer counts failures on its own. A subscriber that cannot reach the
broker restarts with backoff inside messaging-layer while the HTTP server
keeps answering from the last published catalog.

# Logging

Supervisor events (service failures, restarts, backoff) are routed through
sutureslog into the zerolog-backed slog handler from internal/logging.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewComponentSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddCatalogService(services.NewCatalogRefresherService(loader, refresherCfg, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

See the services subpackage for the individual suture.Service wrappers.
*/
package supervisor
