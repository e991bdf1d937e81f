// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

/*
Package main is the entry point for the StrainSpotter server.

StrainSpotter serves strain similarity, criteria based recommendations and
effect co-occurrence statistics over a read-only HTTP API backed by an
in-memory catalog snapshot.

# Application Architecture

	RootSupervisor ("strainspotter")
	├── CatalogSupervisor ("catalog-layer")
	│   └── Catalog refresher (initial load with backoff, optional periodic reload)
	├── MessagingSupervisor ("messaging-layer")
	│   ├── Embedded NATS server (optional, NATS_EMBEDDED=true)
	│   └── Catalog event listener (optional, EVENTS_ENABLED=true)
	└── APISupervisor ("api-layer")
	    └── HTTP server (chi router)

Component initialization order:

 1. Configuration: koanf v2 with defaults, optional config.yaml and environment
 2. Logging: zerolog with JSON/console output
 3. Catalog: badger snapshot store (optional), source, loader, store
 4. Recommendation engine with versioned LRU cache
 5. Catalog events: embedded NATS (optional) and watermill subscriber
 6. HTTP server and supervisor tree

The API answers /health/live immediately; /health/ready and the data
endpoints report 503 until the first catalog snapshot is published.

# Configuration

	Priority: Environment variables > Config file > Defaults

Core environment variables:

	# Server
	HTTP_PORT=8080
	HTTP_HOST=0.0.0.0

	# Catalog
	CATALOG_SOURCE=file           # file | duckdb | remote | badger
	CATALOG_PATH=/data/strains.json
	CATALOG_REFRESH_INTERVAL=0    # 0 disables periodic reloads
	CATALOG_SNAPSHOT_PATH=/data/snapshot

	# Events
	EVENTS_ENABLED=false
	NATS_URL=nats://127.0.0.1:4222
	EVENTS_SUBJECT=catalog.updated

	# Logging
	LOG_LEVEL=info
	LOG_FORMAT=json

# Signal Handling

SIGINT and SIGTERM cancel the root context. The supervisor stops every
service, the HTTP server drains in-flight requests within
HTTP_SHUTDOWN_TIMEOUT, and the subscriber, NATS server, catalog source and
snapshot store are closed in that order.

# Example Usage

	export CATALOG_SOURCE=file
	export CATALOG_PATH=./strains.json
	./strainspotter

	curl localhost:8080/strains/blue-dream/similar?limit=3
*/
package main
