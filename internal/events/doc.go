// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

/*
Package events delivers catalog change notifications over NATS using
Watermill.

A catalog publisher (an ETL job, an admin tool) sends a CatalogEvent on the
configured subject, "catalog.updated" by default. Each StrainSpotter
replica runs a Listener that reloads its catalog when an event arrives.

Components:
  - CatalogEvent: JSON payload carried by the message
  - Listener: subscribes, invokes a HandlerFunc, acks or nacks
  - NewNATSSubscriber: watermill-nats over core NATS
  - EmbeddedServer: in-process NATS server for single-node deployments

Any message.Subscriber works with Listener; tests use Watermill's
gochannel pub/sub.
*/
package events
