// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

package main

import (
	"context"
	"errors"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/tomtom215/strainspotter/internal/catalog"
	"github.com/tomtom215/strainspotter/internal/config"
	"github.com/tomtom215/strainspotter/internal/events"
	"github.com/tomtom215/strainspotter/internal/logging"
	"github.com/tomtom215/strainspotter/internal/supervisor"
	"github.com/tomtom215/strainspotter/internal/supervisor/services"
)

// EventComponents holds the catalog event pipeline. A nil value means
// events are disabled.
type EventComponents struct {
	server     *events.EmbeddedServer
	subscriber message.Subscriber
	listener   *events.Listener
}

// initEvents starts the embedded NATS server (if configured) and builds the
// subscriber and listener that reload the catalog on every event. It
// returns nil, nil when EVENTS_ENABLED=false.
func initEvents(cfg *config.EventsConfig, loader *catalog.Loader) (*EventComponents, error) {
	if !cfg.Enabled {
		logging.Info().Msg("Catalog events disabled (EVENTS_ENABLED=false)")
		return nil, nil
	}

	components := &EventComponents{}
	natsURL := cfg.URL

	if cfg.EmbeddedServer {
		server, err := events.NewEmbeddedServer(&events.ServerConfig{
			Host: cfg.EmbeddedHost,
			Port: cfg.EmbeddedPort,
		})
		if err != nil {
			return nil, err
		}
		components.server = server
		natsURL = server.ClientURL()
		logging.Info().Str("url", natsURL).Msg("Embedded NATS server started")
	} else {
		logging.Info().Str("url", natsURL).Msg("Using external NATS server")
	}

	subCfg := events.DefaultSubscriberConfig(natsURL)
	subCfg.ReconnectWait = cfg.ReconnectWait
	subscriber, err := events.NewNATSSubscriber(&subCfg, watermill.NewSlogLogger(logging.NewComponentSlogLogger("watermill")))
	if err != nil {
		components.Close()
		return nil, err
	}
	components.subscriber = subscriber
	components.listener = events.NewListener(subscriber, cfg.Subject, reloadOnEvent(loader), logging.Logger())

	logging.Info().Str("subject", cfg.Subject).Msg("Catalog event subscriber created")
	return components, nil
}

// reloadOnEvent returns a handler that reloads the catalog. A failed
// reload is acked: the loader keeps the current snapshot and logs the
// failure, and redelivering the same notification would not help.
func reloadOnEvent(loader services.CatalogLoader) events.HandlerFunc {
	return func(ctx context.Context, evt *events.CatalogEvent) error {
		logger := logging.WithComponent("events")
		snap, err := loader.Load(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			logger.Warn().
				Err(err).
				Str("event_id", evt.ID).
				Str("event_source", evt.Source).
				Msg("Catalog reload after event failed, keeping current snapshot")
			return nil
		}
		logger.Info().
			Str("event_id", evt.ID).
			Str("reason", evt.Reason).
			Uint64("version", snap.Version).
			Int("strains", len(snap.Strains)).
			Msg("Catalog reloaded after event")
		return nil
	}
}

// addToSupervisor registers the event services in the messaging layer.
// No-op when events are disabled.
func (c *EventComponents) addToSupervisor(tree *supervisor.SupervisorTree, shutdownTimeout time.Duration) {
	if c == nil {
		return
	}
	if c.server != nil {
		tree.AddMessagingService(services.NewEmbeddedNATSService(c.server, shutdownTimeout))
	}
	tree.AddMessagingService(services.NewEventListenerService(c.listener))
	logging.Info().Msg("Catalog event services added to supervisor tree (messaging layer)")
}

// Close closes the subscriber and stops the embedded server if it is
// still running. Safe on nil.
func (c *EventComponents) Close() {
	if c == nil {
		return
	}
	if c.subscriber != nil {
		if err := c.subscriber.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing NATS subscriber")
		}
	}
	if c.server != nil && c.server.IsRunning() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.server.Shutdown(ctx); err != nil {
			logging.Error().Err(err).Msg("Error stopping embedded NATS server")
		}
	}
}
