// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

package events

import (
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	natsgo "github.com/nats-io/nats.go"
)

// SubscriberConfig configures the NATS subscriber.
type SubscriberConfig struct {
	URL           string
	MaxReconnects int
	ReconnectWait time.Duration
	CloseTimeout  time.Duration
}

// DefaultSubscriberConfig returns sensible defaults for url.
func DefaultSubscriberConfig(url string) SubscriberConfig {
	return SubscriberConfig{
		URL:           url,
		MaxReconnects: -1,
		ReconnectWait: 2 * time.Second,
		CloseTimeout:  10 * time.Second,
	}
}

// NewNATSSubscriber creates a core NATS subscriber. Without a queue group
// every replica receives every catalog event.
func NewNATSSubscriber(cfg *SubscriberConfig, logger watermill.LoggerAdapter) (message.Subscriber, error) {
	if logger == nil {
		logger = watermill.NopLogger{}
	}

	natsOpts := []natsgo.Option{
		natsgo.Name("strainspotter"),
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(cfg.MaxReconnects),
		natsgo.ReconnectWait(cfg.ReconnectWait),
		natsgo.DisconnectErrHandler(func(nc *natsgo.Conn, err error) {
			if err != nil {
				logger.Error("Subscriber disconnected", err, nil)
			}
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			logger.Info("Subscriber reconnected", watermill.LogFields{
				"url": nc.ConnectedUrl(),
			})
		}),
	}

	wmConfig := wmNats.SubscriberConfig{
		URL:              cfg.URL,
		SubscribersCount: 1,
		CloseTimeout:     cfg.CloseTimeout,
		NatsOptions:      natsOpts,
		Unmarshaler:      &wmNats.NATSMarshaler{},
		JetStream: wmNats.JetStreamConfig{
			Disabled: true,
		},
	}

	sub, err := wmNats.NewSubscriber(wmConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill subscriber: %w", err)
	}
	return sub, nil
}
