// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

package events

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"

	"github.com/tomtom215/strainspotter/internal/metrics"
)

// HandlerFunc processes one catalog event. Returning an error nacks the
// message so the broker may redeliver it.
type HandlerFunc func(ctx context.Context, evt *CatalogEvent) error

// Listener consumes catalog events from a topic and hands them to a handler.
type Listener struct {
	subscriber message.Subscriber
	topic      string
	handler    HandlerFunc
	logger     zerolog.Logger
}

// NewListener creates a listener. It does not subscribe until Run.
func NewListener(subscriber message.Subscriber, topic string, handler HandlerFunc, logger zerolog.Logger) *Listener {
	return &Listener{
		subscriber: subscriber,
		topic:      topic,
		handler:    handler,
		logger:     logger.With().Str("component", "events").Str("topic", topic).Logger(),
	}
}

// Run processes messages until ctx is canceled or the subscription closes.
// Messages are acked on success and nacked on error. It returns ctx.Err()
// after cancellation and nil when the subscriber closes on its own.
func (l *Listener) Run(ctx context.Context) error {
	messages, err := l.subscriber.Subscribe(ctx, l.topic)
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", l.topic, err)
	}
	l.logger.Info().Msg("Listening for catalog events")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return ctx.Err()
			}
			l.process(ctx, msg)
		}
	}
}

// Topic returns the subscribed topic.
func (l *Listener) Topic() string {
	return l.topic
}

func (l *Listener) process(ctx context.Context, msg *message.Message) {
	evt, err := ParseCatalogEvent(msg)
	if err == nil {
		err = l.handler(ctx, evt)
	}

	if err != nil {
		l.logger.Error().Err(err).Str("message_uuid", msg.UUID).Msg("Catalog event processing failed")
		metrics.RecordCatalogEvent(false)
		msg.Nack()
		return
	}

	l.logger.Debug().
		Str("message_uuid", msg.UUID).
		Str("event_source", evt.Source).
		Str("reason", evt.Reason).
		Msg("Catalog event processed")
	metrics.RecordCatalogEvent(true)
	msg.Ack()
}
