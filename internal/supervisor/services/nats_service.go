// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/thejerf/suture/v4"
)

// ErrBrokerStopped is returned when the embedded broker stops while the
// service is still supposed to be running.
var ErrBrokerStopped = errors.New("embedded NATS server stopped unexpectedly")

// EmbeddedBroker is the lifecycle of an already started in-process broker.
// Satisfied by *events.EmbeddedServer.
type EmbeddedBroker interface {
	Shutdown(ctx context.Context) error
	IsRunning() bool
}

// EmbeddedNATSService owns the embedded NATS server's lifetime. The server
// is started before the tree so subscribers can connect during wiring; this
// service watches it and shuts it down when the tree stops.
//
// A server that dies cannot be restarted in place, so the service reports
// suture.ErrDoNotRestart instead of crash-looping. Subscribers keep retrying
// their connection and the API keeps serving the current catalog.
type EmbeddedNATSService struct {
	broker          EmbeddedBroker
	checkInterval   time.Duration
	shutdownTimeout time.Duration
	name            string
}

// NewEmbeddedNATSService wraps broker. A non-positive shutdownTimeout
// selects 10 seconds.
func NewEmbeddedNATSService(broker EmbeddedBroker, shutdownTimeout time.Duration) *EmbeddedNATSService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &EmbeddedNATSService{
		broker:          broker,
		checkInterval:   5 * time.Second,
		shutdownTimeout: shutdownTimeout,
		name:            "embedded-nats",
	}
}

// Serve implements suture.Service.
func (s *EmbeddedNATSService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
			defer cancel()
			if err := s.broker.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("embedded NATS shutdown failed: %w", err)
			}
			return ctx.Err()

		case <-ticker.C:
			if !s.broker.IsRunning() {
				return fmt.Errorf("%w: %w", ErrBrokerStopped, suture.ErrDoNotRestart)
			}
		}
	}
}

// String names the service in supervisor events.
func (s *EmbeddedNATSService) String() string {
	return s.name
}
