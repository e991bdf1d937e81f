// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

package services

import (
	"context"
	"fmt"
)

// EventRunner consumes events until ctx ends.
// Satisfied by *events.Listener.
type EventRunner interface {
	Run(ctx context.Context) error
	Topic() string
}

// EventListenerService runs the catalog event listener under supervision.
// A subscribe failure or a closed subscription is returned to suture,
// which restarts the listener with backoff.
type EventListenerService struct {
	listener EventRunner
	name     string
}

// NewEventListenerService wraps listener.
func NewEventListenerService(listener EventRunner) *EventListenerService {
	return &EventListenerService{
		listener: listener,
		name:     "catalog-events",
	}
}

// Serve implements suture.Service.
func (s *EventListenerService) Serve(ctx context.Context) error {
	err := s.listener.Run(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return fmt.Errorf("catalog event listener on %s: %w", s.listener.Topic(), err)
	}
	return fmt.Errorf("catalog event subscription on %s closed", s.listener.Topic())
}

// String names the service in supervisor events.
func (s *EventListenerService) String() string {
	return s.name
}
