// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

package events

import (
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Metadata keys set on catalog messages.
const (
	MetadataEventType = "event_type"
	MetadataSource    = "source"

	EventTypeCatalogUpdated = "catalog.updated"
)

// CatalogEvent announces that the catalog behind a source has changed.
// Every field is optional; an empty payload is a plain reload request.
type CatalogEvent struct {
	ID         string    `json:"id,omitempty"`
	Source     string    `json:"source,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurred_at,omitempty"`
}

// NewCatalogEvent creates an event with a fresh ID and timestamp.
func NewCatalogEvent(source, reason string) *CatalogEvent {
	return &CatalogEvent{
		ID:         uuid.NewString(),
		Source:     source,
		Reason:     reason,
		OccurredAt: time.Now().UTC(),
	}
}

// ToMessage encodes the event as a watermill message. The message UUID
// matches the event ID.
func (e *CatalogEvent) ToMessage() (*message.Message, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	payload, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal catalog event: %w", err)
	}

	msg := message.NewMessage(e.ID, payload)
	msg.Metadata.Set(MetadataEventType, EventTypeCatalogUpdated)
	if e.Source != "" {
		msg.Metadata.Set(MetadataSource, e.Source)
	}
	return msg, nil
}

// ParseCatalogEvent decodes a message payload. Empty payloads yield an
// event carrying only the message UUID.
func ParseCatalogEvent(msg *message.Message) (*CatalogEvent, error) {
	evt := &CatalogEvent{}
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, evt); err != nil {
			return nil, fmt.Errorf("unmarshal catalog event: %w", err)
		}
	}
	if evt.ID == "" {
		evt.ID = msg.UUID
	}
	if evt.Source == "" {
		evt.Source = msg.Metadata.Get(MetadataSource)
	}
	return evt, nil
}
