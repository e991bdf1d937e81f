// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

//go:build nats

package events

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/rs/zerolog"
)

func TestEmbeddedServer_EndToEnd(t *testing.T) {
	srv, err := NewEmbeddedServer(&ServerConfig{Host: "127.0.0.1", Port: -1})
	if err != nil {
		t.Fatalf("NewEmbeddedServer() error = %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			t.Errorf("Shutdown() error = %v", err)
		}
	}()

	if !srv.IsRunning() {
		t.Fatal("IsRunning() = false")
	}

	subCfg := DefaultSubscriberConfig(srv.ClientURL())
	sub, err := NewNATSSubscriber(&subCfg, nil)
	if err != nil {
		t.Fatalf("NewNATSSubscriber() error = %v", err)
	}
	defer sub.Close()

	pub, err := wmNats.NewPublisher(wmNats.PublisherConfig{
		URL:       srv.ClientURL(),
		Marshaler: &wmNats.NATSMarshaler{},
		JetStream: wmNats.JetStreamConfig{Disabled: true},
	}, watermill.NopLogger{})
	if err != nil {
		t.Fatalf("NewPublisher() error = %v", err)
	}
	defer pub.Close()

	var reloads atomic.Int32
	l := NewListener(sub, "catalog.updated", func(ctx context.Context, evt *CatalogEvent) error {
		reloads.Add(1)
		return nil
	}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = l.Run(ctx) }()

	// Core NATS drops messages published before the subscription exists,
	// so keep publishing until one lands.
	deadline := time.Now().Add(10 * time.Second)
	for reloads.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("no catalog event received within 10s")
		}
		publishEvent(t, pub, "catalog.updated", NewCatalogEvent("file", "e2e"))
		time.Sleep(100 * time.Millisecond)
	}
}
