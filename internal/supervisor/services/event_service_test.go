// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

package services

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeRunner struct {
	err      error
	blocking bool
}

func (r *fakeRunner) Run(ctx context.Context) error {
	if r.blocking {
		<-ctx.Done()
		return nil
	}
	return r.err
}

func (r *fakeRunner) Topic() string { return "strainspotter.catalog" }

func TestEventListenerService_Serve(t *testing.T) {
	t.Run("context cancellation", func(t *testing.T) {
		svc := NewEventListenerService(&fakeRunner{blocking: true})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if err := svc.Serve(ctx); !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	})

	t.Run("runner failure is wrapped", func(t *testing.T) {
		subErr := errors.New("nats: connection closed")
		err := NewEventListenerService(&fakeRunner{err: subErr}).Serve(context.Background())
		if !errors.Is(err, subErr) {
			t.Errorf("Serve() = %v, want wrapped runner error", err)
		}
		if !strings.Contains(err.Error(), "strainspotter.catalog") {
			t.Errorf("error %q does not name the topic", err)
		}
	})

	t.Run("closed subscription triggers restart", func(t *testing.T) {
		err := NewEventListenerService(&fakeRunner{}).Serve(context.Background())
		if err == nil || !strings.Contains(err.Error(), "closed") {
			t.Errorf("Serve() = %v, want subscription closed error", err)
		}
	})

	if got := NewEventListenerService(&fakeRunner{}).String(); got != "catalog-events" {
		t.Errorf("String() = %q", got)
	}
}
