// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestGenerateIDs(t *testing.T) {
	t.Parallel()

	if got := len(GenerateCorrelationID()); got != 8 {
		t.Errorf("correlation ID length = %d, want 8", got)
	}
	a, b := GenerateRequestID(), GenerateRequestID()
	if len(a) != 36 {
		t.Errorf("request ID length = %d, want 36", len(a))
	}
	if a == b {
		t.Error("request IDs are not unique")
	}
}

func TestContextIDs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if RequestIDFromContext(ctx) != "" || CorrelationIDFromContext(ctx) != "" {
		t.Error("empty context returned IDs")
	}

	ctx = ContextWithRequestID(ctx, "req-1")
	ctx = ContextWithCorrelationID(ctx, "corr-1")
	if got := RequestIDFromContext(ctx); got != "req-1" {
		t.Errorf("RequestIDFromContext() = %q, want req-1", got)
	}
	if got := CorrelationIDFromContext(ctx); got != "corr-1" {
		t.Errorf("CorrelationIDFromContext() = %q, want corr-1", got)
	}

	ctx = ContextWithNewCorrelationID(context.Background())
	if CorrelationIDFromContext(ctx) == "" {
		t.Error("ContextWithNewCorrelationID() did not set an ID")
	}
}

func TestCtx(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))
	t.Cleanup(func() { Init(DefaultConfig()) })

	ctx := ContextWithRequestID(context.Background(), "req-42")
	ctx = ContextWithCorrelationID(ctx, "abcd1234")
	Ctx(ctx).Info().Msg("handled")

	out := buf.String()
	if !strings.Contains(out, `"request_id":"req-42"`) {
		t.Errorf("output missing request_id: %s", out)
	}
	if !strings.Contains(out, `"correlation_id":"abcd1234"`) {
		t.Errorf("output missing correlation_id: %s", out)
	}

	buf.Reset()
	Ctx(context.Background()).Info().Msg("bare")
	if strings.Contains(buf.String(), "request_id") {
		t.Errorf("bare context added request_id: %s", buf.String())
	}
}
