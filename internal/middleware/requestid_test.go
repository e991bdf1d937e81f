// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/strainspotter/internal/logging"
)

func TestRequestID_GeneratesNewID(t *testing.T) {
	t.Parallel()

	var capturedID, chiID, correlationID string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedID = GetRequestID(r.Context())
		chiID = chimiddleware.GetReqID(r.Context())
		correlationID = logging.CorrelationIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/strains", nil))

	responseID := rec.Header().Get(RequestIDHeader)
	if _, err := uuid.Parse(responseID); err != nil {
		t.Fatalf("response ID %q is not a UUID: %v", responseID, err)
	}
	if capturedID != responseID {
		t.Errorf("context ID = %q, want %q", capturedID, responseID)
	}
	if chiID != responseID {
		t.Errorf("chi request ID = %q, want %q", chiID, responseID)
	}
	if correlationID == "" {
		t.Error("expected a correlation ID in context")
	}
}

func TestRequestID_PreservesUpstreamID(t *testing.T) {
	t.Parallel()

	var capturedID string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedID = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/strains", nil)
	req.Header.Set(RequestIDHeader, "proxy-1234")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if capturedID != "proxy-1234" {
		t.Errorf("context ID = %q, want proxy-1234", capturedID)
	}
	if got := rec.Header().Get(RequestIDHeader); got != "proxy-1234" {
		t.Errorf("response ID = %q, want proxy-1234", got)
	}
}

func TestRequestID_ReplacesOversizedID(t *testing.T) {
	t.Parallel()

	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/strains", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("a", maxRequestIDLength+1))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if _, err := uuid.Parse(rec.Header().Get(RequestIDHeader)); err != nil {
		t.Errorf("oversized ID was not replaced: %v", err)
	}
}

func TestRequestID_UniquePerRequest(t *testing.T) {
	t.Parallel()

	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		id := rec.Header().Get(RequestIDHeader)
		if seen[id] {
			t.Fatalf("duplicate request ID %q", id)
		}
		seen[id] = true
	}
}

func TestAccessLog_IncludesRequestContext(t *testing.T) {
	var buf bytes.Buffer
	logging.SetLogger(logging.NewTestLogger(&buf).Level(zerolog.DebugLevel))
	prevLevel := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(prevLevel)
		logging.Init(logging.DefaultConfig())
	})

	r := chi.NewRouter()
	r.Use(RequestID, AccessLog)
	r.Get("/strains/{slug}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Strain not found"}`))
	})

	req := httptest.NewRequest(http.MethodGet, "/strains/missing", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	r.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	for _, want := range []string{
		`"request_id":"req-42"`,
		`"route":"/strains/{slug}"`,
		`"path":"/strains/missing"`,
		`"status":404`,
		`"message":"HTTP request"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("access log missing %s: %s", want, out)
		}
	}
}

func TestAccessLog_ServerErrorAtWarn(t *testing.T) {
	var buf bytes.Buffer
	logging.SetLogger(logging.NewTestLogger(&buf))
	t.Cleanup(func() { logging.Init(logging.DefaultConfig()) })

	handler := AccessLog(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	if !strings.Contains(buf.String(), `"level":"warn"`) {
		t.Errorf("expected warn level entry: %s", buf.String())
	}
}
