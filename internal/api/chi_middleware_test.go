// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

package api

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/strainspotter/internal/config"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestDefaultChiMiddlewareConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	if len(cfg.CORSAllowedOrigins) != 0 {
		t.Errorf("CORSAllowedOrigins = %v, want empty", cfg.CORSAllowedOrigins)
	}
	if strings.Join(cfg.CORSAllowedMethods, ",") != "GET,OPTIONS" {
		t.Errorf("CORSAllowedMethods = %v, want GET,OPTIONS", cfg.CORSAllowedMethods)
	}
	if cfg.RateLimitRequests != 100 || cfg.RateLimitWindow != time.Minute {
		t.Errorf("rate limit = %d/%v, want 100/1m", cfg.RateLimitRequests, cfg.RateLimitWindow)
	}
	if cfg.RateLimitDisabled {
		t.Error("rate limiting should be enabled by default")
	}
}

func TestChiMiddlewareConfigFromSecurity(t *testing.T) {
	t.Parallel()

	cfg := ChiMiddlewareConfigFromSecurity(&config.SecurityConfig{
		RateLimitReqs:     7,
		RateLimitWindow:   30 * time.Second,
		RateLimitDisabled: true,
		CORSOrigins:       []string{"https://app.example.com"},
	})

	if cfg.RateLimitRequests != 7 || cfg.RateLimitWindow != 30*time.Second || !cfg.RateLimitDisabled {
		t.Errorf("rate limit fields not copied: %+v", cfg)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "https://app.example.com" {
		t.Errorf("CORSAllowedOrigins = %v", cfg.CORSAllowedOrigins)
	}
	if len(cfg.CORSAllowedMethods) == 0 {
		t.Error("defaults should fill CORSAllowedMethods")
	}

	if got := ChiMiddlewareConfigFromSecurity(nil); got.RateLimitRequests != 100 {
		t.Errorf("nil security config should yield defaults, got %+v", got)
	}
}

func TestChiMiddleware_CORS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		allowed    []string
		origin     string
		wantOrigin string
	}{
		{"wildcard", []string{"*"}, "https://example.com", "*"},
		{"specific origin reflected", []string{"https://allowed.com"}, "https://allowed.com", "https://allowed.com"},
		{"disallowed origin", []string{"https://allowed.com"}, "https://evil.com", ""},
		{"no origin header", []string{"https://allowed.com"}, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultChiMiddlewareConfig()
			cfg.CORSAllowedOrigins = tt.allowed
			m := NewChiMiddleware(cfg)

			handlerCalled := false
			handler := m.CORS()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/effects", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if !handlerCalled {
				t.Error("handler should be called for simple requests")
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
		})
	}
}

func TestChiMiddleware_CORS_Preflight(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.CORSAllowedOrigins = []string{"*"}
	m := NewChiMiddleware(cfg)

	handlerCalled := false
	handler := m.CORS()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
	}))

	req := httptest.NewRequest(http.MethodOptions, "/recommend", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK && w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 200 or 204", w.Code)
	}
	if handlerCalled {
		t.Error("handler should not be called for OPTIONS preflight")
	}
	if w.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Error("Access-Control-Allow-Methods should be set")
	}
}

func TestChiMiddleware_RateLimit_Disabled(t *testing.T) {
	t.Parallel()

	m := NewChiMiddleware(&ChiMiddlewareConfig{
		RateLimitDisabled: true,
		RateLimitRequests: 1,
		RateLimitWindow:   time.Minute,
	})
	handler := m.RateLimit()(okHandler())

	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, w.Code)
		}
	}
}

func TestChiMiddleware_RateLimit_Enabled(t *testing.T) {
	t.Parallel()

	m := NewChiMiddleware(&ChiMiddlewareConfig{
		RateLimitRequests: 3,
		RateLimitWindow:   time.Minute,
	})
	handler := m.RateLimit()(okHandler())

	successCount, limitedCount := 0, 0
	var lastBody, lastType string
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		switch w.Code {
		case http.StatusOK:
			successCount++
		case http.StatusTooManyRequests:
			limitedCount++
			lastBody = strings.TrimSpace(w.Body.String())
			lastType = w.Header().Get("Content-Type")
		}
	}

	if successCount != 3 || limitedCount != 2 {
		t.Errorf("success/limited = %d/%d, want 3/2", successCount, limitedCount)
	}
	if lastBody != `{"error":"Too many requests"}` {
		t.Errorf("limited body = %s", lastBody)
	}
	if lastType != "application/json" {
		t.Errorf("limited Content-Type = %q", lastType)
	}
}

func TestChiMiddleware_RateLimit_DifferentIPs(t *testing.T) {
	t.Parallel()

	m := NewChiMiddleware(&ChiMiddlewareConfig{
		RateLimitRequests: 1,
		RateLimitWindow:   time.Minute,
	})
	handler := m.RateLimit()(okHandler())

	for _, ip := range []string{"10.0.0.1:1000", "10.0.0.2:1000", "10.0.0.3:1000"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("first request from %s: status = %d, want 200", ip, w.Code)
		}
	}
}

func TestAPISecurityHeaders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		setup    func(r *http.Request)
		wantHSTS bool
	}{
		{"plain http", func(r *http.Request) {}, false},
		{"tls", func(r *http.Request) { r.TLS = &tls.ConnectionState{} }, true},
		{"behind tls proxy", func(r *http.Request) { r.Header.Set("X-Forwarded-Proto", "https") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/effects", nil)
			tt.setup(req)
			w := httptest.NewRecorder()
			APISecurityHeaders()(okHandler()).ServeHTTP(w, req)

			if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
				t.Errorf("X-Content-Type-Options = %q", got)
			}
			if got := w.Header().Get("Referrer-Policy"); got != "strict-origin-when-cross-origin" {
				t.Errorf("Referrer-Policy = %q", got)
			}
			if hasHSTS := w.Header().Get("Strict-Transport-Security") != ""; hasHSTS != tt.wantHSTS {
				t.Errorf("HSTS present = %v, want %v", hasHSTS, tt.wantHSTS)
			}
		})
	}
}
