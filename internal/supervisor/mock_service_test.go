// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

package supervisor

import (
	"context"
	"errors"
	"sync/atomic"
)

// MockService is a controllable suture.Service for supervisor tests.
type MockService struct {
	name       string
	startCount atomic.Int32
	failCount  atomic.Int32
	maxFails   atomic.Int32
}

// NewMockService creates a mock service.
func NewMockService(name string) *MockService {
	return &MockService{name: name}
}

// Serve fails immediately for the first SetFailCount calls and afterwards
// blocks until ctx is canceled.
func (m *MockService) Serve(ctx context.Context) error {
	m.startCount.Add(1)

	if m.failCount.Add(1) <= m.maxFails.Load() {
		return errors.New("simulated failure")
	}

	<-ctx.Done()
	return ctx.Err()
}

// SetFailCount makes the next n calls to Serve fail.
func (m *MockService) SetFailCount(n int) {
	m.maxFails.Store(int32(n))
}

// StartCount returns how many times Serve was called.
func (m *MockService) StartCount() int32 {
	return m.startCount.Load()
}

// String names the service in supervisor events.
func (m *MockService) String() string {
	return m.name
}
