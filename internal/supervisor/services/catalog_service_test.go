// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

// countingRefresher fails the first failFirst calls.
type countingRefresher struct {
	calls     atomic.Int32
	failFirst int32
}

func (c *countingRefresher) RefreshCatalog(context.Context) (int, error) {
	n := c.calls.Add(1)
	if n <= c.failFirst {
		return 0, errors.New("store down")
	}
	return 12, nil
}

func TestCatalogRefreshWarmOnly(t *testing.T) {
	t.Parallel()

	r := &countingRefresher{}
	svc := NewCatalogRefreshService(r, 0, zerolog.Nop())

	if err := svc.Serve(context.Background()); !errors.Is(err, suture.ErrDoNotRestart) {
		t.Errorf("Serve() = %v, want ErrDoNotRestart", err)
	}
	refreshes, failures, size := svc.Stats()
	if refreshes != 1 || failures != 0 || size != 12 {
		t.Errorf("Stats() = %d/%d/%d, want 1/0/12", refreshes, failures, size)
	}
}

func TestCatalogRefreshPeriodic(t *testing.T) {
	t.Parallel()

	r := &countingRefresher{failFirst: 1}
	svc := NewCatalogRefreshService(r, 10*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	deadline := time.After(2 * time.Second)
	for r.calls.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("only %d refreshes", r.calls.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
	_, failures, size := svc.Stats()
	if failures != 1 {
		t.Errorf("failures = %d, want 1", failures)
	}
	if size != 12 {
		t.Errorf("lastSize = %d, want 12", size)
	}
}
