// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package recommend

import (
	"context"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/tomtom215/careerpath/internal/metrics"
)

// workerPool bounds how many trainings run at once. Requests beyond the
// limit wait for a slot until their context ends.
type workerPool struct {
	sem     *semaphore.Weighted
	size    int64
	timeout time.Duration
}

func newWorkerPool(size int, timeout time.Duration) *workerPool {
	return &workerPool{
		sem:     semaphore.NewWeighted(int64(size)),
		size:    int64(size),
		timeout: timeout,
	}
}

// run waits for a slot and calls fn with a context bounded by the pool timeout.
// The timeout covers queueing and execution.
func (p *workerPool) run(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	waitStart := time.Now()
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer p.sem.Release(1)
	metrics.PropagationQueueWait.Observe(time.Since(waitStart).Seconds())

	metrics.PropagationInFlight.Inc()
	defer metrics.PropagationInFlight.Dec()

	return fn(ctx)
}
