// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

// CatalogRefresher reloads the career catalog into a cache.
// Satisfied by *profile.Resilient.
type CatalogRefresher interface {
	RefreshCatalog(ctx context.Context) (int, error)
}

// defaultRefreshTimeout bounds one refresh.
const defaultRefreshTimeout = 30 * time.Second

// CatalogRefreshService warms the catalog cache at startup and then reloads
// it every interval so requests rarely pay for a catalog fetch. Failed
// refreshes are logged and retried on the next tick; the store's circuit
// breaker decides when the backend is considered down.
//
// With a zero interval the service warms the cache once and exits without
// being restarted.
type CatalogRefreshService struct {
	refresher CatalogRefresher
	interval  time.Duration
	timeout   time.Duration
	logger    zerolog.Logger

	refreshes atomic.Int64
	failures  atomic.Int64
	lastSize  atomic.Int64
}

// NewCatalogRefreshService creates the service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCatalogRefreshService(refresher CatalogRefresher, interval time.Duration, logger zerolog.Logger) *CatalogRefreshService {
	return &CatalogRefreshService{
		refresher: refresher,
		interval:  interval,
		timeout:   defaultRefreshTimeout,
		logger:    logger.With().Str("component", "catalog-refresh").Logger(),
	}
}

// Serve implements suture.Service.
func (s *CatalogRefreshService) Serve(ctx context.Context) error {
	s.refresh(ctx)

	if s.interval <= 0 {
		return suture.ErrDoNotRestart
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

func (s *CatalogRefreshService) refresh(ctx context.Context) {
	rctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	n, err := s.refresher.RefreshCatalog(rctx)
	s.refreshes.Add(1)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.failures.Add(1)
		s.logger.Warn().Err(err).Dur("duration", time.Since(start)).Msg("catalog refresh failed")
		return
	}
	s.lastSize.Store(int64(n))
	s.logger.Debug().Int("careers", n).Dur("duration", time.Since(start)).Msg("catalog refreshed")
}

// Stats returns refresh attempts, failures and the last catalog size.
func (s *CatalogRefreshService) Stats() (refreshes, failures, lastSize int64) {
	return s.refreshes.Load(), s.failures.Load(), s.lastSize.Load()
}

// String implements fmt.Stringer.
func (s *CatalogRefreshService) String() string {
	return "catalog-refresh"
}
