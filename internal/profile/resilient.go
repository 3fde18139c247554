// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/careerpath/internal/cache"
	"github.com/tomtom215/careerpath/internal/metrics"
	"github.com/tomtom215/careerpath/internal/models"
	"github.com/tomtom215/careerpath/internal/recommend"
	"github.com/tomtom215/careerpath/internal/validation"
)

// ErrUnavailable is wrapped when the circuit breaker rejects a call.
var ErrUnavailable = errors.New("profile store unavailable")

const catalogKey = "catalog"

// ResilienceConfig tunes retries, the circuit breaker and the catalog cache.
type ResilienceConfig struct {
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries uint64

	InitialBackoff time.Duration
	MaxBackoff     time.Duration

	// CallTimeout bounds one attempt.
	CallTimeout time.Duration

	// BreakerMaxRequests is the number of probes allowed while half-open.
	BreakerMaxRequests uint32
	// BreakerInterval resets the failure counts while closed.
	BreakerInterval time.Duration
	// BreakerTimeout is how long the breaker stays open.
	BreakerTimeout time.Duration
	// BreakerMinRequests is the sample size before the ratio is considered.
	BreakerMinRequests uint32
	// BreakerFailureRatio opens the breaker once reached.
	BreakerFailureRatio float64

	// CatalogTTL is how long a fetched catalog is served from memory.
	// Zero disables caching.
	CatalogTTL time.Duration
}

// DefaultResilienceConfig returns production defaults.
func DefaultResilienceConfig() ResilienceConfig {
	return ResilienceConfig{
		MaxRetries:          2,
		InitialBackoff:      100 * time.Millisecond,
		MaxBackoff:          2 * time.Second,
		CallTimeout:         5 * time.Second,
		BreakerMaxRequests:  3,
		BreakerInterval:     time.Minute,
		BreakerTimeout:      30 * time.Second,
		BreakerMinRequests:  10,
		BreakerFailureRatio: 0.6,
		CatalogTTL:          5 * time.Minute,
	}
}

// Resilient wraps a Store with retries, a circuit breaker and a catalog
// cache. Cached catalogs are shared between requests and must be treated as
// read-only.
type Resilient struct {
	inner   Store
	cfg     ResilienceConfig
	cb      *gobreaker.CircuitBreaker[interface{}]
	catalog *cache.TTL[[]models.Career]
	logger  zerolog.Logger
}

// NewResilient wraps inner.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewResilient(inner Store, cfg ResilienceConfig, logger zerolog.Logger) *Resilient {
	name := inner.Name()
	r := &Resilient{
		inner:  inner,
		cfg:    cfg,
		logger: logger.With().Str("component", "profile").Str("store", name).Logger(),
	}
	if cfg.CatalogTTL > 0 {
		r.catalog = cache.New[[]models.Career](cfg.CatalogTTL, cfg.CatalogTTL)
	}

	metrics.SetCircuitState(name, metrics.CircuitClosed)
	r.cb = gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.BreakerMaxRequests,
		Interval:    cfg.BreakerInterval,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.BreakerMinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			if ratio >= cfg.BreakerFailureRatio {
				r.logger.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", ratio).
					Msg("opening circuit breaker")
				return true
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			r.logger.Info().Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
			metrics.SetCircuitState(name, circuitState(to))
			metrics.FetchCircuitTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
		IsSuccessful: func(err error) bool {
			return err == nil || isPermanent(err)
		},
	})
	return r
}

// Name implements Store.
func (r *Resilient) Name() string { return r.inner.Name() }

// Ping implements Store. An open breaker reports unavailable without
// touching the backend.
func (r *Resilient) Ping(ctx context.Context) error {
	if r.cb.State() == gobreaker.StateOpen {
		return fmt.Errorf("%w: circuit open", ErrUnavailable)
	}
	return r.inner.Ping(ctx)
}

// Close implements Store.
func (r *Resilient) Close() error {
	if r.catalog != nil {
		r.catalog.Close()
	}
	return r.inner.Close()
}

// BreakerState returns the current breaker state name.
func (r *Resilient) BreakerState() string {
	return r.cb.State().String()
}

// FetchUserSubjects implements recommend.ProfileFetcher.
func (r *Resilient) FetchUserSubjects(ctx context.Context, username string) ([]string, error) {
	v, err := r.call(ctx, "user_subjects", func(ctx context.Context) (interface{}, error) {
		return r.inner.FetchUserSubjects(ctx, username)
	})
	if err != nil {
		return nil, err
	}
	subjects, _ := v.([]string)
	return subjects, nil
}

// FetchUserThinkingStyle implements recommend.ProfileFetcher.
func (r *Resilient) FetchUserThinkingStyle(ctx context.Context, username string) (*models.ThinkingStyle, error) {
	v, err := r.call(ctx, "user_thinking_style", func(ctx context.Context) (interface{}, error) {
		return r.inner.FetchUserThinkingStyle(ctx, username)
	})
	if err != nil {
		return nil, err
	}
	style, _ := v.(*models.ThinkingStyle)
	return style, nil
}

// FetchCareerCatalog implements recommend.ProfileFetcher, serving from the
// cache while the last snapshot is fresh.
func (r *Resilient) FetchCareerCatalog(ctx context.Context) ([]models.Career, error) {
	if r.catalog != nil {
		if careers, ok := r.catalog.Get(catalogKey); ok {
			metrics.CatalogCacheHits.Inc()
			return careers, nil
		}
		metrics.CatalogCacheMisses.Inc()
	}
	return r.loadCatalog(ctx)
}

// RefreshCatalog reloads the catalog from the backend into the cache.
func (r *Resilient) RefreshCatalog(ctx context.Context) (int, error) {
	careers, err := r.loadCatalog(ctx)
	if err != nil {
		return 0, err
	}
	return len(careers), nil
}

// InvalidateCatalog drops the cached catalog.
func (r *Resilient) InvalidateCatalog() {
	if r.catalog != nil {
		r.catalog.Delete(catalogKey)
	}
}

// ListCourses implements CourseStore.
func (r *Resilient) ListCourses(ctx context.Context) ([]models.Course, error) {
	v, err := r.call(ctx, "courses", func(ctx context.Context) (interface{}, error) {
		return r.inner.ListCourses(ctx)
	})
	if err != nil {
		return nil, err
	}
	courses, _ := v.([]models.Course)
	return courses, nil
}

// SaveSelection implements CourseStore. Saves are idempotent upserts, so
// they are retried like reads.
func (r *Resilient) SaveSelection(ctx context.Context, sel *models.SubjectSelection) error {
	_, err := r.call(ctx, "save_selection", func(ctx context.Context) (interface{}, error) {
		return nil, r.inner.SaveSelection(ctx, sel)
	})
	return err
}

func (r *Resilient) loadCatalog(ctx context.Context) ([]models.Career, error) {
	v, err := r.call(ctx, "career_catalog", func(ctx context.Context) (interface{}, error) {
		return r.inner.FetchCareerCatalog(ctx)
	})
	if err != nil {
		return nil, err
	}
	careers, _ := v.([]models.Career)
	metrics.CatalogSize.Set(float64(len(careers)))

	// An empty catalog is not cached so a freshly seeded store shows up at once.
	if r.catalog != nil && len(careers) > 0 {
		r.catalog.Set(catalogKey, careers)
	}
	return careers, nil
}

// call runs fn through the breaker, retrying transient failures with
// exponential backoff. Each attempt gets its own CallTimeout.
func (r *Resilient) call(ctx context.Context, op string, fn func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	start := time.Now()
	name := r.inner.Name()

	result, err := r.cb.Execute(func() (interface{}, error) {
		var out interface{}
		attempt := func() error {
			actx, cancel := ctx, context.CancelFunc(func() {})
			if r.cfg.CallTimeout > 0 {
				actx, cancel = context.WithTimeout(ctx, r.cfg.CallTimeout)
			}
			defer cancel()

			v, err := fn(actx)
			if err != nil {
				if isPermanent(err) || ctx.Err() != nil {
					return backoff.Permanent(err)
				}
				return err
			}
			out = v
			return nil
		}
		notify := func(err error, wait time.Duration) {
			metrics.FetchRetries.WithLabelValues(name, op).Inc()
			r.logger.Debug().Err(err).Str("operation", op).Dur("wait", wait).Msg("retrying store call")
		}
		err := backoff.RetryNotify(attempt, r.backoff(ctx), notify)
		return out, err
	})
	metrics.RecordFetch(name, op, time.Since(start), err)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.FetchRejected.WithLabelValues(name).Inc()
			return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		return nil, err
	}
	return result, nil
}

func (r *Resilient) backoff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.cfg.InitialBackoff
	b.MaxInterval = r.cfg.MaxBackoff
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, r.cfg.MaxRetries), ctx)
}

// isPermanent reports errors that retrying cannot fix and that say nothing
// about backend health.
func isPermanent(err error) bool {
	var verr *validation.RequestValidationError
	return recommend.IsDataError(err) ||
		errors.As(err, &verr) ||
		errors.Is(err, ErrMalformedRow) ||
		errors.Is(err, context.Canceled)
}

func circuitState(s gobreaker.State) int {
	switch s {
	case gobreaker.StateHalfOpen:
		return metrics.CircuitHalfOpen
	case gobreaker.StateOpen:
		return metrics.CircuitOpen
	default:
		return metrics.CircuitClosed
	}
}
