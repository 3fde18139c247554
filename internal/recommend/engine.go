// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/careerpath/internal/logging"
	"github.com/tomtom215/careerpath/internal/metrics"
	"github.com/tomtom215/careerpath/internal/models"
	"github.com/tomtom215/careerpath/internal/recommend/propagation"
)

// Outcome labels for metrics.RecommendRequestsTotal.
const (
	outcomeOK          = "ok"
	outcomeData        = "data_error"
	outcomeComputation = "computation_error"
	outcomeFetch       = "fetch_error"
	outcomeCancelled   = "cancelled"
)

// Engine turns a username into ranked career recommendations.
//
// Every request builds its own graph and, for strategies that need them,
// trains its own embeddings. Nothing computed for one request is visible to
// another, so the engine is safe for concurrent use. Two concurrent requests
// for the same user may return slightly different scores when the propagation
// seed is 0.
type Engine struct {
	config  *Config
	logger  zerolog.Logger
	fetcher ProfileFetcher
	pool    *workerPool

	strategy   ScoringStrategy
	strategyMu sync.RWMutex

	requestCount     atomic.Int64
	errorCount       atomic.Int64
	propagationCount atomic.Int64
}

// NewEngine creates a recommendation engine. The fetcher may be nil when
// only RecommendProfile is used. A strategy must be installed with
// SetStrategy before the first request.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, fetcher ProfileFetcher, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config:  cfg.Clone(),
		logger:  logger.With().Str("component", "recommend").Logger(),
		fetcher: fetcher,
		pool:    newWorkerPool(cfg.Limits.MaxConcurrentPropagations, cfg.Limits.PropagationTimeout),
	}, nil
}

// SetStrategy installs the scoring strategy used by subsequent requests.
func (e *Engine) SetStrategy(s ScoringStrategy) {
	e.strategyMu.Lock()
	defer e.strategyMu.Unlock()

	e.strategy = s
	e.logger.Info().
		Str("strategy", s.Name()).
		Bool("needs_embeddings", s.NeedsEmbeddings()).
		Msg("scoring strategy installed")
}

// Strategy returns the installed scoring strategy, or nil.
func (e *Engine) Strategy() ScoringStrategy {
	e.strategyMu.RLock()
	defer e.strategyMu.RUnlock()
	return e.strategy
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() Stats {
	name := ""
	if s := e.Strategy(); s != nil {
		name = s.Name()
	}
	return Stats{
		Requests:     e.requestCount.Load(),
		Errors:       e.errorCount.Load(),
		Propagations: e.propagationCount.Load(),
		Strategy:     name,
	}
}

// Recommend fetches the user's profile and the career catalog, then ranks
// the catalog for that user.
//
// Missing selections, thinking styles or catalog entries are reported as
// *DataError. Fetcher failures are reported as *FetchError and numeric
// failures as *ComputationError.
func (e *Engine) Recommend(ctx context.Context, username string) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	strategy := e.Strategy()
	if strategy == nil {
		e.errorCount.Add(1)
		return nil, &ComputationError{Op: "recommend", Err: ErrNoStrategy}
	}

	profile, catalog, err := e.fetch(ctx, username)
	if err != nil {
		e.fail(strategy.Name(), err, start)
		return nil, err
	}

	resp, err := e.run(ctx, strategy, profile, catalog, start)
	if err != nil {
		e.fail(strategy.Name(), err, start)
		return nil, err
	}
	metrics.RecordRecommendation(strategy.Name(), outcomeOK, time.Since(start))
	return resp, nil
}

// RecommendProfile ranks catalog for a profile the caller already holds.
func (e *Engine) RecommendProfile(ctx context.Context, profile *models.UserProfile, catalog []models.Career) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	strategy := e.Strategy()
	if strategy == nil {
		e.errorCount.Add(1)
		return nil, &ComputationError{Op: "recommend", Err: ErrNoStrategy}
	}

	resp, err := e.run(ctx, strategy, profile, catalog, start)
	if err != nil {
		e.fail(strategy.Name(), err, start)
		return nil, err
	}
	metrics.RecordRecommendation(strategy.Name(), outcomeOK, time.Since(start))
	return resp, nil
}

// fetch loads the three records concurrently under the fetch timeout.
func (e *Engine) fetch(ctx context.Context, username string) (*models.UserProfile, []models.Career, error) {
	if e.fetcher == nil {
		return nil, nil, &FetchError{Op: "fetch", Err: errors.New("no profile fetcher configured")}
	}

	ctx, cancel := context.WithTimeout(ctx, e.config.Limits.FetchTimeout)
	defer cancel()

	var (
		subjects []string
		style    *models.ThinkingStyle
		catalog  []models.Career
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if subjects, err = e.fetcher.FetchUserSubjects(gctx, username); err != nil {
			return &FetchError{Op: "fetch user subjects", Err: err}
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if style, err = e.fetcher.FetchUserThinkingStyle(gctx, username); err != nil {
			return &FetchError{Op: "fetch user thinking style", Err: err}
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if catalog, err = e.fetcher.FetchCareerCatalog(gctx); err != nil {
			return &FetchError{Op: "fetch career catalog", Err: err}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	switch {
	case len(subjects) == 0:
		return nil, nil, &DataError{Op: "fetch user subjects", Err: ErrNoSelection}
	case style == nil:
		return nil, nil, &DataError{Op: "fetch user thinking style", Err: ErrNoThinkingStyle}
	case len(catalog) == 0:
		return nil, nil, &DataError{Op: "fetch career catalog", Err: ErrNoCatalog}
	}

	return &models.UserProfile{
		Username:         username,
		SelectedSubjects: dedupeSubjects(subjects),
		Style:            *style,
	}, catalog, nil
}

func (e *Engine) run(ctx context.Context, strategy ScoringStrategy, profile *models.UserProfile, catalog []models.Career, start time.Time) (*Response, error) {
	requestID := logging.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	username := ""
	if profile != nil {
		username = profile.Username
	}
	logger := e.logger.With().
		Str("request_id", requestID).
		Str("username", username).
		Str("strategy", strategy.Name()).
		Logger()

	g, err := BuildGraph(profile, catalog)
	if err != nil {
		return nil, err
	}
	metrics.RecommendGraphNodes.Observe(float64(len(g.Nodes)))
	if len(g.DroppedSubjects) > 0 {
		metrics.RecommendDroppedSubjects.Add(float64(len(g.DroppedSubjects)))
		logger.Debug().
			Strs("subjects", g.DroppedSubjects).
			Msg("dropped selected subjects that no career requires")
	}

	in := &ScoreInput{Profile: profile, Catalog: catalog, Graph: g}
	var finalLoss *float64
	if strategy.NeedsEmbeddings() {
		res, err := e.propagate(ctx, g)
		if err != nil {
			return nil, err
		}
		in.Embeddings = res.Embeddings
		loss := res.FinalLoss
		finalLoss = &loss
		logger.Debug().
			Float64("initial_loss", res.InitialLoss).
			Float64("final_loss", res.FinalLoss).
			Dur("duration", res.Duration).
			Msg("propagation complete")
	}

	scores, err := strategy.Score(ctx, in)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &ComputationError{Op: "score", Err: err}
	}
	if len(scores) != len(catalog) {
		return nil, &ComputationError{
			Op:  "score",
			Err: fmt.Errorf("strategy %s returned %d scores for %d careers", strategy.Name(), len(scores), len(catalog)),
		}
	}

	recs, coerced := Rank(catalog, scores, e.config.TopK, e.config.ScoreDecimals, logger)

	resp := &Response{
		Recommendations: recs,
		Metadata: ResponseMetadata{
			RequestID:       requestID,
			Username:        username,
			Strategy:        strategy.Name(),
			CatalogSize:     len(catalog),
			SubjectNodes:    g.NumSubjects(),
			DroppedSubjects: g.DroppedSubjects,
			CoercedScores:   coerced,
			FinalLoss:       finalLoss,
			LatencyMS:       time.Since(start).Milliseconds(),
			Timestamp:       time.Now().UTC(),
		},
	}

	logger.Debug().
		Int("catalog_size", len(catalog)).
		Int("returned", len(recs)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	return resp, nil
}

func (e *Engine) propagate(ctx context.Context, g *Graph) (*propagation.Result, error) {
	var res *propagation.Result
	err := e.pool.run(ctx, func(ctx context.Context) error {
		var err error
		res, err = propagation.Propagate(ctx, propagation.Input{
			Features: g.Features(),
			Edges:    g.EdgePairs(),
		}, e.config.Propagation)
		return err
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, &ComputationError{Op: "propagate", Err: err}
	}

	e.propagationCount.Add(1)
	metrics.RecordPropagation(res.Duration, res.FinalLoss)
	return res, nil
}

func (e *Engine) fail(strategy string, err error, start time.Time) {
	e.errorCount.Add(1)

	outcome := outcomeComputation
	switch {
	case IsDataError(err):
		outcome = outcomeData
	case IsFetchError(err):
		outcome = outcomeFetch
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		outcome = outcomeCancelled
	}
	metrics.RecordRecommendation(strategy, outcome, time.Since(start))

	event := e.logger.Warn()
	if outcome == outcomeComputation {
		event = e.logger.Error()
	}
	event.Err(err).Str("outcome", outcome).Msg("recommendation failed")
}

func dedupeSubjects(subjects []string) []string {
	seen := make(map[string]struct{}, len(subjects))
	out := make([]string, 0, len(subjects))
	for _, s := range subjects {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
