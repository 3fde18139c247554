// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

// Package recommend ranks careers for a user from their selected subjects,
// their thinking style and the career catalog.
//
// # Pipeline
//
//  1. Fetch: the three records are loaded concurrently through a ProfileFetcher.
//  2. Graph: BuildGraph links one user node to subject relay nodes and subject
//     nodes to career nodes.
//  3. Propagation: strategies that need refined embeddings get them from the
//     propagation package, run in a bounded worker pool.
//  4. Scoring: the configured ScoringStrategy returns one score per career.
//  5. Ranking: Rank sorts scores descending with catalog order breaking ties
//     and keeps the top K.
//
// Every request is self-contained. The graph and the propagation weights are
// built for one request and discarded, so two concurrent requests for the same
// user are independent and may return slightly different scores when the
// propagation seed is zero.
//
// # Strategies
//
// Strategies live in the algorithms subpackage and are chosen by
// configuration name:
//
//   - baseline: prerequisite overlap blended with thinking-style cosine
//   - graph: cosine between the propagated user and career embeddings
//
// # Usage
//
//	engine, err := recommend.NewEngine(cfg, fetcher, logger)
//	strategy, err := algorithms.New(cfg.Strategy, cfg)
//	engine.SetStrategy(strategy)
//	resp, err := engine.Recommend(ctx, "ada")
//
// # Errors
//
// Missing inputs return *DataError; a catalog with no prerequisite structure
// returns *DegenerateGraphError, which also matches *DataError. Numeric
// failures return *ComputationError. A malformed career never aborts a
// request: missing style fields score as a zero vector and NaN scores are
// coerced to zero and logged.
package recommend
