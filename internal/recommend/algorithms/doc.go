// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

// Package algorithms implements the scoring strategies of the recommendation
// engine.
//
// Each strategy implements recommend.ScoringStrategy and is installed with
// Engine.SetStrategy. Strategies hold only configuration and are safe for
// concurrent use.
//
//   - Baseline: weighted prerequisite overlap plus raw thinking-style cosine
//   - GraphEmbedding: cosine between propagated user and career embeddings
package algorithms
