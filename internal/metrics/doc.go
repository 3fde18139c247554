// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

// Package metrics defines the Prometheus collectors exported on /metrics.
//
// Collectors are registered on the default registry through promauto, and the
// Record* helpers keep label sets consistent across callers:
//
//   - api_*: HTTP request counts, latency and in-flight gauge
//   - recommend_*: request outcomes, latency, coerced scores, dropped subjects
//   - propagation_*: training latency, final loss, pool occupancy
//   - profile_fetch_*: store calls, retries, circuit breaker state, catalog cache
package metrics
