// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

// Package cache provides a thread-safe in-memory cache with per-entry
// expiration. It holds the career catalog snapshot between store reads.
package cache
