// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

// Package profile implements the profile fetcher boundary of the
// recommendation engine.
//
// Stores read four tables:
//
//	user_subject_sel(username, selected_subjects)
//	user_ts(username, concrete, logical, theoretical, practical, intuitive)
//	career(career_id, career_name, prerequisites, Concrete, Logical, Theoretical, Practical, Intuitive)
//	course_ts(course_id, course_name)
//
// Rows are decoded into typed row structs and validated here, so the engine
// only ever sees models values. A malformed user row is a DataError; a
// malformed career row is skipped with a warning so one bad row cannot abort
// a recommendation.
//
// Three stores are provided: SupabaseStore (PostgREST), BadgerStore
// (embedded, seeded from YAML) and MemoryStore. Resilient wraps any of them
// with a circuit breaker, retries and a catalog cache.
package profile
