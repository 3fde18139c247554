// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

/*
Package middleware provides HTTP middleware for the CareerPath API.

Every middleware has the func(http.Handler) http.Handler shape so it plugs
into a chi router with r.Use:

  - RequestID: accepts or generates an X-Request-ID and stores it in the
    context for logging and for recommendation metadata
  - PrometheusMetrics: request counts, durations and in-flight gauge,
    labelled by chi route pattern to keep cardinality bounded
  - AccessLog: one zerolog line per request, escalated to warn when slow

Typical stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(logger, time.Second))
	r.Use(middleware.PrometheusMetrics)
*/
package middleware
