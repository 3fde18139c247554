// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/careerpath/internal/logging"
)

// AccessLog logs every request at info once it completes. Requests slower than
// slowThreshold, and 5xx responses, are logged at warn; a zero threshold
// disables the slow check.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func AccessLog(logger zerolog.Logger, slowThreshold time.Duration) func(http.Handler) http.Handler {
	logger = logger.With().Str("component", "http").Logger()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			elapsed := time.Since(start)
			event := logger.Info()
			switch {
			case rec.statusCode >= http.StatusInternalServerError:
				event = logger.Warn()
			case slowThreshold > 0 && elapsed > slowThreshold:
				event = logger.Warn().Bool("slow", true)
			}

			event.
				Str("request_id", logging.RequestIDFromContext(r.Context())).
				Str("method", r.Method).
				Str("route", routePattern(r)).
				Int("status", rec.statusCode).
				Int("bytes", rec.bytes).
				Dur("duration", elapsed).
				Msg("request completed")
		})
	}
}
