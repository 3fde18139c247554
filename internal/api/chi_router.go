// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/tomtom215/careerpath/internal/middleware"
)

// slowRequestThreshold escalates access log lines to warn.
const slowRequestThreshold = 2 * time.Second

// NewRouter configures all HTTP routes.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRouter(h *Handler, mwConfig *ChiMiddlewareConfig, logger zerolog.Logger) http.Handler {
	mw := NewChiMiddleware(mwConfig)
	r := chi.NewRouter()

	// Global middleware, applied to every route in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog(logger, slowRequestThreshold))
	r.Use(chimiddleware.Recoverer)
	r.Use(mw.CORS())
	r.Use(middleware.PrometheusMetrics)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).NotFound("route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	})

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(mw.RateLimitHealth())
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.RateLimit())
		r.Get("/recommendations", h.GetRecommendations)
		r.Get("/recommendations/stats", h.RecommendationStats)
		r.Get("/courses", h.ListCourses)
		r.Post("/selections", h.SaveSelection)
	})

	// Unversioned routes for older clients.
	r.Group(func(r chi.Router) {
		r.Use(mw.RateLimit())
		r.Get("/career_recommendation", h.LegacyCareerRecommendation)
		r.Get("/courses", h.LegacyCourses)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
