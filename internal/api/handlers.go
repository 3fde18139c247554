// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/careerpath/internal/logging"
	"github.com/tomtom215/careerpath/internal/models"
	"github.com/tomtom215/careerpath/internal/profile"
	"github.com/tomtom215/careerpath/internal/recommend"
)

// Recommender is the slice of recommend.Engine the handlers need.
type Recommender interface {
	Recommend(ctx context.Context, username string) (*recommend.Response, error)
	Stats() recommend.Stats
}

// Pinger reports store reachability for readiness checks.
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}

// Handler holds the dependencies of every endpoint.
type Handler struct {
	engine         Recommender
	courses        profile.CourseStore
	store          Pinger
	requestTimeout time.Duration
	readyTimeout   time.Duration
	startTime      time.Time
	logger         zerolog.Logger
}

// HandlerConfig carries handler dependencies. Courses and Store may be nil,
// in which case the course endpoints answer 503 and readiness only reflects
// the engine.
type HandlerConfig struct {
	Engine         Recommender
	Courses        profile.CourseStore
	Store          Pinger
	RequestTimeout time.Duration
}

// NewHandler creates a Handler.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHandler(cfg HandlerConfig, logger zerolog.Logger) *Handler {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	return &Handler{
		engine:         cfg.Engine,
		courses:        cfg.Courses,
		store:          cfg.Store,
		requestTimeout: timeout,
		readyTimeout:   2 * time.Second,
		startTime:      time.Now(),
		logger:         logger.With().Str("component", "api").Logger(),
	}
}

// fail logs err when it is a server-side failure and writes the envelope.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	f := classify(err)
	h.logFailure(r, f, err)
	NewResponseWriter(w, r).ErrorWithDetails(f.status, f.code, f.message, f.details)
}

func (h *Handler) logFailure(r *http.Request, f apiFailure, err error) {
	event := logging.Ctx(r.Context()).Debug()
	if f.status >= http.StatusInternalServerError {
		event = logging.Ctx(r.Context()).Error()
	}
	event.
		Str("component", "api").
		Str("code", f.code).
		Int("status", f.status).
		Str("error", sanitizeLogValue(err.Error())).
		Msg("API error")
}

// courseStore returns the course store or writes a 503.
func (h *Handler) courseStore(w http.ResponseWriter, r *http.Request) (profile.CourseStore, bool) {
	if h.courses == nil {
		NewResponseWriter(w, r).ServiceUnavailable("course store not configured")
		return nil, false
	}
	return h.courses, true
}

// HealthLive reports that the process is serving.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, map[string]interface{}{
		"status":         "alive",
		"uptime_seconds": time.Since(h.startTime).Seconds(),
	})
}

// ReadyStatus is the body of the readiness endpoint.
type ReadyStatus struct {
	Status   string          `json:"status"`
	Store    string          `json:"store,omitempty"`
	StoreOK  bool            `json:"store_ok"`
	Error    string          `json:"error,omitempty"`
	Strategy string          `json:"strategy"`
	Stats    recommend.Stats `json:"stats"`
}

// HealthReady pings the store; an unreachable store or open breaker is 503.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	status := ReadyStatus{Status: "ready", StoreOK: true}
	if h.engine != nil {
		status.Stats = h.engine.Stats()
		status.Strategy = status.Stats.Strategy
	}

	if h.store != nil {
		status.Store = h.store.Name()
		ctx, cancel := context.WithTimeout(r.Context(), h.readyTimeout)
		defer cancel()
		if err := h.store.Ping(ctx); err != nil {
			status.Status = "not_ready"
			status.StoreOK = false
			status.Error = err.Error()
		}
	}

	if !status.StoreOK {
		NewResponseWriter(w, r).ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "profile store unreachable", status)
		return
	}
	WriteSuccess(w, r, status)
}

// ListCourses handles GET /api/v1/courses.
func (h *Handler) ListCourses(w http.ResponseWriter, r *http.Request) {
	store, ok := h.courseStore(w, r)
	if !ok {
		return
	}
	courses, err := store.ListCourses(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if courses == nil {
		courses = []models.Course{}
	}
	NewResponseWriter(w, r).List(courses, len(courses))
}
