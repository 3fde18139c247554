// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/tomtom215/careerpath/internal/logging"
	"github.com/tomtom215/careerpath/internal/models"
	"github.com/tomtom215/careerpath/internal/recommend"
	"github.com/tomtom215/careerpath/internal/validation"
)

// recommend validates the username and runs the engine under the request
// timeout.
func (h *Handler) recommend(r *http.Request) (*recommend.Response, error) {
	username := strings.TrimSpace(r.URL.Query().Get("username"))
	if username == "" {
		return nil, ErrMissingUsername
	}
	if verr := validation.ValidateStruct(&usernameQuery{Username: username}); verr != nil {
		return nil, verr
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()
	return h.engine.Recommend(ctx, username)
}

type usernameQuery struct {
	Username string `json:"username" validate:"required,username"`
}

// GetRecommendations handles GET /api/v1/recommendations?username=
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	resp, err := h.recommend(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	logging.Ctx(r.Context()).Debug().
		Str("username", sanitizeLogValue(resp.Metadata.Username)).
		Int("results", len(resp.Recommendations)).
		Msg("recommendations served")
	WriteSuccess(w, r, resp)
}

// RecommendationStats handles GET /api/v1/recommendations/stats.
func (h *Handler) RecommendationStats(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, h.engine.Stats())
}

// legacyError mirrors the body older clients parse.
type legacyError struct {
	Detail string `json:"detail"`
}

// LegacyCareerRecommendation handles GET /career_recommendation?username=
// and returns the bare recommendation list.
func (h *Handler) LegacyCareerRecommendation(w http.ResponseWriter, r *http.Request) {
	resp, err := h.recommend(r)
	if err != nil {
		f := classify(err)
		h.logFailure(r, f, err)
		writeJSON(w, f.status, legacyError{Detail: f.message})
		return
	}
	recs := resp.Recommendations
	if recs == nil {
		recs = []models.Recommendation{}
	}
	writeJSON(w, http.StatusOK, recs)
}

// LegacyCourses handles GET /courses with a bare list; an empty catalog is 404.
func (h *Handler) LegacyCourses(w http.ResponseWriter, r *http.Request) {
	if h.courses == nil {
		writeJSON(w, http.StatusServiceUnavailable, legacyError{Detail: "course store not configured"})
		return
	}
	courses, err := h.courses.ListCourses(r.Context())
	if err != nil {
		f := classify(err)
		h.logFailure(r, f, err)
		writeJSON(w, f.status, legacyError{Detail: f.message})
		return
	}
	if len(courses) == 0 {
		writeJSON(w, http.StatusNotFound, legacyError{Detail: "No courses found"})
		return
	}
	writeJSON(w, http.StatusOK, courses)
}
