// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/careerpath/internal/metrics"
)

func newTestRouter(w *bytes.Buffer, slow time.Duration) http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(AccessLog(zerolog.New(w), slow))
	r.Use(PrometheusMetrics)
	r.Get("/users/{username}/things", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/slow", func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(20 * time.Millisecond)
		_, _ = w.Write([]byte("done"))
	})
	r.Get("/boom", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	return r
}

func TestPrometheusMetricsUsesRoutePattern(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	router := newTestRouter(&buf, 0)

	const pattern = "/users/{username}/things"
	counter := metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, pattern, "418")
	before := testutil.ToFloat64(counter)

	for _, user := range []string{"alice", "bob", "carol"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/"+user+"/things", nil))
		if rec.Code != http.StatusTeapot {
			t.Fatalf("status = %d, want 418", rec.Code)
		}
	}

	if got := testutil.ToFloat64(counter) - before; got != 3 {
		t.Errorf("counter delta = %v, want 3 under one route label", got)
	}
}

func TestPrometheusMetricsUnmatched(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	router := newTestRouter(&buf, 0)

	counter := metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, unmatchedRoute, "404")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("unmatched counter delta = %v, want 1", got)
	}
}

func TestAccessLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		path      string
		threshold time.Duration
		wantLevel string
		wantSlow  bool
	}{
		{"fast request", "/users/a/things", time.Second, `"level":"info"`, false},
		{"slow request", "/slow", 5 * time.Millisecond, `"level":"warn"`, true},
		{"server error", "/boom", 0, `"level":"warn"`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			router := newTestRouter(&buf, tt.threshold)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			line := buf.String()
			if !strings.Contains(line, tt.wantLevel) {
				t.Errorf("log %q missing %s", line, tt.wantLevel)
			}
			if strings.Contains(line, `"slow":true`) != tt.wantSlow {
				t.Errorf("log %q slow flag mismatch", line)
			}
			if !strings.Contains(line, rec.Header().Get(RequestIDHeader)) {
				t.Errorf("log %q missing request id", line)
			}
		})
	}
}

func TestStatusRecorder(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	sr := newStatusRecorder(rec)
	sr.WriteHeader(http.StatusCreated)
	sr.WriteHeader(http.StatusBadRequest)
	_, _ = sr.Write([]byte("abc"))

	if sr.statusCode != http.StatusCreated {
		t.Errorf("statusCode = %d, want first written 201", sr.statusCode)
	}
	if sr.bytes != 3 {
		t.Errorf("bytes = %d, want 3", sr.bytes)
	}
	if sr.Unwrap() != rec {
		t.Error("Unwrap() does not return the wrapped writer")
	}
}
