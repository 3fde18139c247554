// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of API requests currently being processed",
		},
	)

	// Recommendation Metrics
	RecommendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total recommendation requests by strategy and outcome",
		},
		[]string{"strategy", "outcome"}, // outcome: ok, data_error, computation_error, fetch_error, cancelled
	)

	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "End-to-end recommendation latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"strategy"},
	)

	RecommendCoercedScores = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_coerced_scores_total",
			Help: "Scores that were NaN or infinite and coerced to zero",
		},
	)

	RecommendDroppedSubjects = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_dropped_subjects_total",
			Help: "Selected subjects dropped because no career requires them",
		},
	)

	RecommendGraphNodes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_graph_nodes",
			Help:    "Number of nodes in request graphs",
			Buckets: prometheus.ExponentialBuckets(4, 2, 10),
		},
	)

	// Propagation Metrics
	PropagationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "propagation_duration_seconds",
			Help:    "Embedding training time per request in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	PropagationFinalLoss = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "propagation_final_loss",
			Help:    "Reconstruction loss after the last training iteration",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		},
	)

	PropagationInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "propagation_in_flight",
			Help: "Trainings currently holding a worker pool slot",
		},
	)

	PropagationQueueWait = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "propagation_queue_wait_seconds",
			Help:    "Time spent waiting for a worker pool slot",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	// Profile Fetch Metrics
	FetchRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profile_fetch_requests_total",
			Help: "Profile store calls by operation and outcome",
		},
		[]string{"store", "operation", "outcome"},
	)

	FetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "profile_fetch_duration_seconds",
			Help:    "Profile store call latency in seconds, retries included",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"store", "operation"},
	)

	FetchRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profile_fetch_retries_total",
			Help: "Retries of failed profile store calls",
		},
		[]string{"store", "operation"},
	)

	FetchCircuitState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "profile_fetch_circuit_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"store"},
	)

	FetchCircuitTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profile_fetch_circuit_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"store", "from", "to"},
	)

	FetchRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profile_fetch_rejected_total",
			Help: "Store calls rejected by an open circuit breaker",
		},
		[]string{"store"},
	)

	CatalogCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_cache_hits_total",
			Help: "Career catalog reads served from cache",
		},
	)

	CatalogCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_cache_misses_total",
			Help: "Career catalog reads that went to the store",
		},
	)

	CatalogSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_size",
			Help: "Number of careers in the last fetched catalog",
		},
	)

	SkippedCareerRows = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_skipped_rows_total",
			Help: "Career rows rejected by validation",
		},
	)
)

// RecordAPIRequest records one HTTP request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight API gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records one finished recommendation request.
func RecordRecommendation(strategy, outcome string, duration time.Duration) {
	RecommendRequestsTotal.WithLabelValues(strategy, outcome).Inc()
	RecommendDuration.WithLabelValues(strategy).Observe(duration.Seconds())
}

// RecordPropagation records one finished training run.
func RecordPropagation(duration time.Duration, finalLoss float64) {
	PropagationDuration.Observe(duration.Seconds())
	PropagationFinalLoss.Observe(finalLoss)
}

// RecordFetch records one store call, retries included.
func RecordFetch(store, operation string, duration time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	FetchRequestsTotal.WithLabelValues(store, operation, outcome).Inc()
	FetchDuration.WithLabelValues(store, operation).Observe(duration.Seconds())
}

// Circuit breaker states as exported by FetchCircuitState.
const (
	CircuitClosed   = 0
	CircuitHalfOpen = 1
	CircuitOpen     = 2
)

// SetCircuitState publishes the breaker state of a store.
func SetCircuitState(store string, state int) {
	FetchCircuitState.WithLabelValues(store).Set(float64(state))
}
