// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package recommend

import (
	"context"
	"time"

	"github.com/tomtom215/careerpath/internal/models"
)

// ProfileFetcher loads the three records a recommendation needs.
//
// Absence is not an error: a user without a selection returns an empty slice,
// a user without a thinking style returns nil, and an empty catalog returns an
// empty slice. The engine turns absence into a DataError. Errors are reserved
// for transport and store failures.
type ProfileFetcher interface {
	FetchUserSubjects(ctx context.Context, username string) ([]string, error)
	FetchUserThinkingStyle(ctx context.Context, username string) (*models.ThinkingStyle, error)
	FetchCareerCatalog(ctx context.Context) ([]models.Career, error)
}

// ScoringStrategy scores every catalog career for one request.
type ScoringStrategy interface {
	// Name returns the configuration name of the strategy.
	Name() string

	// NeedsEmbeddings reports whether Score reads ScoreInput.Embeddings.
	NeedsEmbeddings() bool

	// Score returns exactly one score per career, in catalog order.
	Score(ctx context.Context, in *ScoreInput) ([]float64, error)
}

// ScoreInput is everything a strategy may read.
type ScoreInput struct {
	Profile *models.UserProfile
	Catalog []models.Career
	Graph   *Graph

	// Embeddings holds one refined vector per graph node, in node order.
	// Nil unless the strategy needs embeddings.
	Embeddings [][]float64
}

// UserEmbedding returns the refined user vector, or nil without embeddings.
func (in *ScoreInput) UserEmbedding() []float64 {
	if in.Embeddings == nil {
		return nil
	}
	return in.Embeddings[in.Graph.UserIndex()]
}

// CareerEmbedding returns the refined vector of the i-th catalog career, or
// nil without embeddings.
func (in *ScoreInput) CareerEmbedding(i int) []float64 {
	if in.Embeddings == nil {
		return nil
	}
	return in.Embeddings[in.Graph.CareerIndex(i)]
}

// Response is the result of one recommendation request.
type Response struct {
	Recommendations []models.Recommendation `json:"recommendations"`
	Metadata        ResponseMetadata        `json:"metadata"`
}

// ResponseMetadata describes how a response was produced.
type ResponseMetadata struct {
	RequestID       string    `json:"request_id"`
	Username        string    `json:"username"`
	Strategy        string    `json:"strategy"`
	CatalogSize     int       `json:"catalog_size"`
	SubjectNodes    int       `json:"subject_nodes"`
	DroppedSubjects []string  `json:"dropped_subjects,omitempty"`
	CoercedScores   int       `json:"coerced_scores,omitempty"`
	FinalLoss       *float64  `json:"propagation_loss,omitempty"`
	LatencyMS       int64     `json:"latency_ms"`
	Timestamp       time.Time `json:"timestamp"`
}

// Stats is a snapshot of engine counters.
type Stats struct {
	Requests     int64  `json:"requests"`
	Errors       int64  `json:"errors"`
	Propagations int64  `json:"propagations"`
	Strategy     string `json:"strategy"`
}
