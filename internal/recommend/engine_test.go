// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package recommend

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/careerpath/internal/logging"
	"github.com/tomtom215/careerpath/internal/models"
)

// stubStrategy returns fixed scores, or calls fn when set.
type stubStrategy struct {
	name       string
	embeddings bool
	fn         func(in *ScoreInput) ([]float64, error)
}

func (s *stubStrategy) Name() string          { return s.name }
func (s *stubStrategy) NeedsEmbeddings() bool { return s.embeddings }
func (s *stubStrategy) Score(_ context.Context, in *ScoreInput) ([]float64, error) {
	return s.fn(in)
}

// mockFetcher serves configurable results for every user.
type mockFetcher struct {
	subjects   []string
	style      *models.ThinkingStyle
	catalog    []models.Career
	err        error
	catalogErr error
	delay      time.Duration
}

func (m *mockFetcher) FetchUserSubjects(ctx context.Context, _ string) ([]string, error) {
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return m.subjects, m.err
}

func (m *mockFetcher) FetchUserThinkingStyle(_ context.Context, _ string) (*models.ThinkingStyle, error) {
	return m.style, m.err
}

func (m *mockFetcher) FetchCareerCatalog(_ context.Context) ([]models.Career, error) {
	if m.catalogErr != nil {
		return nil, m.catalogErr
	}
	return m.catalog, m.err
}

func defaultFetcher() *mockFetcher {
	style := models.NewThinkingStyle(5, 8, 2, 3, 1)
	return &mockFetcher{
		subjects: []string{"Math", "Math", "Physics"},
		style:    &style,
		catalog:  testCatalog(),
	}
}

func constantScores(v ...float64) *stubStrategy {
	return &stubStrategy{
		name: "stub",
		fn: func(in *ScoreInput) ([]float64, error) {
			return v[:len(in.Catalog)], nil
		},
	}
}

func newTestEngine(t *testing.T, f ProfileFetcher, s ScoringStrategy) *Engine {
	t.Helper()
	e, err := NewEngine(nil, f, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	if s != nil {
		e.SetStrategy(s)
	}
	return e
}

func TestNewEngineRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.TopK = 0
	if _, err := NewEngine(cfg, nil, zerolog.Nop()); err == nil {
		t.Fatal("NewEngine() = nil error for invalid config")
	}
}

func TestRecommendRanksAndReports(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, defaultFetcher(), constantScores(0.2, 0.8, 0.5))

	ctx := logging.ContextWithRequestID(context.Background(), "req-123")
	resp, err := e.Recommend(ctx, "alice")
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	got := ids(resp.Recommendations)
	want := []string{"stat", "chef", "cs"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ids = %v, want %v", got, want)
		}
	}

	md := resp.Metadata
	if md.RequestID != "req-123" {
		t.Errorf("RequestID = %q, want req-123", md.RequestID)
	}
	if md.Username != "alice" || md.Strategy != "stub" {
		t.Errorf("metadata = %+v", md)
	}
	if md.CatalogSize != 3 || md.SubjectNodes != 2 {
		t.Errorf("catalog/subjects = %d/%d, want 3/2", md.CatalogSize, md.SubjectNodes)
	}
	if md.FinalLoss != nil {
		t.Error("FinalLoss set for a strategy without embeddings")
	}

	stats := e.Stats()
	if stats.Requests != 1 || stats.Errors != 0 || stats.Strategy != "stub" {
		t.Errorf("Stats() = %+v", stats)
	}
}

func TestRecommendDeduplicatesSelection(t *testing.T) {
	t.Parallel()

	var seen []string
	s := &stubStrategy{name: "stub", fn: func(in *ScoreInput) ([]float64, error) {
		seen = in.Profile.SelectedSubjects
		return make([]float64, len(in.Catalog)), nil
	}}
	e := newTestEngine(t, defaultFetcher(), s)
	if _, err := e.Recommend(context.Background(), "alice"); err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(seen) != 2 || seen[0] != "Math" || seen[1] != "Physics" {
		t.Errorf("SelectedSubjects = %v, want [Math Physics]", seen)
	}
}

func TestRecommendWithEmbeddings(t *testing.T) {
	t.Parallel()

	var width, count int
	s := &stubStrategy{name: "emb", embeddings: true, fn: func(in *ScoreInput) ([]float64, error) {
		count = len(in.Embeddings)
		width = len(in.UserEmbedding())
		out := make([]float64, len(in.Catalog))
		for i := range out {
			out[i] = CosineSimilarity(in.UserEmbedding(), in.CareerEmbedding(i), 1e-9)
		}
		return out, nil
	}}
	e := newTestEngine(t, defaultFetcher(), s)

	resp, err := e.Recommend(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if count != 6 || width != models.StyleDimensions {
		t.Errorf("embeddings = %d x %d, want 6 x %d", count, width, models.StyleDimensions)
	}
	if resp.Metadata.FinalLoss == nil || math.IsNaN(*resp.Metadata.FinalLoss) {
		t.Error("FinalLoss missing for embedding strategy")
	}
	if e.Stats().Propagations != 1 {
		t.Errorf("Propagations = %d, want 1", e.Stats().Propagations)
	}
}

func TestRecommendErrors(t *testing.T) {
	t.Parallel()

	storeDown := errors.New("connection refused")

	tests := []struct {
		name     string
		fetcher  *mockFetcher
		strategy ScoringStrategy
		check    func(error) bool
	}{
		{
			name:     "no strategy",
			fetcher:  defaultFetcher(),
			strategy: nil,
			check:    func(err error) bool { return IsComputationError(err) && errors.Is(err, ErrNoStrategy) },
		},
		{
			name: "store failure",
			fetcher: func() *mockFetcher {
				f := defaultFetcher()
				f.catalogErr = storeDown
				return f
			}(),
			strategy: constantScores(0, 0, 0),
			check:    func(err error) bool { return IsFetchError(err) && errors.Is(err, storeDown) },
		},
		{
			name: "missing style",
			fetcher: func() *mockFetcher {
				f := defaultFetcher()
				f.style = nil
				return f
			}(),
			strategy: constantScores(0, 0, 0),
			check:    func(err error) bool { return IsDataError(err) && errors.Is(err, ErrNoThinkingStyle) },
		},
		{
			name:     "strategy failure",
			fetcher:  defaultFetcher(),
			strategy: &stubStrategy{name: "bad", fn: func(*ScoreInput) ([]float64, error) { return nil, errors.New("boom") }},
			check:    IsComputationError,
		},
		{
			name:     "wrong score count",
			fetcher:  defaultFetcher(),
			strategy: &stubStrategy{name: "short", fn: func(*ScoreInput) ([]float64, error) { return []float64{1}, nil }},
			check:    IsComputationError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := newTestEngine(t, tt.fetcher, tt.strategy)
			_, err := e.Recommend(context.Background(), "alice")
			if err == nil {
				t.Fatal("Recommend() = nil error")
			}
			if !tt.check(err) {
				t.Errorf("unexpected error %T: %v", err, err)
			}
			if e.Stats().Errors != 1 {
				t.Errorf("Errors = %d, want 1", e.Stats().Errors)
			}
		})
	}
}

func TestRecommendFetchTimeout(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Limits.FetchTimeout = 20 * time.Millisecond
	f := defaultFetcher()
	f.delay = time.Second

	e, err := NewEngine(cfg, f, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	e.SetStrategy(constantScores(0, 0, 0))

	_, err = e.Recommend(context.Background(), "alice")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want deadline exceeded", err)
	}
}

func TestRecommendProfile(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil, constantScores(0.1, 0.1, 0.9))
	profile := &models.UserProfile{Username: "bob", SelectedSubjects: []string{"Physics"}}

	resp, err := e.RecommendProfile(context.Background(), profile, testCatalog())
	if err != nil {
		t.Fatalf("RecommendProfile() error = %v", err)
	}
	if resp.Recommendations[0].CareerID != "chef" {
		t.Errorf("top = %q, want chef", resp.Recommendations[0].CareerID)
	}
	if resp.Metadata.RequestID == "" {
		t.Error("RequestID not generated")
	}

	if _, err := e.Recommend(context.Background(), "bob"); !IsFetchError(err) {
		t.Errorf("Recommend() without fetcher error = %v, want FetchError", err)
	}
}
