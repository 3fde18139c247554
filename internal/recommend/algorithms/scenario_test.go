// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package algorithms

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/careerpath/internal/models"
	"github.com/tomtom215/careerpath/internal/recommend"
)

// staticFetcher serves one user and one catalog.
type staticFetcher struct {
	subjects []string
	style    *models.ThinkingStyle
	catalog  []models.Career
}

func (f *staticFetcher) FetchUserSubjects(_ context.Context, _ string) ([]string, error) {
	return f.subjects, nil
}

func (f *staticFetcher) FetchUserThinkingStyle(_ context.Context, _ string) (*models.ThinkingStyle, error) {
	return f.style, nil
}

func (f *staticFetcher) FetchCareerCatalog(_ context.Context) ([]models.Career, error) {
	return f.catalog, nil
}

func newEngine(t *testing.T, strategy string, seed int64, f recommend.ProfileFetcher) *recommend.Engine {
	t.Helper()

	cfg := recommend.DefaultConfig()
	cfg.Strategy = strategy
	cfg.Propagation.Seed = seed
	e, err := recommend.NewEngine(cfg, f, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	s, err := New("", cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	e.SetStrategy(s)
	return e
}

func styleOf(v ...float64) *models.ThinkingStyle {
	s := models.NewThinkingStyle(v[0], v[1], v[2], v[3], v[4])
	return &s
}

func checkValid(t *testing.T, recs []models.Recommendation, catalogSize int, strategy string) {
	t.Helper()

	want := catalogSize
	if want > 5 {
		want = 5
	}
	if len(recs) != want {
		t.Fatalf("got %d recommendations, want %d", len(recs), want)
	}
	seen := make(map[string]bool)
	for i, r := range recs {
		if seen[r.CareerID] {
			t.Errorf("duplicate career id %q", r.CareerID)
		}
		seen[r.CareerID] = true
		if math.IsNaN(r.FinalScore) || math.IsInf(r.FinalScore, 0) {
			t.Errorf("non-finite score %v", r.FinalScore)
		}
		if strategy == recommend.StrategyBaseline && (r.FinalScore < -0.4 || r.FinalScore > 1) {
			t.Errorf("baseline score %v outside [-0.4, 1]", r.FinalScore)
		}
		if i > 0 && r.FinalScore > recs[i-1].FinalScore {
			t.Errorf("scores not descending at %d: %v > %v", i, r.FinalScore, recs[i-1].FinalScore)
		}
	}
}

func TestScenarioSingleCareer(t *testing.T) {
	t.Parallel()

	f := &staticFetcher{
		subjects: []string{"Math"},
		style:    styleOf(5, 8, 2, 3, 1),
		catalog: []models.Career{{
			ID: "CS", Name: "Computer Scientist",
			Prerequisites: []string{"Math", "Physics"},
			Style:         models.NewThinkingStyle(5, 9, 3, 4, 2), HasStyle: true,
		}},
	}
	resp, err := newEngine(t, recommend.StrategyBaseline, 42, f).Recommend(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	checkValid(t, resp.Recommendations, 1, recommend.StrategyBaseline)

	want := 0.6*(1.0/3) + 0.4*117/(math.Sqrt(103)*math.Sqrt(135))
	got := resp.Recommendations[0]
	if got.CareerID != "CS" {
		t.Errorf("career = %q, want CS", got.CareerID)
	}
	if math.Abs(got.FinalScore-want) > 5e-4 {
		t.Errorf("score = %v, want ~%v", got.FinalScore, want)
	}
}

func TestScenarioFullOverlapRanksFirst(t *testing.T) {
	t.Parallel()

	far := models.NewThinkingStyle(0, 0, 0, 0, 5)
	f := &staticFetcher{
		subjects: []string{"Math", "Physics", "Chemistry"},
		style:    styleOf(9, 0, 0, 0, 0),
		catalog: []models.Career{
			{ID: "z1", Prerequisites: []string{"Art"}, Style: far, HasStyle: true},
			{ID: "m1", Prerequisites: []string{"Math"}, Style: far, HasStyle: true},
			{ID: "z2", Prerequisites: []string{"History"}, Style: far, HasStyle: true},
			{ID: "m2", Prerequisites: []string{"Math", "Physics"}, Style: far, HasStyle: true},
			{ID: "z3", Prerequisites: []string{"Music", "Art"}, Style: far, HasStyle: true},
			{ID: "m3", Prerequisites: []string{"Chemistry", "Physics"}, Style: far, HasStyle: true},
			{ID: "z4", Prerequisites: []string{"Latin"}, Style: far, HasStyle: true},
		},
	}
	cfg := recommend.DefaultConfig()
	cfg.TopK = len(f.catalog)
	engine, err := recommend.NewEngine(cfg, f, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	engine.SetStrategy(NewBaseline(BaselineConfig{}))

	resp, err := engine.Recommend(context.Background(), "bob")
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	recs := resp.Recommendations
	if len(recs) != 7 {
		t.Fatalf("got %d recommendations, want 7", len(recs))
	}
	for i := 0; i < 3; i++ {
		if recs[i].CareerID[0] != 'm' {
			t.Errorf("rank %d = %q, want a fully overlapping career", i, recs[i].CareerID)
		}
	}
	// Zero-score ties keep catalog order.
	for i, want := range []string{"z1", "z2", "z3", "z4"} {
		if recs[3+i].CareerID != want {
			t.Errorf("rank %d = %q, want %q", 3+i, recs[3+i].CareerID, want)
		}
	}
}

func TestScenarioMissingCareerStyle(t *testing.T) {
	t.Parallel()

	f := &staticFetcher{
		subjects: []string{"Biology"},
		style:    styleOf(1, 2, 3, 4, 5),
		catalog: []models.Career{
			{ID: "doc", Name: "Doctor", Prerequisites: []string{"Biology", "Chemistry"}},
			{ID: "eng", Name: "Engineer", Prerequisites: []string{"Math"}, Style: models.NewThinkingStyle(1, 2, 3, 4, 5), HasStyle: true},
		},
	}
	resp, err := newEngine(t, recommend.StrategyBaseline, 42, f).Recommend(context.Background(), "carol")
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	checkValid(t, resp.Recommendations, 2, recommend.StrategyBaseline)

	for _, r := range resp.Recommendations {
		if r.CareerID == "doc" && r.FinalScore != 0.2 {
			t.Errorf("styleless career score = %v, want 0.2", r.FinalScore)
		}
	}
}

func TestScenarioConcurrentSameUser(t *testing.T) {
	t.Parallel()

	f := &staticFetcher{
		subjects: []string{"Math", "Physics"},
		style:    styleOf(5, 8, 2, 3, 1),
		catalog: []models.Career{
			{ID: "cs", Prerequisites: []string{"Math", "Physics"}, Style: models.NewThinkingStyle(5, 9, 3, 4, 2), HasStyle: true},
			{ID: "stat", Prerequisites: []string{"Math"}, Style: models.NewThinkingStyle(2, 7, 6, 1, 1), HasStyle: true},
			{ID: "art", Prerequisites: []string{"Art"}, Style: models.NewThinkingStyle(1, 1, 2, 3, 9), HasStyle: true},
		},
	}

	for _, strategy := range []string{recommend.StrategyBaseline, recommend.StrategyGraph} {
		e := newEngine(t, strategy, 0, f)

		var wg sync.WaitGroup
		results := make([]*recommend.Response, 2)
		errs := make([]error, 2)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i], errs[i] = e.Recommend(context.Background(), "dave")
			}(i)
		}
		wg.Wait()

		for i := range results {
			if errs[i] != nil {
				t.Fatalf("%s request %d: %v", strategy, i, errs[i])
			}
			checkValid(t, results[i].Recommendations, len(f.catalog), strategy)
		}
	}
}

func TestScenarioGraphDeterministicWithSeed(t *testing.T) {
	t.Parallel()

	f := &staticFetcher{
		subjects: []string{"Math"},
		style:    styleOf(5, 8, 2, 3, 1),
		catalog: []models.Career{
			{ID: "cs", Prerequisites: []string{"Math", "Physics"}, Style: models.NewThinkingStyle(5, 9, 3, 4, 2), HasStyle: true},
			{ID: "stat", Prerequisites: []string{"Math"}, Style: models.NewThinkingStyle(2, 7, 6, 1, 1), HasStyle: true},
		},
	}
	e := newEngine(t, recommend.StrategyGraph, 42, f)

	first, err := e.Recommend(context.Background(), "erin")
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	second, err := e.Recommend(context.Background(), "erin")
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	for i := range first.Recommendations {
		if first.Recommendations[i] != second.Recommendations[i] {
			t.Errorf("rank %d differs: %+v vs %+v", i, first.Recommendations[i], second.Recommendations[i])
		}
	}
	if first.Metadata.FinalLoss == nil {
		t.Error("graph response carries no propagation loss")
	}
}

func TestScenarioDegenerateInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		fetcher *staticFetcher
		reason  error
	}{
		{
			name:    "empty catalog",
			fetcher: &staticFetcher{subjects: []string{"Math"}, style: styleOf(1, 1, 1, 1, 1)},
			reason:  recommend.ErrNoCatalog,
		},
		{
			name:    "no selection",
			fetcher: &staticFetcher{style: styleOf(1, 1, 1, 1, 1), catalog: []models.Career{{ID: "a"}}},
			reason:  recommend.ErrNoSelection,
		},
		{
			name:    "no thinking style",
			fetcher: &staticFetcher{subjects: []string{"Math"}, catalog: []models.Career{{ID: "a", Prerequisites: []string{"Math"}}}},
			reason:  recommend.ErrNoThinkingStyle,
		},
		{
			name: "no prerequisites anywhere",
			fetcher: &staticFetcher{
				subjects: []string{"Math"},
				style:    styleOf(1, 1, 1, 1, 1),
				catalog:  []models.Career{{ID: "a"}, {ID: "b"}},
			},
			reason: recommend.ErrDegenerateGraph,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := newEngine(t, recommend.StrategyBaseline, 42, tt.fetcher).Recommend(context.Background(), "frank")
			if !recommend.IsDataError(err) {
				t.Fatalf("error = %v, want DataError", err)
			}
			if !errors.Is(err, tt.reason) {
				t.Errorf("error = %v, want reason %v", err, tt.reason)
			}
		})
	}
}
