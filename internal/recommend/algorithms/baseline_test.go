// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package algorithms

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/tomtom215/careerpath/internal/models"
	"github.com/tomtom215/careerpath/internal/recommend"
)

func scoreBaseline(t *testing.T, profile *models.UserProfile, catalog []models.Career) []float64 {
	t.Helper()

	g, err := recommend.BuildGraph(profile, catalog)
	if err != nil {
		t.Fatalf("BuildGraph() error = %v", err)
	}
	scores, err := NewBaseline(BaselineConfig{}).Score(context.Background(), &recommend.ScoreInput{
		Profile: profile,
		Catalog: catalog,
		Graph:   g,
	})
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if len(scores) != len(catalog) {
		t.Fatalf("got %d scores, want %d", len(scores), len(catalog))
	}
	return scores
}

func TestNewBaselineDefaults(t *testing.T) {
	t.Parallel()

	b := NewBaseline(BaselineConfig{})
	if b.prereqWeight != 0.6 || b.styleWeight != 0.4 {
		t.Errorf("weights = %v/%v, want 0.6/0.4", b.prereqWeight, b.styleWeight)
	}
	if b.overlapDamping != 1 {
		t.Errorf("overlapDamping = %v, want 1", b.overlapDamping)
	}
	if b.epsilon != 1e-9 {
		t.Errorf("epsilon = %v, want 1e-9", b.epsilon)
	}

	// A lone zero weight is a valid choice and must survive.
	b = NewBaseline(BaselineConfig{PrereqWeight: 1, StyleWeight: 0})
	if b.styleWeight != 0 {
		t.Errorf("styleWeight = %v, want 0", b.styleWeight)
	}
}

func TestBaselineOverlapRatio(t *testing.T) {
	t.Parallel()

	b := NewBaseline(BaselineConfig{})
	selected := map[string]struct{}{"Math": {}, "Physics": {}}

	tests := []struct {
		name   string
		prereq []string
		want   float64
	}{
		{"no prerequisites", nil, 0},
		{"one of two", []string{"Math", "Chemistry"}, 1.0 / 3},
		{"full overlap stays below one", []string{"Math", "Physics"}, 2.0 / 3},
		{"no overlap", []string{"Art"}, 0},
		{"repeated prerequisite counts twice", []string{"Math", "Math", "Chemistry"}, 2.0 / 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := b.OverlapRatio(tt.prereq, selected)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("OverlapRatio() = %v, want %v", got, tt.want)
			}
			if got < 0 || got >= 1 {
				t.Errorf("OverlapRatio() = %v, outside [0, 1)", got)
			}
		})
	}
}

func TestBaselineScoreCountsRepeatedPrerequisites(t *testing.T) {
	t.Parallel()

	b := NewBaseline(BaselineConfig{})
	in := &recommend.ScoreInput{
		Profile: &models.UserProfile{Username: "dana", SelectedSubjects: []string{"Math"}},
		Catalog: []models.Career{
			{ID: "1", Name: "Actuary", Prerequisites: []string{"Math", "Math", "Physics"}},
		},
	}
	scores, err := b.Score(context.Background(), in)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	// Zero styles make the cosine term 0, leaving 0.6 * 2/4.
	if math.Abs(scores[0]-0.3) > 1e-12 {
		t.Errorf("Score() = %v, want 0.3", scores[0])
	}
}

func TestBaselineScenarioSingleCareer(t *testing.T) {
	t.Parallel()

	profile := &models.UserProfile{
		Username:         "alice",
		SelectedSubjects: []string{"Math"},
		Style:            models.NewThinkingStyle(5, 8, 2, 3, 1),
	}
	catalog := []models.Career{{
		ID:            "CS",
		Name:          "Computer Scientist",
		Prerequisites: []string{"Math", "Physics"},
		Style:         models.NewThinkingStyle(5, 9, 3, 4, 2),
		HasStyle:      true,
	}}

	scores := scoreBaseline(t, profile, catalog)

	cos := 117 / (math.Sqrt(103) * math.Sqrt(135))
	want := 0.6*(1.0/3) + 0.4*cos
	if math.Abs(scores[0]-want) > 1e-6 {
		t.Errorf("score = %v, want %v", scores[0], want)
	}
}

func TestBaselineMissingStyle(t *testing.T) {
	t.Parallel()

	profile := &models.UserProfile{
		Username:         "bob",
		SelectedSubjects: []string{"Biology"},
		Style:            models.NewThinkingStyle(1, 2, 3, 4, 5),
	}
	catalog := []models.Career{
		{ID: "1", Name: "Doctor", Prerequisites: []string{"Biology", "Chemistry"}},
		{ID: "2", Name: "Empty", Prerequisites: nil},
	}

	scores := scoreBaseline(t, profile, catalog)

	if want := 0.6 * (1.0 / 3); math.Abs(scores[0]-want) > 1e-12 {
		t.Errorf("career without style scored %v, want overlap term only %v", scores[0], want)
	}
	if scores[1] != 0 {
		t.Errorf("career without prerequisites or style scored %v, want 0", scores[1])
	}
}

func TestBaselineScoreBounds(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))
	subjects := []string{"Math", "Physics", "Chemistry", "Biology", "Art", "History"}
	randomStyle := func() models.ThinkingStyle {
		var s models.ThinkingStyle
		for i := range s {
			if rng.Intn(4) > 0 {
				s[i] = rng.Float64() * 10
			}
		}
		return s
	}

	for trial := 0; trial < 200; trial++ {
		catalog := make([]models.Career, 1+rng.Intn(8))
		for i := range catalog {
			n := 1 + rng.Intn(4)
			prereq := make([]string, n)
			for j := range prereq {
				prereq[j] = subjects[rng.Intn(len(subjects))]
			}
			catalog[i] = models.Career{ID: string(rune('a' + i)), Prerequisites: prereq, Style: randomStyle()}
		}
		profile := &models.UserProfile{
			Username:         "u",
			SelectedSubjects: []string{subjects[rng.Intn(len(subjects))], subjects[rng.Intn(len(subjects))]},
			Style:            randomStyle(),
		}

		for i, s := range scoreBaseline(t, profile, catalog) {
			if s < -0.4 || s > 1.0 || math.IsNaN(s) {
				t.Fatalf("trial %d career %d: score %v outside [-0.4, 1]", trial, i, s)
			}
		}
	}
}

func TestBaselineCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewBaseline(BaselineConfig{}).Score(ctx, &recommend.ScoreInput{})
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
