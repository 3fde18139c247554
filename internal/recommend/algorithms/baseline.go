// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package algorithms

import (
	"context"

	"github.com/tomtom215/careerpath/internal/recommend"
)

// Baseline scores careers without propagation:
//
//	score = w_prereq * |P ∩ S| / (|P| + damping) + w_style * cos(user_style, career_style)
//
// where P is the career's prerequisite list as stored, repeats included, and
// S the selected subjects.
// The damping term keeps the overlap ratio below 1 even at full overlap. A
// career with no prerequisites has ratio 0; a career without a style vector
// has cosine 0.
type Baseline struct {
	prereqWeight   float64
	styleWeight    float64
	overlapDamping float64
	epsilon        float64
}

// BaselineConfig contains configuration for the baseline strategy.
type BaselineConfig struct {
	PrereqWeight   float64
	StyleWeight    float64
	OverlapDamping float64
	Epsilon        float64
}

// NewBaseline creates a baseline strategy. Zero fields take the reference
// values 0.6, 0.4, 1 and 1e-9.
func NewBaseline(cfg BaselineConfig) *Baseline {
	if cfg.PrereqWeight == 0 && cfg.StyleWeight == 0 {
		cfg.PrereqWeight = 0.6
		cfg.StyleWeight = 0.4
	}
	if cfg.OverlapDamping <= 0 {
		cfg.OverlapDamping = 1
	}
	if cfg.Epsilon <= 0 {
		cfg.Epsilon = 1e-9
	}

	return &Baseline{
		prereqWeight:   cfg.PrereqWeight,
		styleWeight:    cfg.StyleWeight,
		overlapDamping: cfg.OverlapDamping,
		epsilon:        cfg.Epsilon,
	}
}

// Name returns the configuration name.
func (b *Baseline) Name() string {
	return recommend.StrategyBaseline
}

// NeedsEmbeddings is false; baseline reads raw styles only.
func (b *Baseline) NeedsEmbeddings() bool {
	return false
}

// Score returns one score per catalog career.
func (b *Baseline) Score(ctx context.Context, in *recommend.ScoreInput) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	selected := in.Profile.SubjectSet()
	userStyle := in.Profile.Style.Vector()

	scores := make([]float64, len(in.Catalog))
	for i := range in.Catalog {
		career := &in.Catalog[i]
		scores[i] = b.prereqWeight*b.overlapRatio(career.Prerequisites, selected) +
			b.styleWeight*recommend.CosineSimilarity(userStyle, career.Style.Vector(), b.epsilon)
	}
	return scores, nil
}

// OverlapRatio exposes the damped overlap ratio for diagnostics and tests.
func (b *Baseline) OverlapRatio(prerequisites []string, selected map[string]struct{}) float64 {
	return b.overlapRatio(prerequisites, selected)
}

func (b *Baseline) overlapRatio(prerequisites []string, selected map[string]struct{}) float64 {
	if len(prerequisites) == 0 {
		return 0
	}
	matched := 0
	for _, p := range prerequisites {
		if _, ok := selected[p]; ok {
			matched++
		}
	}
	return float64(matched) / (float64(len(prerequisites)) + b.overlapDamping)
}
