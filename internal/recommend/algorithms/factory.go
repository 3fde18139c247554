// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package algorithms

import (
	"fmt"

	"github.com/tomtom215/careerpath/internal/recommend"
)

// Compile-time interface checks.
var (
	_ recommend.ScoringStrategy = (*Baseline)(nil)
	_ recommend.ScoringStrategy = (*GraphEmbedding)(nil)
)

// New returns the strategy selected by cfg.Strategy, or by name when name is
// not empty.
func New(name string, cfg *recommend.Config) (recommend.ScoringStrategy, error) {
	if cfg == nil {
		cfg = recommend.DefaultConfig()
	}
	if name == "" {
		name = cfg.Strategy
	}

	switch name {
	case recommend.StrategyBaseline:
		return NewBaseline(BaselineConfig{
			PrereqWeight:   cfg.Baseline.PrereqWeight,
			StyleWeight:    cfg.Baseline.StyleWeight,
			OverlapDamping: cfg.Baseline.OverlapDamping,
			Epsilon:        cfg.Epsilon,
		}), nil
	case recommend.StrategyGraph:
		return NewGraphEmbedding(cfg.Epsilon), nil
	default:
		return nil, fmt.Errorf("unknown scoring strategy %q", name)
	}
}
