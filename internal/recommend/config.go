// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package recommend

import (
	"fmt"
	"runtime"
	"time"

	"github.com/tomtom215/careerpath/internal/recommend/propagation"
)

// Strategy names accepted by Config.Strategy.
const (
	StrategyBaseline = "baseline"
	StrategyGraph    = "graph"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Strategy selects the scoring strategy by name: baseline or graph.
	Strategy string `json:"strategy"`

	// TopK is the maximum number of recommendations returned.
	TopK int `json:"top_k"`

	// Baseline holds the weights of the baseline score.
	Baseline BaselineConfig `json:"baseline"`

	// Epsilon is added to cosine denominators.
	Epsilon float64 `json:"epsilon"`

	// ScoreDecimals rounds final scores; 0 disables rounding.
	ScoreDecimals int `json:"score_decimals"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits"`

	// Propagation contains the embedding training parameters.
	Propagation propagation.Config `json:"propagation"`
}

// BaselineConfig weights the prerequisite overlap against style similarity.
type BaselineConfig struct {
	// PrereqWeight multiplies the prerequisite overlap ratio.
	// Default: 0.6.
	PrereqWeight float64 `json:"prereq_weight"`

	// StyleWeight multiplies the thinking-style cosine similarity.
	// Default: 0.4.
	StyleWeight float64 `json:"style_weight"`

	// OverlapDamping is added to the prerequisite count in the overlap ratio
	// denominator. It keeps the ratio below 1 even at full overlap.
	// Default: 1.
	OverlapDamping float64 `json:"overlap_damping"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// MaxConcurrentPropagations bounds how many trainings run at once.
	// Default: runtime.NumCPU().
	MaxConcurrentPropagations int `json:"max_concurrent_propagations"`

	// FetchTimeout bounds the three profile fetches of one request.
	// Default: 10s.
	FetchTimeout time.Duration `json:"fetch_timeout"`

	// PropagationTimeout bounds waiting for and running one training.
	// Default: 30s.
	PropagationTimeout time.Duration `json:"propagation_timeout"`
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() *Config {
	return &Config{
		Strategy: StrategyBaseline,
		TopK:     5,
		Baseline: BaselineConfig{
			PrereqWeight:   0.6,
			StyleWeight:    0.4,
			OverlapDamping: 1,
		},
		Epsilon:       1e-9,
		ScoreDecimals: 3,
		Limits: LimitsConfig{
			MaxConcurrentPropagations: runtime.NumCPU(),
			FetchTimeout:              10 * time.Second,
			PropagationTimeout:        30 * time.Second,
		},
		Propagation: propagation.DefaultConfig(),
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch c.Strategy {
	case StrategyBaseline, StrategyGraph:
	default:
		return fmt.Errorf("strategy must be %q or %q, got %q", StrategyBaseline, StrategyGraph, c.Strategy)
	}
	if c.TopK < 1 {
		return fmt.Errorf("top_k must be positive, got %d", c.TopK)
	}

	if c.Baseline.PrereqWeight < 0 {
		return fmt.Errorf("baseline.prereq_weight must be non-negative, got %f", c.Baseline.PrereqWeight)
	}
	if c.Baseline.StyleWeight < 0 {
		return fmt.Errorf("baseline.style_weight must be non-negative, got %f", c.Baseline.StyleWeight)
	}
	if c.Baseline.PrereqWeight+c.Baseline.StyleWeight == 0 {
		return fmt.Errorf("baseline weights must not both be zero")
	}
	if c.Baseline.OverlapDamping <= 0 {
		return fmt.Errorf("baseline.overlap_damping must be positive, got %f", c.Baseline.OverlapDamping)
	}

	if c.Epsilon <= 0 {
		return fmt.Errorf("epsilon must be positive, got %g", c.Epsilon)
	}
	if c.ScoreDecimals < 0 || c.ScoreDecimals > 12 {
		return fmt.Errorf("score_decimals must be in [0, 12], got %d", c.ScoreDecimals)
	}

	if c.Limits.MaxConcurrentPropagations < 1 {
		return fmt.Errorf("limits.max_concurrent_propagations must be positive, got %d", c.Limits.MaxConcurrentPropagations)
	}
	if c.Limits.FetchTimeout <= 0 {
		return fmt.Errorf("limits.fetch_timeout must be positive, got %v", c.Limits.FetchTimeout)
	}
	if c.Limits.PropagationTimeout <= 0 {
		return fmt.Errorf("limits.propagation_timeout must be positive, got %v", c.Limits.PropagationTimeout)
	}

	return c.Propagation.Validate()
}

// Clone returns a copy; every field is a value type.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
