// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package propagation

import "fmt"

// Config holds training parameters.
type Config struct {
	// HiddenDim is the width of the first layer.
	// Default: 16.
	HiddenDim int `json:"hidden_dim" koanf:"hidden_dim"`

	// Iterations is the fixed number of optimiser steps.
	// Default: 100.
	Iterations int `json:"iterations" koanf:"iterations"`

	// LearningRate is the Adam step size.
	// Default: 0.01.
	LearningRate float64 `json:"learning_rate" koanf:"learning_rate"`

	// Beta1 and Beta2 are the Adam moment decay rates.
	// Default: 0.9 and 0.999.
	Beta1 float64 `json:"beta1" koanf:"beta1"`
	Beta2 float64 `json:"beta2" koanf:"beta2"`

	// AdamEpsilon guards the Adam update denominator.
	// Default: 1e-8.
	AdamEpsilon float64 `json:"adam_epsilon" koanf:"adam_epsilon"`

	// Seed initialises the weight RNG. Zero seeds from the clock on every call.
	// Default: 42.
	Seed int64 `json:"seed" koanf:"seed"`
}

// DefaultConfig returns the reference training parameters.
func DefaultConfig() Config {
	return Config{
		HiddenDim:    16,
		Iterations:   100,
		LearningRate: 0.01,
		Beta1:        0.9,
		Beta2:        0.999,
		AdamEpsilon:  1e-8,
		Seed:         42,
	}
}

// withDefaults fills zero fields from DefaultConfig for direct Propagate
// callers. Validate rejects zero everywhere except Seed, which is left alone
// since zero is meaningful.
//
//nolint:gocritic // value receiver keeps the caller's config untouched
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.HiddenDim == 0 {
		c.HiddenDim = d.HiddenDim
	}
	if c.Iterations == 0 {
		c.Iterations = d.Iterations
	}
	if c.LearningRate == 0 {
		c.LearningRate = d.LearningRate
	}
	if c.Beta1 == 0 {
		c.Beta1 = d.Beta1
	}
	if c.Beta2 == 0 {
		c.Beta2 = d.Beta2
	}
	if c.AdamEpsilon == 0 {
		c.AdamEpsilon = d.AdamEpsilon
	}
	return c
}

// Validate checks that every parameter is usable.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (c Config) Validate() error {
	if c.HiddenDim < 1 {
		return fmt.Errorf("propagation.hidden_dim must be positive, got %d", c.HiddenDim)
	}
	if c.Iterations < 1 {
		return fmt.Errorf("propagation.iterations must be positive, got %d", c.Iterations)
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("propagation.learning_rate must be positive, got %f", c.LearningRate)
	}
	if c.Beta1 <= 0 || c.Beta1 >= 1 {
		return fmt.Errorf("propagation.beta1 must be in (0, 1), got %f", c.Beta1)
	}
	if c.Beta2 <= 0 || c.Beta2 >= 1 {
		return fmt.Errorf("propagation.beta2 must be in (0, 1), got %f", c.Beta2)
	}
	if c.AdamEpsilon <= 0 {
		return fmt.Errorf("propagation.adam_epsilon must be positive, got %g", c.AdamEpsilon)
	}
	return nil
}
