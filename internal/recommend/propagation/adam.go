// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package propagation

import "math"

// adam keeps first and second moment estimates for one parameter tensor.
type adam struct {
	m, v []float64
}

func newAdam(size int) *adam {
	return &adam{m: make([]float64, size), v: make([]float64, size)}
}

// step applies one bias-corrected Adam update to params. t starts at 1.
func (a *adam) step(params, grads []float64, t int, cfg *Config) {
	c1 := 1 - math.Pow(cfg.Beta1, float64(t))
	c2 := 1 - math.Pow(cfg.Beta2, float64(t))
	for i, g := range grads {
		a.m[i] = cfg.Beta1*a.m[i] + (1-cfg.Beta1)*g
		a.v[i] = cfg.Beta2*a.v[i] + (1-cfg.Beta2)*g*g
		mHat := a.m[i] / c1
		vHat := a.v[i] / c2
		params[i] -= cfg.LearningRate * mHat / (math.Sqrt(vHat) + cfg.AdamEpsilon)
	}
}
