// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package recommend

import "math"

// CosineSimilarity returns a·b / (|a||b| + eps).
//
// A zero-norm vector on either side yields 0, never NaN. Vectors of different
// length are compared over their common prefix.
func CosineSimilarity(a, b []float64, eps float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	sim := dot / (math.Sqrt(normA)*math.Sqrt(normB) + eps)
	// Clamp rounding error at the edges.
	switch {
	case sim > 1:
		return 1
	case sim < -1:
		return -1
	}
	return sim
}
