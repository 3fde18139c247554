// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package propagation

import (
	"math"
	"math/rand"
)

// dense is a row-major matrix.
type dense struct {
	rows, cols int
	data       []float64
}

func newDense(rows, cols int) *dense {
	return &dense{rows: rows, cols: cols, data: make([]float64, rows*cols)}
}

func (m *dense) at(i, j int) float64     { return m.data[i*m.cols+j] }
func (m *dense) set(i, j int, v float64) { m.data[i*m.cols+j] = v }
func (m *dense) row(i int) []float64     { return m.data[i*m.cols : (i+1)*m.cols] }

func (m *dense) zero() {
	for i := range m.data {
		m.data[i] = 0
	}
}

// glorot fills m with Glorot-uniform values for a fanIn x fanOut layer.
func (m *dense) glorot(rng *rand.Rand) {
	limit := math.Sqrt(6 / float64(m.rows+m.cols))
	for i := range m.data {
		m.data[i] = (rng.Float64()*2 - 1) * limit
	}
}

// mulInto computes dst = a·b + bias (bias may be nil).
func mulInto(dst, a, b *dense, bias []float64) {
	for i := 0; i < a.rows; i++ {
		out := dst.row(i)
		if bias != nil {
			copy(out, bias)
		} else {
			for j := range out {
				out[j] = 0
			}
		}
		ar := a.row(i)
		for k, av := range ar {
			if av == 0 {
				continue
			}
			br := b.row(k)
			for j, bv := range br {
				out[j] += av * bv
			}
		}
	}
}

// mulTransAInto computes dst = aᵀ·b.
func mulTransAInto(dst, a, b *dense) {
	dst.zero()
	for k := 0; k < a.rows; k++ {
		ar, br := a.row(k), b.row(k)
		for i, av := range ar {
			if av == 0 {
				continue
			}
			out := dst.row(i)
			for j, bv := range br {
				out[j] += av * bv
			}
		}
	}
}

// mulTransBInto computes dst = a·bᵀ.
func mulTransBInto(dst, a, b *dense) {
	for i := 0; i < a.rows; i++ {
		ar, out := a.row(i), dst.row(i)
		for j := 0; j < b.rows; j++ {
			br := b.row(j)
			var sum float64
			for k, av := range ar {
				sum += av * br[k]
			}
			out[j] = sum
		}
	}
}

// colSumsInto writes the column sums of m into dst.
func colSumsInto(dst []float64, m *dense) {
	for j := range dst {
		dst[j] = 0
	}
	for i := 0; i < m.rows; i++ {
		for j, v := range m.row(i) {
			dst[j] += v
		}
	}
}
