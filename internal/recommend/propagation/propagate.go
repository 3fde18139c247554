// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package propagation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"
)

var (
	// ErrEmptyGraph is returned when the input has no nodes.
	ErrEmptyGraph = errors.New("propagation: graph has no nodes")

	// ErrWidthMismatch is returned when node feature vectors differ in width
	// or have zero width.
	ErrWidthMismatch = errors.New("propagation: node feature widths differ")

	// ErrEdgeOutOfRange is returned when an edge references a missing node.
	ErrEdgeOutOfRange = errors.New("propagation: edge references unknown node")

	// ErrNonFinite is returned when the training loss becomes NaN or Inf.
	ErrNonFinite = errors.New("propagation: loss is not finite")
)

// Input is the graph to propagate over.
type Input struct {
	// Features holds one vector per node; all vectors share one width.
	Features [][]float64

	// Edges are (from, to) node index pairs. Direction is ignored.
	Edges [][2]int
}

// Result holds the refined embeddings and training diagnostics.
type Result struct {
	// Embeddings has one vector per input node, in input order, with the
	// input feature width.
	Embeddings [][]float64

	InitialLoss float64
	FinalLoss   float64
	Iterations  int
	Duration    time.Duration
}

// model holds the parameters and the reusable activations of one training run.
type model struct {
	adj *normalizedAdjacency
	x   *dense // input features, N x F
	ax  *dense // Â·X, constant across iterations

	w1 *dense // F x H
	b1 []float64
	w2 *dense // H x F
	b2 []float64

	z1  *dense // pre-activation, N x H
	h1  *dense // ReLU(z1)
	ah  *dense // Â·h1
	out *dense // N x F

	gOut, gAH, gH1 *dense
	gW1, gW2       *dense
	gB1, gB2       []float64
}

// Propagate trains the two-layer model on in and returns the refined
// embeddings. Cancellation is checked between iterations.
func Propagate(ctx context.Context, in Input, cfg Config) (*Result, error) {
	start := time.Now()
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	x, err := featureMatrix(in.Features)
	if err != nil {
		return nil, err
	}
	adj, err := buildAdjacency(x.rows, in.Edges)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // weight init does not need crypto randomness

	m := newModel(adj, x, cfg.HiddenDim, rng)
	optW1, optB1 := newAdam(len(m.w1.data)), newAdam(len(m.b1))
	optW2, optB2 := newAdam(len(m.w2.data)), newAdam(len(m.b2))

	res := &Result{}
	for t := 1; t <= cfg.Iterations; t++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		loss := m.forward()
		if math.IsNaN(loss) || math.IsInf(loss, 0) {
			return nil, fmt.Errorf("%w at iteration %d", ErrNonFinite, t)
		}
		if t == 1 {
			res.InitialLoss = loss
		}

		m.backward()
		optW1.step(m.w1.data, m.gW1.data, t, &cfg)
		optB1.step(m.b1, m.gB1, t, &cfg)
		optW2.step(m.w2.data, m.gW2.data, t, &cfg)
		optB2.step(m.b2, m.gB2, t, &cfg)
		res.Iterations = t
	}

	res.FinalLoss = m.forward()
	if math.IsNaN(res.FinalLoss) || math.IsInf(res.FinalLoss, 0) {
		return nil, fmt.Errorf("%w after training", ErrNonFinite)
	}

	res.Embeddings = make([][]float64, x.rows)
	for i := range res.Embeddings {
		res.Embeddings[i] = append([]float64(nil), m.out.row(i)...)
	}
	res.Duration = time.Since(start)
	return res, nil
}

func featureMatrix(features [][]float64) (*dense, error) {
	if len(features) == 0 {
		return nil, ErrEmptyGraph
	}
	width := len(features[0])
	if width == 0 {
		return nil, fmt.Errorf("%w: node 0 has zero width", ErrWidthMismatch)
	}
	x := newDense(len(features), width)
	for i, f := range features {
		if len(f) != width {
			return nil, fmt.Errorf("%w: node %d has width %d, expected %d", ErrWidthMismatch, i, len(f), width)
		}
		copy(x.row(i), f)
	}
	return x, nil
}

func newModel(adj *normalizedAdjacency, x *dense, hidden int, rng *rand.Rand) *model {
	n, f := x.rows, x.cols
	m := &model{
		adj: adj,
		x:   x,
		ax:  newDense(n, f),
		w1:  newDense(f, hidden),
		b1:  make([]float64, hidden),
		w2:  newDense(hidden, f),
		b2:  make([]float64, f),
		z1:  newDense(n, hidden),
		h1:  newDense(n, hidden),
		ah:  newDense(n, hidden),
		out: newDense(n, f),

		gOut: newDense(n, f),
		gAH:  newDense(n, hidden),
		gH1:  newDense(n, hidden),
		gW1:  newDense(f, hidden),
		gW2:  newDense(hidden, f),
		gB1:  make([]float64, hidden),
		gB2:  make([]float64, f),
	}
	m.w1.glorot(rng)
	m.w2.glorot(rng)
	adj.aggregateInto(m.ax, x)
	return m
}

// forward runs both layers and returns the mean squared reconstruction error.
func (m *model) forward() float64 {
	mulInto(m.z1, m.ax, m.w1, m.b1)
	for i, v := range m.z1.data {
		m.h1.data[i] = math.Max(v, 0)
	}
	m.adj.aggregateInto(m.ah, m.h1)
	mulInto(m.out, m.ah, m.w2, m.b2)

	var sum float64
	for i, v := range m.out.data {
		d := v - m.x.data[i]
		sum += d * d
	}
	return sum / float64(len(m.out.data))
}

// backward fills the parameter gradients for the last forward pass.
func (m *model) backward() {
	scale := 2 / float64(len(m.out.data))
	for i, v := range m.out.data {
		m.gOut.data[i] = scale * (v - m.x.data[i])
	}

	// Layer 2: OUT = AH·W2 + b2
	mulTransAInto(m.gW2, m.ah, m.gOut)
	colSumsInto(m.gB2, m.gOut)
	mulTransBInto(m.gAH, m.gOut, m.w2)

	// AH = Â·H1 and Â is symmetric.
	m.adj.aggregateInto(m.gH1, m.gAH)

	// ReLU gate, in place.
	for i, z := range m.z1.data {
		if z <= 0 {
			m.gH1.data[i] = 0
		}
	}

	// Layer 1: Z1 = AX·W1 + b1
	mulTransAInto(m.gW1, m.ax, m.gH1)
	colSumsInto(m.gB1, m.gH1)
}
