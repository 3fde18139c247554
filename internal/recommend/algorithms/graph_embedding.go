// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package algorithms

import (
	"context"
	"errors"

	"github.com/tomtom215/careerpath/internal/recommend"
)

// errNoEmbeddings is returned when Score runs without propagated vectors.
var errNoEmbeddings = errors.New("graph strategy requires node embeddings")

// GraphEmbedding scores each career by the cosine similarity between the
// refined user embedding and the refined career embedding. Prerequisite
// connectivity is already encoded by propagation, so there is no overlap term.
type GraphEmbedding struct {
	epsilon float64
}

// NewGraphEmbedding creates a graph strategy.
func NewGraphEmbedding(epsilon float64) *GraphEmbedding {
	if epsilon <= 0 {
		epsilon = 1e-9
	}
	return &GraphEmbedding{epsilon: epsilon}
}

// Name returns the configuration name.
func (g *GraphEmbedding) Name() string {
	return recommend.StrategyGraph
}

// NeedsEmbeddings is true.
func (g *GraphEmbedding) NeedsEmbeddings() bool {
	return true
}

// Score returns one score per catalog career.
func (g *GraphEmbedding) Score(ctx context.Context, in *recommend.ScoreInput) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if in.Embeddings == nil || in.Graph == nil {
		return nil, errNoEmbeddings
	}
	if len(in.Embeddings) != len(in.Graph.Nodes) {
		return nil, errors.New("embedding count does not match graph node count")
	}

	user := in.UserEmbedding()
	scores := make([]float64, len(in.Catalog))
	for i := range in.Catalog {
		scores[i] = recommend.CosineSimilarity(user, in.CareerEmbedding(i), g.epsilon)
	}
	return scores, nil
}
