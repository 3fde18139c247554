// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package propagation

import (
	"fmt"
	"math"
	"sort"
)

type neighbor struct {
	node   int
	weight float64
}

// normalizedAdjacency is Â = D^-1/2 (A + I) D^-1/2 in adjacency-list form.
// Â is symmetric, so it is also its own transpose for the backward pass.
type normalizedAdjacency struct {
	lists [][]neighbor
}

func buildAdjacency(n int, edges [][2]int) (*normalizedAdjacency, error) {
	sets := make([]map[int]struct{}, n)
	for i := range sets {
		sets[i] = map[int]struct{}{i: {}}
	}
	for _, e := range edges {
		from, to := e[0], e[1]
		if from < 0 || from >= n || to < 0 || to >= n {
			return nil, fmt.Errorf("%w: (%d, %d) with %d nodes", ErrEdgeOutOfRange, from, to, n)
		}
		sets[from][to] = struct{}{}
		sets[to][from] = struct{}{}
	}

	invSqrtDeg := make([]float64, n)
	for i, s := range sets {
		invSqrtDeg[i] = 1 / math.Sqrt(float64(len(s)))
	}

	lists := make([][]neighbor, n)
	for i, s := range sets {
		nbrs := make([]int, 0, len(s))
		for j := range s {
			nbrs = append(nbrs, j)
		}
		// Fixed summation order keeps results bit-identical across runs.
		sort.Ints(nbrs)

		list := make([]neighbor, len(nbrs))
		for k, j := range nbrs {
			list[k] = neighbor{node: j, weight: invSqrtDeg[i] * invSqrtDeg[j]}
		}
		lists[i] = list
	}
	return &normalizedAdjacency{lists: lists}, nil
}

// aggregateInto computes dst = Â·src.
func (a *normalizedAdjacency) aggregateInto(dst, src *dense) {
	for i, list := range a.lists {
		out := dst.row(i)
		for j := range out {
			out[j] = 0
		}
		for _, nb := range list {
			in := src.row(nb.node)
			for j, v := range in {
				out[j] += nb.weight * v
			}
		}
	}
}
