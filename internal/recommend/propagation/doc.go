// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

// Package propagation refines node features by message passing over a small
// attributed graph.
//
// # Model
//
// Two graph-convolution layers over the symmetrically normalised adjacency
// with self loops, Â = D^-1/2 (A + I) D^-1/2:
//
//	H   = ReLU(Â X W1 + b1)
//	OUT = Â H W2 + b2
//
// Edges are treated as undirected so information flows both from predecessors
// and successors. The output layer has no activation, so embeddings may be
// negative.
//
// # Training
//
// Weights are fitted from scratch on every call. The objective is the mean
// squared reconstruction error between OUT and X, minimised with Adam for a
// fixed number of iterations. Nothing persists between calls and there is no
// early stopping. The seed fixes the Glorot initialisation; identical inputs
// with the same non-zero seed produce identical embeddings.
//
// # Cost
//
// Each iteration is O(E·H + N·F·H). The package holds no shared state and is
// safe to call from many goroutines at once; callers bound concurrency.
package propagation
