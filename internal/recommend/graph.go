// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package recommend

import (
	"github.com/tomtom215/careerpath/internal/models"
)

// NodeKind tags a graph node.
type NodeKind int

const (
	NodeUser NodeKind = iota
	NodeSubject
	NodeCareer
)

func (k NodeKind) String() string {
	switch k {
	case NodeUser:
		return "user"
	case NodeSubject:
		return "subject"
	case NodeCareer:
		return "career"
	default:
		return "unknown"
	}
}

// EdgeKind tags a graph edge.
type EdgeKind int

const (
	// EdgeSelection links the user to a subject they selected.
	EdgeSelection EdgeKind = iota
	// EdgePrerequisite links a subject to a career that requires it.
	EdgePrerequisite
)

// Node is one vertex. Key is the username, subject name or career id.
type Node struct {
	Kind     NodeKind
	Key      string
	Features []float64
}

// Edge is a directed, unweighted link between two node indices.
type Edge struct {
	From int
	To   int
	Kind EdgeKind
}

// Graph is the attributed graph of one request.
//
// Node order is fixed within a build: the user at index 0, then subjects in
// the order they are first seen while scanning the catalog, then careers in
// catalog order. Indices are not stable across builds and must not be stored.
type Graph struct {
	Nodes []Node
	Edges []Edge

	// SubjectIndex maps a subject to its node index.
	SubjectIndex map[string]int

	// DroppedSubjects lists selected subjects that no career requires.
	DroppedSubjects []string

	careerOffset int
}

// UserIndex is always 0.
func (g *Graph) UserIndex() int { return 0 }

// CareerIndex returns the node index of the i-th catalog career.
func (g *Graph) CareerIndex(i int) int { return g.careerOffset + i }

// NumSubjects returns the number of subject relay nodes.
func (g *Graph) NumSubjects() int { return g.careerOffset - 1 }

// NumCareers returns the number of career nodes.
func (g *Graph) NumCareers() int { return len(g.Nodes) - g.careerOffset }

// Features returns the node feature vectors in node order.
func (g *Graph) Features() [][]float64 {
	out := make([][]float64, len(g.Nodes))
	for i := range g.Nodes {
		out[i] = g.Nodes[i].Features
	}
	return out
}

// EdgePairs returns the edges as (from, to) index pairs.
func (g *Graph) EdgePairs() [][2]int {
	out := make([][2]int, len(g.Edges))
	for i, e := range g.Edges {
		out[i] = [2]int{e.From, e.To}
	}
	return out
}

// BuildGraph turns a profile and catalog into the request graph.
//
// It returns a DataError for an empty catalog or selection and a
// DegenerateGraphError when no career lists any prerequisite. Selected
// subjects that no career requires are dropped and reported in
// DroppedSubjects; repeated prerequisites of one career collapse to one edge.
func BuildGraph(profile *models.UserProfile, catalog []models.Career) (*Graph, error) {
	if len(catalog) == 0 {
		return nil, &DataError{Op: "build graph", Err: ErrNoCatalog}
	}
	if profile == nil || len(profile.SelectedSubjects) == 0 {
		return nil, &DataError{Op: "build graph", Err: ErrNoSelection}
	}

	g := &Graph{
		Nodes:        make([]Node, 0, 1+len(catalog)*2),
		SubjectIndex: make(map[string]int),
	}
	g.Nodes = append(g.Nodes, Node{
		Kind:     NodeUser,
		Key:      profile.Username,
		Features: profile.Style.Vector(),
	})

	// Subject universe in first-seen order.
	for i := range catalog {
		for _, subject := range catalog[i].Prerequisites {
			if subject == "" {
				continue
			}
			if _, ok := g.SubjectIndex[subject]; ok {
				continue
			}
			g.SubjectIndex[subject] = len(g.Nodes)
			g.Nodes = append(g.Nodes, Node{
				Kind:     NodeSubject,
				Key:      subject,
				Features: make([]float64, models.StyleDimensions),
			})
		}
	}
	if len(g.SubjectIndex) == 0 {
		return nil, newDegenerateGraphError(len(catalog))
	}

	g.careerOffset = len(g.Nodes)
	for i := range catalog {
		g.Nodes = append(g.Nodes, Node{
			Kind:     NodeCareer,
			Key:      catalog[i].ID,
			Features: catalog[i].Style.Vector(),
		})
	}

	seen := make(map[string]struct{}, len(profile.SelectedSubjects))
	for _, subject := range profile.SelectedSubjects {
		if _, dup := seen[subject]; dup {
			continue
		}
		seen[subject] = struct{}{}

		idx, ok := g.SubjectIndex[subject]
		if !ok {
			g.DroppedSubjects = append(g.DroppedSubjects, subject)
			continue
		}
		g.Edges = append(g.Edges, Edge{From: g.UserIndex(), To: idx, Kind: EdgeSelection})
	}

	for i := range catalog {
		to := g.CareerIndex(i)
		for _, subject := range catalog[i].DistinctPrerequisites() {
			idx, ok := g.SubjectIndex[subject]
			if !ok {
				continue
			}
			g.Edges = append(g.Edges, Edge{From: idx, To: to, Kind: EdgePrerequisite})
		}
	}

	return g, nil
}
