// SPDX-License-Identifier: MIT

// Package graph provides directed graphs with deterministic iteration order,
// a reusable depth-first search event framework, and strong connectivity
// analysis built on top of it.
package graph

import (
	"cmp"
	"slices"
)

// Digraph is a directed graph over comparable vertex values. Vertices and
// adjacency lists keep insertion order, so traversals are deterministic.
type Digraph[V comparable] struct {
	vertices []V
	index    map[V]int
	adj      map[V][]V
	edges    int
}

// New returns an empty directed graph.
func New[V comparable]() *Digraph[V] {
	return &Digraph[V]{
		index: make(map[V]int),
		adj:   make(map[V][]V),
	}
}

// FromAdjacency builds a graph from a vertex -> neighbors map. Keys are
// inserted in sorted order so the resulting graph is deterministic; neighbor
// lists keep their given order. Neighbors that never appear as keys become
// vertices too.
func FromAdjacency[V cmp.Ordered](adj map[V][]V) *Digraph[V] {
	g := New[V]()
	keys := make([]V, 0, len(adj))
	for v := range adj {
		keys = append(keys, v)
	}
	slices.Sort(keys)
	for _, v := range keys {
		g.AddVertex(v)
	}
	for _, v := range keys {
		for _, w := range adj[v] {
			g.AddEdge(v, w)
		}
	}
	return g
}

// AddVertex inserts v if it is not already present.
func (g *Digraph[V]) AddVertex(v V) {
	if _, ok := g.index[v]; ok {
		return
	}
	g.index[v] = len(g.vertices)
	g.vertices = append(g.vertices, v)
}

// AddEdge inserts the directed edge from -> to, adding missing endpoints.
func (g *Digraph[V]) AddEdge(from, to V) {
	g.AddVertex(from)
	g.AddVertex(to)
	g.adj[from] = append(g.adj[from], to)
	g.edges++
}

// HasVertex reports whether v is a vertex of the graph.
func (g *Digraph[V]) HasVertex(v V) bool {
	_, ok := g.index[v]
	return ok
}

// Vertices returns the vertices in insertion order. The slice is a copy.
func (g *Digraph[V]) Vertices() []V {
	return slices.Clone(g.vertices)
}

// Neighbors returns the out-neighbors of v in insertion order.
func (g *Digraph[V]) Neighbors(v V) []V {
	return slices.Clone(g.adj[v])
}

// Order returns the number of vertices.
func (g *Digraph[V]) Order() int {
	return len(g.vertices)
}

// Size returns the number of edges.
func (g *Digraph[V]) Size() int {
	return g.edges
}
