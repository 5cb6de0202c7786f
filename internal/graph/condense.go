// SPDX-License-Identifier: MIT

package graph

import "slices"

// Condensation is the DAG obtained by contracting every strongly connected
// component of a graph to a single vertex.
type Condensation[V comparable] struct {
	// Components lists the strong components in reverse topological order.
	Components [][]V
	// Index maps each vertex to the position of its component.
	Index map[V]int
	// Edges holds the deduplicated inter-component adjacency: Edges[i] are
	// the component indices reachable from component i by a single original
	// edge. Self edges are dropped.
	Edges [][]int
}

// Condense computes the condensation of g.
func Condense[V comparable](g *Digraph[V]) *Condensation[V] {
	comps := StrongComponents(g)

	c := &Condensation[V]{
		Components: comps,
		Index:      make(map[V]int, g.Order()),
		Edges:      make([][]int, len(comps)),
	}
	for i, comp := range comps {
		for _, v := range comp {
			c.Index[v] = i
		}
	}

	seen := make(map[[2]int]struct{})
	for _, v := range g.vertices {
		cv := c.Index[v]
		for _, w := range g.adj[v] {
			cw := c.Index[w]
			if cv == cw {
				continue
			}
			key := [2]int{cv, cw}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			c.Edges[cv] = append(c.Edges[cv], cw)
		}
	}
	for _, targets := range c.Edges {
		slices.Sort(targets)
	}
	return c
}
