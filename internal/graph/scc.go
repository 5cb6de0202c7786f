// SPDX-License-Identifier: MIT

package graph

// StrongComponents returns the strongly connected components of g. Every
// vertex appears in exactly one component. Components are emitted in
// reverse topological order of the condensation: whenever an edge leads from
// component A to component B, B appears before A in the result.
func StrongComponents[V comparable](g *Digraph[V]) [][]V {
	s := &sccVisitor[V]{
		dfsnum:    make(map[V]int, g.Order()),
		activelen: make(map[V]int, g.Order()),
		low:       make(map[V]int, g.Order()),
		biglow:    g.Order(),
	}
	Search(g, s)
	return s.components
}

// sccVisitor computes components with Tarjan-style lowlink values driven by
// DFS events. Vertices of finished components get low = biglow so that
// cross edges into them can never lower an active vertex.
type sccVisitor[V comparable] struct {
	components [][]V
	dfsnum     map[V]int
	activelen  map[V]int
	active     []V
	low        map[V]int
	biglow     int
}

func (s *sccVisitor[V]) Preorder(parent, v V) {
	if parent == v {
		s.active = s.active[:0]
	}
	s.activelen[v] = len(s.active)
	s.active = append(s.active, v)
	n := len(s.dfsnum)
	s.dfsnum[v] = n
	s.low[v] = n
}

func (s *sccVisitor[V]) BackEdge(from, to V) {
	if s.low[to] < s.low[from] {
		s.low[from] = s.low[to]
	}
}

func (s *sccVisitor[V]) Postorder(parent, v V) {
	if s.low[v] == s.dfsnum[v] {
		comp := make([]V, len(s.active)-s.activelen[v])
		copy(comp, s.active[s.activelen[v]:])
		s.components = append(s.components, comp)
		for _, w := range comp {
			s.low[w] = s.biglow
		}
		s.active = s.active[:s.activelen[v]]
		return
	}
	if s.low[v] < s.low[parent] {
		s.low[parent] = s.low[v]
	}
}
