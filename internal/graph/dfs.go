// SPDX-License-Identifier: MIT

package graph

// Visitor receives depth-first search events. Roots of the DFS forest are
// reported with parent == vertex in both Preorder and Postorder.
type Visitor[V comparable] interface {
	// Preorder is called when v is first visited via its tree parent.
	Preorder(parent, v V)
	// BackEdge is called for every non-tree edge from -> to, i.e. whenever
	// the target has already been visited.
	BackEdge(from, to V)
	// Postorder is called after all of v's descendants are finished.
	Postorder(parent, v V)
}

type frame[V comparable] struct {
	vertex V
	parent V
	next   int
}

// Search runs a depth-first search over every component of g, delivering
// events to vis. The traversal is iterative, so graph depth is bounded by
// heap memory rather than goroutine stack size.
func Search[V comparable](g *Digraph[V], vis Visitor[V]) {
	visited := make(map[V]bool, g.Order())
	var stack []frame[V]

	for _, root := range g.vertices {
		if visited[root] {
			continue
		}
		visited[root] = true
		vis.Preorder(root, root)
		stack = append(stack[:0], frame[V]{vertex: root, parent: root})

		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			adj := g.adj[f.vertex]
			if f.next < len(adj) {
				w := adj[f.next]
				f.next++
				if !visited[w] {
					visited[w] = true
					vis.Preorder(f.vertex, w)
					stack = append(stack, frame[V]{vertex: w, parent: f.vertex})
				} else {
					vis.BackEdge(f.vertex, w)
				}
			} else {
				vis.Postorder(f.parent, f.vertex)
				stack = stack[:len(stack)-1]
			}
		}
	}
}
