// SPDX-License-Identifier: MIT

package graph

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigraph_Basics(t *testing.T) {
	g := New[string]()
	g.AddEdge("a", "b")
	g.AddEdge("a", "c")
	g.AddEdge("b", "c")
	g.AddVertex("d")

	assert.Equal(t, 4, g.Order())
	assert.Equal(t, 3, g.Size())
	assert.Equal(t, []string{"a", "b", "c", "d"}, g.Vertices())
	assert.Equal(t, []string{"b", "c"}, g.Neighbors("a"))
	assert.Empty(t, g.Neighbors("d"))
	assert.True(t, g.HasVertex("d"))
	assert.False(t, g.HasVertex("e"))
}

func TestFromAdjacency_Deterministic(t *testing.T) {
	adj := map[int][]int{2: {0}, 0: {1}, 1: {2, 3}}
	g := FromAdjacency(adj)

	// Keys sorted, plus vertex 3 discovered as an edge target.
	assert.Equal(t, []int{0, 1, 2, 3}, g.Vertices())
	assert.Equal(t, []int{2, 3}, g.Neighbors(1))
}

type eventRecorder struct {
	events []string
}

func (r *eventRecorder) Preorder(parent, v string)  { r.events = append(r.events, "pre:"+parent+v) }
func (r *eventRecorder) BackEdge(from, to string)   { r.events = append(r.events, "back:"+from+to) }
func (r *eventRecorder) Postorder(parent, v string) { r.events = append(r.events, "post:"+parent+v) }

func TestSearch_EventOrder(t *testing.T) {
	g := New[string]()
	g.AddEdge("a", "b")
	g.AddEdge("a", "c")
	g.AddEdge("b", "c")

	rec := &eventRecorder{}
	Search(g, rec)

	want := []string{
		"pre:aa",
		"pre:ab",
		"pre:bc",
		"post:bc",
		"post:ab",
		"back:ac",
		"post:aa",
	}
	assert.Equal(t, want, rec.events)
}

func TestSearch_CoversAllComponents(t *testing.T) {
	g := New[int]()
	g.AddEdge(0, 1)
	g.AddVertex(2)
	g.AddEdge(3, 4)

	rec := &countingVisitor[int]{}
	Search(g, rec)
	assert.Equal(t, 5, rec.pre, "every vertex must be visited exactly once")
	assert.Equal(t, 5, rec.post)
}

type countingVisitor[V comparable] struct {
	pre, post int
}

func (c *countingVisitor[V]) Preorder(parent, v V)  { c.pre++ }
func (c *countingVisitor[V]) BackEdge(from, to V)   {}
func (c *countingVisitor[V]) Postorder(parent, v V) { c.post++ }

// sortComponents normalizes component output for comparison.
func sortComponents(comps [][]int) [][]int {
	out := make([][]int, len(comps))
	for i, c := range comps {
		out[i] = slices.Clone(c)
		slices.Sort(out[i])
	}
	slices.SortFunc(out, slices.Compare)
	return out
}

func TestStrongComponents_KnownGraphs(t *testing.T) {
	tests := []struct {
		name string
		adj  map[int][]int
		want [][]int
	}{
		{
			name: "dag yields singletons",
			adj:  map[int][]int{0: {1}, 1: {2, 3}, 2: {4, 5}, 3: {4, 5}, 4: {6}, 5: {}, 6: {}},
			want: [][]int{{0}, {1}, {2}, {3}, {4}, {5}, {6}},
		},
		{
			name: "two nontrivial components",
			adj:  map[int][]int{0: {1}, 1: {2, 3, 4}, 2: {0, 3}, 3: {4}, 4: {3}},
			want: [][]int{{0, 1, 2}, {3, 4}},
		},
		{
			name: "single cycle",
			adj:  map[int][]int{0: {1}, 1: {2}, 2: {0}},
			want: [][]int{{0, 1, 2}},
		},
		{
			name: "empty graph",
			adj:  map[int][]int{},
			want: [][]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sortComponents(StrongComponents(FromAdjacency(tt.adj)))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("components mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStrongComponents_PartitionsVertices(t *testing.T) {
	g := FromAdjacency(map[int][]int{0: {1}, 1: {2, 3, 4}, 2: {0, 3}, 3: {4}, 4: {3}})
	comps := StrongComponents(g)

	seen := make(map[int]int)
	for _, comp := range comps {
		for _, v := range comp {
			seen[v]++
		}
	}
	require.Len(t, seen, g.Order())
	for v, n := range seen {
		assert.Equal(t, 1, n, "vertex %d in %d components", v, n)
	}
}

func TestCondense(t *testing.T) {
	g := FromAdjacency(map[int][]int{0: {1}, 1: {2, 3, 4}, 2: {0, 3}, 3: {4}, 4: {3}})
	c := Condense(g)

	require.Len(t, c.Components, 2)
	assert.Equal(t, [][]int{{0, 1, 2}, {3, 4}}, sortComponents(c.Components))

	// {3,4} has no outgoing edges, {0,1,2} points at {3,4}.
	sink := c.Index[3]
	source := c.Index[0]
	assert.Empty(t, c.Edges[sink])
	assert.Equal(t, []int{sink}, c.Edges[source])
}

func TestCondense_ReverseTopological(t *testing.T) {
	g := FromAdjacency(map[int][]int{
		0: {1}, 1: {0, 2}, 2: {3}, 3: {2, 4}, 4: {},
	})
	c := Condense(g)

	// Components come out in reverse topological order, so every
	// condensation edge points from a later component to an earlier one.
	for from, targets := range c.Edges {
		for _, to := range targets {
			assert.Less(t, to, from, "edge %d->%d violates emission order", from, to)
		}
	}
}
