// SPDX-License-Identifier: MIT

package permutation

import "iter"

// Sequence yields every permutation of items, starting with the input order.
// Consecutive outputs differ by one swap of adjacent positions, and the
// stream contains len(items)! permutations in total.
//
// The yielded slice is a single buffer that is mutated between iterations;
// callers that retain a permutation must clone it first.
func Sequence[E any](items []E) iter.Seq[[]E] {
	return func(yield func([]E) bool) {
		perm := make([]E, len(items))
		copy(perm, items)
		if !yield(perm) {
			return
		}
		for x := range PlainChanges(len(perm)) {
			perm[x], perm[x+1] = perm[x+1], perm[x]
			if !yield(perm) {
				return
			}
		}
	}
}

// Range yields every permutation of the integers 0..n-1.
func Range(n int) iter.Seq[[]int] {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return Sequence(items)
}

// DoubleSequence yields double permutations of 0..n-1, starting with
// [0,0,1,1,...,n-1,n-1]. The yielded slice is reused between iterations.
func DoubleSequence(n int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		perm := doubled(n)
		if !yield(perm) {
			return
		}
		for x := range DoublePlainChanges(n) {
			perm[x], perm[x+1] = perm[x+1], perm[x]
			if !yield(perm) {
				return
			}
		}
	}
}

// StirlingSequence yields all Stirling permutations of order n, starting
// with [0,0,1,1,...,n-1,n-1]. Changes swap items two positions apart.
// The yielded slice is reused between iterations.
func StirlingSequence(n int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		perm := doubled(n)
		if !yield(perm) {
			return
		}
		for x := range StirlingChanges(n) {
			perm[x], perm[x+2] = perm[x+2], perm[x]
			if !yield(perm) {
				return
			}
		}
	}
}

// Involutions yields every involution on n items as a mapping slice p with
// p[p[i]] == i for all i. The first involution is the identity and the last
// swaps only the final two items. Consecutive involutions differ by a change
// that adds or removes an adjacent swapped pair, moves one swap target by
// one position, or exchanges two adjacent swap targets.
//
// The yielded slice is reused between iterations.
func Involutions(n int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		p := make([]int, n)
		for i := range p {
			p[i] = i
		}
		if !yield(p) {
			return
		}
		for c := range InvolutionChanges(n) {
			switch {
			case p[c] == c && p[c+1] == c+1:
				// add new pair
				p[c], p[c+1] = c+1, c
			case p[c] == c:
				// move end of one pair
				i := p[c+1]
				p[c], p[c+1], p[i] = i, c+1, c
			case p[c+1] == c+1:
				// move end of one pair
				i := p[c]
				p[c], p[c+1], p[i] = c, i, c+1
			case p[c] == c+1:
				// remove one pair
				p[c], p[c+1] = c, c+1
			default:
				// swap ends of two pairs
				x, y := p[c], p[c+1]
				p[x], p[y] = c+1, c
				p[c], p[c+1] = y, x
			}
			if !yield(p) {
				return
			}
		}
	}
}

func doubled(n int) []int {
	perm := make([]int, 0, 2*n)
	for i := 0; i < n; i++ {
		perm = append(perm, i, i)
	}
	return perm
}
