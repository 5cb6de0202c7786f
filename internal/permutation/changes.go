// SPDX-License-Identifier: MIT

// Package permutation generates permutations and related combinatorial
// objects by sequences of small changes (Steinhaus-Johnson-Trotter and
// variants). Each change sequence is a stream of swap positions; applying
// the swaps one at a time walks through every object in the family so that
// consecutive objects differ by a single move.
//
// The generators are built from a chain of recursive sub-generators, one per
// level, for O(n) total space. All but a 1/n fraction of the swaps are
// produced without touching the recursion, giving O(1) amortized time per
// swap.
package permutation

import "iter"

// PlainChanges yields the swap positions for the Steinhaus-Johnson-Trotter
// algorithm on n items. Each value x means "swap positions x and x+1".
// The sequence has n!-1 entries and is empty for n < 1.
func PlainChanges(n int) iter.Seq[int] {
	return func(yield func(int) bool) {
		if n < 1 {
			return
		}
		next, stop := iter.Pull(PlainChanges(n - 1))
		defer stop()
		for {
			for x := n - 2; x >= 0; x-- {
				if !yield(x) {
					return
				}
			}
			c, ok := next()
			if !ok {
				return
			}
			if !yield(c + 1) {
				return
			}
			for x := 0; x <= n-2; x++ {
				if !yield(x) {
					return
				}
			}
			c, ok = next()
			if !ok {
				return
			}
			if !yield(c) {
				return
			}
		}
	}
}

// DoublePlainChanges yields the swap positions for double permutations of n
// values, where the starting arrangement is [0,0,1,1,...,n-1,n-1].
func DoublePlainChanges(n int) iter.Seq[int] {
	return func(yield func(int) bool) {
		if n < 1 {
			return
		}
		next, stop := iter.Pull(DoublePlainChanges(n - 1))
		defer stop()
		for {
			for x := 1; x <= 2*n-2; x++ {
				if !yield(x) {
					return
				}
			}
			c, ok := next()
			if !ok {
				return
			}
			if !yield(c + 1) {
				return
			}
			for x := 2*n - 2; x >= 1; x-- {
				if !yield(x) {
					return
				}
			}
			c, ok = next()
			if !ok {
				return
			}
			if !yield(c + 2) {
				return
			}
		}
	}
}

// StirlingChanges yields the change positions for Stirling permutations of
// order n. A Stirling permutation is a double permutation in which each pair
// of equal values has only larger values between them. The moving pair is
// swept through the smaller values exactly as in Steinhaus-Johnson-Trotter,
// except that each change swaps items two positions apart instead of
// adjacent items.
func StirlingChanges(n int) iter.Seq[int] {
	return func(yield func(int) bool) {
		if n <= 1 {
			return
		}
		next, stop := iter.Pull(StirlingChanges(n - 1))
		defer stop()
		for {
			for x := 2*n - 3; x >= 0; x-- {
				if !yield(x) {
					return
				}
			}
			c, ok := next()
			if !ok {
				return
			}
			if !yield(c + 2) {
				return
			}
			for x := 0; x <= 2*n-3; x++ {
				if !yield(x) {
					return
				}
			}
			c, ok = next()
			if !ok {
				return
			}
			if !yield(c) {
				return
			}
		}
	}
}

// InvolutionChanges yields the change sequence for involutions on n items.
// The recursion first enumerates involutions fixing the last item, then
// sweeps the match for the last item back and forth over a sequence for n-2.
func InvolutionChanges(n int) iter.Seq[int] {
	return func(yield func(int) bool) {
		if n < 0 {
			return
		}
		if n <= 3 {
			base := [4][]int{{}, {}, {0}, {0, 1, 0}}
			for _, c := range base[n] {
				if !yield(c) {
					return
				}
			}
			return
		}
		for c := range InvolutionChanges(n - 1) {
			if !yield(c) {
				return
			}
		}
		if !yield(n - 2) {
			return
		}
		for i := n - 4; i >= 0; i-- {
			if !yield(i) {
				return
			}
		}
		next, stop := iter.Pull(InvolutionChanges(n - 2))
		defer stop()
		for {
			c, ok := next()
			if !ok {
				yield(n - 4)
				return
			}
			if !yield(c + 1) {
				return
			}
			for i := 0; i < n-2; i++ {
				if !yield(i) {
					return
				}
			}
			c, ok = next()
			if !ok {
				yield(n - 4)
				return
			}
			if !yield(c) {
				return
			}
			for i := n - 3; i >= 0; i-- {
				if !yield(i) {
					return
				}
			}
		}
	}
}
