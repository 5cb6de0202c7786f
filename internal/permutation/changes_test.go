// SPDX-License-Identifier: MIT

package permutation

import (
	"fmt"
	"iter"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect[E any](seq iter.Seq[E]) []E {
	var out []E
	for e := range seq {
		out = append(out, e)
	}
	return out
}

func TestPlainChanges_KnownSequence(t *testing.T) {
	assert.Equal(t, []int{1, 0, 1, 0, 1}, collect(PlainChanges(3)))
}

func TestPlainChanges_Empty(t *testing.T) {
	assert.Empty(t, collect(PlainChanges(0)))
	assert.Empty(t, collect(PlainChanges(-1)))
	assert.Empty(t, collect(PlainChanges(1)))
}

func TestSequence_FactorialLengths(t *testing.T) {
	f := int64(1)
	for i := 2; i <= 7; i++ {
		f *= int64(i)
		count := int64(0)
		for range Range(i) {
			count++
		}
		assert.Equal(t, f, count, "n=%d", i)
	}
}

func TestSequence_AllDistinct(t *testing.T) {
	for i := 2; i <= 7; i++ {
		seen := make(map[string]struct{})
		n := 0
		for p := range Range(i) {
			seen[fmt.Sprint(p)] = struct{}{}
			n++
		}
		assert.Len(t, seen, n, "n=%d", i)
	}
}

func TestSequence_AdjacentSwaps(t *testing.T) {
	for i := 2; i <= 7; i++ {
		var last []int
		for p := range Range(i) {
			if last != nil {
				var diffs []int
				for j := 0; j < i; j++ {
					if p[j] != last[j] {
						diffs = append(diffs, j)
					}
				}
				require.Len(t, diffs, 2, "n=%d", i)
				require.Equal(t, diffs[0]+1, diffs[1], "swap must be adjacent")
				assert.Equal(t, last[diffs[1]], p[diffs[0]])
				assert.Equal(t, last[diffs[0]], p[diffs[1]])
			}
			last = slices.Clone(p)
		}
	}
}

func TestSequence_FirstOutputIsInput(t *testing.T) {
	inputs := [][]int{
		{1, 3, 5, 7},
		{},
		{42},
		{9, 8, 7, 6, 5, 4, 3, 2, 1, 0},
	}
	for _, in := range inputs {
		for p := range Sequence(in) {
			assert.Equal(t, in, p)
			break
		}
	}

	// Non-integer element types work the same way.
	letters := []string{"z", "y", "x"}
	for p := range Sequence(letters) {
		assert.Equal(t, letters, p)
		break
	}
}

func TestInvolutions_TelephoneCounts(t *testing.T) {
	telephone := []int{1, 1, 2, 4, 10, 26, 76, 232, 764}
	for n, want := range telephone {
		count := 0
		seen := make(map[string]struct{})
		for p := range Involutions(n) {
			// p must be self-inverse.
			for i, v := range p {
				require.Equal(t, i, p[v], "n=%d: not an involution: %v", n, p)
			}
			seen[fmt.Sprint(p)] = struct{}{}
			count++
		}
		assert.Equal(t, count, len(seen), "n=%d: duplicate involutions", n)
		assert.Equal(t, want, count, "n=%d", n)
	}
}

func TestInvolutions_FirstAndLast(t *testing.T) {
	var first, last []int
	for p := range Involutions(5) {
		if first == nil {
			first = slices.Clone(p)
		}
		last = slices.Clone(p)
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4}, first, "first involution is the identity")
	assert.Equal(t, []int{0, 1, 2, 4, 3}, last, "last involution swaps the final two items")
}

func TestStirlingSequence_Known(t *testing.T) {
	var got [][]int
	for p := range StirlingSequence(2) {
		got = append(got, slices.Clone(p))
	}
	want := [][]int{
		{0, 0, 1, 1},
		{0, 1, 1, 0},
		{1, 1, 0, 0},
	}
	assert.Equal(t, want, got)
}

func TestStirlingSequence_Properties(t *testing.T) {
	for n := 1; n <= 5; n++ {
		want, err := DoubleFactorialOdd(n)
		require.NoError(t, err)

		count := int64(0)
		seen := make(map[string]struct{})
		for p := range StirlingSequence(n) {
			requireStirling(t, p)
			seen[fmt.Sprint(p)] = struct{}{}
			count++
		}
		assert.Equal(t, want, count, "n=%d", n)
		assert.Equal(t, count, int64(len(seen)), "n=%d: duplicates", n)
	}
}

// requireStirling checks that each pair of equal values has only larger
// values between its two occurrences.
func requireStirling(t *testing.T, p []int) {
	t.Helper()
	first := make(map[int]int)
	for i, v := range p {
		if j, ok := first[v]; ok {
			for k := j + 1; k < i; k++ {
				require.Greater(t, p[k], v, "not a Stirling permutation: %v", p)
			}
		} else {
			first[v] = i
		}
	}
}

func TestDoubleSequence_Known(t *testing.T) {
	var got [][]int
	for p := range DoubleSequence(2) {
		got = append(got, slices.Clone(p))
	}
	want := [][]int{
		{0, 0, 1, 1},
		{0, 1, 0, 1},
		{0, 1, 1, 0},
	}
	assert.Equal(t, want, got)
}

func TestDoubleSequence_AdjacentSwaps(t *testing.T) {
	for n := 1; n <= 4; n++ {
		var last []int
		for p := range DoubleSequence(n) {
			// Always a rearrangement of the doubled identity.
			sorted := slices.Clone(p)
			slices.Sort(sorted)
			require.Equal(t, doubled(n), sorted)

			if last != nil {
				var diffs []int
				for j := range p {
					if p[j] != last[j] {
						diffs = append(diffs, j)
					}
				}
				require.Len(t, diffs, 2, "n=%d", n)
				require.Equal(t, diffs[0]+1, diffs[1], "swap must be adjacent")
			}
			last = slices.Clone(p)
		}
	}
}

func TestCounts(t *testing.T) {
	f, err := Factorial(12)
	require.NoError(t, err)
	assert.Equal(t, int64(479001600), f)

	_, err = Factorial(21)
	assert.Error(t, err)
	_, err = Factorial(-1)
	assert.Error(t, err)

	tel, err := Telephone(8)
	require.NoError(t, err)
	assert.Equal(t, int64(764), tel)

	df, err := DoubleFactorialOdd(5)
	require.NoError(t, err)
	assert.Equal(t, int64(945), df)
}

func TestChanges_EarlyBreak(t *testing.T) {
	// Stopping iteration mid-stream must not hang or panic.
	n := 0
	for range PlainChanges(6) {
		n++
		if n == 10 {
			break
		}
	}
	assert.Equal(t, 10, n)

	n = 0
	for range Involutions(7) {
		n++
		if n == 5 {
			break
		}
	}
	assert.Equal(t, 5, n)
}
