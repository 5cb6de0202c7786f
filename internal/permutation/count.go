// SPDX-License-Identifier: MIT

package permutation

import "fmt"

// MaxFactorialN is the largest n for which Factorial fits in an int64.
const MaxFactorialN = 20

// Factorial returns n! for 0 <= n <= MaxFactorialN.
func Factorial(n int) (int64, error) {
	if n < 0 || n > MaxFactorialN {
		return 0, fmt.Errorf("permutation: factorial argument %d out of range [0,%d]", n, MaxFactorialN)
	}
	f := int64(1)
	for i := int64(2); i <= int64(n); i++ {
		f *= i
	}
	return f, nil
}

// MaxTelephoneN is the largest n for which Telephone fits in an int64.
const MaxTelephoneN = 32

// Telephone returns the n-th telephone number: the number of involutions on
// n items (1, 1, 2, 4, 10, 26, 76, 232, 764, ...).
func Telephone(n int) (int64, error) {
	if n < 0 || n > MaxTelephoneN {
		return 0, fmt.Errorf("permutation: telephone argument %d out of range [0,%d]", n, MaxTelephoneN)
	}
	// T(n) = T(n-1) + (n-1)*T(n-2)
	prev2, prev := int64(1), int64(1)
	for i := 2; i <= n; i++ {
		prev2, prev = prev, prev+int64(i-1)*prev2
	}
	return prev, nil
}

// MaxDoubleFactorialN is the largest n for which DoubleFactorialOdd fits in
// an int64.
const MaxDoubleFactorialN = 16

// DoubleFactorialOdd returns (2n-1)!! = 1*3*5*...*(2n-1), the number of
// Stirling permutations of order n.
func DoubleFactorialOdd(n int) (int64, error) {
	if n < 0 || n > MaxDoubleFactorialN {
		return 0, fmt.Errorf("permutation: double factorial argument %d out of range [0,%d]", n, MaxDoubleFactorialN)
	}
	f := int64(1)
	for i := int64(3); i <= 2*int64(n)-1; i += 2 {
		f *= i
	}
	return f, nil
}
