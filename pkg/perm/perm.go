// Package perm generates index permutations for route enumeration.
//
// Permutations are produced in lexicographic order over [0, 1, ..., n-1] so
// that downstream consumers iterating the result see a stable, reproducible
// sequence. Route search relies on this: price ties are broken by generation
// order, which must not vary between runs.
package perm

import "slices"

// Seq returns a slice containing the sequence [0, 1, 2, ..., n-1].
// This is useful for initializing permutation arrays or creating index sequences.
//
// For n <= 0, Seq returns an empty slice.
func Seq(n int) []int {
	if n < 0 {
		n = 0
	}
	result := make([]int, n)
	for i := range result {
		result[i] = i
	}
	return result
}

// Factorial returns n! (n factorial), the product 1 × 2 × ... × n.
// For n <= 1, Factorial returns 1.
//
// This function is useful for calculating the size of the full permutation
// space. Note that factorials grow extremely fast: 13! = 6,227,020,800
// exceeds 32-bit int.
func Factorial(n int) int {
	result := 1
	for i := 2; i <= n; i++ {
		result *= i
	}
	return result
}

// Lex returns all n! permutations of [0, 1, ..., n-1] in lexicographic order.
//
// Each returned slice is a separate allocation, safe to modify without
// affecting others.
//
// Lex handles edge cases gracefully:
//   - n = 0: returns [[]] (one empty permutation)
//   - n = 1: returns [[0]] (one single-element permutation)
//
// For n >= 13 the number of permutations exceeds billions; callers are
// expected to keep n small. Route enumeration never exceeds a handful of
// cities.
func Lex(n int) [][]int {
	if n <= 0 {
		return [][]int{{}}
	}

	cur := Seq(n)
	result := make([][]int, 0, Factorial(min(n, 12)))
	result = append(result, slices.Clone(cur))

	for Next(cur) {
		result = append(result, slices.Clone(cur))
	}
	return result
}

// Next advances p to its lexicographic successor in place.
// It returns false when p is already the last permutation, leaving p
// unchanged in that case.
//
// The algorithm is the classic rightmost-ascent rule: find the largest i
// with p[i] < p[i+1], swap p[i] with the smallest larger element to its
// right, then reverse the suffix.
func Next(p []int) bool {
	i := len(p) - 2
	for i >= 0 && p[i] >= p[i+1] {
		i--
	}
	if i < 0 {
		return false
	}

	j := len(p) - 1
	for p[j] <= p[i] {
		j--
	}
	p[i], p[j] = p[j], p[i]

	slices.Reverse(p[i+1:])
	return true
}
