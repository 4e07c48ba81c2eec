// Package matrix defines the value types shared between the benchmark
// driver, the dispatcher and the report writer.
package matrix

import (
	"fmt"
	"math/rand"
)

// Matrix is an ordered collection of integer rows. Rows are mutually
// independent; no invariant links one row's contents to another's.
type Matrix [][]int

// Generate builds a rows x cols matrix with pseudo-random values drawn from
// a source seeded with seed, so identical inputs reproduce byte-identical
// matrices across runs.
func Generate(rows, cols int, seed int64) Matrix {
	r := rand.New(rand.NewSource(seed))
	m := make(Matrix, rows)
	for i := range m {
		row := make([]int, cols)
		for j := range row {
			row[j] = r.Intn(100000)
		}
		m[i] = row
	}
	return m
}

// Clone returns a deep copy; the dispatcher is handed a working copy per
// invocation so the unsorted original survives for validation.
func (m Matrix) Clone() Matrix {
	out := make(Matrix, len(m))
	for i, row := range m {
		cp := make([]int, len(row))
		copy(cp, row)
		out[i] = cp
	}
	return out
}

// Rows returns the number of rows.
func (m Matrix) Rows() int {
	return len(m)
}

// IsSortedDesc reports whether row is in descending order.
func IsSortedDesc(row []int) bool {
	for i := 1; i < len(row); i++ {
		if row[i] > row[i-1] {
			return false
		}
	}
	return true
}

// SamePermutation reports whether a and b hold the same multiset of values.
func SamePermutation(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[int]int, len(a))
	for _, v := range a {
		counts[v]++
	}
	for _, v := range b {
		counts[v]--
		if counts[v] < 0 {
			return false
		}
	}
	return true
}

// Validate checks that sorted is a row-by-row descending permutation of
// original. The benchmark driver runs it after every timed dispatch.
func Validate(original, sorted Matrix) error {
	if len(original) != len(sorted) {
		return fmt.Errorf("row count mismatch: expected %v, had %v", len(original), len(sorted))
	}
	for i := range original {
		if sorted[i] == nil {
			return fmt.Errorf("row %v was never written", i)
		}
		if !IsSortedDesc(sorted[i]) {
			return fmt.Errorf("row %v is not in descending order", i)
		}
		if !SamePermutation(original[i], sorted[i]) {
			return fmt.Errorf("row %v is not a permutation of its input", i)
		}
	}
	return nil
}
