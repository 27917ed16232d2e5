// SPDX-License-Identifier: MIT

// Package matrix: the Matrix interface consumed by every decomposition.
// Errors and validators live in dedicated files (errors.go, validators.go).
package matrix

// Matrix represents a two-dimensional array of float64 values.
//
// Kernels in this module treat a Matrix handed to them as an immutable value:
// they read it through At and always return freshly allocated results. Set
// exists so constructors and tests can fill storage.
//
// Complexity notes: all methods are expected O(1) except Clone (O(r*c)).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	At(i, j int) (float64, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid, ErrNaNInf for non-finite v.
	Set(i, j int, v float64) error

	// Clone returns a deep copy of the matrix.
	// Complexity: O(rows*cols).
	Clone() Matrix
}
