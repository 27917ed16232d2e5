// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set and the ShapeError type.
// All kernels MUST return these sentinels (directly or through ShapeError)
// and tests MUST check them via errors.Is. No kernel panics on
// user-triggered error conditions.

package matrix

import (
	"errors"
	"fmt"
)

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping across logs. Context is attached at the outer boundary with
// fmt.Errorf("ctx: %w", ErrX); callers still use errors.Is to match.
//
// ERROR PRIORITY (enforced in tests):
// nil -> shape/NaN -> dimension mismatch -> numeric failure (singular).

var (
	// ErrBadShape is the umbrella sentinel for every shape violation:
	// empty input, ragged rows, non-square where square is required.
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	// A ShapeError carrying it also matches ErrBadShape.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrRagged signals that the rows of a literal have differing lengths.
	ErrRagged = errors.New("matrix: rows have differing column counts")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g., Add/Sub different shapes, or Mul where a.Cols != b.Rows.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrSingular is returned when a matrix cannot be inverted.
	ErrSingular = errors.New("matrix: singular matrix")

	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")
)

// ShapeError describes a shape or content violation found by the validators.
// It matches ErrBadShape via errors.Is, plus the more specific Kind sentinel
// (ErrNonSquare, ErrRagged, ErrNaNInf, ErrInvalidDimensions).
//
// Row/Col point at the offending cell or row when known, and are -1 otherwise.
type ShapeError struct {
	Op   string // validator or kernel that rejected the input
	Kind error  // specific sentinel
	Rows int    // observed row count
	Cols int    // observed column count (first row for ragged input)
	Row  int    // offending row, -1 if not applicable
	Col  int    // offending column, -1 if not applicable
}

// Error renders "<Op>: <kind> (<rows>x<cols>[, at row r[, col c]])".
func (e *ShapeError) Error() string {
	where := fmt.Sprintf("%dx%d", e.Rows, e.Cols)
	if e.Row >= 0 {
		where += fmt.Sprintf(", at row %d", e.Row+1)
		if e.Col >= 0 {
			where += fmt.Sprintf(", col %d", e.Col+1)
		}
	}

	return fmt.Sprintf("%s: %v (%s)", e.Op, e.Kind, where)
}

// Unwrap exposes both the umbrella sentinel and the specific kind.
func (e *ShapeError) Unwrap() []error {
	if e.Kind == nil || e.Kind == ErrBadShape {
		return []error{ErrBadShape}
	}

	return []error{ErrBadShape, e.Kind}
}

// shapeErr builds a ShapeError without a cell position.
func shapeErr(op string, kind error, rows, cols int) *ShapeError {
	return &ShapeError{Op: op, Kind: kind, Rows: rows, Cols: cols, Row: -1, Col: -1}
}
