// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep kernels and decompositions minimal by delegating shape/nil checks here.
//  - Return ShapeError or plain sentinels so call sites can wrap uniformly.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing on success.
//
// Note:
//  - Each composite validator follows a fixed sequence (NotNil → Shape).

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Returns ErrNilMatrix if m == nil.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateRectangular checks a row-major literal before it becomes a Matrix.
//
// Implementation:
//   - Stage 1: reject empty input (no rows, or an empty first row).
//   - Stage 2: every row must have len(rows[0]) entries.
//   - Stage 3: every entry must be finite.
//
// Errors:
//   - *ShapeError{Kind: ErrInvalidDimensions} for empty input.
//   - *ShapeError{Kind: ErrRagged} naming the first offending row.
//   - *ShapeError{Kind: ErrNaNInf} naming the first offending cell.
//
// Complexity: O(r*c).
func ValidateRectangular(rows [][]float64) error {
	const op = "ValidateRectangular"
	if len(rows) == 0 || len(rows[0]) == 0 {
		return shapeErr(op, ErrInvalidDimensions, len(rows), 0)
	}
	cols := len(rows[0])
	var i, j int
	for i = range rows {
		if len(rows[i]) != cols {
			return &ShapeError{Op: op, Kind: ErrRagged, Rows: len(rows), Cols: cols, Row: i, Col: -1}
		}
		for j = range rows[i] {
			if math.IsNaN(rows[i][j]) || math.IsInf(rows[i][j], 0) {
				return &ShapeError{Op: op, Kind: ErrNaNInf, Rows: len(rows), Cols: cols, Row: i, Col: j}
			}
		}
	}

	return nil
}

// RequireSquare checks that m is non-nil and square (Rows == Cols).
// It is the precondition of every decomposition and of eigen-analysis.
//
// Errors: ErrNilMatrix; *ShapeError matching ErrBadShape and ErrNonSquare.
// Complexity: O(1).
func RequireSquare(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.Rows() != m.Cols() {
		return shapeErr("RequireSquare", ErrNonSquare, m.Rows(), m.Cols())
	}

	return nil
}

// ValidateSameShape ensures matrices a and b have equal dimensions.
// Assumes a and b are not nil (caller must ensure).
// Complexity: O(1).
func ValidateSameShape(a, b Matrix) error {
	if a.Rows() != b.Rows() {
		return validatorErrorf("ValidateSameShape: Rows", ErrDimensionMismatch)
	}
	if a.Cols() != b.Cols() {
		return validatorErrorf("ValidateSameShape: Columns", ErrDimensionMismatch)
	}

	return nil
}

// ValidateBinarySameShape – Composite: NotNil(a) → NotNil(b) → SameShape.
// Complexity: O(1).
func ValidateBinarySameShape(a, b Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return validatorErrorf("ValidateBinarySameShape", err)
	}
	if err := ValidateNotNil(b); err != nil {
		return validatorErrorf("ValidateBinarySameShape", err)
	}
	if err := ValidateSameShape(a, b); err != nil {
		return validatorErrorf("ValidateBinarySameShape", err)
	}

	return nil
}

// ValidateMulCompatible – Composite: NotNil(a) → NotNil(b) → a.Cols == b.Rows.
// Complexity: O(1).
func ValidateMulCompatible(a, b Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return validatorErrorf("ValidateMulCompatible", err)
	}
	if err := ValidateNotNil(b); err != nil {
		return validatorErrorf("ValidateMulCompatible", err)
	}
	if a.Cols() != b.Rows() {
		return validatorErrorf("ValidateMulCompatible", ErrDimensionMismatch)
	}

	return nil
}
