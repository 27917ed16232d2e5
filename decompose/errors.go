// SPDX-License-Identifier: MIT

package decompose

import (
	"errors"
	"fmt"
)

var (
	// ErrDecomposition is the umbrella sentinel matched by every *DecompositionError.
	ErrDecomposition = errors.New("decompose: decomposition failed")

	// ErrNotPositiveDefinite marks a Cholesky pivot ≤ 0.
	ErrNotPositiveDefinite = errors.New("decompose: not positive definite")

	// ErrZeroDivision marks a zero Cholesky diagonal used as a divisor.
	ErrZeroDivision = errors.New("decompose: division by zero")

	// ErrSingularPivot marks a pivot with magnitude below the tolerance.
	ErrSingularPivot = errors.New("decompose: singular or near-singular pivot")

	// ErrNotDiagonalizable marks an eigenvector matrix that cannot be inverted.
	ErrNotDiagonalizable = errors.New("decompose: not diagonalizable")

	// ErrComplexSpectrum marks a real matrix whose eigenvalues are not all real.
	ErrComplexSpectrum = errors.New("decompose: complex eigenvalues")

	// ErrSolver marks a failure of the eigen primitive.
	ErrSolver = errors.New("decompose: eigen solver failed")

	// ErrFactorization marks a failure inside the library LU routine.
	ErrFactorization = errors.New("decompose: factorization failed")

	// ErrUnknownMethod is returned by ParseMethod and Decompose.
	ErrUnknownMethod = errors.New("decompose: unknown method")
)

// DecompositionError is an algorithm-specific failure. Step is the 1-based
// pivot or diagonal index where the algorithm stopped, 0 when not applicable.
//
// It matches ErrDecomposition, Kind, and (when set) Err through errors.Is;
// errors.As reaches an underlying *eigen.SolverError as well.
type DecompositionError struct {
	Method Method
	Step   int
	Reason string
	Kind   error
	Err    error
}

// Error renders "decompose: <method>: <reason>[: <cause>]".
func (e *DecompositionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decompose: %s: %s: %v", e.Method, e.Reason, e.Err)
	}

	return fmt.Sprintf("decompose: %s: %s", e.Method, e.Reason)
}

// Unwrap exposes ErrDecomposition, Kind and Err (nil entries skipped).
func (e *DecompositionError) Unwrap() []error {
	out := []error{ErrDecomposition}
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}

	return out
}

func pivotErr(method Method, step int, kind error, reason string) *DecompositionError {
	return &DecompositionError{Method: method, Step: step, Reason: reason, Kind: kind}
}
