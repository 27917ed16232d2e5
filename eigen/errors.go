// SPDX-License-Identifier: MIT

package eigen

import (
	"errors"
	"fmt"
)

var (
	// ErrEigenFailed is the umbrella sentinel matched by every SolverError.
	ErrEigenFailed = errors.New("eigen: eigen decomposition failed")

	// ErrNotSymmetric is returned by Jacobi for non-symmetric input.
	ErrNotSymmetric = errors.New("eigen: matrix is not symmetric")

	// ErrNotConverged signals that an iterative solver ran out of iterations.
	ErrNotConverged = errors.New("eigen: solver did not converge")

	// ErrNonFinite signals NaN/±Inf in solver output.
	ErrNonFinite = errors.New("eigen: solver produced non-finite output")

	// ErrUnknownSolver is returned by ParseSolverKind.
	ErrUnknownSolver = errors.New("eigen: unknown solver")
)

// SolverError reports a failure of the eigen primitive itself, as opposed
// to a shape violation of its input (which stays a *matrix.ShapeError).
type SolverError struct {
	Solver string // "jacobi" or "general"
	Err    error  // cause; may wrap matrix.ErrLibraryPanic
}

// Error renders "eigen: <solver> solver: <cause>".
func (e *SolverError) Error() string {
	return fmt.Sprintf("eigen: %s solver: %v", e.Solver, e.Err)
}

// Unwrap exposes ErrEigenFailed and the cause.
func (e *SolverError) Unwrap() []error { return []error{ErrEigenFailed, e.Err} }

func solverErr(solver string, err error) *SolverError {
	return &SolverError{Solver: solver, Err: err}
}
