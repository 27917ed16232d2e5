// SPDX-License-Identifier: MIT

package decompose

import (
	"errors"

	"github.com/katalvlaran/lvdecomp/eigen"
	"github.com/katalvlaran/lvdecomp/matrix"
)

// solve runs the configured eigen solver and lifts primitive failures into
// a DecompositionError for method. Shape errors pass through unchanged.
func (e *Engine) solve(m matrix.Matrix, method Method) (*eigen.Result, error) {
	res, err := e.solver.Solve(m)
	if err == nil {
		return res, nil
	}
	var se *eigen.SolverError
	if errors.As(err, &se) {
		return nil, &DecompositionError{Method: method, Reason: "eigen solver failed", Kind: ErrSolver, Err: err}
	}

	return nil, err
}

// Eigen returns the eigenvalues and right eigenvectors of m.
// Errors: *matrix.ShapeError; *DecompositionError wrapping *eigen.SolverError.
func (e *Engine) Eigen(m matrix.Matrix) (*EigenFactors, error) {
	if err := matrix.RequireSquare(m); err != nil {
		return nil, err
	}
	res, err := e.solve(m, MethodEigen)
	if err != nil {
		return nil, err
	}

	return &EigenFactors{Result: res}, nil
}

// Diagonalize builds A = P·D·P⁻¹ from the eigen decomposition.
//
// Implementation:
//   - Stage 1: RequireSquare; solve for (values, vectors).
//   - Stage 2: reject complex spectra; P would need complex arithmetic.
//   - Stage 3: D = diag(Re λ_i), P = eigenvectors (real parts, column i
//     pairs with λ_i).
//   - Stage 4: P⁻¹ via matrix.Inverse; failure means the eigenvectors are
//     not linearly independent.
//   - Stage 5: Reconstruction = P·D·P⁻¹, left nil if it cannot be formed.
//
// Errors: *matrix.ShapeError; *DecompositionError matching
// ErrComplexSpectrum, ErrNotDiagonalizable or ErrSolver.
// Complexity: O(n³).
func (e *Engine) Diagonalize(m matrix.Matrix) (*Diagonalization, error) {
	if err := matrix.RequireSquare(m); err != nil {
		return nil, err
	}
	res, err := e.solve(m, MethodDiagonalize)
	if err != nil {
		return nil, err
	}

	if res.Imag != nil || res.HasComplex() {
		return nil, &DecompositionError{
			Method: MethodDiagonalize,
			Reason: "complex eigenvalues; not diagonalizable over the reals",
			Kind:   ErrComplexSpectrum,
		}
	}

	D, err := matrix.NewDiagonal(res.RealParts())
	if err != nil {
		return nil, &DecompositionError{Method: MethodDiagonalize, Reason: "invalid eigenvalues", Kind: ErrSolver, Err: err}
	}
	P := res.Vectors.Clone()
	PInv, err := matrix.Inverse(P)
	if err != nil {
		return nil, &DecompositionError{
			Method: MethodDiagonalize,
			Reason: "not diagonalizable: eigenvectors not linearly independent",
			Kind:   ErrNotDiagonalizable,
			Err:    err,
		}
	}

	out := &Diagonalization{P: P, D: D, PInv: PInv, Values: res.Values}
	if rec, err := matrix.MulChain(P, D, PInv); err == nil {
		out.Reconstruction = rec
	} else {
		e.log.Debug().Err(err).Msg("diagonalize: reconstruction skipped")
	}

	return out, nil
}
