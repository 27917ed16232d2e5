// SPDX-License-Identifier: MIT

// Package eigen computes eigenvalues and right eigenvectors of dense square
// matrices and normalizes every solver's output into one Result shape.
//
// Solvers:
//   - Jacobi: classical rotations for real symmetric input (real spectrum,
//     orthonormal eigenvectors).
//   - General: adapter over gonum's mat.Eigen for arbitrary real input; may
//     report Complex eigenvalues.
//   - Auto (default from New): Jacobi when the input is symmetric, General
//     otherwise or when Jacobi does not converge.
//
// Eigenvalues are the tagged Value variant: Real(x) or Complex(re, im).
// Failures of the primitive are *SolverError (errors.Is ErrEigenFailed);
// shape violations remain *matrix.ShapeError.
package eigen
