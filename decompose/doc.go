// SPDX-License-Identifier: MIT

// Package decompose is the decomposition engine: LU with partial pivoting,
// Cholesky (with automatic preconditioning on the Decompose path), Doolittle,
// Crout, eigen-analysis and diagonalization with self-verification.
//
// Usage:
//
//	eng := decompose.New(decompose.WithLogger(log), decompose.WithMargin(0.05))
//	res, err := eng.Decompose(a, decompose.MethodCholesky)
//	for _, w := range res.Warnings { ... }
//	resid, _ := res.Residual() // max-abs reconstruction error
//
// Error model:
//   - *matrix.ShapeError for non-square input (always propagated as is).
//   - *DecompositionError for algorithm failures; Step names the 1-based
//     pivot and errors.Is matches ErrDecomposition plus the specific kind.
//   - Eigen solver failures surface as a DecompositionError whose chain
//     still contains the *eigen.SolverError.
//
// Preconditioning adjustments are Warnings on the Result, never errors.
package decompose
