// SPDX-License-Identifier: MIT

// Package precond holds the property checks (symmetry, positive
// definiteness) and the preconditioning steps that prepare an arbitrary
// square matrix for Cholesky: symmetrization and a diagonal-shift repair.
//
// The repair asks an eigen.Solver for the minimum eigenvalue and reports
// where that number came from (MinEigenvalue.Source), so callers can tell
// a genuinely computed value from an assumed one or an emergency shift.
package precond
