// SPDX-License-Identifier: MIT

// Package lvdecomp is a toolkit for factoring small dense matrices and
// checking the factors.
//
// What is inside:
//
//	matrix/     - row-major Dense, shape validation, kernels (Mul, Transpose, Inverse, ...)
//	eigen/      - tagged Real/Complex eigenvalues, Jacobi (symmetric) and gonum (general) solvers
//	precond/    - symmetry / positive-definiteness checks, symmetrization and PD repair
//	decompose/  - LU (partial pivoting), Cholesky, Doolittle, Crout, eigen, P·D·P⁻¹
//	render/     - matrix text parsing, text / JSON / YAML reports
//	config/     - YAML process configuration
//	cache/      - redis result cache behind a circuit breaker
//	server/     - JSON HTTP API with Prometheus metrics
//	cmd/lvdecomp - the CLI
//
// Every factorization returns factors that satisfy a reconstruction
// identity (P·A = L·U, A = L·Lᵀ, A = P·D·P⁻¹, ...) and Result.Residual
// reports how closely. Cholesky never rejects a non-symmetric or indefinite
// matrix outright: it symmetrizes and shifts the diagonal, and records a
// Warning for each change.
//
//	a := matrix.MustFromRows([][]float64{{1, 2}, {3, 4}})
//	res, err := decompose.Decompose(a, decompose.MethodCholesky)
//	// res.Warnings: symmetrized, positive-definite-repair
//
//	go get github.com/katalvlaran/lvdecomp
package lvdecomp
