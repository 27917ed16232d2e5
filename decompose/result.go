// SPDX-License-Identifier: MIT

package decompose

import (
	"github.com/katalvlaran/lvdecomp/eigen"
	"github.com/katalvlaran/lvdecomp/matrix"
	"github.com/katalvlaran/lvdecomp/precond"
)

// Factors is the method-specific payload of a Result: one of *LUFactors,
// *FactorPair, *EigenFactors or *Diagonalization.
type Factors interface {
	// Residual returns the max-abs reconstruction error against target.
	Residual(target matrix.Matrix) (float64, error)
}

// WarningCode identifies a non-destructive adjustment of the input.
type WarningCode string

const (
	WarnSymmetrized            WarningCode = "symmetrized"
	WarnPositiveDefiniteRepair WarningCode = "positive-definite-repair"
)

// Warning is informational; it never aborts a decomposition.
type Warning struct {
	Code    WarningCode
	Message string
}

// Result is what Engine.Decompose returns.
type Result struct {
	Method Method
	// Input is a copy of the caller's matrix.
	Input matrix.Matrix
	// Processed is the preconditioned matrix that was actually factored;
	// nil when preconditioning left the input unchanged.
	Processed matrix.Matrix
	Factors   Factors
	Warnings  []Warning
	// Precondition is set for the Cholesky path only.
	Precondition *precond.Outcome
}

// Target returns the matrix the factors reconstruct.
func (r *Result) Target() matrix.Matrix {
	if r.Processed != nil {
		return r.Processed
	}

	return r.Input
}

// Residual verifies the factors against Target.
func (r *Result) Residual() (float64, error) {
	return r.Factors.Residual(r.Target())
}

// LUFactors satisfy P·A = L·U. Pivots[i] is the row of A moved to row i.
type LUFactors struct {
	P, L, U matrix.Matrix
	Pivots  []int
}

// Product returns L·U.
func (f *LUFactors) Product() (matrix.Matrix, error) { return matrix.Mul(f.L, f.U) }

// Residual returns max|P·A − L·U|.
func (f *LUFactors) Residual(target matrix.Matrix) (float64, error) {
	pa, err := matrix.Mul(f.P, target)
	if err != nil {
		return 0, err
	}
	lu, err := f.Product()
	if err != nil {
		return 0, err
	}

	return matrix.MaxAbsDiff(pa, lu)
}

// FactorPair is a two-factor decomposition; for Cholesky Upper = Lowerᵀ.
type FactorPair struct {
	Lower, Upper matrix.Matrix
}

// Product returns Lower·Upper.
func (f *FactorPair) Product() (matrix.Matrix, error) { return matrix.Mul(f.Lower, f.Upper) }

// Residual returns max|Lower·Upper − A|.
func (f *FactorPair) Residual(target matrix.Matrix) (float64, error) {
	p, err := f.Product()
	if err != nil {
		return 0, err
	}

	return matrix.MaxAbsDiff(p, target)
}

// EigenFactors carries the normalized eigen result; Residual is
// max|A·v − λ·v| over all pairs.
type EigenFactors struct {
	*eigen.Result
}

// Diagonalization is A = P·D·P⁻¹. Reconstruction is nil when P·D·P⁻¹ could
// not be formed.
type Diagonalization struct {
	P, D, PInv     matrix.Matrix
	Values         []eigen.Value
	Reconstruction matrix.Matrix
}

// Residual returns max|P·D·P⁻¹ − A|.
func (f *Diagonalization) Residual(target matrix.Matrix) (float64, error) {
	rec := f.Reconstruction
	if rec == nil {
		var err error
		if rec, err = matrix.MulChain(f.P, f.D, f.PInv); err != nil {
			return 0, err
		}
	}

	return matrix.MaxAbsDiff(rec, target)
}
