// SPDX-License-Identifier: MIT

package precond

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/lvdecomp/eigen"
	"github.com/katalvlaran/lvdecomp/matrix"
)

const (
	opSymmetrize = "Symmetrize"
	opRepair     = "RepairPositiveDefinite"
	opPrecond    = "Precondition"
)

// Source says where a minimum eigenvalue came from.
type Source uint8

const (
	// SourceComputed: the solver succeeded; Value is genuine.
	SourceComputed Source = iota
	// SourceAssumed: the solver failed; Value is an assumed 0 and a repair is forced.
	SourceAssumed
	// SourceEmergency: the solver panicked or returned non-finite output;
	// the diagonal is shifted by EmergencyShift.
	SourceEmergency
)

// String returns "computed", "assumed" or "emergency".
func (s Source) String() string {
	switch s {
	case SourceAssumed:
		return "assumed"
	case SourceEmergency:
		return "emergency"
	default:
		return "computed"
	}
}

// MinEigenvalue is the outcome of asking the solver for λ_min.
// Reason is nil for SourceComputed.
type MinEigenvalue struct {
	Value  float64
	Source Source
	Reason error
}

// Repair describes a positive-definite repair.
// When Applied is false, Matrix equals the input and Shift is 0.
type Repair struct {
	Matrix   matrix.Matrix
	Shift    float64
	Applied  bool
	MinEigen MinEigenvalue
}

// Outcome is the result of Precondition.
// Repair is nil when the (symmetrized) matrix was already positive definite.
type Outcome struct {
	Matrix      matrix.Matrix
	Symmetrized bool
	Repair      *Repair
}

// Changed reports whether Matrix differs from the input.
func (o *Outcome) Changed() bool {
	return o.Symmetrized || (o.Repair != nil && o.Repair.Applied)
}

// Symmetrize returns (A + Aᵀ) / 2.
// Errors: ErrNilMatrix, *matrix.ShapeError (non-square).
// Complexity: O(n²).
func Symmetrize(m matrix.Matrix) (matrix.Matrix, error) {
	if err := matrix.RequireSquare(m); err != nil {
		return nil, fmt.Errorf("%s: %w", opSymmetrize, err)
	}
	t, err := matrix.Transpose(m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opSymmetrize, err)
	}
	sum, err := matrix.Add(m, t)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opSymmetrize, err)
	}

	return matrix.Scale(sum, 0.5)
}

// minEigenvalue asks solver for Re(λ_min) and classifies the outcome.
// Shape errors are returned as errors; every solver failure is folded into
// an Assumed or Emergency outcome.
func minEigenvalue(m matrix.Matrix, solver eigen.Solver) (mv MinEigenvalue, err error) {
	defer func() {
		if r := recover(); r != nil {
			mv = MinEigenvalue{Source: SourceEmergency, Reason: fmt.Errorf("%w: %v", matrix.ErrLibraryPanic, r)}
			err = nil
		}
	}()

	res, err := solver.Solve(m)
	switch {
	case err == nil:
	case errors.Is(err, matrix.ErrBadShape), errors.Is(err, matrix.ErrNilMatrix):
		return MinEigenvalue{}, err
	case errors.Is(err, matrix.ErrLibraryPanic), errors.Is(err, eigen.ErrNonFinite):
		return MinEigenvalue{Source: SourceEmergency, Reason: err}, nil
	default:
		return MinEigenvalue{Value: 0, Source: SourceAssumed, Reason: err}, nil
	}

	v, err := res.MinReal()
	if err != nil {
		return MinEigenvalue{Value: 0, Source: SourceAssumed, Reason: err}, nil
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return MinEigenvalue{Source: SourceEmergency, Reason: eigen.ErrNonFinite}, nil
	}

	return MinEigenvalue{Value: v, Source: SourceComputed}, nil
}

// shiftDiagonal returns a copy of m with delta added to every diagonal entry.
func shiftDiagonal(m matrix.Matrix, delta float64) (matrix.Matrix, error) {
	out := m.Clone()
	var (
		v   float64
		err error
	)
	for i := 0; i < out.Rows(); i++ {
		if v, err = out.At(i, i); err != nil {
			return nil, err
		}
		if err = out.Set(i, i, v+delta); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// RepairPositiveDefinite shifts the diagonal of m so that its smallest
// eigenvalue becomes positive.
//
// Implementation:
//   - Stage 1: RequireSquare; λ_min = min Re(λ) from solver.
//   - Stage 2: by outcome source:
//     Computed and λ_min > 0 → unchanged (Applied=false);
//     Computed/Assumed with λ_min ≤ 0 → shift |λ_min| + margin;
//     Emergency → shift EmergencyShift.
//
// This is a best-effort heuristic, not the minimal perturbation; off-diagonal
// entries are never touched.
// Errors: ErrNilMatrix, *matrix.ShapeError.
func RepairPositiveDefinite(m matrix.Matrix, solver eigen.Solver, opts ...Option) (Repair, error) {
	o := gatherOptions(opts...)
	if err := matrix.RequireSquare(m); err != nil {
		return Repair{}, fmt.Errorf("%s: %w", opRepair, err)
	}
	if solver == nil {
		solver = eigen.New()
	}

	mv, err := minEigenvalue(m, solver)
	if err != nil {
		return Repair{}, fmt.Errorf("%s: %w", opRepair, err)
	}

	var shift float64
	switch {
	case mv.Source == SourceEmergency:
		shift = EmergencyShift
	case mv.Value <= 0:
		shift = math.Abs(mv.Value) + o.margin
	default:
		return Repair{Matrix: m.Clone(), MinEigen: mv}, nil
	}

	out, err := shiftDiagonal(m, shift)
	if err != nil {
		return Repair{}, fmt.Errorf("%s: %w", opRepair, err)
	}

	return Repair{Matrix: out, Shift: shift, Applied: true, MinEigen: mv}, nil
}

// Precondition makes m amenable to Cholesky: symmetrize when asymmetric
// beyond the tolerance, then repair when the Cholesky probe fails.
// Errors: ErrNilMatrix, *matrix.ShapeError.
func Precondition(m matrix.Matrix, solver eigen.Solver, opts ...Option) (*Outcome, error) {
	o := gatherOptions(opts...)
	if err := matrix.RequireSquare(m); err != nil {
		return nil, fmt.Errorf("%s: %w", opPrecond, err)
	}

	out := &Outcome{Matrix: m.Clone()}
	if !IsSymmetric(m, o.tol) {
		sym, err := Symmetrize(m)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", opPrecond, err)
		}
		out.Matrix, out.Symmetrized = sym, true
	}
	if IsPositiveDefinite(out.Matrix) {
		return out, nil
	}

	rep, err := RepairPositiveDefinite(out.Matrix, solver, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opPrecond, err)
	}
	out.Matrix, out.Repair = rep.Matrix, &rep

	return out, nil
}
