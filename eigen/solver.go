// SPDX-License-Identifier: MIT

package eigen

import (
	"errors"
	"math"

	"github.com/katalvlaran/lvdecomp/matrix"
)

// Solver computes all eigenvalues and right eigenvectors of a square matrix.
//
// Implementations return a *matrix.ShapeError for non-square input and a
// *SolverError when the primitive itself fails. They never panic and never
// mutate m.
type Solver interface {
	Name() string
	Solve(m matrix.Matrix) (*Result, error)
}

// New returns the solver selected by WithSolverKind (Auto by default).
func New(opts ...Option) Solver {
	o := gatherOptions(opts...)
	j := &Jacobi{tol: o.jacobiTol, symTol: o.symmetryTol, maxRotations: o.maxRotations}
	switch o.kind {
	case SolverJacobi:
		return j
	case SolverGeneral:
		return General{}
	default:
		return &Auto{jacobi: j, general: General{}, symTol: o.symmetryTol}
	}
}

// Auto routes symmetric input to Jacobi and everything else to General.
// When Jacobi fails to converge, General gets a second attempt.
type Auto struct {
	jacobi  *Jacobi
	general General
	symTol  float64
}

// Name returns "auto".
func (a *Auto) Name() string { return string(SolverAuto) }

// Solve implements Solver.
func (a *Auto) Solve(m matrix.Matrix) (*Result, error) {
	if err := matrix.RequireSquare(m); err != nil {
		return nil, err
	}
	rows, err := matrix.Rows2D(m)
	if err != nil {
		return nil, err
	}
	if !symmetric(rows, a.symTol) {
		return a.general.Solve(m)
	}
	res, err := a.jacobi.Solve(m)
	if errors.Is(err, ErrNotConverged) {
		return a.general.Solve(m)
	}

	return res, err
}

// symmetric reports |a[i][j] − a[j][i]| ≤ tol for every pair.
func symmetric(a [][]float64, tol float64) bool {
	for i := range a {
		for j := i + 1; j < len(a); j++ {
			if math.Abs(a[i][j]-a[j][i]) > tol {
				return false
			}
		}
	}

	return true
}
