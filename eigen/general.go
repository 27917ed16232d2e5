// SPDX-License-Identifier: MIT

package eigen

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvdecomp/matrix"
)

const nameGeneral = "general"

// General is the adapter over gonum's mat.Eigen (LAPACK Dgeev) for arbitrary
// real square matrices. It is the only place where gonum's complex output is
// interpreted; everything downstream sees a normalized *Result.
type General struct{}

// Name returns "general".
func (General) Name() string { return nameGeneral }

// Solve implements Solver.
//
// Implementation:
//   - Stage 1: RequireSquare; copy into mat.Dense.
//   - Stage 2: Factorize with right eigenvectors under matrix.Guard.
//   - Stage 3: normalize eigenvalues into tagged Values and split the complex
//     eigenvector matrix into Vectors (real) and Imag (nil if all zero).
//
// Errors: *matrix.ShapeError; *SolverError (non-convergence, recovered panic,
// non-finite output).
func (General) Solve(m matrix.Matrix) (*Result, error) {
	if err := matrix.RequireSquare(m); err != nil {
		return nil, err
	}
	g, err := matrix.ToGonum(m)
	if err != nil {
		return nil, err
	}

	var (
		eig  mat.Eigen
		ok   bool
		vals []complex128
		cv   mat.CDense
	)
	err = matrix.Guard(func() error {
		if ok = eig.Factorize(g, mat.EigenRight); !ok {
			return nil
		}
		vals = eig.Values(nil)
		eig.VectorsTo(&cv)

		return nil
	})
	if err != nil {
		return nil, solverErr(nameGeneral, err)
	}
	if !ok {
		return nil, solverErr(nameGeneral, ErrNotConverged)
	}

	return normalize(vals, &cv)
}

// normalize converts gonum output into a Result.
func normalize(vals []complex128, cv *mat.CDense) (*Result, error) {
	n := len(vals)
	out := &Result{Values: make([]Value, n)}
	re := make([][]float64, n)
	im := make([][]float64, n)
	var (
		i, k    int
		z       complex128
		hasImag bool
	)
	for i = 0; i < n; i++ {
		if !finite(vals[i]) {
			return nil, solverErr(nameGeneral, ErrNonFinite)
		}
		out.Values[i] = FromComplex128(vals[i])
		re[i] = make([]float64, n)
		im[i] = make([]float64, n)
		for k = 0; k < n; k++ {
			z = cv.At(i, k)
			re[i][k], im[i][k] = real(z), imag(z)
			if im[i][k] != 0 {
				hasImag = true
			}
		}
	}

	var err error
	if out.Vectors, err = matrix.NewFromRows(re); err != nil {
		return nil, solverErr(nameGeneral, ErrNonFinite)
	}
	if hasImag {
		if out.Imag, err = matrix.NewFromRows(im); err != nil {
			return nil, solverErr(nameGeneral, ErrNonFinite)
		}
	}

	return out, nil
}

func finite(z complex128) bool {
	return !math.IsNaN(real(z)) && !math.IsInf(real(z), 0) &&
		!math.IsNaN(imag(z)) && !math.IsInf(imag(z), 0)
}
