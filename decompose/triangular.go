// SPDX-License-Identifier: MIT

package decompose

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvdecomp/matrix"
)

// square returns a zero n×n work buffer.
func square(n int) [][]float64 {
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, n)
	}

	return out
}

// identity returns I_n as a work buffer.
func identity(n int) [][]float64 {
	out := square(n)
	for i := range out {
		out[i][i] = 1
	}

	return out
}

// Cholesky computes A = L·Lᵀ for a symmetric positive-definite m, reading
// the lower triangle only. No preconditioning happens here; Decompose with
// MethodCholesky adds it.
//
// For j = 0..n-1 the diagonal A[j][j] − Σ_{k<j} L[j][k]² must be > 0
// ("not positive definite at diagonal j+1"); below it
// L[i][j] = (A[i][j] − Σ_{k<j} L[i][k]·L[j][k]) / L[j][j].
//
// Errors: *matrix.ShapeError; *DecompositionError matching
// ErrNotPositiveDefinite or ErrZeroDivision.
// Complexity: O(n³).
func (e *Engine) Cholesky(m matrix.Matrix) (*FactorPair, error) {
	if err := matrix.RequireSquare(m); err != nil {
		return nil, err
	}
	a, err := matrix.Rows2D(m)
	if err != nil {
		return nil, err
	}
	n := len(a)
	l := square(n)

	var (
		i, j, k int
		sum     float64
	)
	for j = 0; j < n; j++ {
		for i = j; i < n; i++ {
			sum = 0
			if i == j {
				for k = 0; k < j; k++ {
					sum += l[j][k] * l[j][k]
				}
				diag := a[j][j] - sum
				if !(diag > 0) {
					return nil, pivotErr(MethodCholesky, j+1, ErrNotPositiveDefinite,
						fmt.Sprintf("not positive definite at diagonal %d", j+1))
				}
				l[j][j] = math.Sqrt(diag)
				continue
			}
			for k = 0; k < j; k++ {
				sum += l[i][k] * l[j][k]
			}
			if l[j][j] == 0 {
				return nil, pivotErr(MethodCholesky, j+1, ErrZeroDivision,
					fmt.Sprintf("division by zero at L[%d][%d]", j+1, j+1))
			}
			l[i][j] = (a[i][j] - sum) / l[j][j]
		}
	}

	L, err := matrix.NewFromRows(l)
	if err != nil {
		return nil, err
	}
	LT, err := matrix.Transpose(L)
	if err != nil {
		return nil, err
	}

	return &FactorPair{Lower: L, Upper: LT}, nil
}

// Doolittle computes A = L·U with unit-diagonal L and no pivoting.
//
// Column by column: U[i][j] = A[i][j] − Σ_{k<i} L[i][k]·U[k][j] for i ≤ j;
// once U[j][j] is known it must satisfy |U[j][j]| ≥ tol, then
// L[i][j] = (A[i][j] − Σ_{k<j} L[i][k]·U[k][j]) / U[j][j] for i > j.
// The last pivot is checked too, so singular input never yields a singular U.
//
// Errors: *matrix.ShapeError; *DecompositionError matching ErrSingularPivot
// ("singular or near-singular at pivot j+1").
// Complexity: O(n³).
func (e *Engine) Doolittle(m matrix.Matrix) (*FactorPair, error) {
	if err := matrix.RequireSquare(m); err != nil {
		return nil, err
	}
	a, err := matrix.Rows2D(m)
	if err != nil {
		return nil, err
	}
	n := len(a)
	l, u := identity(n), square(n)

	var (
		i, j, k int
		sum     float64
	)
	for j = 0; j < n; j++ {
		for i = 0; i <= j; i++ {
			sum = 0
			for k = 0; k < i; k++ {
				sum += l[i][k] * u[k][j]
			}
			u[i][j] = a[i][j] - sum
		}
		if math.Abs(u[j][j]) < e.tol {
			return nil, pivotErr(MethodDoolittle, j+1, ErrSingularPivot,
				fmt.Sprintf("singular or near-singular at pivot %d", j+1))
		}
		for i = j + 1; i < n; i++ {
			sum = 0
			for k = 0; k < j; k++ {
				sum += l[i][k] * u[k][j]
			}
			l[i][j] = (a[i][j] - sum) / u[j][j]
		}
	}

	return pairFromRows(l, u)
}

// Crout computes A = L·U with unit-diagonal U and no pivoting.
//
// Column by column: U[i][j] = (A[i][j] − Σ_{k<i} L[i][k]·U[k][j]) / L[i][i]
// for i < j, then L[i][j] = A[i][j] − Σ_{k<j} L[i][k]·U[k][j] for i ≥ j.
// Every divisor must satisfy |L[i][i]| ≥ tol; L[j][j] is checked as soon as
// it is known, the last one included.
//
// Errors: *matrix.ShapeError; *DecompositionError matching ErrSingularPivot
// ("singular or near-singular at pivot i+1").
// Complexity: O(n³).
func (e *Engine) Crout(m matrix.Matrix) (*FactorPair, error) {
	if err := matrix.RequireSquare(m); err != nil {
		return nil, err
	}
	a, err := matrix.Rows2D(m)
	if err != nil {
		return nil, err
	}
	n := len(a)
	l, u := square(n), identity(n)

	var (
		i, j, k int
		sum     float64
	)
	for j = 0; j < n; j++ {
		// U[0..j-1][j] first: column j of L needs them.
		for i = 0; i < j; i++ {
			sum = 0
			for k = 0; k < i; k++ {
				sum += l[i][k] * u[k][j]
			}
			u[i][j] = (a[i][j] - sum) / l[i][i]
		}
		for i = j; i < n; i++ {
			sum = 0
			for k = 0; k < j; k++ {
				sum += l[i][k] * u[k][j]
			}
			l[i][j] = a[i][j] - sum
		}
		if math.Abs(l[j][j]) < e.tol {
			return nil, pivotErr(MethodCrout, j+1, ErrSingularPivot,
				fmt.Sprintf("singular or near-singular at pivot %d", j+1))
		}
	}

	return pairFromRows(l, u)
}

func pairFromRows(l, u [][]float64) (*FactorPair, error) {
	L, err := matrix.NewFromRows(l)
	if err != nil {
		return nil, err
	}
	U, err := matrix.NewFromRows(u)
	if err != nil {
		return nil, err
	}

	return &FactorPair{Lower: L, Upper: U}, nil
}
