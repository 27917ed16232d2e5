// SPDX-License-Identifier: MIT

package decompose

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvdecomp/matrix"
)

// LU factors m with gonum's partially pivoted LU (LAPACK Dgetrf).
//
// Implementation:
//   - Stage 1: RequireSquare; copy into mat.Dense.
//   - Stage 2: Factorize, extract L, U and the row pivots under matrix.Guard.
//   - Stage 3: gonum reports A = Pg·L·U with Pg[j][piv[j]] = 1; the returned
//     P is Pgᵀ so that P·A = L·U.
//   - Stage 4: in strict mode, any |U[j][j]| < tol fails at pivot j+1.
//
// Errors: *matrix.ShapeError; *DecompositionError (library failure,
// non-finite factors, or a singular pivot in strict mode).
// Complexity: O(n³).
func (e *Engine) LU(m matrix.Matrix) (*LUFactors, error) {
	if err := matrix.RequireSquare(m); err != nil {
		return nil, err
	}
	n := m.Rows()
	g, err := matrix.ToGonum(m)
	if err != nil {
		return nil, err
	}

	var (
		lu   mat.LU
		l, u mat.TriDense
		piv  []int
	)
	err = matrix.Guard(func() error {
		lu.Factorize(g)
		lu.LTo(&l)
		lu.UTo(&u)
		piv = lu.RowPivots(nil)

		return nil
	})
	if err != nil {
		return nil, &DecompositionError{Method: MethodLU, Reason: "library factorization failed", Kind: ErrFactorization, Err: err}
	}

	L, err := matrix.FromGonum(&l)
	if err != nil {
		return nil, &DecompositionError{Method: MethodLU, Reason: "non-finite factor L", Kind: ErrFactorization, Err: err}
	}
	U, err := matrix.FromGonum(&u)
	if err != nil {
		return nil, &DecompositionError{Method: MethodLU, Reason: "non-finite factor U", Kind: ErrFactorization, Err: err}
	}

	if e.strictLU {
		var d float64
		for j := 0; j < n; j++ {
			if d, err = U.At(j, j); err != nil {
				return nil, err
			}
			if math.Abs(d) < e.tol {
				return nil, pivotErr(MethodLU, j+1, ErrSingularPivot, fmt.Sprintf("singular matrix at pivot %d", j+1))
			}
		}
	}

	// order[i] = row of A that lands on row i of P·A
	order := make([]int, n)
	for j, i := range piv {
		order[i] = j
	}
	P, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i, j := range order {
		if err = P.Set(i, j, 1); err != nil {
			return nil, err
		}
	}

	return &LUFactors{P: P, L: L, U: U, Pivots: order}, nil
}
