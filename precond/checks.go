// SPDX-License-Identifier: MIT

package precond

import (
	"math"

	"github.com/katalvlaran/lvdecomp/matrix"
)

// IsSymmetric reports whether |A[i][j] − A[j][i]| ≤ tol for all i, j.
// Nil or non-square input reports false.
// Complexity: O(n²).
func IsSymmetric(m matrix.Matrix, tol float64) bool {
	if matrix.RequireSquare(m) != nil {
		return false
	}
	a, err := matrix.Rows2D(m)
	if err != nil {
		return false
	}
	var i, j int
	for i = 0; i < len(a); i++ {
		for j = i + 1; j < len(a); j++ {
			if math.Abs(a[i][j]-a[j][i]) > tol {
				return false
			}
		}
	}

	return true
}

// IsPositiveDefinite probes m with a Cholesky factorization of its lower
// triangle and reports whether every pivot A[j][j] − Σ L[j][k]² is > 0.
// Failure is a boolean, never an error; nil or non-square input reports false.
// Complexity: O(n³).
func IsPositiveDefinite(m matrix.Matrix) bool {
	if matrix.RequireSquare(m) != nil {
		return false
	}
	a, err := matrix.Rows2D(m)
	if err != nil {
		return false
	}
	n := len(a)
	l := make([][]float64, n)
	for i := range l {
		l[i] = make([]float64, n)
	}

	var (
		i, j, k int
		sum     float64
	)
	for i = 0; i < n; i++ {
		for j = 0; j <= i; j++ {
			sum = 0
			for k = 0; k < j; k++ {
				sum += l[i][k] * l[j][k]
			}
			if i == j {
				d := a[i][i] - sum
				if !(d > 0) { // also rejects NaN
					return false
				}
				l[i][j] = math.Sqrt(d)
				continue
			}
			l[i][j] = (a[i][j] - sum) / l[j][j]
		}
	}

	return true
}
