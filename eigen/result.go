// SPDX-License-Identifier: MIT

package eigen

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/katalvlaran/lvdecomp/matrix"
)

// Result is the single normalized shape every solver returns.
//
// Values[i] pairs with column i of Vectors (real parts) and Imag (imaginary
// parts). Imag is nil when every eigenvector is real. No ordering is imposed
// on Values; it is whatever the solver produced.
type Result struct {
	Values  []Value
	Vectors matrix.Matrix
	Imag    matrix.Matrix
}

// ErrEmptyResult is returned by accessors on a Result with no values.
var ErrEmptyResult = errors.New("eigen: empty result")

// RealParts returns Re(λ_i) for each eigenvalue, in solver order.
func (r *Result) RealParts() []float64 {
	out := make([]float64, len(r.Values))
	for i, v := range r.Values {
		out[i] = v.Re()
	}

	return out
}

// MinReal returns min_i Re(λ_i).
func (r *Result) MinReal() (float64, error) {
	if len(r.Values) == 0 {
		return 0, ErrEmptyResult
	}
	m := math.Inf(1)
	for _, v := range r.Values {
		if v.Re() < m {
			m = v.Re()
		}
	}

	return m, nil
}

// HasComplex reports whether any eigenvalue is the Complex variant.
func (r *Result) HasComplex() bool {
	for _, v := range r.Values {
		if !v.IsReal() {
			return true
		}
	}

	return false
}

// vectorAt returns component row of eigenvector col as a complex number.
func (r *Result) vectorAt(row, col int) (complex128, error) {
	re, err := r.Vectors.At(row, col)
	if err != nil {
		return 0, err
	}
	if r.Imag == nil {
		return complex(re, 0), nil
	}
	im, err := r.Imag.At(row, col)
	if err != nil {
		return 0, err
	}

	return complex(re, im), nil
}

// Residual returns max_{i,row} |(A·v_i)[row] − λ_i·v_i[row]| over all
// eigenpairs, computed in complex arithmetic.
// Errors: *matrix.ShapeError when target is not square or does not match
// the eigenvector dimension; ErrEmptyResult.
// Complexity: O(n³).
func (r *Result) Residual(target matrix.Matrix) (float64, error) {
	if len(r.Values) == 0 || r.Vectors == nil {
		return 0, ErrEmptyResult
	}
	if err := matrix.RequireSquare(target); err != nil {
		return 0, err
	}
	n := target.Rows()
	if r.Vectors.Rows() != n || r.Vectors.Cols() != len(r.Values) {
		return 0, matrix.ErrDimensionMismatch
	}

	a, err := matrix.Rows2D(target)
	if err != nil {
		return 0, err
	}
	var (
		i, row, k int
		acc, vk   complex128
		lambda    complex128
		worst     float64
		col       = make([]complex128, n)
	)
	for i = range r.Values {
		for k = 0; k < n; k++ {
			if col[k], err = r.vectorAt(k, i); err != nil {
				return 0, err
			}
		}
		lambda = r.Values[i].Complex128()
		for row = 0; row < n; row++ {
			acc = 0
			for k = 0; k < n; k++ {
				vk = col[k]
				acc += complex(a[row][k], 0) * vk
			}
			if d := cmplx.Abs(acc - lambda*col[row]); d > worst {
				worst = d
			}
		}
	}

	return worst, nil
}
