// SPDX-License-Identifier: MIT

// Package matrix: bridge to gonum's mat package.
//
// gonum supplies the library-grade primitives (pivoted LU, general eigen
// solver, inverse). This file is the only place where Dense and mat.Dense
// meet; other packages call ToGonum/FromGonum and Guard instead of touching
// the flat buffers.

package matrix

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrLibraryPanic marks a panic raised inside gonum and recovered by Guard.
var ErrLibraryPanic = errors.New("matrix: numeric library panicked")

// ToGonum copies m into a new *mat.Dense.
// Complexity: O(r*c).
func ToGonum(m Matrix) (*mat.Dense, error) {
	d, err := asDense(m)
	if err != nil {
		return nil, err
	}
	buf := make([]float64, len(d.data))
	copy(buf, d.data)

	return mat.NewDense(d.r, d.c, buf), nil
}

// FromGonum copies any gonum matrix into a new Dense, rejecting NaN/±Inf.
// Complexity: O(r*c).
func FromGonum(g mat.Matrix) (*Dense, error) {
	r, c := g.Dims()
	out, err := NewDense(r, c)
	if err != nil {
		return nil, err
	}
	var (
		i, j int
		v    float64
	)
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			v = g.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, denseErrorf(ctxSet, i, j, ErrNaNInf)
			}
			out.data[i*c+j] = v
		}
	}

	return out, nil
}

// Guard runs fn and converts a gonum panic into an error matching ErrLibraryPanic.
// gonum reports misuse (bad shapes, failed factorizations) by panicking; the
// decompositions must surface those as errors instead.
func Guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrLibraryPanic, r)
		}
	}()

	return fn()
}
