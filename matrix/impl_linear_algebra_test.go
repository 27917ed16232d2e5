// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for universal Matrix (linear algebra) operations.

package matrix_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvdecomp/matrix"
)

func TestAddSub(t *testing.T) {
	a := matrix.MustFromRows([][]float64{{1, 2}, {3, 4}})
	b := matrix.MustFromRows([][]float64{{5, 6}, {7, 8}})

	sum, err := matrix.Add(a, b)
	require.NoError(t, err)
	requireRowsClose(t, [][]float64{{6, 8}, {10, 12}}, sum, 0)

	diff, err := matrix.Sub(a, b)
	require.NoError(t, err)
	requireRowsClose(t, [][]float64{{-4, -4}, {-4, -4}}, diff, 0)

	_, err = matrix.Add(a, MustDense(t, 1, 2))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	require.ErrorContains(t, err, "Add:")
}

// TestHelpers_InterfaceHiding_Fallback ensures a wrapped operand takes the
// copy path and produces the same results as the bare Dense.
func TestHelpers_InterfaceHiding_Fallback(t *testing.T) {
	t.Parallel()

	base := matrix.MustFromRows([][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 10}})
	wrapped := hide{base}

	p1, err := matrix.Mul(base, base)
	require.NoError(t, err)
	p2, err := matrix.Mul(wrapped, base)
	require.NoError(t, err)
	d, err := matrix.MaxAbsDiff(p1, p2)
	require.NoError(t, err)
	require.Zero(t, d)

	t1, err := matrix.Transpose(wrapped)
	require.NoError(t, err)
	requireRowsClose(t, [][]float64{{1, 4, 7}, {2, 5, 8}, {3, 6, 10}}, t1, 0)
}

func TestMul(t *testing.T) {
	a := matrix.MustFromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	b := matrix.MustFromRows([][]float64{{7, 8}, {9, 10}, {11, 12}})
	p, err := matrix.Mul(a, b)
	require.NoError(t, err)
	requireRowsClose(t, [][]float64{{58, 64}, {139, 154}}, p, 0)

	_, err = matrix.Mul(a, a)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestMulChain(t *testing.T) {
	a := matrix.MustFromRows([][]float64{{2, 0}, {0, 3}})
	I, err := matrix.NewIdentity(2)
	require.NoError(t, err)

	p, err := matrix.MulChain(I, a, I)
	require.NoError(t, err)
	requireRowsClose(t, a.ToRows(), p, 0)

	single, err := matrix.MulChain(a)
	require.NoError(t, err)
	MustSet(t, single, 0, 0, 5)
	require.Equal(t, 2.0, MustAt(t, a, 0, 0), "single-operand chain must return a copy")

	_, err = matrix.MulChain()
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestScaleAndDiagonal(t *testing.T) {
	a := matrix.MustFromRows([][]float64{{1, -2}, {3, 4}})
	s, err := matrix.Scale(a, 0.5)
	require.NoError(t, err)
	requireRowsClose(t, [][]float64{{0.5, -1}, {1.5, 2}}, s, 0)

	d, err := matrix.Diagonal(a)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 4}, d)

	_, err = matrix.Diagonal(MustDense(t, 2, 3))
	require.ErrorIs(t, err, matrix.ErrNonSquare)
}

func TestAllClose(t *testing.T) {
	a := matrix.MustFromRows([][]float64{{1, 2}})
	b := matrix.MustFromRows([][]float64{{1 + 1e-12, 2}})
	require.True(t, matrix.AllClose(a, b, closeTol))
	require.False(t, matrix.AllClose(a, matrix.MustFromRows([][]float64{{1, 2.1}}), closeTol))
	require.False(t, matrix.AllClose(a, MustDense(t, 2, 1), closeTol))
}

func TestInverse(t *testing.T) {
	a := matrix.MustFromRows([][]float64{{4, 7}, {2, 6}})
	inv, err := matrix.Inverse(a)
	require.NoError(t, err)
	requireRowsClose(t, [][]float64{{0.6, -0.7}, {-0.2, 0.4}}, inv, closeTol)

	prod, err := matrix.Mul(a, inv)
	require.NoError(t, err)
	I, err := matrix.NewIdentity(2)
	require.NoError(t, err)
	require.True(t, matrix.AllClose(prod, I, closeTol))
}

func TestInverse_Singular(t *testing.T) {
	_, err := matrix.Inverse(matrix.MustFromRows([][]float64{{1, 2}, {2, 4}}))
	require.ErrorIs(t, err, matrix.ErrSingular)

	_, err = matrix.Inverse(MustDense(t, 2, 3))
	require.ErrorIs(t, err, matrix.ErrNonSquare)
}

func TestGuard_RecoversPanic(t *testing.T) {
	err := matrix.Guard(func() error { panic("boom") })
	require.ErrorIs(t, err, matrix.ErrLibraryPanic)
	require.ErrorContains(t, err, "boom")

	sentinel := errors.New("plain")
	require.ErrorIs(t, matrix.Guard(func() error { return sentinel }), sentinel)
}

func TestGonumRoundTrip(t *testing.T) {
	a := matrix.MustFromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	g, err := matrix.ToGonum(hide{a})
	require.NoError(t, err)
	r, c := g.Dims()
	require.Equal(t, 2, r)
	require.Equal(t, 3, c)

	back, err := matrix.FromGonum(g)
	require.NoError(t, err)
	requireRowsClose(t, a.ToRows(), back, 0)
}
