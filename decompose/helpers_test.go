// SPDX-License-Identifier: MIT

package decompose_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvdecomp/matrix"
)

// reconTol is the per-entry reconstruction tolerance the factorizations guarantee.
const reconTol = 1e-6

func mustRows(t *testing.T, m matrix.Matrix) [][]float64 {
	t.Helper()
	rows, err := matrix.Rows2D(m)
	require.NoError(t, err)

	return rows
}

// randomSPD returns Bᵀ·B + n·I for a random B, which is symmetric positive definite.
func randomSPD(t *testing.T, rng *rand.Rand, n int) matrix.Matrix {
	t.Helper()
	b := randomDense(t, rng, n)
	bt, err := matrix.Transpose(b)
	require.NoError(t, err)
	p, err := matrix.Mul(bt, b)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		v, err := p.At(i, i)
		require.NoError(t, err)
		require.NoError(t, p.Set(i, i, v+float64(n)))
	}

	return p
}

// randomDense returns an n×n matrix with entries in [-5, 5).
func randomDense(t *testing.T, rng *rand.Rand, n int) matrix.Matrix {
	t.Helper()
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
		for j := range rows[i] {
			rows[i][j] = rng.Float64()*10 - 5
		}
	}

	return matrix.MustFromRows(rows)
}

// diagonallyDominant has non-singular leading principal minors, so the
// unpivoted factorizations succeed.
func diagonallyDominant(t *testing.T, rng *rand.Rand, n int) matrix.Matrix {
	t.Helper()
	m := randomDense(t, rng, n)
	for i := 0; i < n; i++ {
		require.NoError(t, m.Set(i, i, 6*float64(n)))
	}

	return m
}

func requireLowerTriangular(t *testing.T, m matrix.Matrix) {
	t.Helper()
	rows := mustRows(t, m)
	for i := range rows {
		for j := i + 1; j < len(rows); j++ {
			require.Zero(t, rows[i][j], "upper entry [%d,%d]", i, j)
		}
	}
}

func requireUpperTriangular(t *testing.T, m matrix.Matrix) {
	t.Helper()
	rows := mustRows(t, m)
	for i := range rows {
		for j := 0; j < i; j++ {
			require.Zero(t, rows[i][j], "lower entry [%d,%d]", i, j)
		}
	}
}

func requireUnitDiagonal(t *testing.T, m matrix.Matrix) {
	t.Helper()
	d, err := matrix.Diagonal(m)
	require.NoError(t, err)
	for i, v := range d {
		require.Equal(t, 1.0, v, "diag %d", i)
	}
}
