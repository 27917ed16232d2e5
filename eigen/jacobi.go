// SPDX-License-Identifier: MIT

package eigen

import (
	"math"

	"github.com/katalvlaran/lvdecomp/matrix"
)

const nameJacobi = "jacobi"

// Jacobi computes the eigen-decomposition of a real symmetric matrix with
// classical Jacobi rotations. Eigenvalues are always Real and the returned
// eigenvectors are orthonormal columns.
type Jacobi struct {
	tol          float64
	symTol       float64
	maxRotations int
}

// NewJacobi returns a Jacobi solver configured from opts.
func NewJacobi(opts ...Option) *Jacobi {
	o := gatherOptions(opts...)

	return &Jacobi{tol: o.jacobiTol, symTol: o.symmetryTol, maxRotations: o.maxRotations}
}

// Name returns "jacobi".
func (j *Jacobi) Name() string { return nameJacobi }

// Solve implements Solver.
//
// Implementation:
//   - Stage 1: RequireSquare, then fail fast on asymmetry (ErrNotSymmetric).
//   - Stage 2: work on a copy A and accumulate rotations into V = I.
//   - Stage 3: repeatedly annihilate the largest |a_pq| (p<q) until it drops
//     below tol·max(1, ‖A‖_F) or the rotation budget is spent.
//   - Stage 4: eigenvalues are diag(A), eigenvectors the columns of V.
//
// Errors: *matrix.ShapeError; *SolverError wrapping ErrNotSymmetric or
// ErrNotConverged.
// Complexity: O(n²) per rotation search, O(n) per rotation; Memory O(n²).
func (j *Jacobi) Solve(m matrix.Matrix) (*Result, error) {
	// Stage 1: Validate input
	if err := matrix.RequireSquare(m); err != nil {
		return nil, err
	}
	a, err := matrix.Rows2D(m) // deep copy, the working matrix
	if err != nil {
		return nil, err
	}
	n := len(a)
	if !symmetric(a, j.symTol) {
		return nil, solverErr(nameJacobi, ErrNotSymmetric)
	}

	// Stage 2: Prepare V (eigenvectors) as identity
	v := make([][]float64, n)
	var (
		i, k int
		norm float64
	)
	for i = 0; i < n; i++ {
		v[i] = make([]float64, n)
		v[i][i] = 1.0
		for k = 0; k < n; k++ {
			norm += a[i][k] * a[i][k]
		}
	}
	threshold := j.tol * math.Max(1, math.Sqrt(norm))
	limit := j.maxRotations
	if limit == 0 {
		limit = 100*n*n + 100
	}

	// Stage 3: Execute Jacobi rotations
	var (
		rot                int
		p, q               int
		maxOff, off        float64
		theta, t, c, s     float64
		app, aqq, apq      float64
		arp, arq, vrp, vrq float64
		converged          bool
	)
	for rot = 0; rot <= limit; rot++ {
		// find largest off-diagonal |a_pq|
		maxOff = 0.0
		for i = 0; i < n; i++ {
			for k = i + 1; k < n; k++ {
				if off = math.Abs(a[i][k]); off > maxOff {
					maxOff = off
					p, q = i, k
				}
			}
		}
		if maxOff < threshold {
			converged = true
			break
		}
		if rot == limit {
			break
		}

		app, aqq, apq = a[p][p], a[q][q], a[p][q]
		theta = (aqq - app) / (2 * apq)
		t = math.Copysign(1.0/(math.Abs(theta)+math.Sqrt(theta*theta+1)), theta)
		c = 1.0 / math.Sqrt(t*t+1) // cosine
		s = t * c                  // sine

		// rows/cols r ∉ {p,q}
		for i = 0; i < n; i++ {
			if i == p || i == q {
				continue
			}
			arp, arq = a[i][p], a[i][q]
			a[i][p] = c*arp - s*arq
			a[p][i] = a[i][p]
			a[i][q] = s*arp + c*arq
			a[q][i] = a[i][q]
		}
		a[p][p] = app - t*apq
		a[q][q] = aqq + t*apq
		a[p][q], a[q][p] = 0, 0

		// accumulate into V
		for i = 0; i < n; i++ {
			vrp, vrq = v[i][p], v[i][q]
			v[i][p] = c*vrp - s*vrq
			v[i][q] = s*vrp + c*vrq
		}
	}
	if !converged {
		return nil, solverErr(nameJacobi, ErrNotConverged)
	}

	// Stage 4: Finalize
	vals := make([]Value, n)
	for i = 0; i < n; i++ {
		if math.IsNaN(a[i][i]) || math.IsInf(a[i][i], 0) {
			return nil, solverErr(nameJacobi, ErrNonFinite)
		}
		vals[i] = Real(a[i][i])
	}
	vectors, err := matrix.NewFromRows(v)
	if err != nil {
		return nil, solverErr(nameJacobi, ErrNonFinite)
	}

	return &Result{Values: vals, Vectors: vectors}, nil
}
