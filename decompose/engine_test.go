// SPDX-License-Identifier: MIT

package decompose_test

import (
	"bytes"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/lvdecomp/decompose"
	"github.com/katalvlaran/lvdecomp/eigen"
	"github.com/katalvlaran/lvdecomp/matrix"
	"github.com/katalvlaran/lvdecomp/precond"
)

type EngineSuite struct {
	suite.Suite
	eng *decompose.Engine
	rng *rand.Rand
}

func (s *EngineSuite) SetupTest() {
	s.eng = decompose.New()
	s.rng = rand.New(rand.NewSource(42))
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

// ---------- LU ----------

func (s *EngineSuite) TestLU_PermutedReconstruction() {
	// first column forces a pivot cycle 0→2→1
	a := matrix.MustFromRows([][]float64{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 10},
	})
	f, err := s.eng.LU(a)
	s.Require().NoError(err)
	requireLowerTriangular(s.T(), f.L)
	requireUnitDiagonal(s.T(), f.L)
	requireUpperTriangular(s.T(), f.U)
	s.Require().Equal(2, f.Pivots[0], "largest |a_i0| is in row 3")

	d, err := f.Residual(a)
	s.Require().NoError(err)
	s.Require().Less(d, reconTol)

	// P is a permutation matrix matching Pivots
	for i, j := range f.Pivots {
		v, err := f.P.At(i, j)
		s.Require().NoError(err)
		s.Require().Equal(1.0, v)
	}
}

func (s *EngineSuite) TestLU_RandomInvertible() {
	for n := 1; n <= 6; n++ {
		a := randomDense(s.T(), s.rng, n)
		f, err := s.eng.LU(a)
		s.Require().NoError(err, "n=%d", n)
		d, err := f.Residual(a)
		s.Require().NoError(err)
		s.Require().Less(d, reconTol, "n=%d", n)
	}
}

func (s *EngineSuite) TestLU_SingularPermissiveAndStrict() {
	a := matrix.MustFromRows([][]float64{{1, 2}, {2, 4}})
	f, err := s.eng.LU(a)
	s.Require().NoError(err)
	d, err := f.Residual(a)
	s.Require().NoError(err)
	s.Require().Less(d, reconTol)

	_, err = decompose.New(decompose.WithStrictLU()).LU(a)
	s.Require().ErrorIs(err, decompose.ErrDecomposition)
	s.Require().ErrorIs(err, decompose.ErrSingularPivot)
	var de *decompose.DecompositionError
	s.Require().True(errors.As(err, &de))
	s.Require().Equal(2, de.Step)
	s.Require().Equal(decompose.MethodLU, de.Method)
}

// ---------- Cholesky ----------

func (s *EngineSuite) TestCholesky_Scenario4232() {
	a := matrix.MustFromRows([][]float64{{4, 2}, {2, 3}})
	res, err := s.eng.Decompose(a, decompose.MethodCholesky)
	s.Require().NoError(err)
	s.Require().Empty(res.Warnings)
	s.Require().Nil(res.Processed)

	pair, ok := res.Factors.(*decompose.FactorPair)
	s.Require().True(ok)
	l := mustRows(s.T(), pair.Lower)
	s.Require().InDelta(2, l[0][0], 1e-12)
	s.Require().Zero(l[0][1])
	s.Require().InDelta(1, l[1][0], 1e-12)
	s.Require().InDelta(math.Sqrt2, l[1][1], 1e-12)

	d, err := res.Residual()
	s.Require().NoError(err)
	s.Require().Less(d, reconTol)
}

func (s *EngineSuite) TestCholesky_RandomSPD() {
	for n := 1; n <= 6; n++ {
		a := randomSPD(s.T(), s.rng, n)
		pair, err := s.eng.Cholesky(a)
		s.Require().NoError(err)
		requireLowerTriangular(s.T(), pair.Lower)
		diag, err := matrix.Diagonal(pair.Lower)
		s.Require().NoError(err)
		for _, v := range diag {
			s.Require().Greater(v, 0.0)
		}
		lt, err := matrix.Transpose(pair.Lower)
		s.Require().NoError(err)
		s.Require().True(matrix.AllClose(lt, pair.Upper, 0))

		d, err := pair.Residual(a)
		s.Require().NoError(err)
		s.Require().Less(d, reconTol)
	}
}

func (s *EngineSuite) TestCholesky_RawFailures() {
	_, err := s.eng.Cholesky(matrix.MustFromRows([][]float64{{1, 2}, {2, 1}}))
	s.Require().ErrorIs(err, decompose.ErrNotPositiveDefinite)
	s.Require().ErrorContains(err, "not positive definite at diagonal 2")

	_, err = s.eng.Cholesky(matrix.MustFromRows([][]float64{{0, 0}, {0, 1}}))
	var de *decompose.DecompositionError
	s.Require().True(errors.As(err, &de))
	s.Require().Equal(1, de.Step)
}

func (s *EngineSuite) TestCholesky_FailsAfterPreprocessing() {
	// zero margin shifts the minimum eigenvalue to exactly 0: [[1,1],[1,1]]
	eng := decompose.New(
		decompose.WithMargin(0),
		decompose.WithSolver(fixedSolver{res: &eigen.Result{
			Values:  []eigen.Value{eigen.Real(-1), eigen.Real(1)},
			Vectors: matrix.MustFromRows([][]float64{{1, 1}, {-1, 1}}),
		}}),
	)
	_, err := eng.Decompose(matrix.MustFromRows([][]float64{{0, 1}, {1, 0}}), decompose.MethodCholesky)
	s.Require().ErrorIs(err, decompose.ErrNotPositiveDefinite)
	s.Require().ErrorContains(err, "failed after preprocessing")

	var de *decompose.DecompositionError
	s.Require().True(errors.As(err, &de))
	s.Require().Equal(decompose.MethodCholesky, de.Method)
	s.Require().Equal("failed after preprocessing; matrix may be singular or badly conditioned", de.Reason)

	// the pivot failure from the raw factorization stays in the chain
	var pivot *decompose.DecompositionError
	s.Require().True(errors.As(de.Err, &pivot))
	s.Require().Equal(2, pivot.Step)
	s.Require().ErrorContains(de.Err, "not positive definite at diagonal 2")
}

func (s *EngineSuite) TestCholesky_NonSymmetricWarns() {
	a := matrix.MustFromRows([][]float64{{1, 2}, {3, 4}})
	res, err := s.eng.Decompose(a, decompose.MethodCholesky)
	s.Require().NoError(err)
	s.Require().NotEmpty(res.Warnings)
	s.Require().Equal(decompose.WarnSymmetrized, res.Warnings[0].Code)
	s.Require().NotNil(res.Processed)
	s.Require().True(precond.IsSymmetric(res.Processed, 1e-12))

	// the caller's matrix stays as given
	v, err := res.Input.At(1, 0)
	s.Require().NoError(err)
	s.Require().Equal(3.0, v)

	d, err := res.Residual()
	s.Require().NoError(err)
	s.Require().Less(d, reconTol)
}

func (s *EngineSuite) TestCholesky_IndefiniteRepaired() {
	a := matrix.MustFromRows([][]float64{{0, 1}, {1, 0}})
	res, err := s.eng.Decompose(a, decompose.MethodCholesky)
	s.Require().NoError(err)
	s.Require().Len(res.Warnings, 1)
	s.Require().Equal(decompose.WarnPositiveDefiniteRepair, res.Warnings[0].Code)
	s.Require().Equal(precond.SourceComputed, res.Precondition.Repair.MinEigen.Source)

	sol, err := eigen.New().Solve(res.Processed)
	s.Require().NoError(err)
	for _, v := range sol.RealParts() {
		s.Require().Greater(v, 0.0)
	}
	d, err := res.Residual()
	s.Require().NoError(err)
	s.Require().Less(d, reconTol)
}

// ---------- Doolittle / Crout ----------

func (s *EngineSuite) TestDoolittle_SingularPivot2() {
	_, err := s.eng.Doolittle(matrix.MustFromRows([][]float64{{1, 2}, {2, 4}}))
	s.Require().ErrorIs(err, decompose.ErrDecomposition)
	s.Require().ErrorIs(err, decompose.ErrSingularPivot)
	s.Require().ErrorContains(err, "singular or near-singular at pivot 2")

	var de *decompose.DecompositionError
	s.Require().True(errors.As(err, &de))
	s.Require().Equal(2, de.Step)
	s.Require().Equal(decompose.MethodDoolittle, de.Method)
}

func (s *EngineSuite) TestCrout_SingularPivot() {
	_, err := s.eng.Crout(matrix.MustFromRows([][]float64{{0, 1}, {1, 0}}))
	s.Require().ErrorContains(err, "pivot 1")

	_, err = s.eng.Crout(matrix.MustFromRows([][]float64{{1, 2}, {2, 4}}))
	s.Require().ErrorContains(err, "pivot 2")
}

func (s *EngineSuite) TestDoolittleCrout_Reconstruction() {
	for n := 1; n <= 6; n++ {
		a := diagonallyDominant(s.T(), s.rng, n)

		dl, err := s.eng.Doolittle(a)
		s.Require().NoError(err)
		requireUnitDiagonal(s.T(), dl.Lower)
		requireLowerTriangular(s.T(), dl.Lower)
		requireUpperTriangular(s.T(), dl.Upper)
		d, err := dl.Residual(a)
		s.Require().NoError(err)
		s.Require().Less(d, reconTol)

		cr, err := s.eng.Crout(a)
		s.Require().NoError(err)
		requireUnitDiagonal(s.T(), cr.Upper)
		requireLowerTriangular(s.T(), cr.Lower)
		requireUpperTriangular(s.T(), cr.Upper)
		d, err = cr.Residual(a)
		s.Require().NoError(err)
		s.Require().Less(d, reconTol)
	}
}

func (s *EngineSuite) TestDoolittle_Tolerance() {
	a := matrix.MustFromRows([][]float64{{1e-8, 1}, {1, 1}})
	_, err := s.eng.Doolittle(a)
	s.Require().NoError(err)

	_, err = decompose.New(decompose.WithTolerance(1e-6)).Doolittle(a)
	s.Require().ErrorIs(err, decompose.ErrSingularPivot)
}

// ---------- Eigen / Diagonalize ----------

func (s *EngineSuite) TestEigen_Method() {
	a := matrix.MustFromRows([][]float64{{2, 0}, {0, 3}})
	res, err := s.eng.Decompose(a, decompose.MethodEigen)
	s.Require().NoError(err)
	ef, ok := res.Factors.(*decompose.EigenFactors)
	s.Require().True(ok)
	s.Require().ElementsMatch([]float64{2, 3}, ef.RealParts())

	d, err := res.Residual()
	s.Require().NoError(err)
	s.Require().Less(d, reconTol)
}

func (s *EngineSuite) TestDiagonalize_RoundTrip() {
	for _, rows := range [][][]float64{
		{{4, 1}, {2, 3}},
		{{2, 0, 0}, {0, 3, 4}, {0, 4, 9}},
		{{1, 2}, {3, 4}},
	} {
		a := matrix.MustFromRows(rows)
		res, err := s.eng.Decompose(a, decompose.MethodDiagonalize)
		s.Require().NoError(err)
		dg := res.Factors.(*decompose.Diagonalization)
		s.Require().NotNil(dg.Reconstruction)
		s.Require().True(matrix.AllClose(dg.Reconstruction, a, 1e-4))
		s.Require().Len(dg.Values, len(rows))
	}
}

// fixedSolver returns a canned eigen result.
type fixedSolver struct{ res *eigen.Result }

func (fixedSolver) Name() string { return "fixed" }

func (f fixedSolver) Solve(matrix.Matrix) (*eigen.Result, error) { return f.res, nil }

func (s *EngineSuite) TestDiagonalize_Defective() {
	// Jordan block: the solver can only offer one independent eigenvector
	eng := decompose.New(decompose.WithSolver(fixedSolver{res: &eigen.Result{
		Values:  []eigen.Value{eigen.Real(1), eigen.Real(1)},
		Vectors: matrix.MustFromRows([][]float64{{1, 1}, {0, 0}}),
	}}))
	_, err := eng.Diagonalize(matrix.MustFromRows([][]float64{{1, 1}, {0, 1}}))
	s.Require().ErrorIs(err, decompose.ErrNotDiagonalizable)
	s.Require().ErrorIs(err, matrix.ErrSingular)
	s.Require().ErrorContains(err, "not diagonalizable")
}

func (s *EngineSuite) TestDiagonalize_ComplexSpectrum() {
	// rotation by 90°: eigenvalues ±i
	a := matrix.MustFromRows([][]float64{{0, -1}, {1, 0}})
	_, err := s.eng.Decompose(a, decompose.MethodDiagonalize)
	s.Require().ErrorIs(err, decompose.ErrComplexSpectrum)
	s.Require().ErrorIs(err, decompose.ErrDecomposition)
	s.Require().False(errors.Is(err, decompose.ErrNotDiagonalizable))
	s.Require().False(errors.Is(err, matrix.ErrSingular))
	s.Require().ErrorContains(err, "complex eigenvalues; not diagonalizable over the reals")

	var de *decompose.DecompositionError
	s.Require().True(errors.As(err, &de))
	s.Require().Equal(decompose.MethodDiagonalize, de.Method)

	// Eigen on the same matrix still succeeds
	res, err := s.eng.Decompose(a, decompose.MethodEigen)
	s.Require().NoError(err)
	s.Require().True(res.Factors.(*decompose.EigenFactors).HasComplex())
}

func (s *EngineSuite) TestSolverFailureSurfaces() {
	eng := decompose.New(decompose.WithSolver(eigen.NewJacobi()))
	_, err := eng.Decompose(matrix.MustFromRows([][]float64{{1, 2}, {3, 4}}), decompose.MethodEigen)
	s.Require().ErrorIs(err, decompose.ErrDecomposition)
	s.Require().ErrorIs(err, eigen.ErrEigenFailed)

	var se *eigen.SolverError
	s.Require().True(errors.As(err, &se))
	var de *decompose.DecompositionError
	s.Require().True(errors.As(err, &de))
	s.Require().Equal(decompose.MethodEigen, de.Method)
}

// ---------- Engine surface ----------

func (s *EngineSuite) TestShapeErrorsPropagate() {
	nonSquare := matrix.MustFromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	for _, m := range decompose.Methods() {
		_, err := s.eng.Decompose(nonSquare, m)
		s.Require().ErrorIs(err, matrix.ErrNonSquare, m.String())
		s.Require().NotErrorIs(err, decompose.ErrDecomposition, m.String())
	}
	_, err := s.eng.Decompose(nil, decompose.MethodLU)
	s.Require().ErrorIs(err, matrix.ErrNilMatrix)
}

func (s *EngineSuite) TestUnknownMethod() {
	_, err := s.eng.Decompose(matrix.MustFromRows([][]float64{{1}}), decompose.Method("qr"))
	s.Require().ErrorIs(err, decompose.ErrUnknownMethod)
}

func (s *EngineSuite) TestLogging() {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)
	eng := decompose.New(decompose.WithLogger(log))
	_, err := eng.Decompose(matrix.MustFromRows([][]float64{{0, 1}, {1, 0}}), decompose.MethodCholesky)
	s.Require().NoError(err)
	s.Require().Contains(buf.String(), `"method":"cholesky"`)
	s.Require().Contains(buf.String(), "positive-definite repair")
}

func TestParseMethod(t *testing.T) {
	cases := map[string]decompose.Method{
		"lu":               decompose.MethodLU,
		"LU-Decomposition": decompose.MethodLU,
		" cholesky ":       decompose.MethodCholesky,
		"eigenvalues":      decompose.MethodEigen,
		"diagonalization":  decompose.MethodDiagonalize,
		"crout":            decompose.MethodCrout,
		"doolittle":        decompose.MethodDoolittle,
	}
	for in, want := range cases {
		got, err := decompose.ParseMethod(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
	_, err := decompose.ParseMethod("svd")
	require.ErrorIs(t, err, decompose.ErrUnknownMethod)

	require.Len(t, decompose.Methods(), 6)
	require.Contains(t, decompose.MethodEigen.Aliases(), "eigenvalues")
	require.NotEmpty(t, decompose.MethodCrout.Title())
}

func TestOptions_Panics(t *testing.T) {
	require.Panics(t, func() { decompose.WithTolerance(0) })
	require.Panics(t, func() { decompose.WithSolver(nil) })
	require.Panics(t, func() { decompose.WithMargin(math.NaN()) })
}

func TestDecompose_Convenience(t *testing.T) {
	res, err := decompose.Decompose(matrix.MustFromRows([][]float64{{0, 1}, {1, 0}}),
		decompose.MethodCholesky, decompose.WithMargin(1))
	require.NoError(t, err)
	require.InDelta(t, 2, res.Precondition.Repair.Shift, 1e-10)
}
