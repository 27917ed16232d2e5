// SPDX-License-Identifier: MIT

package decompose

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/lvdecomp/eigen"
	"github.com/katalvlaran/lvdecomp/matrix"
	"github.com/katalvlaran/lvdecomp/precond"
)

// Engine runs decompositions under one fixed configuration.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	tol      float64
	strictLU bool
	solver   eigen.Solver
	precond  []precond.Option
	log      zerolog.Logger
}

// New builds an Engine from opts.
func New(opts ...Option) *Engine {
	o := gatherOptions(opts...)

	return &Engine{
		tol:      o.tol,
		strictLU: o.strictLU,
		solver:   o.solver,
		precond:  o.precond,
		log:      o.log,
	}
}

// Decompose runs method on m with a default Engine.
func Decompose(m matrix.Matrix, method Method, opts ...Option) (*Result, error) {
	return New(opts...).Decompose(m, method)
}

// Decompose validates m, runs method and assembles a Result.
//
// The Cholesky path preconditions first: asymmetric input is symmetrized and
// non-positive-definite input gets a diagonal shift, each recorded as a
// Warning. If Cholesky still fails afterwards the error says so and wraps
// the pivot failure.
//
// Errors: ErrUnknownMethod; *matrix.ShapeError; *DecompositionError.
func (e *Engine) Decompose(m matrix.Matrix, method Method) (*Result, error) {
	if !method.Valid() {
		return nil, fmt.Errorf("Decompose %q: %w", method, ErrUnknownMethod)
	}
	if err := matrix.RequireSquare(m); err != nil {
		return nil, err
	}

	start := time.Now()
	res := &Result{Method: method, Input: m.Clone()}
	var err error
	switch method {
	case MethodLU:
		res.Factors, err = nilIfErr(e.LU(res.Input))
	case MethodCholesky:
		err = e.cholesky(res)
	case MethodDoolittle:
		res.Factors, err = nilIfErr(e.Doolittle(res.Input))
	case MethodCrout:
		res.Factors, err = nilIfErr(e.Crout(res.Input))
	case MethodEigen:
		res.Factors, err = nilIfErr(e.Eigen(res.Input))
	case MethodDiagonalize:
		res.Factors, err = nilIfErr(e.Diagonalize(res.Input))
	}

	ev := e.log.Debug()
	if err != nil {
		ev = e.log.Info().Err(err)
	}
	ev.Str("method", method.String()).
		Int("n", m.Rows()).
		Int("warnings", len(res.Warnings)).
		Dur("took", time.Since(start)).
		Msg("decompose")
	if err != nil {
		return nil, err
	}

	return res, nil
}

// nilIfErr keeps a typed nil pointer out of the Factors interface.
func nilIfErr[F Factors](f F, err error) (Factors, error) {
	if err != nil {
		return nil, err
	}

	return f, nil
}

// cholesky is the preconditioned Cholesky path of Decompose.
func (e *Engine) cholesky(res *Result) error {
	out, err := precond.Precondition(res.Input, e.solver, e.precond...)
	if err != nil {
		return err
	}
	res.Precondition = out

	if out.Symmetrized {
		res.Warnings = append(res.Warnings, Warning{
			Code:    WarnSymmetrized,
			Message: "matrix is not symmetric; converted to (A + Aᵀ) / 2",
		})
		e.log.Debug().Msg("cholesky: input symmetrized")
	}
	if rep := out.Repair; rep != nil && rep.Applied {
		res.Warnings = append(res.Warnings, Warning{
			Code:    WarnPositiveDefiniteRepair,
			Message: repairMessage(rep),
		})
		ev := e.log.Debug()
		if rep.MinEigen.Source != precond.SourceComputed {
			ev = e.log.Warn().AnErr("reason", rep.MinEigen.Reason)
		}
		ev.Str("source", rep.MinEigen.Source.String()).
			Float64("min_eigenvalue", rep.MinEigen.Value).
			Float64("shift", rep.Shift).
			Msg("cholesky: positive-definite repair")
	}
	if out.Changed() {
		res.Processed = out.Matrix
	}

	pair, err := e.Cholesky(out.Matrix)
	if err != nil {
		if !out.Changed() {
			return err
		}
		e.log.Warn().Err(err).Msg("cholesky: failed after preprocessing")

		return &DecompositionError{
			Method: MethodCholesky,
			Reason: "failed after preprocessing; matrix may be singular or badly conditioned",
			Kind:   ErrNotPositiveDefinite,
			Err:    err,
		}
	}
	res.Factors = pair

	return nil
}

func repairMessage(rep *precond.Repair) string {
	switch rep.MinEigen.Source {
	case precond.SourceAssumed:
		return fmt.Sprintf("matrix is not positive definite; eigenvalues unavailable, diagonal shifted by %g", rep.Shift)
	case precond.SourceEmergency:
		return fmt.Sprintf("matrix is not positive definite; eigen solver failed, emergency diagonal shift of %g", rep.Shift)
	default:
		return fmt.Sprintf("matrix is not positive definite (minimum eigenvalue %g); diagonal shifted by %g",
			rep.MinEigen.Value, rep.Shift)
	}
}
