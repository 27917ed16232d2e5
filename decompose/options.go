// SPDX-License-Identifier: MIT

// Package decompose: functional configuration of the Engine.
//   - documented defaults (constants),
//   - WithX constructors that panic on nonsensical values (programmer error).

package decompose

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/lvdecomp/eigen"
	"github.com/katalvlaran/lvdecomp/precond"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultTolerance is the pivot magnitude below which Doolittle, Crout
	// and strict LU report a singular pivot.
	DefaultTolerance = 1e-10

	// DefaultStrictLU keeps LU permissive: singular input still factors.
	DefaultStrictLU = false
)

const (
	panicToleranceInvalid = "decompose: WithTolerance: tol must be finite and > 0"
	panicSolverNil        = "decompose: WithSolver: solver must not be nil"
)

// Option mutates internal options.
type Option func(*Options)

// Options stores the effective Engine configuration.
type Options struct {
	tol      float64
	strictLU bool
	solver   eigen.Solver
	precond  []precond.Option
	log      zerolog.Logger
}

func gatherOptions(opts ...Option) Options {
	o := Options{
		tol:      DefaultTolerance,
		strictLU: DefaultStrictLU,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.solver == nil {
		o.solver = eigen.New()
	}

	return o
}

// WithTolerance sets the singular-pivot tolerance.
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol <= 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) { o.tol = tol }
}

// WithStrictLU makes LU fail with a DecompositionError when U has a pivot
// below the tolerance.
func WithStrictLU() Option {
	return func(o *Options) { o.strictLU = true }
}

// WithSolver replaces the eigen primitive used by preconditioning, eigen
// and diagonalize.
func WithSolver(s eigen.Solver) Option {
	if s == nil {
		panic(panicSolverNil)
	}

	return func(o *Options) { o.solver = s }
}

// WithMargin sets the positive-definite repair margin (see precond.WithMargin).
func WithMargin(margin float64) Option {
	po := precond.WithMargin(margin)

	return func(o *Options) { o.precond = append(o.precond, po) }
}

// WithSymmetryTolerance sets the tolerance the Cholesky path uses to decide
// whether to symmetrize.
func WithSymmetryTolerance(tol float64) Option {
	po := precond.WithTolerance(tol)

	return func(o *Options) { o.precond = append(o.precond, po) }
}

// WithLogger attaches a logger; the default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) { o.log = l }
}
