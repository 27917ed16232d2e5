// SPDX-License-Identifier: MIT

// Package eigen: functional configuration for the solvers.
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors that panic on nonsensical values (programmer error).

package eigen

import (
	"fmt"
	"math"
	"strings"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultJacobiTolerance is the relative off-diagonal threshold at which
	// Jacobi stops: max|a_pq| < tol * max(1, ‖A‖_F).
	DefaultJacobiTolerance = 1e-12

	// DefaultSymmetryTolerance decides whether Auto routes to Jacobi.
	DefaultSymmetryTolerance = 1e-10

	// DefaultMaxRotations of 0 means "derive from n": 100*n*n + 100.
	DefaultMaxRotations = 0

	// DefaultSolverKind picks Jacobi for symmetric input and General otherwise.
	DefaultSolverKind = SolverAuto
)

// SolverKind selects the eigen primitive.
type SolverKind string

const (
	SolverAuto    SolverKind = "auto"
	SolverJacobi  SolverKind = "jacobi"
	SolverGeneral SolverKind = "general"
)

// ParseSolverKind maps a configuration string onto a SolverKind.
func ParseSolverKind(s string) (SolverKind, error) {
	switch k := SolverKind(strings.ToLower(strings.TrimSpace(s))); k {
	case SolverAuto, SolverJacobi, SolverGeneral:
		return k, nil
	case "":
		return DefaultSolverKind, nil
	default:
		return "", fmt.Errorf("ParseSolverKind %q: %w", s, ErrUnknownSolver)
	}
}

// ---------- Internal panic messages ----------

const (
	panicToleranceInvalid = "eigen: WithJacobiTolerance: tol must be finite and > 0"
	panicSymTolInvalid    = "eigen: WithSymmetryTolerance: tol must be finite and >= 0"
	panicMaxRotations     = "eigen: WithMaxRotations: limit must be >= 0"
	panicKindInvalid      = "eigen: WithSolverKind: unknown kind"
)

// Option mutates internal options.
type Option func(*Options)

// Options stores the effective solver configuration.
type Options struct {
	jacobiTol    float64
	symmetryTol  float64
	maxRotations int
	kind         SolverKind
}

func defaultOptions() Options {
	return Options{
		jacobiTol:    DefaultJacobiTolerance,
		symmetryTol:  DefaultSymmetryTolerance,
		maxRotations: DefaultMaxRotations,
		kind:         DefaultSolverKind,
	}
}

func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// WithJacobiTolerance sets the relative convergence threshold of Jacobi.
func WithJacobiTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol <= 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) { o.jacobiTol = tol }
}

// WithSymmetryTolerance sets the tolerance used to classify input as symmetric.
func WithSymmetryTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicSymTolInvalid)
	}

	return func(o *Options) { o.symmetryTol = tol }
}

// WithMaxRotations caps the number of Jacobi rotations; 0 restores the
// size-derived default.
func WithMaxRotations(limit int) Option {
	if limit < 0 {
		panic(panicMaxRotations)
	}

	return func(o *Options) { o.maxRotations = limit }
}

// WithSolverKind selects the primitive returned by New.
func WithSolverKind(k SolverKind) Option {
	switch k {
	case SolverAuto, SolverJacobi, SolverGeneral:
	default:
		panic(panicKindInvalid)
	}

	return func(o *Options) { o.kind = k }
}
