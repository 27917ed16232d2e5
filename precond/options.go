// SPDX-License-Identifier: MIT

package precond

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultMargin is added on top of |λ_min| when shifting the diagonal.
	// It is a heuristic constant, not a scale-aware bound; tune it with
	// WithMargin for inputs whose magnitude is far from 1.
	DefaultMargin = 0.01

	// DefaultTolerance is the symmetry tolerance used by Precondition.
	DefaultTolerance = 1e-10

	// EmergencyShift is added to every diagonal entry when the eigen solver
	// cannot produce a usable minimum eigenvalue at all.
	EmergencyShift = 1.0
)

const (
	panicMarginInvalid    = "precond: WithMargin: margin must be finite and >= 0"
	panicToleranceInvalid = "precond: WithTolerance: tol must be finite and >= 0"
)

// Option mutates internal options.
type Option func(*Options)

// Options stores the effective preconditioning policy.
type Options struct {
	margin float64
	tol    float64
}

func gatherOptions(opts ...Option) Options {
	o := Options{margin: DefaultMargin, tol: DefaultTolerance}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// WithMargin sets the positive-definite repair margin.
func WithMargin(margin float64) Option {
	if math.IsNaN(margin) || math.IsInf(margin, 0) || margin < 0 {
		panic(panicMarginInvalid)
	}

	return func(o *Options) { o.margin = margin }
}

// WithTolerance sets the symmetry tolerance.
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) { o.tol = tol }
}
