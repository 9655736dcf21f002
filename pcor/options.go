// SPDX-License-Identifier: MIT

package pcor

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultConditionThreshold is the largest accepted 2-norm condition number of Σ.
	DefaultConditionThreshold = 1e12

	// DefaultTolerance is how far |PC[i,j]| may exceed 1 before it is reported.
	DefaultTolerance = 1e-6

	// DefaultSymmetryTolerance scales with max(1, max|Σ|) to bound |Σ[i,j] − Σ[j,i]|.
	DefaultSymmetryTolerance = 1e-9

	// DefaultClamp keeps out-of-range values as errors.
	DefaultClamp = false
)

const (
	panicThresholdInvalid = "pcor: WithConditionThreshold: threshold must be > 0 and not NaN"
	panicToleranceInvalid = "pcor: WithTolerance: tol must be finite, non-negative"
	panicSymTolInvalid    = "pcor: WithSymmetryTolerance: tol must be finite, non-negative"
)

// Option mutates internal options. Constructors panic only on nonsensical values.
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	condThreshold float64 // > 0; +Inf disables the threshold (Inf/NaN cond still fails)
	tol           float64 // ≥ 0
	symTol        float64 // ≥ 0, relative
	clamp         bool
}

// ConditionThreshold returns the resolved condition-number ceiling.
func (o Options) ConditionThreshold() float64 { return o.condThreshold }

// Tolerance returns the resolved range tolerance.
func (o Options) Tolerance() float64 { return o.tol }

// Clamp reports whether out-of-range values are clamped instead of reported.
func (o Options) Clamp() bool { return o.clamp }

// WithConditionThreshold sets the maximum accepted condition number of Σ.
// Panics if threshold is NaN or ≤ 0. math.Inf(1) accepts every finite value.
func WithConditionThreshold(threshold float64) Option {
	if math.IsNaN(threshold) || threshold <= 0 {
		panic(panicThresholdInvalid)
	}

	return func(o *Options) { o.condThreshold = threshold }
}

// WithTolerance sets how far |PC[i,j]| may exceed 1 before ErrNumericInstability.
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) { o.tol = tol }
}

// WithSymmetryTolerance sets the relative symmetry tolerance for Σ.
// The absolute bound is tol·max(1, max|Σ|).
func WithSymmetryTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicSymTolInvalid)
	}

	return func(o *Options) { o.symTol = tol }
}

// WithClamp clamps out-of-range partial correlations into [-1, 1] instead of
// returning ErrNumericInstability. A non-positive precision diagonal is still an error.
func WithClamp() Option {
	return func(o *Options) { o.clamp = true }
}

// gatherOptions applies setters on top of defaults (last-writer-wins; nil skipped).
func gatherOptions(user ...Option) Options {
	o := Options{
		condThreshold: DefaultConditionThreshold,
		tol:           DefaultTolerance,
		symTol:        DefaultSymmetryTolerance,
		clamp:         DefaultClamp,
	}
	for _, set := range user {
		if set != nil {
			set(&o)
		}
	}

	return o
}
