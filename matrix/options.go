// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for the numeric policy.
//
// The only tunable is whether a Dense rejects NaN/±Inf on construction, Set
// and Apply. Estimators want the policy on; file readers turn it off so that
// the estimator, not the reader, reports the first non-finite entry with its
// own error kind.
package matrix

import "math"

// DefaultValidateNaNInf toggles strict finite-value validation on ingestion and Set.
const DefaultValidateNaNInf = true

// Option mutates internal options. Setters apply in order; the last one wins.
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	validateNaNInf bool // DefaultValidateNaNInf
}

// ValidateNaNInf reports whether finite-only validation is enabled.
func (o Options) ValidateNaNInf() bool { return o.validateNaNInf }

// WithValidateNaNInf enables strict finite-value validation (the default).
// When enabled, NaN and ±Inf are rejected by Set/Apply/NewDenseFrom.
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf disables strict finite-value validation.
// Use only when ingesting external data that is checked downstream
// (ValidateFinite) so the error surfaces with the right context.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// gatherOptions applies user setters on top of the defaults; nil setters
// are skipped.
func gatherOptions(user ...Option) Options {
	o := Options{validateNaNInf: DefaultValidateNaNInf}
	for _, set := range user {
		if set != nil {
			set(&o)
		}
	}

	return o
}

// isNonFinite reports NaN or ±Inf.
func isNonFinite(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}
