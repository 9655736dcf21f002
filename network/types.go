// SPDX-License-Identifier: MIT

package network

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// Sentinel errors.
var (
	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("network: invalid option supplied")

	// ErrNames is returned when the name list does not match the matrix order
	// or contains duplicates.
	ErrNames = errors.New("network: names do not match matrix")

	// ErrUnknownVertex is returned for a name that is not a vertex.
	ErrUnknownVertex = errors.New("network: unknown vertex")
)

// DefaultThreshold keeps every non-zero partial correlation as an edge.
const DefaultThreshold = 0.0

// Edge joins two variables that remain associated given all others.
type Edge struct {
	From, To string  // From precedes To in matrix order
	Weight   float64 // signed partial correlation
}

// Options configures Build.
type Options struct {
	// Ctx allows cancellation of Components on large graphs.
	Ctx context.Context

	// Threshold is the minimum |PC[i,j]| for an edge, in [0,1].
	Threshold float64

	// internal error recorded during option parsing
	err error
}

// Option configures Build via functional arguments. An invalid Option is
// recorded and surfaced as ErrOptionViolation by Build.
type Option func(*Options)

// DefaultOptions returns Background context and DefaultThreshold.
func DefaultOptions() Options {
	return Options{Ctx: context.Background(), Threshold: DefaultThreshold}
}

// WithThreshold sets the minimum absolute partial correlation for an edge.
func WithThreshold(t float64) Option {
	return func(o *Options) {
		if math.IsNaN(t) || t < 0 || t > 1 {
			o.err = fmt.Errorf("%w: threshold %v outside [0,1]", ErrOptionViolation, t)
			return
		}
		o.Threshold = t
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}
