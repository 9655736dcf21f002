// SPDX-License-Identifier: MIT
// Package coper: shared error taxonomy.
//
// Every public routine in covariance/ and pcor/ returns an error that matches
// exactly one of the sentinels below via errors.Is. Context (operation, shape,
// offending entry, condition number) is attached by wrapping, never by new
// sentinels, so callers can switch on the kind and still log the details.

package coper

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimension indicates a nil input, a zero-sized input, or a
	// shape that the operation cannot accept (e.g. a non-square Σ).
	ErrInvalidDimension = errors.New("coper: invalid dimension")

	// ErrNonFiniteInput indicates a NaN or ±Inf entry in the input.
	ErrNonFiniteInput = errors.New("coper: non-finite input")

	// ErrNotSymmetric indicates a covariance matrix whose transpose differs
	// from itself beyond the configured tolerance.
	ErrNotSymmetric = errors.New("coper: matrix is not symmetric")

	// ErrNotInvertible indicates a singular or ill-conditioned covariance matrix.
	ErrNotInvertible = errors.New("coper: matrix is not invertible")

	// ErrNumericInstability indicates a derived value outside its valid range
	// (|pcor| > 1 beyond tolerance, or a non-positive precision diagonal).
	ErrNumericInstability = errors.New("coper: numeric instability")
)

// EntryError pins a failure to a single matrix entry.
// Kind is one of the sentinels above and is what Unwrap returns.
type EntryError struct {
	Op    string  // operation tag, e.g. "Estimate" or "Derive"
	Row   int     // zero-based row index
	Col   int     // zero-based column index
	Value float64 // offending value
	Kind  error   // sentinel kind
}

// Error implements error.
func (e *EntryError) Error() string {
	return fmt.Sprintf("%s: entry (%d,%d)=%g: %v", e.Op, e.Row, e.Col, e.Value, e.Kind)
}

// Unwrap exposes the sentinel kind to errors.Is.
func (e *EntryError) Unwrap() error { return e.Kind }

// ConditionError reports a covariance matrix rejected for its conditioning.
// It always unwraps to ErrNotInvertible.
type ConditionError struct {
	Op        string  // operation tag
	Cond      float64 // 2-norm condition number (may be +Inf or NaN)
	Threshold float64 // configured maximum
}

// Error implements error.
func (e *ConditionError) Error() string {
	return fmt.Sprintf("%s: condition number %g exceeds %g: %v", e.Op, e.Cond, e.Threshold, ErrNotInvertible)
}

// Unwrap exposes ErrNotInvertible to errors.Is.
func (e *ConditionError) Unwrap() error { return ErrNotInvertible }

// DimensionErrorf wraps ErrInvalidDimension with the operation and the
// offending shape.
func DimensionErrorf(op string, rows, cols int, reason string) error {
	return fmt.Errorf("%s: %dx%d %s: %w", op, rows, cols, reason, ErrInvalidDimension)
}
