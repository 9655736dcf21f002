// SPDX-License-Identifier: MIT

package covariance

import (
	"fmt"

	"github.com/katalvlaran/coper"
	"github.com/katalvlaran/coper/matrix"
)

const (
	opEstimate      = "Estimate"
	opToCorrelation = "ToCorrelation"
)

// Estimate computes the p×p covariance matrix of the data matrix X (n×p).
// It is EstimateWithInfo without the by-products.
func Estimate(X matrix.Matrix, opts ...Option) (*matrix.Dense, error) {
	res, err := EstimateWithInfo(X, opts...)
	if err != nil {
		return nil, err
	}

	return res.Cov, nil
}

// EstimateWithInfo computes the covariance of the columns of X.
// Implementation:
//   - Stage 1: Validate X: non-nil, n ≥ 1, p ≥ 1 (ErrInvalidDimension), all
//     entries finite (ErrNonFiniteInput with the first offending entry).
//   - Stage 2: Two-pass scatter S = XcᵀXc (means first, then centered products);
//     SAM with n ≥ 2 takes it through matrix.Covariance.
//   - Stage 3: Apply the method: S/(n−1), S/n, or Ledoit–Wolf shrinkage of S/n.
//   - Stage 4: Reject an estimate that overflowed to ±Inf or NaN.
//
// Behavior highlights:
//   - The result is exactly symmetric: only the upper triangle is accumulated.
//   - n = 1 is accepted; SAM and ML then return the zero matrix.
//
// Errors:
//   - coper.ErrInvalidDimension, coper.ErrNonFiniteInput (*coper.EntryError).
//   - coper.ErrNumericInstability (*coper.EntryError) when finite data overflow.
//
// Complexity:
//   - Time O(n·p²), Space O(n·p + p²).
//
// AI-Hints:
//   - Prefer MethodLedoitWolf when p is close to or larger than n and the
//     estimate is going to be inverted (pcor.Derive).
func EstimateWithInfo(X matrix.Matrix, opts ...Option) (*Result, error) {
	o := gatherOptions(opts...)
	if err := validateData(X); err != nil {
		return nil, err
	}
	n := X.Rows()

	res := &Result{Method: o.method, N: n}
	var err error
	if o.method == MethodSAM && n >= 2 {
		res.Cov, res.Means, err = matrix.Covariance(X)
	} else {
		var S *matrix.Dense
		if S, res.Means, err = matrix.Scatter(X); err != nil {
			return nil, fmt.Errorf("%s: %w", opEstimate, err)
		}
		switch o.method {
		case MethodML:
			res.Cov, err = matrix.Scale(S, 1.0/float64(n))
		case MethodLedoitWolf:
			res.Cov, res.Shrinkage, err = ledoitWolf(X, S)
		default:
			res.Cov, err = matrix.Scale(S, 1.0/float64(samDivisor(n)))
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%s(%s): %w", opEstimate, o.method, err)
	}

	// Finite data can still overflow the centered products.
	if i, j, v, found := matrix.FirstNonFinite(res.Cov); found {
		return nil, &coper.EntryError{Op: opEstimate, Row: i, Col: j, Value: v, Kind: coper.ErrNumericInstability}
	}

	return res, nil
}

// samDivisor is n−1, or 1 for a single observation.
func samDivisor(n int) int {
	if n < 2 {
		return 1
	}

	return n - 1
}

// validateData maps structural and numeric input problems onto the taxonomy.
func validateData(X matrix.Matrix) error {
	if matrix.ValidateNotNil(X) != nil {
		return coper.DimensionErrorf(opEstimate, 0, 0, "nil data matrix")
	}
	n, p := X.Rows(), X.Cols()
	if n < 1 || p < 1 {
		return coper.DimensionErrorf(opEstimate, n, p, "need at least one observation and one variable")
	}
	if i, j, v, found := matrix.FirstNonFinite(X); found {
		return &coper.EntryError{Op: opEstimate, Row: i, Col: j, Value: v, Kind: coper.ErrNonFiniteInput}
	}

	return nil
}
