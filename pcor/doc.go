// SPDX-License-Identifier: MIT

// Package pcor derives partial correlations from a covariance matrix.
//
// For a covariance Σ with precision P = Σ⁻¹ the partial correlation of
// variables i and j given all the others is
//
//	PC[i,j] = −P[i,j] / √(P[i,i]·P[j,j]),   PC[i,i] = 1.
//
// Derive rejects Σ before inverting when its 2-norm condition number (from an
// SVD) exceeds WithConditionThreshold (default 1e12), so near-singular inputs
// fail with coper.ErrNotInvertible rather than producing noise. Values that
// leave [-1, 1] by more than WithTolerance are reported as
// coper.ErrNumericInstability unless WithClamp is set.
//
// FromPrecision applies the same normalization to a precision matrix.
package pcor
