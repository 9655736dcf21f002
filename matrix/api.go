// SPDX-License-Identifier: MIT
// Package matrix - public API facades.
//
// Purpose:
//   - Provide thin, well-documented entry points for common tasks across the package.
//   - Each facade delegates to the canonical implementation; no loop duplication.
//
// Determinism & Policy:
//   - Facades never change the loop orders or numeric policy of underlying kernels.
//   - Validation is performed in the kernels; facades only compose or forward.
//
// AI-Hints:
//   - Prefer passing *Dense to unlock fast-paths in kernels (flat-slice loops).
//   - NewIdentity is the shrinkage target and the reference for A·A⁻¹ checks.

package matrix

const opSymmetrize = "Symmetrize"

// ---------- Constructors ----------

// NewIdentity returns I_n (n×n identity; ones on the diagonal, zeros elsewhere).
// Complexity: O(n^2) zeroing (constructor) + O(n) writes on the diagonal.
//
// AI-Hints: Shrinkage targets (μI) and inverse checks (A·A⁻¹ ≈ I) start here.
func NewIdentity(n int) (*Dense, error) {
	I, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		I.data[i*n+i] = 1.0
	}

	return I, nil
}

// ---------- Convenience facades ----------

// Symmetrize returns (m + mᵀ)/2. Deterministic composition: Transpose → Add → Scale.
// Complexity: O(rc).
//
// AI-Hints: Repairs round-off asymmetry of an inverse before normalizing it.
func Symmetrize(m Matrix) (*Dense, error) {
	mt, err := Transpose(m)
	if err != nil {
		return nil, matrixErrorf(opSymmetrize, err)
	}
	sum, err := Add(m, mt)
	if err != nil {
		return nil, matrixErrorf(opSymmetrize, err)
	}

	return Scale(sum, 0.5)
}

// AllClose reports whether |a-b| ≤ atol + rtol*|b| holds element-wise.
// Shapes must match; tolerances must be finite.
// Time: O(r*c). Space: O(1).
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	return ewAllClose(a, b, rtol, atol)
}

// MaxAbs returns max |m[i,j]|. Used to build scale-relative tolerances.
// Time: O(r*c). Space: O(1).
func MaxAbs(m Matrix) (float64, error) {
	return ewMaxAbs(m)
}

// ---------- Statistics ----------

// CenterColumns subtracts per-column means; returns (Xc, means).
// Complexity: O(r*c).
func CenterColumns(X Matrix) (*Dense, []float64, error) { return centerColumns(X) }

// Scatter returns the centered cross-product XcᵀXc (c×c) and the column means.
// Dividing by r−1 or r yields the sample or maximum-likelihood covariance.
// Complexity: O(r*c²).
func Scatter(X Matrix) (*Dense, []float64, error) { return scatter(X) }

// Covariance returns the sample covariance (XcᵀXc)/(r−1) and the column means.
// Requires r ≥ 2 (ErrDimensionMismatch).
// Complexity: O(r*c²).
func Covariance(X Matrix) (*Dense, []float64, error) { return covariance(X) }

// CovToCorrelation rescales a square covariance matrix to a correlation
// matrix. Degenerate (zero or negative) variances give a zero row/column.
// The result is exactly symmetric, built from the upper triangle of Cov.
// Complexity: O(c²).
func CovToCorrelation(Cov Matrix) (*Dense, []float64, error) { return covToCorrelation(Cov) }
