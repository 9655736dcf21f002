// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide column statistics of a data matrix X (r observations × c variables)
//     as deterministic compositions over the ew* micro-kernels.
//
// Exposed API (see api.go):
//   - CenterColumns(X) -> (Xc, means)         // subtract per-column mean
//   - Scatter(X)       -> (S, means)          // XcᵀXc, upper triangle mirrored
//   - Covariance(X)    -> (Cov, means)        // S/(r-1), r ≥ 2
//   - CovToCorrelation(Cov) -> (Corr, stds)  // Pearson rescale; std=0 → zeroed row/col
//
// Determinism & Performance:
//   - Two-pass: means first, then centered cross-products (no E[x²]−E[x]² shortcut).
//   - Only the upper triangle of XcᵀXc is accumulated; the lower one is a mirror,
//     so outputs are exactly symmetric.
//
// AI-Hints:
//   - Validate finiteness first (ValidateFinite); NaN propagates silently here.

package matrix

import "math"

const (
	opCenterColumns = "CenterColumns"
	opScatter       = "Scatter"
	opCovariance    = "Covariance"

	opCovToCorrelation = "CovToCorrelation"
)

// centerColumns subtracts the per-column mean from every element.
// Implementation:
//   - Stage 1: Validate X (non-nil).
//   - Stage 2: Accumulate column sums row by row, then divide by r.
//   - Stage 3: Apply ewBroadcastSubCols to produce a centered copy.
//
// Returns:
//   - *Dense: centered copy (r×c).
//   - []float64: column means (len=c).
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for output (+ O(c) means).
func centerColumns(X Matrix) (*Dense, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}
	r, c := X.Rows(), X.Cols()
	means := make([]float64, c)

	var i, j, base int
	var v float64
	var err error
	if d, ok := X.(*Dense); ok {
		for i = 0; i < r; i++ {
			base = i * c
			for j = 0; j < c; j++ {
				means[j] += d.data[base+j]
			}
		}
	} else {
		for i = 0; i < r; i++ {
			for j = 0; j < c; j++ {
				if v, err = X.At(i, j); err != nil {
					return nil, nil, matrixErrorf(opCenterColumns, err)
				}
				means[j] += v
			}
		}
	}
	invR := 1.0 / float64(r)
	for j = range means {
		means[j] *= invR
	}

	Xc, err := ewBroadcastSubCols(X, means)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}

	return Xc, means, nil
}

// scatter returns the centered cross-product matrix S = XcᵀXc (c×c) and the means.
// Implementation:
//   - Stage 1: Center columns (two-pass).
//   - Stage 2: For every row k and i ≤ j accumulate Xc[k,i]*Xc[k,j] into S[i,j].
//   - Stage 3: Mirror the upper triangle into the lower one.
//
// Behavior highlights:
//   - Row-outer accumulation reads Xc once in storage order.
//   - S is exactly symmetric (bitwise), which downstream symmetry checks rely on.
//
// Complexity:
//   - Time O(r*c²/2), Space O(r*c + c²).
func scatter(X Matrix) (*Dense, []float64, error) {
	Xc, means, err := centerColumns(X)
	if err != nil {
		return nil, nil, matrixErrorf(opScatter, err)
	}
	r, c := Xc.r, Xc.c
	S, err := newDenseWithPolicy(c, c, false)
	if err != nil {
		return nil, nil, matrixErrorf(opScatter, err)
	}

	var k, i, j, rowK, rowI int
	var xi float64
	for k = 0; k < r; k++ {
		rowK = k * c
		for i = 0; i < c; i++ {
			xi = Xc.data[rowK+i]
			if xi == 0 {
				continue
			}
			rowI = i * c
			for j = i; j < c; j++ {
				S.data[rowI+j] += xi * Xc.data[rowK+j]
			}
		}
	}
	for i = 0; i < c; i++ {
		for j = i + 1; j < c; j++ {
			S.data[j*c+i] = S.data[i*c+j]
		}
	}

	return S, means, nil
}

// covariance computes the unbiased sample covariance of columns: S/(r-1).
// Requires r ≥ 2 (ErrDimensionMismatch otherwise).
// Complexity: O(r*c²).
func covariance(X Matrix) (*Dense, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	r := X.Rows()
	if r < 2 {
		return nil, nil, matrixErrorf(opCovariance, ErrDimensionMismatch)
	}
	S, means, err := scatter(X)
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	inv := 1.0 / float64(r-1)
	for idx := range S.data {
		S.data[idx] *= inv
	}
	S.validateNaNInf = DefaultValidateNaNInf

	return S, means, nil
}

// covToCorrelation rescales a square covariance matrix to correlations.
// Implementation:
//   - Stage 1: stds[j] = √Cov[j,j]; invStd = 1/std (0 for a zero or negative
//     variance, whose std is then reported as 0 or NaN).
//   - Stage 2: ewScaleCols by invStd, then scale row i of the upper triangle
//     by invStd[i] and mirror it, so the result is exactly symmetric.
//   - Stage 3: diagonal forced to 1 for non-degenerate columns.
//
// Behavior highlights:
//   - A degenerate column yields a zero row/column (including its diagonal).
//   - Only the upper triangle of Cov reaches the output.
//
// Complexity:
//   - Time O(c²), Space O(c²).
func covToCorrelation(Cov Matrix) (*Dense, []float64, error) {
	if err := ValidateSquareNonNil(Cov); err != nil {
		return nil, nil, matrixErrorf(opCovToCorrelation, err)
	}
	c := Cov.Rows()
	stds := make([]float64, c)
	invStd := make([]float64, c)
	var i, j int
	var v float64
	var err error
	for j = 0; j < c; j++ {
		if v, err = Cov.At(j, j); err != nil {
			return nil, nil, matrixErrorf(opCovToCorrelation, err)
		}
		stds[j] = math.Sqrt(v)
		if stds[j] > 0 {
			invStd[j] = 1.0 / stds[j]
		}
	}

	Corr, err := ewScaleCols(Cov, invStd)
	if err != nil {
		return nil, nil, matrixErrorf(opCovToCorrelation, err)
	}
	for i = 0; i < c; i++ {
		for j = i + 1; j < c; j++ {
			Corr.data[i*c+j] *= invStd[i]
			Corr.data[j*c+i] = Corr.data[i*c+j]
		}
		if invStd[i] != 0 {
			Corr.data[i*c+i] = 1.0
		}
	}

	return Corr, stds, nil
}
