// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide small, private element-wise and broadcast kernels (ew*) shared by
//     the statistics layer and the public helpers in api.go.
//   - Keep all loops deterministic and cache-friendly with Dense fast-paths.
//
// Determinism & Performance:
//   - Fixed loop orders (i→j or flat 0..n-1).
//   - No hidden allocations beyond the output Dense; O(r*c) time and space.
//
// AI-Hints:
//   - Prefer passing *Dense to unlock the flat-slice fast path.

package matrix

import "math"

const (
	opBroadcastSubCols = "broadcastSubCols"
	opScaleCols        = "scaleCols"
	opAllClose         = "AllClose"
	opMaxAbs           = "MaxAbs"
)

// ewBroadcastSubCols computes out[i,j] = X[i,j] - colMeans[j].
// Time: O(r*c). Space: O(r*c). Deterministic i→j loops.
//
// AI-Hint: Use for column-centering.
func ewBroadcastSubCols(X Matrix, colMeans []float64) (*Dense, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opBroadcastSubCols, err)
	}
	r, c := X.Rows(), X.Cols()
	if len(colMeans) != c {
		return nil, matrixErrorf(opBroadcastSubCols, ErrDimensionMismatch)
	}
	out, err := newDenseWithPolicy(r, c, false)
	if err != nil {
		return nil, matrixErrorf(opBroadcastSubCols, err)
	}

	var i, j, base int
	if d, ok := X.(*Dense); ok {
		for i = 0; i < r; i++ {
			base = i * c
			for j = 0; j < c; j++ {
				out.data[base+j] = d.data[base+j] - colMeans[j]
			}
		}
		return out, nil
	}

	var v float64
	for i = 0; i < r; i++ {
		base = i * c
		for j = 0; j < c; j++ {
			if v, err = X.At(i, j); err != nil {
				return nil, matrixErrorf(opBroadcastSubCols, err)
			}
			out.data[base+j] = v - colMeans[j]
		}
	}

	return out, nil
}

// ewScaleCols computes out[i,j] = X[i,j] * scale[j].
// Time: O(r*c). Space: O(r*c).
//
// AI-Hint: Use with 1/σⱼ for z-scoring or with 1/√Σⱼⱼ for covariance→correlation.
func ewScaleCols(X Matrix, scale []float64) (*Dense, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opScaleCols, err)
	}
	r, c := X.Rows(), X.Cols()
	if len(scale) != c {
		return nil, matrixErrorf(opScaleCols, ErrDimensionMismatch)
	}
	src, err := toDense(X)
	if err != nil {
		return nil, matrixErrorf(opScaleCols, err)
	}

	var i, j, base int
	for i = 0; i < r; i++ {
		base = i * c
		for j = 0; j < c; j++ {
			src.data[base+j] *= scale[j]
		}
	}
	src.validateNaNInf = DefaultValidateNaNInf

	return src, nil
}

// ewAllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
// Time: O(r*c). Space: O(1).
//
// Policy:
//   - a and b must be non-nil and have identical shapes.
//   - rtol, atol are treated as |rtol|, |atol|.
//   - Any NaN comparison is a mismatch.
func ewAllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if isNonFinite(rtol) || isNonFinite(atol) {
		return false, matrixErrorf(opAllClose, ErrNaNInf)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}

	within := func(av, bv float64) bool {
		return math.Abs(av-bv) <= atol+rtol*math.Abs(bv)
	}
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			for idx := range da.data {
				if !within(da.data[idx], db.data[idx]) {
					return false, nil
				}
			}
			return true, nil
		}
	}

	r, c := a.Rows(), a.Cols()
	var i, j int
	var av, bv float64
	var err error
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if av, err = a.At(i, j); err != nil {
				return false, matrixErrorf(opAllClose, err)
			}
			if bv, err = b.At(i, j); err != nil {
				return false, matrixErrorf(opAllClose, err)
			}
			if !within(av, bv) {
				return false, nil
			}
		}
	}

	return true, nil
}

// ewMaxAbs returns max |X[i,j]| (0 for an all-zero matrix).
// NaN entries are skipped; callers validate finiteness separately.
// Time: O(r*c). Space: O(1).
func ewMaxAbs(X Matrix) (float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return 0, matrixErrorf(opMaxAbs, err)
	}
	var best float64
	if d, ok := X.(*Dense); ok {
		for _, v := range d.data {
			if a := math.Abs(v); a > best {
				best = a
			}
		}
		return best, nil
	}

	r, c := X.Rows(), X.Cols()
	var i, j int
	var v float64
	var err error
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = X.At(i, j); err != nil {
				return 0, matrixErrorf(opMaxAbs, err)
			}
			if a := math.Abs(v); a > best {
				best = a
			}
		}
	}

	return best, nil
}
