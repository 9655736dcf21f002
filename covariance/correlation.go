// SPDX-License-Identifier: MIT

package covariance

import (
	"fmt"

	"github.com/katalvlaran/coper"
	"github.com/katalvlaran/coper/matrix"
)

// ToCorrelation rescales a covariance matrix to a correlation matrix:
// R[i,j] = Σ[i,j] / √(Σ[i,i]·Σ[j,j]).
//
// Behavior highlights:
//   - A zero variance yields a zero row and column, diagonal included.
//   - A negative variance is ErrNumericInstability at that diagonal entry.
//   - The input is not checked for symmetry; R is built from the upper triangle
//     of Σ and is exactly symmetric.
//
// Errors:
//   - coper.ErrInvalidDimension (nil or non-square), coper.ErrNonFiniteInput,
//     coper.ErrNumericInstability.
//
// Complexity: Time O(p²), Space O(p²).
func ToCorrelation(sigma matrix.Matrix) (*matrix.Dense, error) {
	if matrix.ValidateNotNil(sigma) != nil {
		return nil, coper.DimensionErrorf(opToCorrelation, 0, 0, "nil covariance matrix")
	}
	p, q := sigma.Rows(), sigma.Cols()
	if p < 1 || p != q {
		return nil, coper.DimensionErrorf(opToCorrelation, p, q, "covariance matrix must be square")
	}
	if i, j, v, found := matrix.FirstNonFinite(sigma); found {
		return nil, &coper.EntryError{Op: opToCorrelation, Row: i, Col: j, Value: v, Kind: coper.ErrNonFiniteInput}
	}

	var v float64
	var err error
	for i := 0; i < p; i++ {
		if v, err = sigma.At(i, i); err != nil {
			return nil, fmt.Errorf("%s: %w", opToCorrelation, err)
		}
		if v < 0 {
			return nil, &coper.EntryError{Op: opToCorrelation, Row: i, Col: i, Value: v, Kind: coper.ErrNumericInstability}
		}
	}

	R, _, err := matrix.CovToCorrelation(sigma)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opToCorrelation, err)
	}

	return R, nil
}
