// SPDX-License-Identifier: MIT
// Package matrix - gonum interop.
//
// Purpose:
//   - Bridge Dense to gonum's mat.Dense for factorizations this package does
//     not carry itself (SVD, condition numbers) and back.
//
// Notes:
//   - Both directions copy; no buffer is shared between the two worlds.

package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

const (
	opToGonum   = "ToGonum"
	opFromGonum = "FromGonum"
)

// ToGonum copies m into a new *mat.Dense with the same shape.
// Complexity: O(r*c).
func ToGonum(m Matrix) (*mat.Dense, error) {
	src, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opToGonum, err)
	}

	// mat.NewDense adopts the slice; src is already a private copy.
	return mat.NewDense(src.r, src.c, src.data), nil
}

// FromGonum copies any gonum matrix into a new Dense.
// The numeric policy follows opts (default: reject NaN/±Inf).
//
// Errors:
//   - ErrNilMatrix for a nil input, ErrInvalidDimensions for an empty one,
//     ErrNaNInf if the source holds NaN/±Inf.
//
// Complexity: O(r*c).
func FromGonum(g mat.Matrix, opts ...Option) (*Dense, error) {
	if g == nil {
		return nil, matrixErrorf(opFromGonum, ErrNilMatrix)
	}
	r, c := g.Dims()
	if r <= 0 || c <= 0 {
		return nil, matrixErrorf(opFromGonum, ErrInvalidDimensions)
	}
	data := make([]float64, r*c)
	var i, j int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			data[i*c+j] = g.At(i, j)
		}
	}
	out, err := NewDenseFrom(r, c, data, opts...)
	if err != nil {
		return nil, matrixErrorf(opFromGonum, fmt.Errorf("%dx%d: %w", r, c, err))
	}

	return out, nil
}
