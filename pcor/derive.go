// SPDX-License-Identifier: MIT

package pcor

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/coper"
	"github.com/katalvlaran/coper/matrix"
)

const (
	opDerive        = "Derive"
	opFromPrecision = "FromPrecision"
)

// Result carries the partial correlations and the intermediate precision matrix.
type Result struct {
	PCor      *matrix.Dense // p×p, unit diagonal, symmetric
	Precision *matrix.Dense // Σ⁻¹ (symmetrized)
	Cond      float64       // 2-norm condition number of Σ
}

// Derive converts a covariance matrix Σ into its partial-correlation matrix.
// It is DeriveWithInfo without the by-products.
func Derive(sigma matrix.Matrix, opts ...Option) (*matrix.Dense, error) {
	res, err := DeriveWithInfo(sigma, opts...)
	if err != nil {
		return nil, err
	}

	return res.PCor, nil
}

// DeriveWithInfo computes PC[i,j] = −P[i,j]/√(P[i,i]·P[j,j]) with P = Σ⁻¹.
// Implementation:
//   - Stage 1: Validate Σ: square and non-empty, finite, symmetric within
//     symTol·max(1, max|Σ|).
//   - Stage 2: Condition number via SVD; NaN, +Inf or above the threshold is
//     ErrNotInvertible (*coper.ConditionError).
//   - Stage 3: P = Σ⁻¹ by pivoted LU; an exactly zero pivot is ErrNotInvertible.
//   - Stage 4: Normalize P on the upper triangle, mirror, unit diagonal.
//
// Errors:
//   - coper.ErrInvalidDimension, coper.ErrNonFiniteInput, coper.ErrNotSymmetric,
//     coper.ErrNotInvertible, coper.ErrNumericInstability.
//
// Complexity:
//   - Time O(p³), Space O(p²).
//
// AI-Hints:
//   - ErrNotInvertible on estimated covariances usually means p ≥ n or collinear
//     columns; re-estimate with covariance.MethodLedoitWolf.
func DeriveWithInfo(sigma matrix.Matrix, opts ...Option) (*Result, error) {
	o := gatherOptions(opts...)
	if err := validateSquareSymmetric(opDerive, sigma, o.symTol); err != nil {
		return nil, err
	}

	cond, err := conditionNumber(sigma)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opDerive, err)
	}
	if math.IsNaN(cond) || math.IsInf(cond, 1) || cond > o.condThreshold {
		return nil, &coper.ConditionError{Op: opDerive, Cond: cond, Threshold: o.condThreshold}
	}

	inv, err := matrix.Inverse(sigma)
	if errors.Is(err, matrix.ErrSingular) {
		return nil, fmt.Errorf("%s: %v: %w", opDerive, err, coper.ErrNotInvertible)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opDerive, err)
	}
	P, err := matrix.Symmetrize(inv)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opDerive, err)
	}

	pc, err := normalize(opDerive, P, o)
	if err != nil {
		return nil, err
	}

	return &Result{PCor: pc, Precision: P, Cond: cond}, nil
}

// FromPrecision normalizes a precision matrix P directly into partial correlations.
// No inversion and no condition check; P must still be square, finite and symmetric.
// Complexity: O(p²).
func FromPrecision(P matrix.Matrix, opts ...Option) (*matrix.Dense, error) {
	o := gatherOptions(opts...)
	if err := validateSquareSymmetric(opFromPrecision, P, o.symTol); err != nil {
		return nil, err
	}

	return normalize(opFromPrecision, P, o)
}

// conditionNumber returns σmax/σmin of m from a values-only SVD.
// A failed factorization reports +Inf.
func conditionNumber(m matrix.Matrix) (float64, error) {
	g, err := matrix.ToGonum(m)
	if err != nil {
		return 0, err
	}
	var svd mat.SVD
	if !svd.Factorize(g, mat.SVDNone) {
		return math.Inf(1), nil
	}

	return svd.Cond(), nil
}

// validateSquareSymmetric maps shape, finiteness and symmetry problems onto the taxonomy.
func validateSquareSymmetric(op string, m matrix.Matrix, symTol float64) error {
	if matrix.ValidateNotNil(m) != nil {
		return coper.DimensionErrorf(op, 0, 0, "nil matrix")
	}
	r, c := m.Rows(), m.Cols()
	if r < 1 || r != c {
		return coper.DimensionErrorf(op, r, c, "matrix must be square and non-empty")
	}
	if i, j, v, found := matrix.FirstNonFinite(m); found {
		return &coper.EntryError{Op: op, Row: i, Col: j, Value: v, Kind: coper.ErrNonFiniteInput}
	}

	scale, err := matrix.MaxAbs(m)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	bound := symTol * math.Max(1, scale)
	if i, j, diff := matrix.MaxAsymmetry(m); diff > bound {
		v, _ := m.At(i, j)
		return &coper.EntryError{Op: op, Row: i, Col: j, Value: v, Kind: coper.ErrNotSymmetric}
	}

	return nil
}

// normalize turns a precision matrix into partial correlations.
// Implementation:
//   - Stage 1: diag[i] = P[i,i]; any diag ≤ 0 is ErrNumericInstability.
//   - Stage 2: for i<j, v = −P[i,j]/√(diag[i]·diag[j]); |v| > 1+tol is reported
//     (or clamped with WithClamp); write v to (i,j) and (j,i).
//   - Stage 3: unit diagonal.
func normalize(op string, P matrix.Matrix, o Options) (*matrix.Dense, error) {
	p := P.Rows()
	diag := make([]float64, p)
	var i, j int
	var v float64
	var err error
	for i = 0; i < p; i++ {
		if diag[i], err = P.At(i, i); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if diag[i] <= 0 {
			return nil, &coper.EntryError{Op: op, Row: i, Col: i, Value: diag[i], Kind: coper.ErrNumericInstability}
		}
	}

	out, err := matrix.NewIdentity(p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	limit := 1 + o.tol
	for i = 0; i < p; i++ {
		for j = i + 1; j < p; j++ {
			if v, err = P.At(i, j); err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			v = -v / math.Sqrt(diag[i]*diag[j])
			if v == 0 {
				v = 0 // drop the sign of -0
			}
			switch {
			case o.clamp:
				v = math.Max(-1, math.Min(1, v))
			case math.IsNaN(v) || math.Abs(v) > limit:
				return nil, &coper.EntryError{Op: op, Row: i, Col: j, Value: v, Kind: coper.ErrNumericInstability}
			}
			if err = out.Set(i, j, v); err != nil {
				return nil, &coper.EntryError{Op: op, Row: i, Col: j, Value: v, Kind: coper.ErrNumericInstability}
			}
			if err = out.Set(j, i, v); err != nil {
				return nil, &coper.EntryError{Op: op, Row: j, Col: i, Value: v, Kind: coper.ErrNumericInstability}
			}
		}
	}

	return out, nil
}
