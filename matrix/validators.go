// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep kernels/facades minimal by delegating shape/nil/symmetry/finite checks here.
//  - Return sentinel errors tagged with the validator name so call sites can wrap uniformly.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.
//  - Symmetry check runs O(n²) on the upper triangle only.
//
// Note:
//  - Each composite validator follows a fixed sequence (e.g. NotNil → Shape).
//  - Locator helpers (FirstNonFinite, MaxAsymmetry) return coordinates instead of
//    errors so higher layers can build their own typed diagnostics.

package matrix

import (
	"fmt"
	"math"
)

// zeroTol is the lower bound for tolerances; negative values are flipped.
const zeroTol = 0.0

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil – Ensures the matrix reference is non-nil.
//
// Returns ErrNilMatrix if m == nil (including a typed nil *Dense).
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	if d, ok := m.(*Dense); ok && d == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSameShape – Ensures matrices a and b have equal dimensions.
// Assumes a and b are not nil (caller must ensure).
// Complexity: O(1).
func ValidateSameShape(a, b Matrix) error {
	if a.Rows() != b.Rows() {
		return validatorErrorf("ValidateSameShape: Rows", ErrDimensionMismatch)
	}
	if a.Cols() != b.Cols() {
		return validatorErrorf("ValidateSameShape: Columns", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSquare checks that m is square (Rows == Cols).
// Assumes m is not nil.
// Errors: ErrNonSquare.
// Complexity: O(1).
func ValidateSquare(m Matrix) error {
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrNonSquare)
	}

	return nil
}

// ValidateBinarySameShape – Composite: NotNil(a) → NotNil(b) → SameShape.
// Complexity: O(1).
func ValidateBinarySameShape(a, b Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return validatorErrorf("ValidateBinarySameShape", err)
	}
	if err := ValidateNotNil(b); err != nil {
		return validatorErrorf("ValidateBinarySameShape", err)
	}
	if err := ValidateSameShape(a, b); err != nil {
		return validatorErrorf("ValidateBinarySameShape", err)
	}

	return nil
}

// ValidateSquareNonNil – Composite: NotNil → Square.
// Errors: ErrNilMatrix, ErrNonSquare.
// Complexity: O(1).
func ValidateSquareNonNil(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("ValidateSquareNonNil", err)
	}
	if err := ValidateSquare(m); err != nil {
		return validatorErrorf("ValidateSquareNonNil", err)
	}

	return nil
}

// ValidateMulCompatible – Ensures a.Cols == b.Rows, inputs non-nil.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(1).
func ValidateMulCompatible(a, b Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return validatorErrorf("ValidateMulCompatible", err)
	}
	if err := ValidateNotNil(b); err != nil {
		return validatorErrorf("ValidateMulCompatible", err)
	}
	if a.Cols() != b.Rows() {
		return validatorErrorf("ValidateMulCompatible", ErrDimensionMismatch)
	}

	return nil
}

// FirstNonFinite locates the first NaN/±Inf entry in row-major order.
// Returns found=false when every entry is finite.
// Complexity: O(r*c) worst case; stops at the first hit.
//
// AI-Hints:
//   - Use the coordinates to build user-facing diagnostics; ValidateFinite is the
//     error-returning shorthand.
func FirstNonFinite(m Matrix) (row, col int, v float64, found bool) {
	if d, ok := m.(*Dense); ok {
		for idx, x := range d.data {
			if isNonFinite(x) {
				return idx / d.c, idx % d.c, x, true
			}
		}
		return 0, 0, 0, false
	}

	r, c := m.Rows(), m.Cols()
	var i, j int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			x, _ := m.At(i, j) // indices are in range by construction
			if isNonFinite(x) {
				return i, j, x, true
			}
		}
	}

	return 0, 0, 0, false
}

// ValidateFinite returns ErrNaNInf (with coordinates) if m holds any NaN/±Inf.
// Errors: ErrNilMatrix, ErrNaNInf.
// Complexity: O(r*c).
func ValidateFinite(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("ValidateFinite", err)
	}
	if i, j, v, found := FirstNonFinite(m); found {
		return fmt.Errorf("ValidateFinite: (%d,%d)=%g: %w", i, j, v, ErrNaNInf)
	}

	return nil
}

// MaxAsymmetry returns the strict-upper-triangle entry with the largest
// |A[i,j] - A[j,i]| and that deviation. Assumes a square, non-nil input.
// A 1×1 matrix yields (0, 0, 0).
// Complexity: O(n²).
func MaxAsymmetry(m Matrix) (row, col int, diff float64) {
	n := m.Rows()
	var i, j int
	var aij, aji, d float64
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			aij, _ = m.At(i, j)
			aji, _ = m.At(j, i)
			d = math.Abs(aij - aji)
			if d > diff {
				row, col, diff = i, j, d
			}
		}
	}

	return row, col, diff
}

// ValidateSymmetric checks A is symmetric within tolerance tol:
// |A[i,j] - A[j,i]| ≤ tol for all i<j.
//
// Inputs: Square Matrix m, tolerance tol ≥ 0 (negative values are flipped).
// Complexity: O(n^2) where n = Rows(A). Space: O(1).
// Returns ErrNilMatrix/ErrNonSquare on structural issues, ErrNaNInf on bad tol,
// ErrAsymmetry (with the worst pair) on violation.
func ValidateSymmetric(m Matrix, tol float64) error {
	if err := ValidateSquareNonNil(m); err != nil {
		return validatorErrorf("ValidateSymmetric", err)
	}
	if isNonFinite(tol) {
		return validatorErrorf("ValidateSymmetric", ErrNaNInf) // invalid tolerance is a numeric policy violation
	}
	if tol < zeroTol {
		tol = -tol
	}

	// Single upper-triangle scan tracking the worst deviation.
	i, j, diff := MaxAsymmetry(m)
	if diff > tol {
		return fmt.Errorf("ValidateSymmetric: (%d,%d) |Δ|=%g > %g: %w", i, j, diff, tol, ErrAsymmetry)
	}

	return nil
}
