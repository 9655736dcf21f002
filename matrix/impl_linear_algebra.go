// SPDX-License-Identifier: MIT
// Linear-algebra kernels over any Matrix: Add, Transpose, Scale, Mul, and
// the PLU factorization behind Inverse. Every kernel allocates a fresh *Dense
// and leaves its operands untouched. Dense operands take a flat-buffer
// fast path; anything else goes through At.

package matrix

import (
	"fmt"
	"math"
)

// ZeroSum is the initial sum value for forward/backward substitution and similar.
const ZeroSum = 0.0

// ZeroPivot is the sentinel for detecting a zero pivot in LU/Inverse routines.
const ZeroPivot = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opAdd       = "Add"
	opMul       = "Mul"
	opTranspose = "Transpose"
	opScale     = "Scale"
	opInverse   = "Inverse"
	opLU        = "LU"
	opCopy      = "toDense"
)

// matrixErrorf prefixes err with an operation tag ("Op: cause"), keeping it
// matchable with errors.Is. Call only with a non-nil err.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// toDense returns a *Dense copy of m (fresh buffer, policy off for scratch use).
// The copy is always independent so kernels may factorize it in place.
// Complexity: O(r*c).
func toDense(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opCopy, err)
	}
	if d, ok := m.(*Dense); ok {
		cp := make([]float64, len(d.data))
		copy(cp, d.data)
		return &Dense{r: d.r, c: d.c, data: cp}, nil
	}

	r, c := m.Rows(), m.Cols()
	out, err := newDenseWithPolicy(r, c, false)
	if err != nil {
		return nil, matrixErrorf(opCopy, err)
	}
	var i, j int
	var v float64
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opCopy, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			out.data[i*c+j] = v
		}
	}

	return out, nil
}

// Add returns a + b element-wise; shapes must match.
// Complexity: O(r*c).
func Add(a, b Matrix) (*Dense, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opAdd, err)
	}
	rows, cols := a.Rows(), a.Cols()
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opAdd, err)
	}

	da, okA := a.(*Dense)
	db, okB := b.(*Dense)
	if okA && okB {
		for idx := range res.data {
			res.data[idx] = da.data[idx] + db.data[idx]
		}
		return res, nil
	}

	var av, bv float64
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if av, err = a.At(i, j); err != nil {
				return nil, matrixErrorf(opAdd, err)
			}
			if bv, err = b.At(i, j); err != nil {
				return nil, matrixErrorf(opAdd, err)
			}
			res.data[i*cols+j] = av + bv
		}
	}

	return res, nil
}

// Mul performs standard matrix multiplication C = A × B (no aliasing).
// Implementation:
//   - Stage 1: Validate A,B (not nil) and inner dimensions (A.Cols == B.Rows).
//   - Stage 2: If A and B are *Dense, use i→k→j with row-major strides and skip zeros;
//     otherwise use i→j→k with a fixed order.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (inner mismatch).
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c). Skipping zero A[i,k] avoids useless multiplies.
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	aRows, aCols, bCols := a.Rows(), a.Cols(), b.Cols()
	res, err := NewDense(aRows, bCols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	var (
		i, j, k         int
		av, bv, current float64
	)
	// Fast-path for two Dense matrices
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			var rowOffsetA, rowOffsetB, rowOffsetR int
			for i = 0; i < aRows; i++ {
				rowOffsetA = i * aCols
				rowOffsetR = i * bCols
				for k = 0; k < aCols; k++ {
					av = da.data[rowOffsetA+k]
					if av == 0 {
						continue
					}
					rowOffsetB = k * bCols
					for j = 0; j < bCols; j++ {
						res.data[rowOffsetR+j] += av * db.data[rowOffsetB+j]
					}
				}
			}
			return res, nil
		}
	}

	// Fallback: generic interface triple-loop (i-j-k)
	for i = 0; i < aRows; i++ {
		for j = 0; j < bCols; j++ {
			current = ZeroSum
			for k = 0; k < aCols; k++ {
				if av, err = a.At(i, k); err != nil {
					return nil, matrixErrorf(opMul, fmt.Errorf("At(%d,%d): %w", i, k, err))
				}
				if av == 0 {
					continue
				}
				if bv, err = b.At(k, j); err != nil {
					return nil, matrixErrorf(opMul, fmt.Errorf("At(%d,%d): %w", k, j, err))
				}
				current += av * bv
			}
			res.data[i*bCols+j] = current
		}
	}

	return res, nil
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
// Fast-path copies *Dense data via flat indexing; fallback uses At.
// Complexity: Time O(r*c), Space O(r*c).
func Transpose(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	rows, cols := m.Rows(), m.Cols()
	res, err := NewDense(cols, rows) // dims flipped
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	var i, j int
	if dm, ok := m.(*Dense); ok {
		// data[i*cols + j] → res.data[j*rows + i]
		var baseSrc int
		for i = 0; i < rows; i++ {
			baseSrc = i * cols
			for j = 0; j < cols; j++ {
				res.data[j*rows+i] = dm.data[baseSrc+j]
			}
		}
		return res, nil
	}

	var v float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opTranspose, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			res.data[j*rows+i] = v
		}
	}

	return res, nil
}

// Scale returns a new matrix whose elements are alpha * m[i,j].
// alpha = 0 yields an explicit zero matrix with the same shape.
// Complexity: Time O(r*c), Space O(r*c).
func Scale(m Matrix, alpha float64) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}

	rows, cols := m.Rows(), m.Cols()
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}

	if dm, ok := m.(*Dense); ok {
		for idx := range res.data {
			res.data[idx] = dm.data[idx] * alpha
		}
		return res, nil
	}

	var i, j int
	var v float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opScale, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			res.data[i*cols+j] = v * alpha
		}
	}

	return res, nil
}

// LU computes the factorization P·A = L·U with partial (row) pivoting.
// Implementation:
//   - Stage 1: Validate m (not nil, square); copy A into a scratch Dense.
//   - Stage 2: For k=0..n-1 pick the row with max |A[i,k]| (i ≥ k, first wins on ties),
//     swap it into place, then eliminate below the pivot (Doolittle multipliers).
//   - Stage 3: Split the packed scratch into unit-lower L and upper U.
//
// Behavior highlights:
//   - Deterministic pivot choice: strict '>' comparison keeps the lowest index on ties.
//   - Partial pivoting keeps |L[i,j]| ≤ 1, which is what makes it usable on
//     symmetric indefinite matrices where the unpivoted form hits zero pivots.
//
// Inputs:
//   - m: square Matrix (n×n).
//
// Returns:
//   - *Dense: L (unit lower triangular).
//   - *Dense: U (upper triangular).
//   - []int : perm, where row i of P·A is row perm[i] of A.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrSingular (all candidate pivots exactly zero).
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
//
// AI-Hints:
//   - An exact zero pivot only catches exactly singular inputs; pair with a
//     condition-number check upstream to reject near-singular ones.
func LU(m Matrix) (*Dense, *Dense, []int, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, nil, nil, matrixErrorf(opLU, err)
	}
	a, err := toDense(m)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opLU, err)
	}

	n := a.r
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	var (
		i, j, k, p   int
		best, absV   float64
		pivot, mult  float64
		baseK, baseI int
	)
	for k = 0; k < n; k++ {
		// Pivot search in column k.
		p, best = k, math.Abs(a.data[k*n+k])
		for i = k + 1; i < n; i++ {
			absV = math.Abs(a.data[i*n+k])
			if absV > best {
				p, best = i, absV
			}
		}
		if best == ZeroPivot {
			return nil, nil, nil, matrixErrorf(opLU, fmt.Errorf("column %d: %w", k, ErrSingular))
		}
		// Row swap (whole rows: already-computed multipliers move with them).
		if p != k {
			baseK, baseI = k*n, p*n
			for j = 0; j < n; j++ {
				a.data[baseK+j], a.data[baseI+j] = a.data[baseI+j], a.data[baseK+j]
			}
			perm[k], perm[p] = perm[p], perm[k]
		}
		// Eliminate below the pivot.
		baseK = k * n
		pivot = a.data[baseK+k]
		for i = k + 1; i < n; i++ {
			baseI = i * n
			mult = a.data[baseI+k] / pivot
			a.data[baseI+k] = mult
			if mult == 0 {
				continue
			}
			for j = k + 1; j < n; j++ {
				a.data[baseI+j] -= mult * a.data[baseK+j]
			}
		}
	}

	// Unpack into L (unit lower) and U (upper).
	L, err := NewDense(n, n)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opLU, err)
	}
	U, err := NewDense(n, n)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opLU, err)
	}
	for i = 0; i < n; i++ {
		baseI = i * n
		for j = 0; j < n; j++ {
			switch {
			case j < i:
				L.data[baseI+j] = a.data[baseI+j]
			case j == i:
				L.data[baseI+j] = 1.0
				U.data[baseI+j] = a.data[baseI+j]
			default:
				U.data[baseI+j] = a.data[baseI+j]
			}
		}
	}

	return L, U, perm, nil
}

// Inverse computes A^{-1} from the pivoted factorization P·A = L·U.
// The input must be non-nil and square. Produces a new Dense; does not mutate the input.
//
// Implementation:
//   - Stage 1: Factorize via LU(m) → L, U, perm.
//   - Stage 2: For each canonical basis column e_col:
//   - Forward solve L*y = P*e_col (top-down; (P*e_col)[i] = 1 iff perm[i] == col).
//   - Backward solve U*x = y (bottom-up).
//   - Write x into column `col` of the result.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrSingular (from LU).
//
// Determinism:
//   - Fixed traversal (col↑, forward i↑, backward i↓) and deterministic pivoting.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
//
// AI-Hints:
//   - For covariance inputs, gate with a condition-number check first; a tiny but
//     non-zero pivot passes LU and yields a numerically meaningless inverse.
func Inverse(m Matrix) (*Dense, error) {
	L, U, perm, err := LU(m)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	n := L.r
	inv, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	y := make([]float64, n) // forward substitution workspace
	x := make([]float64, n) // backward substitution workspace
	var (
		col, i, k, baseI int
		sum, pivotU, rhs float64
	)
	for col = 0; col < n; col++ {
		// Forward substitution: L*y = P*e_col
		for i = 0; i < n; i++ {
			sum = ZeroSum
			baseI = i * n
			for k = 0; k < i; k++ {
				sum += L.data[baseI+k] * y[k]
			}
			rhs = 0.0
			if perm[i] == col {
				rhs = 1.0
			}
			y[i] = rhs - sum
		}
		// Backward substitution: U*x = y
		for i = n - 1; i >= 0; i-- {
			sum = ZeroSum
			baseI = i * n
			for k = i + 1; k < n; k++ {
				sum += U.data[baseI+k] * x[k]
			}
			pivotU = U.data[baseI+i]
			if pivotU == ZeroPivot {
				return nil, matrixErrorf(opInverse, ErrSingular)
			}
			x[i] = (y[i] - sum) / pivotU
		}
		for i = 0; i < n; i++ {
			inv.data[i*n+col] = x[i]
		}
	}

	return inv, nil
}
