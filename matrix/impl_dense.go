// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// A Dense holds r*c float64 values in one flat slice, offset i*c + j. Public
// accessors return errors, never panic, and Set/Apply enforce the numeric
// policy chosen at construction (see options.go).
//
// Complexity quicksheet:
//   - NewDense, NewDenseFrom, Clone: O(r*c); At/Set: O(1); Row: O(c).

package matrix

import (
	"fmt"
	"strconv"
	"strings"
)

// method tags used in error wrappers
const (
	ctxAt    = "At"
	ctxSet   = "Set"
	ctxApply = "Apply"
	ctxRow   = "Row"
	ctxFrom  = "NewDenseFrom"
)

// denseErrorf formats "Dense.<method>(row,col): <err>" keeping err matchable.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
type Dense struct {
	r, c           int       // > 0
	data           []float64 // len == r*c
	validateNaNInf bool      // reject NaN/±Inf in Set and Apply
}

var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense returns an r×c zero matrix with the default numeric policy.
// Empty shapes are rejected with ErrInvalidDimensions.
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{
		r:              rows,
		c:              cols,
		data:           make([]float64, rows*cols),
		validateNaNInf: DefaultValidateNaNInf,
	}, nil
}

// NewDenseFrom builds an r×c Dense owning a copy of the row-major slice data.
// Implementation:
//   - Stage 1: Validate shape and len(data) == rows*cols.
//   - Stage 2: Resolve options; with the policy on, the first NaN/±Inf fails
//     with its coordinates.
//   - Stage 3: Copy data; the caller keeps ownership of its slice.
//
// Errors:
//   - ErrInvalidDimensions, ErrDimensionMismatch, ErrNaNInf.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDenseFrom(rows, cols int, data []float64, opts ...Option) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("%s: len %d != %d*%d: %w", ctxFrom, len(data), rows, cols, ErrDimensionMismatch)
	}
	o := gatherOptions(opts...)
	if o.validateNaNInf {
		for idx, v := range data {
			if isNonFinite(v) {
				return nil, denseErrorf(ctxFrom, idx/cols, idx%cols, ErrNaNInf)
			}
		}
	}

	return &Dense{r: rows, c: cols, data: append([]float64(nil), data...), validateNaNInf: o.validateNaNInf}, nil
}

// newDenseWithPolicy is NewDense with an explicit numeric policy. Kernels use
// it for scratch buffers that may legitimately pass through non-finite values.
func newDenseWithPolicy(rows, cols int, validateNaNInf bool) (*Dense, error) {
	m, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	m.validateNaNInf = validateNaNInf

	return m, nil
}

// Rows returns the row count.
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count.
func (m *Dense) Cols() int { return m.c }

// Shape returns (Rows(), Cols()).
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// indexOf returns the flat offset of (row, col) or ErrOutOfRange.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	return row*m.c + col, nil
}

// At returns the value at (row, col).
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set stores v at (row, col). Fails with ErrOutOfRange, or ErrNaNInf when the
// policy is on and v is not finite; the matrix is unchanged on error.
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	if m.validateNaNInf && isNonFinite(v) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[off] = v

	return nil
}

// Row returns an independent copy of row i.
func (m *Dense) Row(i int) ([]float64, error) {
	if i < 0 || i >= m.r {
		return nil, denseErrorf(ctxRow, i, 0, ErrOutOfRange)
	}

	return append([]float64(nil), m.data[i*m.c:(i+1)*m.c]...), nil
}

// Clone returns a deep copy with the same numeric policy. The dynamic type
// is *Dense.
func (m *Dense) Clone() Matrix {
	return &Dense{
		r:              m.r,
		c:              m.c,
		data:           append([]float64(nil), m.data...),
		validateNaNInf: m.validateNaNInf,
	}
}

// String renders one bracketed line per row, values in shortest 'g' form:
//
//	[1, 0.5]
//	[0.5, 1]
func (m *Dense) String() string {
	var b strings.Builder
	for i := 0; i < m.r; i++ {
		b.WriteByte('[')
		for j, v := range m.data[i*m.c : (i+1)*m.c] {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
		b.WriteString("]\n")
	}

	return b.String()
}

// Do calls f for each element in row-major order until f returns false.
func (m *Dense) Do(f func(i, j int, v float64) bool) {
	for idx, v := range m.data {
		if !f(idx/m.c, idx%m.c, v) {
			return
		}
	}
}

// Apply replaces each element with f(i,j,v) in row-major order.
// With the policy on, a non-finite result stops the walk with ErrNaNInf;
// elements already visited keep their new values.
//
// Complexity: Time O(r*c), Space O(1).
func (m *Dense) Apply(f func(i, j int, v float64) float64) error {
	for idx, v := range m.data {
		i, j := idx/m.c, idx%m.c
		nv := f(i, j, v)
		if m.validateNaNInf && isNonFinite(nv) {
			return denseErrorf(ctxApply, i, j, ErrNaNInf)
		}
		m.data[idx] = nv
	}

	return nil
}
