// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   - Provide small, deterministic test fixtures and utilities for kernels.
//   - Keep all data finite and well-formed unless a test targets the numeric policy.

package matrix_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/coper/matrix"
)

// hide wraps any Matrix to hide its concrete type from type assertions.
// Use hide{X} to force the generic (non-*Dense) fallback paths.
//
// AI-Hints:
//   - Wrap only the operand you want to de-opt; keep the other one *Dense to isolate path differences.
type hide struct{ matrix.Matrix }

// MustDense allocates an r×c *Dense or fails the test.
func MustDense(t *testing.T, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	require.NoError(t, err)

	return m
}

// NewFilledDense builds an r×c *Dense from row-major vals.
func NewFilledDense(t *testing.T, r, c int, vals []float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(r, c, vals)
	require.NoError(t, err)

	return m
}

// RandFilledDense returns an r×c *Dense with uniform values in [-1, 1).
func RandFilledDense(t *testing.T, r, c int, seed int64) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	vals := make([]float64, r*c)
	for i := range vals {
		vals[i] = 2*rng.Float64() - 1
	}

	return NewFilledDense(t, r, c, vals)
}

// MustSet writes m[i,j] = v or fails the test.
func MustSet(t *testing.T, m matrix.Matrix, i, j int, v float64) {
	t.Helper()
	require.NoError(t, m.Set(i, j, v))
}

// MustAt reads m[i,j] or fails the test.
func MustAt(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

// CompareExact asserts m equals want entry by entry (bitwise float equality).
func CompareExact(t *testing.T, want [][]float64, m matrix.Matrix) {
	t.Helper()
	require.Equal(t, len(want), m.Rows(), "rows")
	for i := range want {
		require.Equal(t, len(want[i]), m.Cols(), "cols")
		for j := range want[i] {
			require.Equalf(t, want[i][j], MustAt(t, m, i, j), "(%d,%d)", i, j)
		}
	}
}

// CompareClose asserts AllClose(a, b, rtol, atol).
func CompareClose(t *testing.T, a, b matrix.Matrix, rtol, atol float64) {
	t.Helper()
	ok, err := matrix.AllClose(a, b, rtol, atol)
	require.NoError(t, err)
	require.Truef(t, ok, "AllClose=false (rtol=%g, atol=%g)\n%v\nvs\n%v", rtol, atol, a, b)
}

// sliceClose asserts |a[i]-b[i]| ≤ atol + rtol*|b[i]| for every index.
func sliceClose(t *testing.T, a, b []float64, rtol, atol float64) {
	t.Helper()
	require.Len(t, a, len(b))
	for i := range a {
		require.LessOrEqualf(t, math.Abs(a[i]-b[i]), atol+rtol*math.Abs(b[i]),
			"idx=%d: got=%g want=%g", i, a[i], b[i])
	}
}

// spdMatrix builds AᵀA + n·I, a well-conditioned SPD matrix.
func spdMatrix(t *testing.T, n int, seed int64) *matrix.Dense {
	t.Helper()
	A := RandFilledDense(t, n, n, seed)
	At, err := matrix.Transpose(A)
	require.NoError(t, err)
	G, err := matrix.Mul(At, A)
	require.NoError(t, err)
	I, err := matrix.NewIdentity(n)
	require.NoError(t, err)
	nI, err := matrix.Scale(I, float64(n))
	require.NoError(t, err)
	S, err := matrix.Add(G, nI)
	require.NoError(t, err)

	return S
}
