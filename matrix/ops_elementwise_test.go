// SPDX-License-Identifier: MIT
package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/coper/matrix"
)

func TestEwKernels_FastEqualsFallback(t *testing.T) {
	t.Parallel()
	X := RandFilledDense(t, 3, 4, 5)
	vec := []float64{0.5, -1, 2, 0}

	f1, err := matrix.EwBroadcastSubCols_TestOnly(X, vec)
	require.NoError(t, err)
	s1, err := matrix.EwBroadcastSubCols_TestOnly(hide{X}, vec)
	require.NoError(t, err)
	CompareClose(t, f1, s1, 0, 0)

	f2, err := matrix.EwScaleCols_TestOnly(X, vec)
	require.NoError(t, err)
	s2, err := matrix.EwScaleCols_TestOnly(hide{X}, vec)
	require.NoError(t, err)
	CompareClose(t, f2, s2, 0, 0)
	require.Zero(t, MustAt(t, f2, 1, 3))

	_, err = matrix.EwScaleCols_TestOnly(X, vec[:2])
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestAllCloseAndMaxAbs(t *testing.T) {
	t.Parallel()
	a := NewFilledDense(t, 1, 3, []float64{1, -5, 2})
	b := NewFilledDense(t, 1, 3, []float64{1, -5, 2 + 1e-10})

	ok, err := matrix.AllClose(a, b, 0, 1e-9)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = matrix.AllClose(hide{a}, b, 0, 1e-12)
	require.NoError(t, err)
	require.False(t, ok)
	_, err = matrix.AllClose(a, MustDense(t, 3, 1), 0, 0)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	mx, err := matrix.MaxAbs(a)
	require.NoError(t, err)
	require.Equal(t, 5.0, mx)
	mx, err = matrix.MaxAbs(hide{a})
	require.NoError(t, err)
	require.Equal(t, 5.0, mx)
}

func TestSymmetrize(t *testing.T) {
	t.Parallel()
	m := NewFilledDense(t, 2, 2, []float64{1, 2, 4, 3})
	s, err := matrix.Symmetrize(m)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{1, 3}, {3, 3}}, s)
}
