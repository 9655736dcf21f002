// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/coper/matrix"
)

func TestOptions_DefaultsAndLastWriterWins(t *testing.T) {
	t.Parallel()
	require.Equal(t, matrix.DefaultValidateNaNInf, matrix.GatherOptions_TestOnly().ValidateNaNInf())

	o := matrix.GatherOptions_TestOnly(matrix.WithNoValidateNaNInf(), nil)
	require.False(t, o.ValidateNaNInf())

	o = matrix.GatherOptions_TestOnly(matrix.WithNoValidateNaNInf(), matrix.WithValidateNaNInf())
	require.True(t, o.ValidateNaNInf())
}

func TestOptions_PolicyReachesDense(t *testing.T) {
	t.Parallel()
	data := []float64{1, math.NaN(), 3, 4}

	_, err := matrix.NewDenseFrom(2, 2, data)
	require.ErrorIs(t, err, matrix.ErrNaNInf)

	m, err := matrix.NewDenseFrom(2, 2, data, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	require.NoError(t, m.Set(1, 1, math.Inf(-1)))

	// Clone keeps the relaxed policy.
	c := m.Clone()
	require.NoError(t, c.Set(0, 0, math.NaN()))
}
