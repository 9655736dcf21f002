// SPDX-License-Identifier: MIT
package network_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/coper"
	"github.com/katalvlaran/coper/matrix"
	"github.com/katalvlaran/coper/network"
)

// chain4 is the partial-correlation matrix of a 4-variable chain a-b-c plus
// an isolated d.
func chain4(t *testing.T) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(4, 4, []float64{
		1, 0.6, 0.05, 0,
		0.6, 1, -0.4, 0,
		0.05, -0.4, 1, 0,
		0, 0, 0, 1,
	})
	require.NoError(t, err)

	return m
}

func TestBuild_EdgesOrderedByStrength(t *testing.T) {
	t.Parallel()
	g, err := network.Build(chain4(t), []string{"a", "b", "c", "d"})
	require.NoError(t, err)

	assert.Equal(t, []network.Edge{
		{From: "a", To: "b", Weight: 0.6},
		{From: "b", To: "c", Weight: -0.4},
		{From: "a", To: "c", Weight: 0.05},
	}, g.Edges())
	assert.Equal(t, []string{"a", "b", "c", "d"}, g.Nodes())
	assert.Equal(t, network.DefaultThreshold, g.Threshold())
}

func TestBuild_Threshold(t *testing.T) {
	t.Parallel()
	g, err := network.Build(chain4(t), nil, network.WithThreshold(0.1))
	require.NoError(t, err)
	require.Len(t, g.Edges(), 2)

	nb, err := g.Neighbors("x2")
	require.NoError(t, err)
	assert.Equal(t, []string{"x1", "x3"}, nb)

	nb, err = g.Neighbors("x1")
	require.NoError(t, err)
	assert.Equal(t, []string{"x2"}, nb)

	// The threshold bound is inclusive.
	g, err = network.Build(chain4(t), nil, network.WithThreshold(0.4))
	require.NoError(t, err)
	assert.Len(t, g.Edges(), 2)

	_, err = g.Neighbors("zz")
	require.ErrorIs(t, err, network.ErrUnknownVertex)
}

func TestComponents(t *testing.T) {
	t.Parallel()
	g, err := network.Build(chain4(t), []string{"a", "b", "c", "d"}, network.WithThreshold(0.1))
	require.NoError(t, err)

	comps, err := g.Components()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b", "c"}, {"d"}}, comps)

	// Identity: everything isolated.
	id, err := matrix.NewIdentity(3)
	require.NoError(t, err)
	g, err = network.Build(id, nil)
	require.NoError(t, err)
	comps, err = g.Components()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"x1"}, {"x2"}, {"x3"}}, comps)
	assert.Empty(t, g.Edges())
}

func TestComponents_Cancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g, err := network.Build(chain4(t), nil, network.WithContext(ctx))
	require.NoError(t, err)

	_, err = g.Components()
	require.ErrorIs(t, err, context.Canceled)
}

func TestBuild_Errors(t *testing.T) {
	t.Parallel()
	for _, th := range []float64{-0.1, 1.5, math.NaN()} {
		_, err := network.Build(chain4(t), nil, network.WithThreshold(th))
		require.ErrorIs(t, err, network.ErrOptionViolation, th)
	}

	rect, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	_, err = network.Build(rect, nil)
	require.ErrorIs(t, err, coper.ErrInvalidDimension)

	_, err = network.Build(chain4(t), []string{"a", "b"})
	require.ErrorIs(t, err, network.ErrNames)
	_, err = network.Build(chain4(t), []string{"a", "b", "a", "d"})
	require.ErrorIs(t, err, network.ErrNames)

	bad, err := matrix.NewDenseFrom(2, 2, []float64{1, math.Inf(1), 0, 1}, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	_, err = network.Build(bad, nil)
	require.ErrorIs(t, err, coper.ErrNonFiniteInput)
}
