// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for dense kernels.
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/daemkit/matrix"
)

func TestMatVec_AndMatTVec(t *testing.T) {
	t.Parallel()

	a := MustRows(t, [][]float64{{1, 2}, {3, 4}})

	y, err := matrix.MatVec(a, []float64{1, 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 7}, y)

	yt, err := matrix.MatTVec(a, []float64{1, 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 6}, yt)
}

// TestMatVec_FallbackMatchesFastPath hides *Dense behind an interface wrapper.
func TestMatVec_FallbackMatchesFastPath(t *testing.T) {
	t.Parallel()

	a := RandomTall(t, 5, 3, 7)
	x := []float64{0.5, -1, 2}

	fast, err := matrix.MatVec(a, x)
	require.NoError(t, err)
	slow, err := matrix.MatVec(hide{a}, x)
	require.NoError(t, err)
	assert.Equal(t, fast, slow)
}

func TestMatVec_Errors(t *testing.T) {
	t.Parallel()

	a := MustDense(t, 2, 3)
	_, err := matrix.MatVec(a, []float64{1, 2})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	assert.Contains(t, err.Error(), "len=2, want 3")

	_, err = matrix.MatVec(nil, []float64{1})
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)

	_, err = matrix.MatTVec(a, []float64{1, 2, 3})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestScale(t *testing.T) {
	t.Parallel()

	a := MustRows(t, [][]float64{{1, -2}})
	s, err := matrix.Scale(a, 0.5)
	require.NoError(t, err)
	assert.Equal(t, -1.0, MustAt(t, s, 0, 1))
	assert.Equal(t, -2.0, MustAt(t, a, 0, 1), "input must not be mutated")

	_, err = matrix.Scale(a, math.NaN())
	assert.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestVStack(t *testing.T) {
	t.Parallel()

	top := MustRows(t, [][]float64{{1, 2}})
	bottom := MustRows(t, [][]float64{{3, 4}, {5, 6}})
	s, err := matrix.VStack(top, bottom)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Rows())
	assert.Equal(t, 5.0, MustAt(t, s, 2, 0))

	_, err = matrix.VStack(top, MustDense(t, 1, 3))
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.VStack()
	assert.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}
