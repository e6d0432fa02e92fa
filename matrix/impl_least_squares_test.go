// SPDX-License-Identifier: MIT
package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/daemkit/matrix"
)

// TestLeastSquares_Consistent solves an overdetermined but consistent system exactly.
func TestLeastSquares_Consistent(t *testing.T) {
	t.Parallel()

	a := MustRows(t, [][]float64{{1, 0}, {0, 1}, {1, 1}})
	x, err := matrix.LeastSquares(a, []float64{1, 2, 3})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 2}, x, 1e-12)
}

// TestLeastSquares_MatchesGonum compares against gonum's QR-based solve.
func TestLeastSquares_MatchesGonum(t *testing.T) {
	t.Parallel()

	a := RandomTall(t, 12, 5, 42)
	b := []float64{1, -1, 2, 0.5, 3, -2, 1, 1, 0, 4, -3, 2}

	x, err := matrix.LeastSquares(a, b)
	require.NoError(t, err)

	ga, err := matrix.ToGonum(a)
	require.NoError(t, err)
	var ref mat.VecDense
	require.NoError(t, ref.SolveVec(ga, mat.NewVecDense(len(b), b)))

	assert.InDeltaSlice(t, ref.RawVector().Data, x, 1e-10)
}

// TestLeastSquares_Singular covers exact rank deficiency.
func TestLeastSquares_Singular(t *testing.T) {
	t.Parallel()

	zeroCol := MustRows(t, [][]float64{{1, 0}, {2, 0}, {3, 0}})
	_, err := matrix.LeastSquares(zeroCol, []float64{1, 2, 3})
	assert.ErrorIs(t, err, matrix.ErrSingular)

	// Second column is exactly twice the first; the reduction is exact in binary.
	dup := MustRows(t, [][]float64{{1, 2}, {0, 0}, {0, 0}})
	_, err = matrix.LeastSquares(dup, []float64{1, 0, 0})
	assert.ErrorIs(t, err, matrix.ErrSingular)
	assert.Contains(t, err.Error(), "pivot 1")
}

func TestLeastSquares_Validation(t *testing.T) {
	t.Parallel()

	wide := MustDense(t, 2, 3)
	_, err := matrix.LeastSquares(wide, []float64{1, 2})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	tall := MustDense(t, 3, 2)
	_, err = matrix.LeastSquares(tall, []float64{1, 2})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.LeastSquares(nil, []float64{1})
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestLeastSquares_RankTolerance shows that a loose tolerance rejects an
// ill-conditioned but nonsingular system.
func TestLeastSquares_RankTolerance(t *testing.T) {
	t.Parallel()

	a := MustRows(t, [][]float64{{1, 0}, {0, 1e-6}, {0, 0}})
	b := []float64{1, 1e-6, 0}

	x, err := matrix.LeastSquares(a, b)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 1}, x, 1e-9)

	_, err = matrix.LeastSquares(a, b, matrix.WithRankTolerance(1e-3))
	assert.ErrorIs(t, err, matrix.ErrSingular)
}

func TestWithRankTolerance_PanicsOnNegative(t *testing.T) {
	assert.Panics(t, func() { matrix.WithRankTolerance(-1) })
	assert.Panics(t, func() { matrix.WithMaxIter(0) })
}
