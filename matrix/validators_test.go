// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the matrix validators.
package matrix_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/daemkit/matrix"
)

// TestValidateNotNil covers untyped and typed nil inputs.
func TestValidateNotNil(t *testing.T) {
	t.Parallel()

	var typed *matrix.Dense
	require.ErrorIs(t, matrix.ValidateNotNil(nil), matrix.ErrNilMatrix)
	require.ErrorIs(t, matrix.ValidateNotNil(typed), matrix.ErrNilMatrix)
	require.NoError(t, matrix.ValidateNotNil(MustDense(t, 1, 1)))
}

// TestValidateSquare covers square and non-square cases.
func TestValidateSquare(t *testing.T) {
	t.Parallel()

	require.NoError(t, matrix.ValidateSquare(MustDense(t, 3, 3)))
	err := matrix.ValidateSquare(MustDense(t, 2, 3))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	require.Contains(t, err.Error(), "2x3")
}

// TestValidateVectors covers length, nil and finiteness checks.
func TestValidateVectors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		run     func() error
		wantErr error
	}{
		{"len ok", func() error { return matrix.ValidateVecLen([]float64{1, 2}, 2) }, nil},
		{"len short", func() error { return matrix.ValidateVecLen([]float64{1}, 2) }, matrix.ErrDimensionMismatch},
		{"nil vector", func() error { return matrix.ValidateVecLen(nil, 0) }, matrix.ErrNilMatrix},
		{"finite", func() error { return matrix.ValidateFinite([]float64{0, -1, 1e300}) }, nil},
		{"nan", func() error { return matrix.ValidateFinite([]float64{0, math.NaN()}) }, matrix.ErrNaNInf},
		{"inf", func() error { return matrix.ValidateFinite([]float64{math.Inf(1)}) }, matrix.ErrNaNInf},
		{"matvec ok", func() error { return matrix.ValidateMatVec(MustDense(t, 2, 3), make([]float64, 3)) }, nil},
		{"matvec nil", func() error { return matrix.ValidateMatVec(nil, make([]float64, 3)) }, matrix.ErrNilMatrix},
		{"matvec len", func() error { return matrix.ValidateMatVec(MustDense(t, 2, 3), make([]float64, 2)) }, matrix.ErrDimensionMismatch},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.run()
			if tc.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				require.Truef(t, errors.Is(err, tc.wantErr),
					"expected errors.Is(%v, %v)", err, tc.wantErr)
			}
		})
	}
}
