// SPDX-License-Identifier: MIT
// Package matrix - Householder least squares for tall systems.
//
// Purpose:
//   - Solve min‖A·x − b‖₂ for A of shape m×n with m ≥ n, without forming AᵀA
//     (normal equations square the condition number; reflectors do not).
//   - Surface rank deficiency as ErrSingular instead of returning garbage.
//
// Determinism & Policy:
//   - Reflectors are applied in fixed column order k = 0..n−1; no pivoting.
//   - The rank test compares each pivot |r_kk| against tol·max|r_ii|, where tol
//     defaults to max(m,n)·ε (the same relative cutoff LAPACK-style drivers use).

package matrix

import (
	"fmt"
	"math"
)

// machineEps is the float64 unit roundoff used by the automatic rank tolerance.
const machineEps = 2.220446049250313e-16

// LeastSquares solves min‖a·x − b‖₂ via Householder QR.
// Implementation:
//   - Stage 1: Validate a (not nil, m ≥ n) and b (len m, finite).
//   - Stage 2: For k=0..n-1 build the column reflector, apply it to the working
//     copy of a (forming R) and to the right-hand side (forming Qᵀb).
//   - Stage 3: Rank check on diag(R); back-substitute R·x = (Qᵀb)[:n].
//
// Behavior highlights:
//   - a and b are not mutated; a working copy is reduced in place.
//   - A zero column yields a zero pivot and therefore ErrSingular.
//
// Inputs:
//   - a: m×n Matrix with m ≥ n.
//   - b: right-hand side, len(b) == m.
//   - opts: WithRankTolerance overrides the relative pivot cutoff.
//
// Returns:
//   - []float64: the minimizer x (len n).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (len(b) ≠ m, or m < n), ErrNaNInf,
//     ErrSingular (pivot at or below tolerance; message names the column).
//
// Complexity:
//   - Time O(m·n²), Space O(m·n).
func LeastSquares(a Matrix, b []float64, opts ...Option) ([]float64, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opLstSq, err)
	}
	m, n := a.Rows(), a.Cols()
	if err := ValidateVecLen(b, m); err != nil {
		return nil, matrixErrorf(opLstSq, err)
	}
	if m < n {
		return nil, matrixErrorf(opLstSq, fmt.Errorf("underdetermined %dx%d: %w", m, n, ErrDimensionMismatch))
	}
	if err := ValidateFinite(b); err != nil {
		return nil, matrixErrorf(opLstSq, err)
	}
	src, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opLstSq, err)
	}
	o := gatherOptions(opts...)

	// Working copies: w is reduced to R in place, y becomes Qᵀb.
	w := src.clone()
	y := make([]float64, m)
	copy(y, b)

	v := make([]float64, m)    // Householder vector (entries k..m-1 used)
	diag := make([]float64, n) // pivots r_kk
	var (
		i, j, k    int
		norm, beta float64
		alpha, tau float64
		sum, aij   float64
	)
	for k = 0; k < n; k++ {
		// Norm of the active part of column k.
		norm = NormZero
		for i = k; i < m; i++ {
			aij = w.data[i*n+k]
			norm += aij * aij
		}
		norm = math.Sqrt(norm)
		if norm == NormZero {
			diag[k] = 0
			continue // zero column: rank test below reports it
		}

		// alpha = -sign(a_kk)·norm avoids cancellation in v_k.
		alpha = -math.Copysign(norm, w.data[k*n+k])
		for i = k; i < m; i++ {
			v[i] = w.data[i*n+k]
		}
		v[k] -= alpha

		beta = NormZero
		for i = k; i < m; i++ {
			beta += v[i] * v[i]
		}
		if beta == NormZero {
			diag[k] = w.data[k*n+k]
			continue
		}
		tau = 2.0 / beta

		// Apply reflector to the trailing columns of w.
		for j = k; j < n; j++ {
			sum = ZeroSum
			for i = k; i < m; i++ {
				sum += v[i] * w.data[i*n+j]
			}
			for i = k; i < m; i++ {
				w.data[i*n+j] -= tau * v[i] * sum
			}
		}
		// Apply reflector to the right-hand side.
		sum = ZeroSum
		for i = k; i < m; i++ {
			sum += v[i] * y[i]
		}
		for i = k; i < m; i++ {
			y[i] -= tau * v[i] * sum
		}
		diag[k] = w.data[k*n+k]
	}

	// Rank check relative to the largest pivot.
	rmax := 0.0
	for k = 0; k < n; k++ {
		rmax = math.Max(rmax, math.Abs(diag[k]))
	}
	tol := o.rankTol
	if tol == 0 {
		tol = float64(max(m, n)) * machineEps
	}
	for k = 0; k < n; k++ {
		if rmax == 0 || math.Abs(diag[k]) <= tol*rmax {
			return nil, matrixErrorf(opLstSq, fmt.Errorf("pivot %d |r|=%g <= %g·%g: %w", k, math.Abs(diag[k]), tol, rmax, ErrSingular))
		}
	}

	// Back substitution on the upper-triangular R.
	x := make([]float64, n)
	for k = n - 1; k >= 0; k-- {
		sum = y[k]
		for j = k + 1; j < n; j++ {
			sum -= w.data[k*n+j] * x[j]
		}
		x[k] = sum / w.data[k*n+k]
	}

	return x, nil
}
