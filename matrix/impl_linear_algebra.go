// SPDX-License-Identifier: MIT
// Package matrix - dense kernels used by the inversion layer.
//
// Purpose:
//   - MatVec / MatTVec: y = A·x and y = Aᵀ·x without materializing Aᵀ.
//   - Scale: allocation-returning helper.
//   - VStack: vertical concatenation [A; B; ...] used to build augmented
//     (Tikhonov-stacked) systems.
//
// Determinism & Policy:
//   - Fixed loop orders; outputs are freshly allocated; inputs never mutated.
//   - Non-*Dense inputs are materialized once through asDense (At-based fallback),
//     so every kernel runs a single flat-slice implementation.

package matrix

import "fmt"

// ---------- op tags (grep-able, stable) ----------

const (
	opMatVec  = "MatVec"
	opMatTVec = "MatTVec"
	opScale   = "Scale"
	opVStack  = "VStack"
	opLstSq   = "LeastSquares"
	opNNLS    = "NNLS"
	opGonum   = "ToGonum"
)

// Numeric literals kept explicit to avoid magic numbers inline.
const (
	// ZeroSum is the neutral accumulator start.
	ZeroSum = 0.0
	// NormZero marks an exactly-zero norm (degenerate reflector).
	NormZero = 0.0
)

// matrixErrorf wraps err with a kernel tag: "<tag>: <err>".
// Assumes err != nil; keeps errors.Is/As behavior intact.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// asDense returns m itself when it is a *Dense, otherwise a *Dense copy built via At.
// Complexity: O(1) fast-path, O(r*c) fallback.
func asDense(m Matrix) (*Dense, error) {
	if d, ok := m.(*Dense); ok {
		return d, nil
	}
	out, err := NewDense(m.Rows(), m.Cols())
	if err != nil {
		return nil, err
	}
	var i, j int
	var v float64
	for i = 0; i < out.r; i++ {
		for j = 0; j < out.c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, fmt.Errorf("At(%d,%d): %w", i, j, err)
			}
			out.data[i*out.c+j] = v
		}
	}

	return out, nil
}

// MatVec computes y = m * x for a column vector x.
//
// Contract: m non-nil; x non-nil; len(x) == m.Cols().
// Determinism: fixed i→j loop order.
// Complexity: Time O(r*c), Space O(r) for y.
//
// Notes:
//   - Skipping zero x[j] helps when x is sparse-ish (NNLS iterates are).
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateMatVec(m, x); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	y := make([]float64, d.r)
	var i, j, base int
	var acc, xv float64
	for i = 0; i < d.r; i++ {
		acc = ZeroSum
		base = i * d.c
		for j = 0; j < d.c; j++ {
			xv = x[j]
			if xv != 0 { // skip zero multiplications
				acc += d.data[base+j] * xv
			}
		}
		y[i] = acc
	}

	return y, nil
}

// MatTVec computes y = mᵀ * x without forming mᵀ.
//
// Contract: m non-nil; len(x) == m.Rows().
// Determinism: row-major accumulation, fixed i→j order.
// Complexity: Time O(r*c), Space O(c).
func MatTVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatTVec, err)
	}
	if err := ValidateVecLen(x, m.Rows()); err != nil {
		return nil, matrixErrorf(opMatTVec, err)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opMatTVec, err)
	}
	y := make([]float64, d.c)
	var i, j, base int
	var xv float64
	for i = 0; i < d.r; i++ {
		xv = x[i]
		if xv == 0 {
			continue
		}
		base = i * d.c
		for j = 0; j < d.c; j++ {
			y[j] += d.data[base+j] * xv
		}
	}

	return y, nil
}

// Scale returns alpha*m as a new *Dense.
// Errors: ErrNilMatrix; ErrNaNInf when alpha is not finite.
// Complexity: Time O(r*c), Space O(r*c).
func Scale(m Matrix, alpha float64) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	if !isFinite(alpha) {
		return nil, matrixErrorf(opScale, fmt.Errorf("alpha=%v: %w", alpha, ErrNaNInf))
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	out := d.clone()
	for k := range out.data {
		out.data[k] *= alpha
	}

	return out, nil
}

// VStack concatenates blocks vertically: [b0; b1; ...].
// Implementation:
//   - Stage 1: validate all blocks non-nil with a common column count.
//   - Stage 2: copy each block's flat buffer into the result in order.
//
// Errors:
//   - ErrInvalidDimensions (no blocks), ErrNilMatrix, ErrDimensionMismatch (column counts differ).
//
// Complexity:
//   - Time O(Σr·c), Space O(Σr·c).
func VStack(blocks ...Matrix) (*Dense, error) {
	if len(blocks) == 0 {
		return nil, matrixErrorf(opVStack, ErrInvalidDimensions)
	}
	rows, cols := 0, -1
	for k, b := range blocks {
		if err := ValidateNotNil(b); err != nil {
			return nil, matrixErrorf(opVStack, fmt.Errorf("block %d: %w", k, err))
		}
		if cols < 0 {
			cols = b.Cols()
		} else if b.Cols() != cols {
			return nil, matrixErrorf(opVStack, fmt.Errorf("block %d has %d cols, want %d: %w", k, b.Cols(), cols, ErrDimensionMismatch))
		}
		rows += b.Rows()
	}
	out, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opVStack, err)
	}
	off := 0
	for _, b := range blocks {
		d, err := asDense(b)
		if err != nil {
			return nil, matrixErrorf(opVStack, err)
		}
		copy(out.data[off:], d.data)
		off += len(d.data)
	}

	return out, nil
}
