// SPDX-License-Identifier: MIT
// Package matrix - non-negative least squares (Lawson–Hanson active set).
//
// Purpose:
//   - Solve min‖A·x − b‖₂ subject to x ≥ 0.
//   - Keep one orthogonal reduction Qᵀ·[A | b] alive for the whole run: a column
//     entering the passive set costs one Householder reflector, a column
//     leaving costs a sweep of Givens rotations. No subproblem is refactored
//     from scratch.
//
// Determinism & Policy:
//   - Ties in the dual vector resolve to the lowest column index.
//   - Passive-set pivots use the same relative rank test as LeastSquares.
//   - The outer loop is capped (WithMaxIter, default 3·n) and reports
//     ErrNoConvergence rather than spinning.

package matrix

import (
	"fmt"
	"math"
)

// NNLS solves min‖a·x − b‖₂ with x ≥ 0 (Lawson & Hanson, 1974).
// Implementation:
//   - Stage 1: Validate inputs; start from x = 0 with every column active (clamped).
//   - Stage 2: Move the column with the largest positive dual w = aᵀ(b − a·x) into
//     the passive set and triangularize it against the passive columns already
//     there; a column whose solution component would not be positive is
//     rejected for this pass instead.
//   - Stage 3: If the subproblem leaves the feasible region, step back to the
//     boundary and release the columns that hit zero; repeat.
//   - Stage 4: Stop when no active column has a positive dual above tolerance.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf (validation);
//   - ErrSingular (a passive subproblem is rank-deficient);
//   - ErrNoConvergence (iteration cap exhausted).
//
// Complexity:
//   - Time O(iter·m·n) for updates plus O(iter·n²) for back substitution;
//     Space O(m·n).
func NNLS(a Matrix, b []float64, opts ...Option) ([]float64, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opNNLS, err)
	}
	m, n := a.Rows(), a.Cols()
	if err := ValidateVecLen(b, m); err != nil {
		return nil, matrixErrorf(opNNLS, err)
	}
	if err := ValidateFinite(b); err != nil {
		return nil, matrixErrorf(opNNLS, err)
	}
	src, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opNNLS, err)
	}
	o := gatherOptions(opts...)
	maxIter := o.maxIter
	if maxIter == 0 {
		maxIter = DefaultMaxIterFactor * n
	}

	// Dual tolerance scales with ‖a‖₁ and problem size.
	tol := 10 * machineEps * float64(max(m, n)) * norm1(src)

	x := make([]float64, n)
	passive := make([]bool, n)
	w, err := dual(src, b, x)
	if err != nil {
		return nil, matrixErrorf(opNNLS, err)
	}
	qr := newActiveQR(src, b)

	var (
		iter, t, q, j int
		best, alpha   float64
		z             []float64
	)
outer:
	for {
		// Pick the active column with the most positive dual.
		t, best = -1, tol
		for j = 0; j < n; j++ {
			if !passive[j] && w[j] > best {
				t, best = j, w[j]
			}
		}
		if t < 0 {
			break // KKT conditions satisfied
		}
		if err = qr.add(t); err != nil {
			return nil, matrixErrorf(opNNLS, err)
		}
		passive[t] = true

		for entering := true; ; entering = false {
			iter++
			if iter > maxIter {
				return nil, matrixErrorf(opNNLS, fmt.Errorf("after %d iterations: %w", maxIter, ErrNoConvergence))
			}
			if z, err = qr.solve(o.rankTol); err != nil {
				return nil, matrixErrorf(opNNLS, err)
			}
			if entering && z[len(z)-1] <= 0 {
				// t cannot move off zero; drop it and try the next dual.
				qr.remove(len(z) - 1)
				passive[t] = false
				w[t] = 0
				continue outer
			}

			feasible := true
			for q = range z {
				if z[q] <= 0 {
					feasible = false
					break
				}
			}
			if feasible {
				for q, j = range qr.order {
					x[j] = z[q]
				}
				break
			}

			// Step from x towards z until the first passive coordinate hits zero.
			alpha = math.Inf(1)
			for q, j = range qr.order {
				if z[q] <= 0 {
					alpha = math.Min(alpha, x[j]/(x[j]-z[q]))
				}
			}
			for q, j = range qr.order {
				x[j] += alpha * (z[q] - x[j])
			}
			for q = len(qr.order) - 1; q >= 0; q-- {
				if j = qr.order[q]; x[j] <= tol {
					x[j] = 0
					passive[j] = false
					qr.remove(q)
				}
			}
			if len(qr.order) == 0 {
				break
			}
		}

		if w, err = dual(src, b, x); err != nil {
			return nil, matrixErrorf(opNNLS, err)
		}
	}

	return x, nil
}

// activeQR holds Qᵀ·a and Qᵀ·b for a growing and shrinking passive set.
// The passive columns, in order, form an upper-triangular R = w[0:p, order].
type activeQR struct {
	m, n  int
	w     []float64 // m×n row-major, Qᵀ·a over every column
	y     []float64 // Qᵀ·b
	order []int     // passive column indices; position l owns pivot row l
	v     []float64 // reflector scratch
}

func newActiveQR(a *Dense, b []float64) *activeQR {
	qr := &activeQR{
		m:     a.r,
		n:     a.c,
		w:     make([]float64, len(a.data)),
		y:     make([]float64, len(b)),
		order: make([]int, 0, a.c),
		v:     make([]float64, a.r),
	}
	copy(qr.w, a.data)
	copy(qr.y, b)

	return qr
}

// add appends column t and zeroes its entries below pivot row p with one
// Householder reflector applied to every column and to y.
func (qr *activeQR) add(t int) error {
	m, n, p := qr.m, qr.n, len(qr.order)
	if p >= m {
		return fmt.Errorf("passive set of %d columns on %d rows: %w", p+1, m, ErrSingular)
	}
	qr.order = append(qr.order, t)

	norm := NormZero
	var i, j int
	for i = p; i < m; i++ {
		norm += qr.w[i*n+t] * qr.w[i*n+t]
	}
	norm = math.Sqrt(norm)
	if norm == NormZero {
		return nil // zero pivot; solve reports it
	}
	alpha := -math.Copysign(norm, qr.w[p*n+t])
	beta := NormZero
	for i = p; i < m; i++ {
		qr.v[i] = qr.w[i*n+t]
	}
	qr.v[p] -= alpha
	for i = p; i < m; i++ {
		beta += qr.v[i] * qr.v[i]
	}
	if beta == NormZero {
		return nil
	}
	tau := 2.0 / beta

	var sum float64
	for j = 0; j < n; j++ {
		sum = ZeroSum
		for i = p; i < m; i++ {
			sum += qr.v[i] * qr.w[i*n+j]
		}
		if sum == ZeroSum {
			continue // passive columns are already zero below row p
		}
		for i = p; i < m; i++ {
			qr.w[i*n+j] -= tau * qr.v[i] * sum
		}
	}
	sum = ZeroSum
	for i = p; i < m; i++ {
		sum += qr.v[i] * qr.y[i]
	}
	for i = p; i < m; i++ {
		qr.y[i] -= tau * qr.v[i] * sum
	}
	for i = p + 1; i < m; i++ {
		qr.w[i*n+t] = 0
	}

	return nil
}

// remove drops the passive column at position k. The columns behind it are
// left one row below the diagonal; Givens rotations on rows (l, l+1) restore
// the triangle.
func (qr *activeQR) remove(k int) {
	qr.order = append(qr.order[:k], qr.order[k+1:]...)
	n := qr.n
	var (
		j, c, lo, hi int
		r, cs, sn    float64
		u, v         float64
	)
	for l := k; l < len(qr.order); l++ {
		c = qr.order[l]
		lo, hi = l*n, (l+1)*n
		if qr.w[hi+c] == 0 {
			continue
		}
		r = math.Hypot(qr.w[lo+c], qr.w[hi+c])
		cs, sn = qr.w[lo+c]/r, qr.w[hi+c]/r
		for j = 0; j < n; j++ {
			u, v = qr.w[lo+j], qr.w[hi+j]
			qr.w[lo+j] = cs*u + sn*v
			qr.w[hi+j] = cs*v - sn*u
		}
		qr.w[hi+c] = 0
		u, v = qr.y[l], qr.y[l+1]
		qr.y[l] = cs*u + sn*v
		qr.y[l+1] = cs*v - sn*u
	}
}

// solve back-substitutes R·z = y[0:p] after the LeastSquares rank test.
// z[l] belongs to column order[l].
func (qr *activeQR) solve(rankTol float64) ([]float64, error) {
	n, p := qr.n, len(qr.order)
	rmax := 0.0
	for l, c := range qr.order {
		rmax = math.Max(rmax, math.Abs(qr.w[l*n+c]))
	}
	tol := rankTol
	if tol == 0 {
		tol = float64(max(qr.m, p)) * machineEps
	}
	for l, c := range qr.order {
		if d := math.Abs(qr.w[l*n+c]); rmax == 0 || d <= tol*rmax {
			return nil, fmt.Errorf("passive pivot %d (column %d) |r|=%g <= %g·%g: %w", l, c, d, tol, rmax, ErrSingular)
		}
	}

	z := make([]float64, p)
	var sum float64
	for l := p - 1; l >= 0; l-- {
		sum = qr.y[l]
		for k := l + 1; k < p; k++ {
			sum -= qr.w[l*n+qr.order[k]] * z[k]
		}
		z[l] = sum / qr.w[l*n+qr.order[l]]
	}

	return z, nil
}

// dual returns aᵀ(b − a·x).
func dual(a *Dense, b, x []float64) ([]float64, error) {
	ax, err := MatVec(a, x)
	if err != nil {
		return nil, err
	}
	r := make([]float64, len(b))
	for i := range b {
		r[i] = b[i] - ax[i]
	}

	return MatTVec(a, r)
}

// norm1 is the maximum absolute column sum of d.
func norm1(d *Dense) float64 {
	sums := make([]float64, d.c)
	var i, j int
	for i = 0; i < d.r; i++ {
		for j = 0; j < d.c; j++ {
			sums[j] += math.Abs(d.data[i*d.c+j])
		}
	}
	best := 0.0
	for _, s := range sums {
		best = math.Max(best, s)
	}

	return best
}
