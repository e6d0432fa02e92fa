// SPDX-License-Identifier: MIT
// Package matrix - bridges to gonum/mat.
//
// Purpose:
//   - Let callers hand a transform matrix to gonum (SVD, condition numbers,
//     independent reference solves) without re-walking At themselves.

package matrix

import "gonum.org/v1/gonum/mat"

// ToGonum copies m into a new *mat.Dense with the same shape.
// Errors: ErrNilMatrix.
// Complexity: Time O(r*c), Space O(r*c).
func ToGonum(m Matrix) (*mat.Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opGonum, err)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opGonum, err)
	}
	buf := make([]float64, len(d.data))
	copy(buf, d.data)

	return mat.NewDense(d.r, d.c, buf), nil
}
