// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep kernels minimal by delegating shape/nil/finite checks here.
//  - Return sentinel errors wrapped with a validator tag so call sites can wrap uniformly.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.
//
// Note:
//  - Each composite validator follows a fixed sequence (e.g. NotNil → Shape).

package matrix

import "fmt"

// validatorErrorf wraps an underlying error with the given validator tag.
// Used internally to maintain consistent labeling of sentinel violations.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
//
// Returns ErrNilMatrix if m == nil (including a typed nil *Dense).
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	if d, ok := m.(*Dense); ok && d == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSquare checks that m is square (Rows == Cols).
//
// Implementation: Assumes m is not nil (caller must ensure).
// Errors: ErrDimensionMismatch if not square.
// Complexity: O(1).
func ValidateSquare(m Matrix) error {
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", fmt.Errorf("%dx%d: %w", m.Rows(), m.Cols(), ErrDimensionMismatch))
	}

	return nil
}

// ValidateVecLen ensures the vector length matches the required size n.
// The observed and expected lengths are part of the message.
// Time: O(1). Space: O(1).
func ValidateVecLen(x []float64, n int) error {
	// Disallow nil vectors to avoid subtle bugs in MatVec-like routines.
	if x == nil {
		return validatorErrorf("ValidateVecLen", ErrNilMatrix) // we reuse the existing sentinel for "nil argument"
	}
	if len(x) != n {
		return validatorErrorf("ValidateVecLen", fmt.Errorf("len=%d, want %d: %w", len(x), n, ErrDimensionMismatch))
	}

	return nil
}

// ValidateFinite ensures every entry of x is finite.
// Errors: ErrNaNInf naming the first offending index.
// Time: O(n). Space: O(1).
func ValidateFinite(x []float64) error {
	for i, v := range x {
		if !isFinite(v) {
			return validatorErrorf("ValidateFinite", fmt.Errorf("index %d (%v): %w", i, v, ErrNaNInf))
		}
	}

	return nil
}

// ValidateMatVec – Composite: NotNil(m) → VecLen(x, Cols).
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(1).
func ValidateMatVec(m Matrix, x []float64) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("ValidateMatVec", err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return validatorErrorf("ValidateMatVec", err)
	}

	return nil
}
