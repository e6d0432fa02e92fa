// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the matrix
// package. All kernels MUST return these sentinels and tests MUST check them
// via errors.Is. No kernel should panic on user-triggered error conditions.

package matrix

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping across logs. Kernels wrap these sentinels with a call-site
// tag via matrixErrorf; callers still match them with errors.Is.
//
// ERROR PRIORITY (documented, enforced in tests):
// nil -> shape/index -> NaN/Inf -> dimension mismatch -> numerical (singular,
// no convergence).

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g., MatVec with len(x) != Cols, or an underdetermined least-squares system.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNaNInf signals a NaN or ±Inf value was encountered where finite values
	// are required by the numeric policy (ingestion, Set, etc.).
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrRagged indicates that row slices handed to NewDenseFromRows differ in length.
	ErrRagged = errors.New("matrix: ragged rows")

	// ErrSingular is returned when a triangular factor has a pivot at or below
	// the rank tolerance, i.e. the system is numerically rank-deficient.
	ErrSingular = errors.New("matrix: singular matrix")

	// ErrNoConvergence is returned when an iterative kernel (NNLS) exhausts its
	// iteration budget before satisfying its optimality conditions.
	ErrNoConvergence = errors.New("matrix: iteration limit reached")
)
