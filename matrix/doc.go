// SPDX-License-Identifier: MIT

// Package matrix is the dense linear-algebra substrate of daemkit.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked At/Set and an
//     optional NaN/Inf ingestion guard.
//   - Centralized validators (ValidateNotNil, ValidateSquare, ValidateVecLen,
//     ValidateFinite)
//     returning package sentinels wrapped with a call-site tag.
//   - Small kernels used by the inversion layer: MatVec, MatTVec,
//     Scale and VStack (vertical concatenation of blocks).
//   - LeastSquares, a Householder-QR solver for tall systems with an explicit
//     rank check, and NNLS, the Lawson–Hanson non-negative variant with an incrementally
//     updated QR of its passive columns.
//   - ToGonum bridge for interoperability with gonum/mat.
//
// Determinism:
//
//	Every kernel uses fixed loop orders and allocates its outputs; inputs are
//	never mutated. Identical inputs produce bit-identical outputs.
//
// Errors:
//
//	All failures are sentinels from errors.go (ErrDimensionMismatch,
//	ErrSingular, ...); match them with errors.Is.
package matrix
