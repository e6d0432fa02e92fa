// Package core holds the vocabulary shared by every daemkit package: the
// error taxonomy, advisory warnings, and the small series helpers (linspace,
// logspace, gradients, significant-figure rounding) that the transform,
// inversion and L-curve code build on.
//
// Error taxonomy (match with errors.Is):
//
//	ErrInvalidArgument   - malformed parameter (non-positive bound, NaN, bad count).
//	ErrDimensionMismatch - array lengths disagree (t vs T, grid vs log10k0, g vs nt).
//	ErrInvalidDimension  - an operator was requested for too small a grid.
//	ErrSingularSystem    - a regularized system is numerically rank-deficient.
//
// Every fatal error names the offending array or parameter together with the
// observed and expected length or value.
//
// Warnings are values, not errors: they are collected on the object that
// produced them and never abort a computation.
package core
