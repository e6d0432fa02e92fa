// Package inverse solves the Tikhonov-regularized inverse problem
//
//	f = argmin ‖A·f − g‖₂² + ω²‖R·f‖₂²
//
// by stacking [A; ωR] against [g; 0] and handing the tall system to a
// Householder least-squares kernel (or Lawson–Hanson NNLS when a
// non-negative distribution is wanted).
//
// R is the second-difference roughness operator over the energy grid, built
// by Roughness. Solve reports the fitted distribution together with the two
// norms that define a point on the L-curve.
//
// Errors are the core sentinels: core.ErrInvalidArgument,
// core.ErrDimensionMismatch, core.ErrInvalidDimension and
// core.ErrSingularSystem. A singular stacked system also matches
// matrix.ErrSingular.
package inverse
