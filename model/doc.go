// Package model holds the DAEM model core: a transform matrix A built once
// from a time/temperature history and an activation-energy grid, the
// roughness operator over that grid, and the L-curve search that picks the
// regularization strength for a measured fraction-remaining curve.
//
// 🚀 Construction
//
// Three paths converge on the same *Model:
//
//	NewDaem(grid, log10k0, t, T)         // caller supplies everything
//	DaemFromTimeData(src, params)        // grid from bounds, t/T from the source
//	DaemFromRateData(grid, params)       // grid from a prior fit, t/T synthesized
//
// A Model is immutable; accessors return copies and it is safe for
// concurrent use.
//
// ⚙️ L-curve
//
// LCurve sweeps ω over a log-spaced range, solves the regularized problem at
// each point, rounds log10 of both norms to SigFigs significant figures and
// returns the first point of maximum curvature. The sweep runs on a bounded
// worker pool; points are stored by index so ordering never depends on
// scheduling.
//
// ⚠️ Diagnostics
//
// Non-fatal conditions (isothermal history, unexpected source kind) are
// recorded as core.Warning values on the model and logged at Warn level.
package model
