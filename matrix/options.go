// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for the least-squares kernels and
// numeric policy. This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal).
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each option impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package matrix

// ---------- Defaults (single source of truth) ----------

// Numeric policy.
const (
	// DefaultValidateNaNInf toggles strict finite-value validation on ingestion and Set.
	DefaultValidateNaNInf = true

	// DefaultRankTolerance of 0 selects the automatic relative tolerance
	// max(rows, cols)·ε used by LeastSquares to declare a pivot singular.
	DefaultRankTolerance = 0.0

	// DefaultMaxIterFactor bounds NNLS outer iterations at factor·cols.
	DefaultMaxIterFactor = 3
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicRankTolInvalid = "matrix: WithRankTolerance: tol must be finite, non-negative"
	panicMaxIterInvalid = "matrix: WithMaxIter: n must be > 0"
)

// ---------- Public option type (functional) ----------

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors MUST panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept `...Option`.
type Options struct {
	rankTol float64 // relative pivot tolerance; 0 ⇒ automatic
	maxIter int     // NNLS outer iteration cap; 0 ⇒ DefaultMaxIterFactor·cols
}

// WithRankTolerance sets the relative tolerance below which a triangular
// pivot |r_kk| ≤ tol·max|r_ii| is treated as singular.
//
// Errors:
//   - Panics with a stable message when tol is NaN, Inf or negative.
func WithRankTolerance(tol float64) Option {
	if !isFinite(tol) || tol < 0 {
		panic(panicRankTolInvalid)
	}

	return func(o *Options) { o.rankTol = tol }
}

// WithMaxIter caps the NNLS outer loop at n iterations.
func WithMaxIter(n int) Option {
	if n <= 0 {
		panic(panicMaxIterInvalid)
	}

	return func(o *Options) { o.maxIter = n }
}

// gatherOptions applies user-provided Option setters on top of defaults.
// Last-writer-wins; nil setters are skipped.
// Complexity: O(k) for k=len(user).
func gatherOptions(user ...Option) Options {
	o := Options{rankTol: DefaultRankTolerance}
	for _, opt := range user {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
