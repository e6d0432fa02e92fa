package inverse

import "github.com/katalvlaran/daemkit/matrix"

// Option configures Solve.
type Option func(*options)

type options struct {
	nonNegative bool
	kernel      []matrix.Option
}

// WithNonNegative constrains f ≥ 0 and solves with Lawson–Hanson NNLS.
func WithNonNegative() Option {
	return func(o *options) { o.nonNegative = true }
}

// WithRankTolerance forwards a relative pivot tolerance to the least-squares
// kernel. It panics on a negative or non-finite tol.
func WithRankTolerance(tol float64) Option {
	k := matrix.WithRankTolerance(tol)

	return func(o *options) { o.kernel = append(o.kernel, k) }
}

// WithMaxIter caps the NNLS outer loop. It panics when n <= 0.
func WithMaxIter(n int) Option {
	k := matrix.WithMaxIter(n)

	return func(o *options) { o.kernel = append(o.kernel, k) }
}

func gatherOptions(user ...Option) options {
	var o options
	for _, opt := range user {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
