package model

import (
	"runtime"

	"go.uber.org/zap"

	"github.com/katalvlaran/daemkit/inverse"
)

// Option configures a Model at construction.
type Option func(*settings)

type settings struct {
	logger  *zap.Logger
	workers int
}

// WithLogger sets the structured logger. nil keeps the no-op default.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithWorkers bounds the number of concurrent solves in an L-curve sweep.
// Values < 1 fall back to GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(s *settings) { s.workers = n }
}

func gatherSettings(user ...Option) settings {
	s := settings{logger: zap.NewNop()}
	for _, opt := range user {
		if opt != nil {
			opt(&s)
		}
	}
	if s.workers < 1 {
		s.workers = runtime.GOMAXPROCS(0)
	}

	return s
}

// L-curve defaults.
const (
	DefaultNOmega   = 150
	DefaultOmegaMin = 1e-3
	DefaultOmegaMax = 1e2

	// MinNOmega is the smallest sweep on which a second derivative exists.
	MinNOmega = 3
)

// LCurveOption configures a single L-curve sweep.
type LCurveOption func(*lcurveParams)

type lcurveParams struct {
	nOmega             int
	omegaMin, omegaMax float64
	solve              []inverse.Option
}

// WithNOmega sets the number of sweep points.
func WithNOmega(n int) LCurveOption {
	return func(p *lcurveParams) { p.nOmega = n }
}

// WithOmegaRange sets the sweep bounds.
func WithOmegaRange(lo, hi float64) LCurveOption {
	return func(p *lcurveParams) { p.omegaMin, p.omegaMax = lo, hi }
}

// WithSolveOptions forwards options to every inverse.Solve in the sweep,
// e.g. inverse.WithNonNegative().
func WithSolveOptions(opts ...inverse.Option) LCurveOption {
	return func(p *lcurveParams) { p.solve = append(p.solve, opts...) }
}

func gatherLCurve(user ...LCurveOption) lcurveParams {
	p := lcurveParams{nOmega: DefaultNOmega, omegaMin: DefaultOmegaMin, omegaMax: DefaultOmegaMax}
	for _, opt := range user {
		if opt != nil {
			opt(&p)
		}
	}

	return p
}
