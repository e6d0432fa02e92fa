package ratedata

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/daemkit/core"
	"github.com/katalvlaran/daemkit/inverse"
	"github.com/katalvlaran/daemkit/model"
)

// EnergyComplex is a fitted activation-energy distribution.
type EnergyComplex struct {
	Ea        []float64 // grid, kJ/mol
	F         []float64 // fitted mass per grid column
	Omega     float64
	Residual  float64 // ‖A·F − g‖₂
	Roughness float64 // ‖R·F‖₂
}

// Option configures InverseModel.
type Option func(*params)

type params struct {
	unconstrained bool
	solve         []inverse.Option
	lcurve        []model.LCurveOption
}

// Unconstrained drops the f ≥ 0 constraint and solves by plain least squares.
func Unconstrained() Option {
	return func(p *params) { p.unconstrained = true }
}

// WithSolveOptions forwards options such as a rank tolerance to the solver.
func WithSolveOptions(opts ...inverse.Option) Option {
	return func(p *params) { p.solve = append(p.solve, opts...) }
}

// WithLCurveOptions configures the sweep InverseModelAuto runs.
func WithLCurveOptions(opts ...model.LCurveOption) Option {
	return func(p *params) { p.lcurve = append(p.lcurve, opts...) }
}

func gather(user ...Option) params {
	var p params
	for _, opt := range user {
		if opt != nil {
			opt(&p)
		}
	}
	if !p.unconstrained {
		p.solve = append([]inverse.Option{inverse.WithNonNegative()}, p.solve...)
	}

	return p
}

// InverseModel fits g on m at omega. The distribution is non-negative unless
// Unconstrained is given.
func InverseModel(m *model.Model, g []float64, omega float64, opts ...Option) (*EnergyComplex, error) {
	if m == nil {
		return nil, core.ArgumentError("InverseModel", "model", nil, "must be non-nil")
	}
	p := gather(opts...)
	sol, err := m.Solve(g, omega, p.solve...)
	if err != nil {
		return nil, fmt.Errorf("InverseModel: %w", err)
	}

	return &EnergyComplex{
		Ea:        m.Grid(),
		F:         sol.F,
		Omega:     sol.Omega,
		Residual:  sol.Residual,
		Roughness: sol.Roughness,
	}, nil
}

// InverseModelAuto picks omega from the L-curve of g, using the same
// constraint as the final fit, and then calls InverseModel.
func InverseModelAuto(m *model.Model, g []float64, opts ...Option) (*EnergyComplex, *model.LCurve, error) {
	if m == nil {
		return nil, nil, core.ArgumentError("InverseModelAuto", "model", nil, "must be non-nil")
	}
	p := gather(opts...)
	lc, err := m.LCurve(g, append(p.lcurve, model.WithSolveOptions(p.solve...))...)
	if err != nil {
		return nil, nil, fmt.Errorf("InverseModelAuto: %w", err)
	}
	ec, err := InverseModel(m, g, lc.BestOmega(), opts...)
	if err != nil {
		return nil, nil, err
	}

	return ec, lc, nil
}

// Total is the fitted mass, Σ F.
func (ec *EnergyComplex) Total() float64 { return floats.Sum(ec.F) }

// Summary returns the F-weighted mean and standard deviation of Ea.
// Negative weights (unconstrained fits) are clipped to zero.
func (ec *EnergyComplex) Summary() (mean, std float64, err error) {
	w := make([]float64, len(ec.F))
	for i, v := range ec.F {
		if v > 0 {
			w[i] = v
		}
	}
	if floats.Sum(w) == 0 {
		return 0, 0, core.ArgumentError("EnergyComplex.Summary", "F", "all <= 0", "has no positive mass")
	}
	mean, std = stat.PopMeanStdDev(ec.Ea, w)

	return mean, std, nil
}
