package model

import (
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/daemkit/core"
	"github.com/katalvlaran/daemkit/inverse"
	"github.com/katalvlaran/daemkit/kinetics"
	"github.com/katalvlaran/daemkit/matrix"
)

// Model is the immutable DAEM core.
type Model struct {
	a        *matrix.Dense
	r        *matrix.Dense
	t        []float64
	temp     []float64
	grid     []float64
	log10k0  kinetics.PreExponential
	kind     core.SourceKind
	warnings []core.Warning

	logger  *zap.Logger
	workers int
}

// build validates and copies the inputs, assembles A and R and records
// warnings. extra carries warnings raised by the caller's construction path.
func build(op string, grid []float64, log10k0 kinetics.PreExponential, t, temp []float64, kind core.SourceKind, extra []core.Warning, opts ...Option) (*Model, error) {
	s := gatherSettings(opts...)

	a, warns, err := kinetics.BuildTransform(kinetics.Arrhenius{Log10K0: log10k0}, grid, t, temp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	r, err := inverse.Roughness(len(grid))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	m := &Model{
		a:        a,
		r:        r,
		t:        clone(t),
		temp:     clone(temp),
		grid:     clone(grid),
		log10k0:  log10k0,
		kind:     kind,
		warnings: append(append([]core.Warning(nil), extra...), warns...),
		logger:   s.logger,
		workers:  s.workers,
	}
	for _, w := range m.warnings {
		m.logger.Warn("daem model warning",
			zap.String("op", op),
			zap.String("code", string(w.Code)),
			zap.String("message", w.Message))
	}
	m.logger.Debug("daem model built",
		zap.String("op", op),
		zap.Int("nt", len(t)),
		zap.Int("nk", len(grid)),
		zap.Stringer("log10k0", log10k0),
		zap.String("kind", string(kind)))

	return m, nil
}

// NewDaem builds a model from an explicit grid (kJ/mol), pre-exponential and
// time/temperature history.
func NewDaem(grid []float64, log10k0 kinetics.PreExponential, t, temp []float64, opts ...Option) (*Model, error) {
	return build("NewDaem", grid, log10k0, t, temp, core.KindUnknown, nil, opts...)
}

func clone(x []float64) []float64 { return append([]float64(nil), x...) }

// A returns a copy of the nt×nk transform matrix.
func (m *Model) A() *matrix.Dense { return m.a.Clone().(*matrix.Dense) }

// Roughness returns a copy of the nk×nk roughness operator.
func (m *Model) Roughness() *matrix.Dense { return m.r.Clone().(*matrix.Dense) }

// Times returns a copy of the sample times (s).
func (m *Model) Times() []float64 { return clone(m.t) }

// Temps returns a copy of the sample temperatures (K).
func (m *Model) Temps() []float64 { return clone(m.temp) }

// Grid returns a copy of the activation-energy grid (kJ/mol).
func (m *Model) Grid() []float64 { return clone(m.grid) }

// NT is the number of time samples.
func (m *Model) NT() int { return len(m.t) }

// NK is the number of grid columns.
func (m *Model) NK() int { return len(m.grid) }

// Log10K0 is the pre-exponential the transform was built with.
func (m *Model) Log10K0() kinetics.PreExponential { return m.log10k0 }

// Kind is the declared source of the time series, KindUnknown if none.
func (m *Model) Kind() core.SourceKind { return m.kind }

// Warnings returns the non-fatal diagnostics raised at construction.
func (m *Model) Warnings() []core.Warning {
	return append([]core.Warning(nil), m.warnings...)
}

// Condition returns the 2-norm condition number of A. It is +Inf when A is
// rank deficient, which is when the unregularized fit is undetermined.
func (m *Model) Condition() (float64, error) {
	g, err := matrix.ToGonum(m.a)
	if err != nil {
		return 0, fmt.Errorf("Model.Condition: %w", err)
	}

	return mat.Cond(g, 2), nil
}

// Predict returns A·f, the fraction remaining a distribution f implies.
func (m *Model) Predict(f []float64) ([]float64, error) {
	if len(f) != m.NK() {
		return nil, core.LengthError("Model.Predict", "f", len(f), m.NK())
	}
	g, err := matrix.MatVec(m.a, f)
	if err != nil {
		return nil, fmt.Errorf("Model.Predict: %w", err)
	}

	return g, nil
}

// Solve runs one regularized inversion of g at omega against the model's A and R.
func (m *Model) Solve(g []float64, omega float64, opts ...inverse.Option) (*inverse.Solution, error) {
	return inverse.Solve(m.a, m.r, g, omega, opts...)
}
