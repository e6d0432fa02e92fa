package model

import (
	"fmt"
	"math"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/daemkit/core"
	"github.com/katalvlaran/daemkit/inverse"
)

// LCurvePoint is one sweep evaluation.
type LCurvePoint struct {
	Omega     float64
	Residual  float64 // ‖A·f − g‖₂
	Roughness float64 // ‖R·f‖₂
}

// LCurve is the result of a sweep. All series share the sweep order.
type LCurve struct {
	Points []LCurvePoint

	// LogResidual and LogRoughness are log10 of the norms rounded to
	// core.SigFigs significant figures; curvature is computed on these.
	LogResidual  []float64
	LogRoughness []float64
	Curvature    []float64

	// Best is the first index of maximum curvature, or 0 when the sweep is
	// shorter than MinNOmega or the curvature is undefined everywhere.
	Best int
}

// BestOmega is the regularization strength at the selected corner.
func (c *LCurve) BestOmega() float64 { return c.Points[c.Best].Omega }

// LCurve sweeps ω and locates the corner of the log-log residual/roughness
// curve for the observed fraction remaining g.
//
// Defaults: DefaultNOmega points over [DefaultOmegaMin, DefaultOmegaMax]. The
// bounds may be given in either order; the sweep runs from omegaMin to
// omegaMax. A sweep of fewer than MinNOmega points has no second derivative:
// every point is still solved, Curvature is all zeros and Best is 0.
//
// Errors:
//   - core.ErrInvalidArgument for nOmega < 1 or non-positive or non-finite
//     bounds;
//   - core.ErrDimensionMismatch when len(g) != NT();
//   - the error of the earliest failing sweep point (e.g. core.ErrSingularSystem),
//     which aborts the whole sweep.
func (m *Model) LCurve(g []float64, opts ...LCurveOption) (*LCurve, error) {
	const op = "Model.LCurve"
	p := gatherLCurve(opts...)
	if p.nOmega < 1 {
		return nil, core.ArgumentError(op, "nOmega", p.nOmega, "must be >= 1")
	}
	if !finite(p.omegaMin) || !finite(p.omegaMax) || p.omegaMin <= 0 || p.omegaMax <= 0 {
		return nil, core.ArgumentError(op, "omega range", fmt.Sprintf("[%g, %g]", p.omegaMin, p.omegaMax), "must be finite and > 0")
	}
	if len(g) != m.NT() {
		return nil, core.LengthError(op, "g", len(g), m.NT())
	}
	if err := core.RequireFinite(op, "g", g); err != nil {
		return nil, err
	}
	omegas, err := core.Logspace(p.omegaMin, p.omegaMax, p.nOmega)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	pts, err := m.sweep(g, omegas, p.solve)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	lc := &LCurve{
		Points:       pts,
		LogResidual:  make([]float64, len(pts)),
		LogRoughness: make([]float64, len(pts)),
	}
	for i, pt := range pts {
		lc.LogResidual[i] = core.RoundSigFig(math.Log10(pt.Residual), core.SigFigs)
		lc.LogRoughness[i] = core.RoundSigFig(math.Log10(pt.Roughness), core.SigFigs)
	}
	if len(pts) < MinNOmega {
		lc.Curvature = make([]float64, len(pts))
	} else {
		if lc.Curvature, err = Curvature(lc.LogResidual, lc.LogRoughness); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if lc.Best, err = Corner(lc.Curvature); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	m.logger.Debug("l-curve corner",
		zap.Int("nOmega", p.nOmega),
		zap.Int("best", lc.Best),
		zap.Float64("omega", lc.BestOmega()),
		zap.Float64("curvature", lc.Curvature[lc.Best]))

	return lc, nil
}

// BestOmega is LCurve reduced to the selected ω.
func (m *Model) BestOmega(g []float64, opts ...LCurveOption) (float64, error) {
	lc, err := m.LCurve(g, opts...)
	if err != nil {
		return 0, err
	}

	return lc.BestOmega(), nil
}

// sweep solves at every omega on at most m.workers goroutines. Results land
// at their sweep index; the error of the lowest failing index is returned.
func (m *Model) sweep(g, omegas []float64, opts []inverse.Option) ([]LCurvePoint, error) {
	pts := make([]LCurvePoint, len(omegas))
	errs := make([]error, len(omegas))

	var eg errgroup.Group
	eg.SetLimit(m.workers)
	for i, w := range omegas {
		eg.Go(func() error {
			sol, err := inverse.Solve(m.a, m.r, g, w, opts...)
			if err != nil {
				errs[i] = fmt.Errorf("sweep point %d: %w", i, err)
				return errs[i]
			}
			pts[i] = LCurvePoint{Omega: w, Residual: sol.Residual, Roughness: sol.Roughness}

			return nil
		})
	}
	if eg.Wait() != nil {
		for _, err := range errs {
			if err != nil {
				return nil, err
			}
		}
	}

	return pts, nil
}

// Curvature returns κ = |y''| / (1 + y'²)^1.5 of y against x, where both
// derivatives are gradient ratios (core.Derivatize). A zero step in x gives a
// zero slope rather than Inf.
func Curvature(x, y []float64) ([]float64, error) {
	dy, err := core.Derivatize(y, x)
	if err != nil {
		return nil, err
	}
	d2y, err := core.Derivatize(dy, x)
	if err != nil {
		return nil, err
	}
	k := make([]float64, len(x))
	for i := range k {
		k[i] = math.Abs(d2y[i]) / math.Pow(1+dy[i]*dy[i], 1.5)
	}

	return k, nil
}

// Corner returns the first index of the maximum of kappa, skipping NaN.
// An all-NaN kappa, as produced by a zero residual and roughness at every
// point, selects index 0. An empty kappa is an error.
func Corner(kappa []float64) (int, error) {
	if len(kappa) == 0 {
		return 0, core.ArgumentError("Corner", "curvature", "0 points", "must not be empty")
	}
	best := -1
	for i, v := range kappa {
		if math.IsNaN(v) {
			continue
		}
		if best < 0 || v > kappa[best] {
			best = i
		}
	}
	if best < 0 {
		return 0, nil
	}

	return best, nil
}
