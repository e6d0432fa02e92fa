package kinetics

import (
	"math"

	"github.com/katalvlaran/daemkit/core"
)

// GasConstant is R in J/(mol·K).
const GasConstant = 8.314

// RateFunc returns the instantaneous first-order rate constant (s⁻¹) of grid
// column j at temperature temp (K).
type RateFunc func(j int, temp float64) float64

// RateLaw is a kinetic rate law that can be bound to an energy grid.
type RateLaw interface {
	// Resolve binds per-column parameters to grid once and returns the rate function.
	Resolve(grid []float64) (RateFunc, error)
}

// Arrhenius is k = 10^{log10k0} · exp(-E·1000/(R·T)) with E in kJ/mol.
type Arrhenius struct {
	Log10K0 PreExponential
}

// Resolve implements RateLaw.
func (a Arrhenius) Resolve(grid []float64) (RateFunc, error) {
	if err := core.RequireFinite("Arrhenius.Resolve", "grid", grid); err != nil {
		return nil, err
	}
	logk0, err := a.Log10K0.Resolve(grid)
	if err != nil {
		return nil, err
	}
	k0 := make([]float64, len(grid))
	eps := make([]float64, len(grid))
	for j := range grid {
		k0[j] = math.Pow(10, logk0[j])
		eps[j] = grid[j] * 1000 / GasConstant // kJ/mol → K
	}

	return func(j int, temp float64) float64 {
		return k0[j] * math.Exp(-eps[j]/temp)
	}, nil
}
