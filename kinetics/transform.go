package kinetics

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/daemkit/core"
	"github.com/katalvlaran/daemkit/matrix"
)

// BuildTransform integrates law over the sampled history (t, temp) for every
// grid value and returns the nt×nk transform matrix A[i,j] = exp(-ψ_j(t_i)).
//
// Contract:
//   - grid and t are non-empty, finite and strictly increasing;
//   - len(temp) == len(t), every temp is finite and > 0;
//   - the law yields finite, non-negative rates.
//
// An isothermal temp (all samples equal) is accepted and reported as a
// core.WarnIsothermal warning.
//
// Complexity: O(nt·nk) rate evaluations; Space O(nt·nk).
func BuildTransform(law RateLaw, grid, t, temp []float64) (*matrix.Dense, []core.Warning, error) {
	const op = "BuildTransform"
	if law == nil {
		return nil, nil, core.ArgumentError(op, "law", nil, "must be non-nil")
	}
	if err := core.RequireIncreasing(op, "grid", grid); err != nil {
		return nil, nil, err
	}
	if err := core.RequireIncreasing(op, "t", t); err != nil {
		return nil, nil, err
	}
	if len(temp) != len(t) {
		return nil, nil, core.LengthError(op, "T", len(temp), len(t))
	}
	if err := core.RequireFinite(op, "T", temp); err != nil {
		return nil, nil, err
	}
	for i, v := range temp {
		if v <= 0 {
			return nil, nil, core.ArgumentError(op, fmt.Sprintf("T[%d]", i), v, "must be > 0 K")
		}
	}
	rate, err := law.Resolve(grid)
	if err != nil {
		return nil, nil, err
	}

	nt, nk := len(t), len(grid)
	a, err := matrix.NewDense(nt, nk)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	k := make([]float64, nt)
	seg := make([]float64, nt)
	psi := make([]float64, nt)
	var i, j int
	for j = 0; j < nk; j++ {
		for i = 0; i < nt; i++ {
			k[i] = rate(j, temp[i])
			if math.IsNaN(k[i]) || math.IsInf(k[i], 0) || k[i] < 0 {
				return nil, nil, core.ArgumentError(op, fmt.Sprintf("k(E=%g, T=%g)", grid[j], temp[i]), k[i], "must be finite and >= 0")
			}
		}
		// Trapezoid areas per interval, then the running integral.
		seg[0] = 0
		for i = 1; i < nt; i++ {
			seg[i] = 0.5 * (k[i] + k[i-1]) * (t[i] - t[i-1])
		}
		floats.CumSum(psi, seg)
		for i = 0; i < nt; i++ {
			if err = a.Set(i, j, math.Exp(-psi[i])); err != nil {
				return nil, nil, fmt.Errorf("%s: %w", op, err)
			}
		}
	}

	var warns []core.Warning
	if IsIsothermal(temp) {
		warns = append(warns, core.Warning{
			Code:    core.WarnIsothermal,
			Message: fmt.Sprintf("temperature is constant at %.1f K; the model assumes a temperature ramp", temp[0]),
		})
	}

	return a, warns, nil
}

// Isothermal expands a scalar temperature into nt identical samples.
func Isothermal(temp float64, nt int) []float64 {
	out := make([]float64, nt)
	for i := range out {
		out[i] = temp
	}

	return out
}

// IsIsothermal reports whether every sample of temp equals the first one.
// A single sample counts as isothermal.
func IsIsothermal(temp []float64) bool {
	for _, v := range temp {
		if v != temp[0] {
			return false
		}
	}

	return len(temp) > 0
}

// SortByTime returns copies of t and temp jointly reordered by ascending t.
// It is how callers holding shuffled samples restore the time order the
// builder requires.
func SortByTime(t, temp []float64) ([]float64, []float64, error) {
	if len(temp) != len(t) {
		return nil, nil, core.LengthError("SortByTime", "T", len(temp), len(t))
	}
	idx := make([]int, len(t))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return t[idx[a]] < t[idx[b]] })
	ts, temps := make([]float64, len(t)), make([]float64, len(t))
	for i, p := range idx {
		ts[i], temps[i] = t[p], temp[p]
	}

	return ts, temps, nil
}
