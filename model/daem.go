package model

import (
	"fmt"
	"math"

	"github.com/katalvlaran/daemkit/core"
	"github.com/katalvlaran/daemkit/kinetics"
)

// TimeSource is the minimal view of a measured series the model needs.
// timedata.TimeData satisfies it; the model never imports that package.
type TimeSource interface {
	Times() []float64
	Temps() []float64
	Kind() core.SourceKind
}

// TimeDataParams are the grid and rate-law settings for DaemFromTimeData.
type TimeDataParams struct {
	EaMin   float64 // kJ/mol
	EaMax   float64 // kJ/mol
	NEa     int
	Log10K0 kinetics.PreExponential
}

// DefaultTimeDataParams returns 250 energies over [50, 350] kJ/mol with log10 k0 = 10.
func DefaultTimeDataParams() TimeDataParams {
	return TimeDataParams{EaMin: 50, EaMax: 350, NEa: 250, Log10K0: kinetics.Constant(10)}
}

// RateDataParams describe the synthetic linear ramp DaemFromRateData builds.
type RateDataParams struct {
	Beta    float64 // ramp rate, K/s
	NT      int
	T0      float64 // start time, s
	Temp0   float64 // start temperature, K
	TF      float64 // end time, s
	Log10K0 kinetics.PreExponential
}

// DefaultRateDataParams returns a 0.08 K/s ramp from 373 K over 1e4 s in 250 samples.
func DefaultRateDataParams() RateDataParams {
	return RateDataParams{Beta: 0.08, NT: 250, T0: 0, Temp0: 373, TF: 1e4, Log10K0: kinetics.Constant(10)}
}

// DaemFromTimeData builds a model on the history of src with a linearly
// spaced energy grid. A source not declared as an RPO thermogram is accepted
// with a WarnSourceKind warning.
func DaemFromTimeData(src TimeSource, p TimeDataParams, opts ...Option) (*Model, error) {
	const op = "DaemFromTimeData"
	if src == nil {
		return nil, core.ArgumentError(op, "src", nil, "must be non-nil")
	}
	if !finite(p.EaMin) || !finite(p.EaMax) || p.EaMin >= p.EaMax {
		return nil, core.ArgumentError(op, "Ea range", fmt.Sprintf("[%g, %g]", p.EaMin, p.EaMax), "must be finite with EaMin < EaMax")
	}
	grid, err := core.Linspace(p.EaMin, p.EaMax, p.NEa)
	if err != nil {
		return nil, fmt.Errorf("%s: NEa: %w", op, err)
	}

	var warns []core.Warning
	if kind := src.Kind(); kind != core.KindRpoThermogram {
		warns = append(warns, core.Warning{
			Code:    core.WarnSourceKind,
			Message: fmt.Sprintf("source kind %q, want %q", kind, core.KindRpoThermogram),
		})
	}

	return build(op, grid, p.Log10K0, src.Times(), src.Temps(), src.Kind(), warns, opts...)
}

// DaemFromRateData builds a model on an existing energy grid, typically the
// one a previous inversion was reported on, with a synthesized ramp
// t = linspace(T0, TF, NT), T = Temp0 + Beta·t.
func DaemFromRateData(grid []float64, p RateDataParams, opts ...Option) (*Model, error) {
	const op = "DaemFromRateData"
	if !finite(p.Beta) || !finite(p.Temp0) || p.Temp0 <= 0 {
		return nil, core.ArgumentError(op, "ramp", fmt.Sprintf("beta=%g Temp0=%g", p.Beta, p.Temp0), "must be finite with Temp0 > 0")
	}
	if !finite(p.T0) || !finite(p.TF) || p.T0 >= p.TF {
		return nil, core.ArgumentError(op, "time range", fmt.Sprintf("[%g, %g]", p.T0, p.TF), "must be finite with T0 < TF")
	}
	if p.NT < 2 {
		return nil, core.ArgumentError(op, "NT", p.NT, "must be >= 2")
	}
	t, err := core.Linspace(p.T0, p.TF, p.NT)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	temp := make([]float64, len(t))
	for i, ti := range t {
		temp[i] = p.Temp0 + p.Beta*ti
	}

	return build(op, grid, p.Log10K0, t, temp, core.KindSynthetic, nil, opts...)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
