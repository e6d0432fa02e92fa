// Package config loads daemkit run settings from defaults, an optional YAML
// file, DAEMKIT_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/daemkit/inverse"
	"github.com/katalvlaran/daemkit/kinetics"
	"github.com/katalvlaran/daemkit/model"
	"github.com/katalvlaran/daemkit/timedata"
)

// Config holds every tunable of a run.
type Config struct {
	Grid  GridConfig
	Ramp  RampConfig
	Sweep SweepConfig
	Data  DataConfig
	Log   LogConfig
}

// GridConfig is the activation-energy grid and rate law.
type GridConfig struct {
	EaMin   float64
	EaMax   float64
	NEa     int
	Log10K0 float64
}

// RampConfig is the synthetic ramp used when rebuilding a model on a prior grid.
type RampConfig struct {
	Beta  float64
	NT    int
	T0    float64
	Temp0 float64
	TF    float64
}

// SweepConfig controls the L-curve search and the final inversion.
type SweepConfig struct {
	NOmega      int
	OmegaMin    float64
	OmegaMax    float64
	Workers     int
	NonNegative bool
}

// DataConfig controls thermogram loading.
type DataConfig struct {
	NT        int
	PPMCO2Err float64
}

// LogConfig selects the logger.
type LogConfig struct {
	Level       string
	Development bool
}

// TimeDataParams maps the grid settings onto the model constructor.
func (c *Config) TimeDataParams() model.TimeDataParams {
	return model.TimeDataParams{
		EaMin:   c.Grid.EaMin,
		EaMax:   c.Grid.EaMax,
		NEa:     c.Grid.NEa,
		Log10K0: kinetics.Constant(c.Grid.Log10K0),
	}
}

// RateDataParams maps the ramp settings onto the model constructor.
func (c *Config) RateDataParams() model.RateDataParams {
	return model.RateDataParams{
		Beta:    c.Ramp.Beta,
		NT:      c.Ramp.NT,
		T0:      c.Ramp.T0,
		Temp0:   c.Ramp.Temp0,
		TF:      c.Ramp.TF,
		Log10K0: kinetics.Constant(c.Grid.Log10K0),
	}
}

// LoadParams maps the data settings onto the thermogram loader.
func (c *Config) LoadParams() timedata.LoadParams {
	return timedata.LoadParams{NT: c.Data.NT, PPMCO2Err: c.Data.PPMCO2Err}
}

// LCurveOptions maps the sweep settings onto Model.LCurve.
func (c *Config) LCurveOptions() []model.LCurveOption {
	opts := []model.LCurveOption{
		model.WithNOmega(c.Sweep.NOmega),
		model.WithOmegaRange(c.Sweep.OmegaMin, c.Sweep.OmegaMax),
	}
	if c.Sweep.NonNegative {
		opts = append(opts, model.WithSolveOptions(inverse.WithNonNegative()))
	}

	return opts
}

// Level parses Log.Level; Load has already validated it.
func (c *Config) Level() zapcore.Level {
	lvl, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return zapcore.InfoLevel
	}

	return lvl
}
