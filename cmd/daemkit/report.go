package main

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/daemkit/model"
	"github.com/katalvlaran/daemkit/ratedata"
	"github.com/katalvlaran/daemkit/timedata"
)

type pointReport struct {
	Omega     float64 `yaml:"omega"`
	Residual  float64 `yaml:"residual"`
	Roughness float64 `yaml:"roughness"`
	Curvature float64 `yaml:"curvature"`
}

type lcurveReport struct {
	Source    string        `yaml:"source"`
	NT        int           `yaml:"nt"`
	NK        int           `yaml:"nk"`
	CondA     float64       `yaml:"cond_a"`
	BestOmega float64       `yaml:"best_omega"`
	BestIndex int           `yaml:"best_index"`
	Warnings  []string      `yaml:"warnings,omitempty"`
	Points    []pointReport `yaml:"points,omitempty"`
}

type peakReport struct {
	Ea         float64 `yaml:"ea"`
	Height     float64 `yaml:"height"`
	Prominence float64 `yaml:"prominence"`
}

type invertReport struct {
	Source     string       `yaml:"source"`
	Omega      float64      `yaml:"omega"`
	FromLCurve bool         `yaml:"from_lcurve"`
	Residual   float64      `yaml:"residual"`
	Roughness  float64      `yaml:"roughness"`
	RMSE       float64      `yaml:"rmse"`
	MeanEa     float64      `yaml:"mean_ea"`
	StdEa      float64      `yaml:"std_ea"`
	Peaks      []peakReport `yaml:"peaks"`
	Warnings   []string     `yaml:"warnings,omitempty"`
	Ea         []float64    `yaml:"ea,flow"`
	F          []float64    `yaml:"f,flow"`
}

type forwardReport struct {
	Source   string    `yaml:"source"`
	Omega    float64   `yaml:"omega"`
	Beta     float64   `yaml:"beta"`
	Warnings []string  `yaml:"warnings,omitempty"`
	Time     []float64 `yaml:"t,flow"`
	Temp     []float64 `yaml:"temp,flow"`
	G        []float64 `yaml:"g,flow"`
}

func warningStrings(m *model.Model) []string {
	var out []string
	for _, w := range m.Warnings() {
		out = append(out, w.String())
	}

	return out
}

func newLCurveReport(src string, m *model.Model, lc *model.LCurve, withPoints bool) (lcurveReport, error) {
	cond, err := m.Condition()
	if err != nil {
		return lcurveReport{}, err
	}
	r := lcurveReport{
		Source:    src,
		NT:        m.NT(),
		NK:        m.NK(),
		CondA:     cond,
		BestOmega: lc.BestOmega(),
		BestIndex: lc.Best,
		Warnings:  warningStrings(m),
	}
	if withPoints {
		for i, p := range lc.Points {
			r.Points = append(r.Points, pointReport{
				Omega:     p.Omega,
				Residual:  p.Residual,
				Roughness: p.Roughness,
				Curvature: lc.Curvature[i],
			})
		}
	}

	return r, nil
}

func newInvertReport(src string, m *model.Model, ec *ratedata.EnergyComplex, lc *model.LCurve, fit *timedata.Fit, prominence float64) (invertReport, error) {
	mean, std, err := ec.Summary()
	if err != nil {
		return invertReport{}, err
	}
	r := invertReport{
		Source:     src,
		Omega:      ec.Omega,
		FromLCurve: lc != nil,
		Residual:   ec.Residual,
		Roughness:  ec.Roughness,
		RMSE:       fit.RMSE,
		MeanEa:     mean,
		StdEa:      std,
		Peaks:      []peakReport{},
		Warnings:   warningStrings(m),
		Ea:         ec.Ea,
		F:          ec.F,
	}
	for _, p := range ec.Peaks(prominence) {
		r.Peaks = append(r.Peaks, peakReport{Ea: p.Ea, Height: p.Height, Prominence: p.Prominence})
	}

	return r, nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("report: %w", err)
	}

	return enc.Close()
}

func newForwardReport(src string, beta float64, inv *inversion, rm *model.Model, g []float64) forwardReport {
	return forwardReport{
		Source:   src,
		Omega:    inv.ec.Omega,
		Beta:     beta,
		Warnings: warningStrings(rm),
		Time:     rm.Times(),
		Temp:     rm.Temps(),
		G:        g,
	}
}
