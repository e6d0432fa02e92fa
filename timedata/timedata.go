package timedata

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/daemkit/core"
)

// TimeData is an immutable, time-ordered measured series.
type TimeData struct {
	t    []float64
	temp []float64
	g    []float64
	gStd []float64
	kind core.SourceKind
}

// New validates and copies a series. gStd may be nil (treated as zeros).
func New(t, temp, g, gStd []float64, kind core.SourceKind) (*TimeData, error) {
	const op = "timedata.New"
	if err := core.RequireIncreasing(op, "t", t); err != nil {
		return nil, err
	}
	if len(temp) != len(t) {
		return nil, core.LengthError(op, "T", len(temp), len(t))
	}
	if len(g) != len(t) {
		return nil, core.LengthError(op, "g", len(g), len(t))
	}
	if gStd == nil {
		gStd = make([]float64, len(t))
	}
	if len(gStd) != len(t) {
		return nil, core.LengthError(op, "gStd", len(gStd), len(t))
	}
	for _, c := range []struct {
		name string
		x    []float64
	}{{"T", temp}, {"g", g}, {"gStd", gStd}} {
		if err := core.RequireFinite(op, c.name, c.x); err != nil {
			return nil, err
		}
	}

	return &TimeData{
		t:    append([]float64(nil), t...),
		temp: append([]float64(nil), temp...),
		g:    append([]float64(nil), g...),
		gStd: append([]float64(nil), gStd...),
		kind: kind,
	}, nil
}

// Times returns a copy of the sample times (s).
func (d *TimeData) Times() []float64 { return append([]float64(nil), d.t...) }

// Temps returns a copy of the sample temperatures (K).
func (d *TimeData) Temps() []float64 { return append([]float64(nil), d.temp...) }

// G returns a copy of the fraction remaining.
func (d *TimeData) G() []float64 { return append([]float64(nil), d.g...) }

// GStd returns a copy of the standard deviation of G.
func (d *TimeData) GStd() []float64 { return append([]float64(nil), d.gStd...) }

// Kind is the declared source of the series.
func (d *TimeData) Kind() core.SourceKind { return d.kind }

// NT is the number of samples.
func (d *TimeData) NT() int { return len(d.t) }

// Rates returns -dg/dt and -dg/dT, the decomposition rate against time and
// temperature. A non-advancing temperature step yields a zero rate.
func (d *TimeData) Rates() (perTime, perTemp []float64, err error) {
	if perTime, err = core.Derivatize(d.g, d.t); err != nil {
		return nil, nil, err
	}
	if perTemp, err = core.Derivatize(d.g, d.temp); err != nil {
		return nil, nil, err
	}
	floats.Scale(-1, perTime)
	floats.Scale(-1, perTemp)

	return perTime, perTemp, nil
}

// Predictor maps a rate distribution to a fraction-remaining curve;
// *model.Model implements it.
type Predictor interface {
	Predict(f []float64) ([]float64, error)
}

// Fit is a forward-modelled curve scored against the measured one.
type Fit struct {
	GHat []float64
	RMSE float64
}

// ForwardModel predicts g from f and reports the root-mean-square error
// against the measured series.
func (d *TimeData) ForwardModel(p Predictor, f []float64) (*Fit, error) {
	const op = "TimeData.ForwardModel"
	if p == nil {
		return nil, core.ArgumentError(op, "predictor", nil, "must be non-nil")
	}
	gHat, err := p.Predict(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(gHat) != len(d.g) {
		return nil, core.LengthError(op, "gHat", len(gHat), len(d.g))
	}
	rmse := floats.Distance(gHat, d.g, 2) / math.Sqrt(float64(len(d.g)))

	return &Fit{GHat: gHat, RMSE: rmse}, nil
}
