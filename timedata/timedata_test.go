package timedata_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/daemkit/core"
	"github.com/katalvlaran/daemkit/model"
	"github.com/katalvlaran/daemkit/timedata"
)

var _ model.TimeSource = (*timedata.TimeData)(nil)

type fixed struct {
	out []float64
	err error
}

func (f fixed) Predict([]float64) ([]float64, error) { return f.out, f.err }

func TestNew_Validation(t *testing.T) {
	tt := []float64{0, 1, 2}
	d, err := timedata.New(tt, []float64{300, 301, 302}, []float64{1, 0.5, 0}, nil, core.KindSynthetic)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0}, d.GStd())

	_, err = timedata.New(tt, []float64{300, 301}, []float64{1, 0.5, 0}, nil, core.KindSynthetic)
	assert.ErrorIs(t, err, core.ErrDimensionMismatch)
	_, err = timedata.New(tt, []float64{300, 301, 302}, []float64{1, 0.5}, nil, core.KindSynthetic)
	assert.ErrorIs(t, err, core.ErrDimensionMismatch)
	_, err = timedata.New(tt, []float64{300, 301, 302}, []float64{1, 0.5, 0}, []float64{0}, core.KindSynthetic)
	assert.ErrorIs(t, err, core.ErrDimensionMismatch)
	_, err = timedata.New(tt, []float64{300, math.NaN(), 302}, []float64{1, 0.5, 0}, nil, core.KindSynthetic)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
	_, err = timedata.New([]float64{0, 0, 1}, []float64{300, 301, 302}, []float64{1, 0.5, 0}, nil, core.KindSynthetic)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestRates(t *testing.T) {
	d, err := timedata.New([]float64{0, 10, 20, 30}, []float64{300, 310, 320, 330}, []float64{1, 0.8, 0.6, 0.4}, nil, core.KindSynthetic)
	require.NoError(t, err)

	perTime, perTemp, err := d.Rates()
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.02, 0.02, 0.02, 0.02}, perTime, 1e-12)
	assert.InDeltaSlice(t, []float64{0.02, 0.02, 0.02, 0.02}, perTemp, 1e-12)
}

func TestForwardModel(t *testing.T) {
	d, err := timedata.New([]float64{0, 1, 2, 3}, []float64{300, 301, 302, 303}, []float64{1, 1, 1, 1}, nil, core.KindSynthetic)
	require.NoError(t, err)

	fit, err := d.ForwardModel(fixed{out: []float64{1, 1, 0, 1}}, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, fit.RMSE, 1e-12)

	_, err = d.ForwardModel(fixed{out: []float64{1}}, nil)
	assert.ErrorIs(t, err, core.ErrDimensionMismatch)

	boom := errors.New("boom")
	_, err = d.ForwardModel(fixed{err: boom}, nil)
	assert.ErrorIs(t, err, boom)

	_, err = d.ForwardModel(nil, nil)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

// TestForwardModel_WithDaem builds a model straight from the series and
// scores the curve of a flat distribution against itself.
func TestForwardModel_WithDaem(t *testing.T) {
	src, err := timedata.New(
		[]float64{0, 600, 1200, 1800, 2400, 3000},
		[]float64{373, 421, 469, 517, 565, 613},
		[]float64{1, 1, 1, 1, 1, 1}, nil, core.KindRpoThermogram)
	require.NoError(t, err)

	p := model.DefaultTimeDataParams()
	p.NEa = 20
	m, err := model.DaemFromTimeData(src, p)
	require.NoError(t, err)
	assert.Empty(t, m.Warnings())

	f := make([]float64, m.NK())
	for j := range f {
		f[j] = 1.0 / float64(m.NK())
	}
	gHat, err := m.Predict(f)
	require.NoError(t, err)
	obs, err := timedata.New(src.Times(), src.Temps(), gHat, nil, core.KindRpoThermogram)
	require.NoError(t, err)

	fit, err := obs.ForwardModel(m, f)
	require.NoError(t, err)
	assert.InDelta(t, 0, fit.RMSE, 1e-12)
}
