package kinetics_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/daemkit/core"
	"github.com/katalvlaran/daemkit/kinetics"
	"github.com/katalvlaran/daemkit/matrix"
)

// rampSeries returns t = 0..n-1 s and T = beta·t + 273.15 K.
func rampSeries(n int, beta float64) ([]float64, []float64) {
	t := make([]float64, n)
	temp := make([]float64, n)
	for i := range t {
		t[i] = float64(i)
		temp[i] = beta*t[i] + 273.15
	}

	return t, temp
}

func mustLinspace(t *testing.T, a, b float64, n int) []float64 {
	t.Helper()
	x, err := core.Linspace(a, b, n)
	require.NoError(t, err)

	return x
}

func column(t *testing.T, a *matrix.Dense, j int) []float64 {
	t.Helper()
	c, err := a.Col(j)
	require.NoError(t, err)

	return c
}

// TestBuildTransform_RampScenario: 100 one-second samples, 0.5 K/s ramp,
// 300 energies in [50, 350] kJ/mol, log10k0 = 10.
func TestBuildTransform_RampScenario(t *testing.T) {
	tt, temp := rampSeries(100, 0.5)
	grid := mustLinspace(t, 50, 350, 300)

	a, warns, err := kinetics.BuildTransform(kinetics.Arrhenius{Log10K0: kinetics.Constant(10)}, grid, tt, temp)
	require.NoError(t, err)
	assert.Empty(t, warns)
	assert.Equal(t, 100, a.Rows())
	assert.Equal(t, 300, a.Cols())

	row0, err := a.Row(0)
	require.NoError(t, err)
	for j, v := range row0 {
		assert.Equal(t, 1.0, v, "A[0,%d]", j)
	}

	first := column(t, a, 0)
	for i := 1; i < len(first); i++ {
		assert.LessOrEqual(t, first[i], first[i-1], "column 0 must be non-increasing at %d", i)
	}
	// 50 kJ/mol reacts completely by the end of the ramp; 350 kJ/mol does not move.
	assert.Less(t, first[99], 1e-6)
	last := column(t, a, 299)
	assert.InDelta(t, 1.0, last[99], 1e-12)
}

// TestBuildTransform_IsothermalMatchesClosedForm: constant T makes the
// trapezoid rule exact, so A[i,j] = exp(-k_j·t_i).
func TestBuildTransform_IsothermalMatchesClosedForm(t *testing.T) {
	tt := []float64{0, 10, 20, 50, 100}
	temp := kinetics.Isothermal(600, len(tt))
	grid := []float64{100, 120}

	a, warns, err := kinetics.BuildTransform(kinetics.Arrhenius{Log10K0: kinetics.Constant(8)}, grid, tt, temp)
	require.NoError(t, err)
	require.Len(t, warns, 1)
	assert.Equal(t, core.WarnIsothermal, warns[0].Code)

	for j, e := range grid {
		k := 1e8 * math.Exp(-e*1000/(kinetics.GasConstant*600))
		col := column(t, a, j)
		for i, ti := range tt {
			assert.InDelta(t, math.Exp(-k*ti), col[i], 1e-12, "A[%d,%d]", i, j)
		}
	}
}

func TestBuildTransform_Validation(t *testing.T) {
	tt, temp := rampSeries(10, 1)
	grid := mustLinspace(t, 50, 100, 5)
	law := kinetics.Arrhenius{Log10K0: kinetics.Constant(10)}

	_, _, err := kinetics.BuildTransform(law, grid, tt, temp[:9])
	assert.ErrorIs(t, err, core.ErrDimensionMismatch)
	assert.Contains(t, err.Error(), "len(T)=9, want 10")

	_, _, err = kinetics.BuildTransform(kinetics.Arrhenius{Log10K0: kinetics.PerGrid([]float64{10, 10})}, grid, tt, temp)
	assert.ErrorIs(t, err, core.ErrDimensionMismatch)
	assert.Contains(t, err.Error(), "len(log10k0)=2, want 5")

	_, _, err = kinetics.BuildTransform(kinetics.Arrhenius{}, grid, tt, temp)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	_, _, err = kinetics.BuildTransform(nil, grid, tt, temp)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	shuffled := append([]float64(nil), tt...)
	shuffled[2], shuffled[3] = shuffled[3], shuffled[2]
	_, _, err = kinetics.BuildTransform(law, grid, shuffled, temp)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	cold := append([]float64(nil), temp...)
	cold[4] = -1
	_, _, err = kinetics.BuildTransform(law, grid, tt, cold)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	_, _, err = kinetics.BuildTransform(kinetics.Arrhenius{Log10K0: kinetics.Func(func(float64) float64 { return math.NaN() })}, grid, tt, temp)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

// TestBuildTransform_PreExponentialVariantsAgree: the three representations of
// the same per-column log10k0 build identical matrices.
func TestBuildTransform_PreExponentialVariantsAgree(t *testing.T) {
	tt, temp := rampSeries(40, 2)
	grid := mustLinspace(t, 60, 120, 7)
	f := func(e float64) float64 { return 8 + e/100 }
	per := make([]float64, len(grid))
	for j, e := range grid {
		per[j] = f(e)
	}

	fromFunc, _, err := kinetics.BuildTransform(kinetics.Arrhenius{Log10K0: kinetics.Func(f)}, grid, tt, temp)
	require.NoError(t, err)
	fromSlice, _, err := kinetics.BuildTransform(kinetics.Arrhenius{Log10K0: kinetics.PerGrid(per)}, grid, tt, temp)
	require.NoError(t, err)
	assert.Equal(t, fromFunc, fromSlice)

	flat, _, err := kinetics.BuildTransform(kinetics.Arrhenius{Log10K0: kinetics.Constant(9)}, grid, tt, temp)
	require.NoError(t, err)
	flatPer, _, err := kinetics.BuildTransform(kinetics.Arrhenius{Log10K0: kinetics.PerGrid([]float64{9, 9, 9, 9, 9, 9, 9})}, grid, tt, temp)
	require.NoError(t, err)
	assert.Equal(t, flat, flatPer)
}

// TestBuildTransform_RowOrderInvariance: jointly shuffling (t, T) and restoring
// time order reproduces the matrix bit for bit.
func TestBuildTransform_RowOrderInvariance(t *testing.T) {
	tt, temp := rampSeries(30, 1.5)
	grid := mustLinspace(t, 60, 140, 9)
	law := kinetics.Arrhenius{Log10K0: kinetics.Constant(10)}

	want, _, err := kinetics.BuildTransform(law, grid, tt, temp)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(11))
	perm := rng.Perm(len(tt))
	pt, pT := make([]float64, len(tt)), make([]float64, len(tt))
	for i, p := range perm {
		pt[i], pT[i] = tt[p], temp[p]
	}
	st, sT, err := kinetics.SortByTime(pt, pT)
	require.NoError(t, err)

	got, _, err := kinetics.BuildTransform(law, grid, st, sT)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPreExponential_String(t *testing.T) {
	assert.Equal(t, "constant(10)", kinetics.Constant(10).String())
	assert.Equal(t, "per-grid(n=2)", kinetics.PerGrid([]float64{1, 2}).String())
	assert.Equal(t, "func", kinetics.Func(math.Sqrt).String())
	assert.True(t, kinetics.PreExponential{}.IsZero())
	assert.Equal(t, kinetics.PreExpPerGrid, kinetics.PerGrid(nil).Kind())
}
