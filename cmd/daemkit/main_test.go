package main

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// writeThermogram writes a 10 s cadence thermogram whose CO2 peaks at 3000 s
// on a 0.08 K/s ramp from 100 °C.
func writeThermogram(t *testing.T, fs afero.Fs, path string) {
	t.Helper()
	var b strings.Builder
	b.WriteString("date_time,temp,CO2_scaled\n")
	for s := 0; s <= 6000; s += 10 {
		co2 := math.Exp(-math.Pow((float64(s)-3000)/500, 2) / 2)
		fmt.Fprintf(&b, "%d,%.3f,%.6f\n", s, 100+0.08*float64(s), co2)
	}
	require.NoError(t, afero.WriteFile(fs, path, []byte(b.String()), 0o644))
}

func run(t *testing.T, fs afero.Fs, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(fs, &out)
	cmd.SetArgs(args)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()

	return out.String(), err
}

var small = []string{"--n-ea=20", "--nt=40", "--n-omega=12", "--log-level=error"}

func TestLCurveCommand(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeThermogram(t, fs, "/data/tg.csv")

	out, err := run(t, fs, append([]string{"lcurve", "/data/tg.csv", "--points", "--plot", "/out/lc.png"}, small...)...)
	require.NoError(t, err)

	var rep lcurveReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &rep))
	assert.Equal(t, 40, rep.NT)
	assert.Equal(t, 20, rep.NK)
	assert.Len(t, rep.Points, 12)
	assert.Equal(t, rep.Points[rep.BestIndex].Omega, rep.BestOmega)
	assert.Empty(t, rep.Warnings)
	assert.GreaterOrEqual(t, rep.CondA, 1.0)

	ok, err := afero.Exists(fs, "/out/lc.png")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestInvertCommand(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeThermogram(t, fs, "/data/tg.csv")

	out, err := run(t, fs, append([]string{"invert", "/data/tg.csv", "--omega=0.1"}, small...)...)
	require.NoError(t, err)

	var rep invertReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &rep))
	assert.Equal(t, 0.1, rep.Omega)
	assert.False(t, rep.FromLCurve)
	assert.Len(t, rep.F, 20)
	for _, v := range rep.F {
		assert.GreaterOrEqual(t, v, 0.0)
	}
	assert.Less(t, rep.RMSE, 0.2)

	out, err = run(t, fs, append([]string{"invert", "/data/tg.csv"}, small...)...)
	require.NoError(t, err)
	rep = invertReport{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &rep))
	assert.True(t, rep.FromLCurve)
}

func TestForwardCommand(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeThermogram(t, fs, "/data/tg.csv")

	forward := func(beta string) forwardReport {
		t.Helper()
		args := append([]string{"forward", "/data/tg.csv", "--omega=0.1",
			"--beta=" + beta, "--ramp-nt=30", "--tf=6000"}, small...)
		out, err := run(t, fs, args...)
		require.NoError(t, err)
		var rep forwardReport
		require.NoError(t, yaml.Unmarshal([]byte(out), &rep))

		return rep
	}

	slow := forward("0.08")
	assert.Equal(t, 0.08, slow.Beta)
	assert.Equal(t, 0.1, slow.Omega)
	require.Len(t, slow.G, 30)
	require.Len(t, slow.Temp, 30)
	assert.InDelta(t, 373.0, slow.Temp[0], 1e-9)
	assert.InDelta(t, 6000.0, slow.Time[29], 1e-9)
	for i := 1; i < len(slow.G); i++ {
		assert.LessOrEqual(t, slow.G[i], slow.G[i-1]+1e-12, "g must not increase at %d", i)
	}
	assert.Less(t, slow.G[29], 0.5*slow.G[0])

	// A hotter ramp at every instant leaves less carbon at every instant.
	fast := forward("0.16")
	require.Len(t, fast.G, 30)
	for i := range fast.G {
		assert.LessOrEqual(t, fast.G[i], slow.G[i]+1e-12, "index %d", i)
	}
	assert.Less(t, fast.G[15], slow.G[15])
}

func TestCommandErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeThermogram(t, fs, "/data/tg.csv")

	_, err := run(t, fs, "lcurve", "/data/missing.csv")
	assert.Error(t, err)

	_, err = run(t, fs, append([]string{"lcurve", "/data/tg.csv"}, "--n-omega=2")...)
	assert.Error(t, err)

	_, err = run(t, fs, "invert")
	assert.Error(t, err)

	_, err = run(t, fs, append([]string{"forward", "/data/tg.csv", "--omega=0.1", "--tf=0"}, small...)...)
	assert.Error(t, err)
}
