package timedata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"

	"github.com/katalvlaran/daemkit/core"
)

// Thermogram column names, matched case-insensitively.
const (
	ColumnCO2  = "co2_scaled"
	ColumnTemp = "temp"
)

// CelsiusOffset converts °C to K.
const CelsiusOffset = 273.15

// timeLayouts are tried in order on the first column; a plain number is
// read as seconds.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006 15:04:05",
	"1/2/2006 15:04",
}

// LoadParams control thermogram down-sampling.
type LoadParams struct {
	// NT is the number of down-sampled points.
	NT int
	// PPMCO2Err is the CO2 concentration standard deviation (ppm) used for GStd.
	PPMCO2Err float64
}

// DefaultLoadParams returns 250 points and a 5 ppm CO2 error.
func DefaultLoadParams() LoadParams {
	return LoadParams{NT: 250, PPMCO2Err: 5}
}

// LoadThermogramCSV reads a thermogram from path on fs. See ParseThermogramCSV.
func LoadThermogramCSV(fs afero.Fs, path string, p LoadParams) (*TimeData, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("LoadThermogramCSV: %w", err)
	}
	defer f.Close()

	d, err := ParseThermogramCSV(f, p)
	if err != nil {
		return nil, fmt.Errorf("LoadThermogramCSV %s: %w", path, err)
	}

	return d, nil
}

// ParseThermogramCSV reads a ramped-oxidation thermogram: a header row, a
// timestamp (or seconds) first column, a scaled CO2 column and a temperature
// column in °C.
//
// The cumulative CO2 fraction is linearly interpolated onto NT points placed
// at the midpoints of NT equal intervals spanning the record, so the first
// sample sits half an interval after the start. g = 1 − fraction, T is in K
// and GStd is half the spread of the fraction computed with CO2 ± PPMCO2Err.
func ParseThermogramCSV(r io.Reader, p LoadParams) (*TimeData, error) {
	const op = "ParseThermogramCSV"
	if p.NT < 1 {
		return nil, core.ArgumentError(op, "NT", p.NT, "must be >= 1")
	}
	if p.PPMCO2Err < 0 {
		return nil, core.ArgumentError(op, "PPMCO2Err", p.PPMCO2Err, "must be >= 0")
	}

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: header: %w", op, err)
	}
	co2Idx, tempIdx := -1, -1
	for i, h := range headers {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case ColumnCO2:
			co2Idx = i
		case ColumnTemp:
			tempIdx = i
		}
	}
	if co2Idx < 0 || tempIdx < 0 {
		return nil, core.ArgumentError(op, "header", strings.Join(headers, ","), fmt.Sprintf("must contain %q and %q columns", ColumnCO2, ColumnTemp))
	}

	var secs, co2, tempC []float64
	var start time.Time
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		s, ts, err := parseTime(row[0])
		if err != nil {
			return nil, core.ArgumentError(op, fmt.Sprintf("line %d time", line), row[0], "is neither a timestamp nor seconds")
		}
		if !ts.IsZero() {
			if start.IsZero() {
				start = ts
			}
			s = ts.Sub(start).Seconds()
		}
		c, err := strconv.ParseFloat(strings.TrimSpace(row[co2Idx]), 64)
		if err != nil {
			return nil, core.ArgumentError(op, fmt.Sprintf("line %d %s", line, ColumnCO2), row[co2Idx], "is not a number")
		}
		tc, err := strconv.ParseFloat(strings.TrimSpace(row[tempIdx]), 64)
		if err != nil {
			return nil, core.ArgumentError(op, fmt.Sprintf("line %d %s", line, ColumnTemp), row[tempIdx], "is not a number")
		}
		secs, co2, tempC = append(secs, s), append(co2, c), append(tempC, tc)
	}
	if len(secs) < 2 {
		return nil, core.ArgumentError(op, "rows", len(secs), "must be >= 2")
	}
	floats.AddConst(-secs[0], secs)
	if err := core.RequireIncreasing(op, "time", secs); err != nil {
		return nil, err
	}

	total := floats.Sum(co2)
	if total <= 0 {
		return nil, core.ArgumentError(op, "sum("+ColumnCO2+")", total, "must be > 0")
	}
	alpha := make([]float64, len(co2))
	floats.CumSum(alpha, co2)
	floats.Scale(1/total, alpha)
	// cumsum(CO2 ± err)/total = alpha ± (i+1)·err/total, so the half-spread is (i+1)·err/total.
	spread := make([]float64, len(co2))
	for i := range spread {
		spread[i] = float64(i+1) * p.PPMCO2Err / total
	}

	var fa, ft, fs interp.PiecewiseLinear
	if err := fa.Fit(secs, alpha); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := ft.Fit(secs, tempC); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := fs.Fit(secs, spread); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	t0, tf := secs[0], secs[len(secs)-1]
	dt := (tf - t0) / float64(p.NT)
	t := make([]float64, p.NT)
	temp := make([]float64, p.NT)
	g := make([]float64, p.NT)
	gStd := make([]float64, p.NT)
	for i := range t {
		t[i] = t0 + dt*float64(i) + dt/2
		temp[i] = ft.Predict(t[i]) + CelsiusOffset
		g[i] = 1 - fa.Predict(t[i])
		gStd[i] = fs.Predict(t[i])
	}

	return New(t, temp, g, gStd, core.KindRpoThermogram)
}

// parseTime reads a timestamp or a plain number of seconds. For a number the
// returned time is zero.
func parseTime(s string) (float64, time.Time, error) {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, time.Time{}, nil
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return 0, ts, nil
		}
	}

	return 0, time.Time{}, fmt.Errorf("unparseable time %q", s)
}
