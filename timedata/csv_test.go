package timedata_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/daemkit/core"
	"github.com/katalvlaran/daemkit/timedata"
)

// linearCSV writes 11 rows (s = 0..10) with unit CO2 and T = 100 + 10·s °C.
// The cumulative fraction at s is (s+1)/11.
func linearCSV(stamp func(s int) string) string {
	var b strings.Builder
	b.WriteString("date_time,temp,CO2_scaled\n")
	for s := 0; s <= 10; s++ {
		fmt.Fprintf(&b, "%s,%d,1\n", stamp(s), 100+10*s)
	}

	return b.String()
}

func seconds(s int) string { return fmt.Sprintf("%d", s+1000) }

func stamps(s int) string {
	return time.Date(2020, 1, 1, 23, 59, 55, 0, time.UTC).Add(time.Duration(s) * time.Second).Format("2006-01-02 15:04:05")
}

func TestParseThermogramCSV_MidpointDownsampling(t *testing.T) {
	for name, stamp := range map[string]func(int) string{"seconds": seconds, "timestamps": stamps} {
		t.Run(name, func(t *testing.T) {
			d, err := timedata.ParseThermogramCSV(strings.NewReader(linearCSV(stamp)), timedata.LoadParams{NT: 5, PPMCO2Err: 5})
			require.NoError(t, err)

			assert.Equal(t, core.KindRpoThermogram, d.Kind())
			assert.InDeltaSlice(t, []float64{1, 3, 5, 7, 9}, d.Times(), 1e-12)
			g, temp, gStd := d.G(), d.Temps(), d.GStd()
			for i, s := range d.Times() {
				assert.InDelta(t, (10-s)/11, g[i], 1e-12, "g at %gs", s)
				assert.InDelta(t, 100+10*s+timedata.CelsiusOffset, temp[i], 1e-9, "T at %gs", s)
				assert.InDelta(t, (s+1)*5/11, gStd[i], 1e-12, "gStd at %gs", s)
			}
		})
	}
}

func TestLoadThermogramCSV_FromFs(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/TS1.csv", []byte(linearCSV(seconds)), 0o644))

	d, err := timedata.LoadThermogramCSV(fs, "/data/TS1.csv", timedata.DefaultLoadParams())
	require.NoError(t, err)
	assert.Equal(t, 250, d.NT())

	_, err = timedata.LoadThermogramCSV(fs, "/data/missing.csv", timedata.DefaultLoadParams())
	assert.Error(t, err)
}

func TestParseThermogramCSV_Errors(t *testing.T) {
	good := linearCSV(seconds)
	for name, tc := range map[string]struct {
		body string
		p    timedata.LoadParams
	}{
		"nt":             {good, timedata.LoadParams{NT: 0}},
		"negative error": {good, timedata.LoadParams{NT: 5, PPMCO2Err: -1}},
		"missing column": {"date_time,temp\n0,1\n1,2\n", timedata.DefaultLoadParams()},
		"bad number":     {"t,temp,CO2_scaled\n0,100,x\n1,101,1\n", timedata.DefaultLoadParams()},
		"bad time":       {"t,temp,CO2_scaled\nnoon,100,1\n1,101,1\n", timedata.DefaultLoadParams()},
		"one row":        {"t,temp,CO2_scaled\n0,100,1\n", timedata.DefaultLoadParams()},
		"time order":     {"t,temp,CO2_scaled\n0,100,1\n2,101,1\n1,102,1\n", timedata.DefaultLoadParams()},
		"no co2":         {"t,temp,CO2_scaled\n0,100,0\n1,101,0\n", timedata.DefaultLoadParams()},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := timedata.ParseThermogramCSV(strings.NewReader(tc.body), tc.p)
			assert.ErrorIs(t, err, core.ErrInvalidArgument)
		})
	}
}
