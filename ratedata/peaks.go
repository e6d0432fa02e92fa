package ratedata

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Peak is a local maximum of an EnergyComplex distribution.
type Peak struct {
	Index      int
	Ea         float64
	Height     float64
	Prominence float64
}

// Peaks returns the local maxima of F whose prominence is at least
// minProminence × max(F), in grid order.
//
// Prominence is the height above the higher of the two lowest points
// separating the peak from a taller one (or the grid edge) on either side.
// A flat top counts once, at its first index.
func (ec *EnergyComplex) Peaks(minProminence float64) []Peak {
	f := ec.F
	if len(f) < 3 {
		return nil
	}
	threshold := minProminence * floats.Max(f)

	var out []Peak
	for i := 1; i < len(f)-1; i++ {
		if !(f[i] > f[i-1]) {
			continue
		}
		// Walk a plateau; it is a peak only if it falls afterwards.
		j := i
		for j+1 < len(f) && f[j+1] == f[i] {
			j++
		}
		if j+1 >= len(f) || f[j+1] > f[i] {
			continue
		}
		p := f[i] - math.Max(sideMin(f, i, -1), sideMin(f, j, +1))
		if p >= threshold {
			out = append(out, Peak{Index: i, Ea: ec.Ea[i], Height: f[i], Prominence: p})
		}
		i = j
	}

	return out
}

// sideMin walks from i in direction dir until a value above f[i] or the edge
// and returns the minimum seen.
func sideMin(f []float64, i, dir int) float64 {
	lo := f[i]
	for k := i + dir; k >= 0 && k < len(f); k += dir {
		if f[k] > f[i] {
			break
		}
		lo = math.Min(lo, f[k])
	}

	return lo
}
