package core

import (
	"math"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

// SigFigs is the precision the L-curve applies to its log10 norm series
// before differentiating them.
const SigFigs = 6

// Linspace returns n evenly spaced values from a to b inclusive.
// n == 1 yields [a].
func Linspace(a, b float64, n int) ([]float64, error) {
	if n < 1 {
		return nil, ArgumentError("Linspace", "n", n, "must be >= 1")
	}
	if !finite(a) || !finite(b) {
		return nil, ArgumentError("Linspace", "bounds", [2]float64{a, b}, "must be finite")
	}
	if n == 1 {
		return []float64{a}, nil
	}

	return floats.Span(make([]float64, n), a, b), nil
}

// Logspace returns n logarithmically spaced values from lo to hi inclusive.
// Both bounds must be finite and positive.
func Logspace(lo, hi float64, n int) ([]float64, error) {
	if n < 1 {
		return nil, ArgumentError("Logspace", "n", n, "must be >= 1")
	}
	if !finite(lo) || lo <= 0 {
		return nil, ArgumentError("Logspace", "lo", lo, "must be finite and > 0")
	}
	if !finite(hi) || hi <= 0 {
		return nil, ArgumentError("Logspace", "hi", hi, "must be finite and > 0")
	}
	if n == 1 {
		return []float64{lo}, nil
	}

	return floats.LogSpan(make([]float64, n), lo, hi), nil
}

// RequireIncreasing checks that x is non-empty and strictly increasing.
func RequireIncreasing(op, name string, x []float64) error {
	if len(x) == 0 {
		return ArgumentError(op, "len("+name+")", 0, "must be > 0")
	}
	if err := RequireFinite(op, name, x); err != nil {
		return err
	}
	for i := 1; i < len(x); i++ {
		if x[i] <= x[i-1] {
			return ArgumentError(op, name, x[i], "must be strictly increasing (index "+strconv.Itoa(i)+")")
		}
	}

	return nil
}

// RequireFinite checks that every value of x is finite.
func RequireFinite(op, name string, x []float64) error {
	for i, v := range x {
		if !finite(v) {
			return ArgumentError(op, name+"["+strconv.Itoa(i)+"]", v, "must be finite")
		}
	}

	return nil
}

// RoundSigFig rounds x to n significant figures. Zero, NaN and ±Inf pass through.
func RoundSigFig(x float64, n int) float64 {
	if x == 0 || !finite(x) {
		return x
	}
	prec := n - 1 - int(math.Floor(math.Log10(math.Abs(x))))

	return scalar.Round(x, prec)
}

// RoundSigFigs applies RoundSigFig element-wise into a new slice.
func RoundSigFigs(x []float64, n int) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = RoundSigFig(v, n)
	}

	return out
}

// Gradient returns the discrete derivative of y with respect to its index:
// central differences in the interior and one-sided differences at both ends.
// A single sample has gradient 0.
func Gradient(y []float64) []float64 {
	n := len(y)
	out := make([]float64, n)
	if n < 2 {
		return out
	}
	out[0] = y[1] - y[0]
	out[n-1] = y[n-1] - y[n-2]
	for i := 1; i < n-1; i++ {
		out[i] = (y[i+1] - y[i-1]) / 2
	}

	return out
}

// Derivatize returns d(num)/d(denom) as Gradient(num)/Gradient(denom).
// Where the denominator gradient is zero the derivative is reported as 0, so
// flat stretches of a rounded series never produce Inf or NaN.
func Derivatize(num, denom []float64) ([]float64, error) {
	if len(num) != len(denom) {
		return nil, LengthError("Derivatize", "num", len(num), len(denom))
	}
	dn, dd := Gradient(num), Gradient(denom)
	out := make([]float64, len(num))
	for i := range out {
		if dd[i] != 0 {
			out[i] = dn[i] / dd[i]
		}
	}

	return out, nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
