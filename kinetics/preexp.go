package kinetics

import (
	"fmt"
	"math"

	"github.com/katalvlaran/daemkit/core"
)

// PreExponentialKind tags the representation held by a PreExponential.
type PreExponentialKind int

const (
	// PreExpUnset is the zero value; it resolves to an error.
	PreExpUnset PreExponentialKind = iota
	// PreExpConstant holds one log10 k0 shared by every grid column.
	PreExpConstant
	// PreExpPerGrid holds one log10 k0 per grid column.
	PreExpPerGrid
	// PreExpFunc derives log10 k0 from the grid value.
	PreExpFunc
)

// String returns a short, stable name for logs.
func (k PreExponentialKind) String() string {
	switch k {
	case PreExpConstant:
		return "constant"
	case PreExpPerGrid:
		return "per-grid"
	case PreExpFunc:
		return "func"
	default:
		return "unset"
	}
}

// PreExponential is the log10 of the Arrhenius pre-exponential factor (s⁻¹),
// given as a constant, a per-grid sequence or a function of the grid value.
type PreExponential struct {
	kind   PreExponentialKind
	value  float64
	values []float64
	fn     func(e float64) float64
}

// Constant returns a pre-exponential shared by every grid column.
func Constant(log10k0 float64) PreExponential {
	return PreExponential{kind: PreExpConstant, value: log10k0}
}

// PerGrid returns a pre-exponential with one value per grid column.
// The slice is copied.
func PerGrid(log10k0 []float64) PreExponential {
	return PreExponential{kind: PreExpPerGrid, values: append([]float64(nil), log10k0...)}
}

// Func returns a pre-exponential evaluated at each grid value.
func Func(fn func(e float64) float64) PreExponential {
	return PreExponential{kind: PreExpFunc, fn: fn}
}

// Kind reports which representation p holds.
func (p PreExponential) Kind() PreExponentialKind { return p.kind }

// IsZero reports whether p was never set.
func (p PreExponential) IsZero() bool { return p.kind == PreExpUnset }

// String renders p for logs and reports.
func (p PreExponential) String() string {
	switch p.kind {
	case PreExpConstant:
		return fmt.Sprintf("constant(%g)", p.value)
	case PreExpPerGrid:
		return fmt.Sprintf("per-grid(n=%d)", len(p.values))
	default:
		return p.kind.String()
	}
}

// Resolve evaluates p on grid, returning one finite log10 k0 per column.
func (p PreExponential) Resolve(grid []float64) ([]float64, error) {
	const op = "PreExponential.Resolve"
	out := make([]float64, len(grid))
	switch p.kind {
	case PreExpConstant:
		for j := range out {
			out[j] = p.value
		}
	case PreExpPerGrid:
		if len(p.values) != len(grid) {
			return nil, core.LengthError(op, "log10k0", len(p.values), len(grid))
		}
		copy(out, p.values)
	case PreExpFunc:
		if p.fn == nil {
			return nil, core.ArgumentError(op, "log10k0", "nil func", "must be non-nil")
		}
		for j, e := range grid {
			out[j] = p.fn(e)
		}
	default:
		return nil, core.ArgumentError(op, "log10k0", p.kind, "must be set")
	}
	for j, v := range out {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, core.ArgumentError(op, fmt.Sprintf("log10k0[%d]", j), v, "must be finite")
		}
	}

	return out, nil
}
