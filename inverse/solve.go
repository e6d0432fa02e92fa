package inverse

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/daemkit/core"
	"github.com/katalvlaran/daemkit/matrix"
)

// Solution is one regularized fit.
type Solution struct {
	// F is the fitted rate distribution, len nk.
	F []float64
	// Residual is ‖A·F − g‖₂.
	Residual float64
	// Roughness is ‖R·F‖₂.
	Roughness float64
	// Omega is the regularization strength the fit was computed at.
	Omega float64
}

// Solve computes the Tikhonov solution of A·f ≈ g with penalty ω·R·f.
//
// Contract:
//   - a is nt×nk with nt ≥ 1, r is nk×nk;
//   - len(g) == nt and g is finite;
//   - omega is finite and ≥ 0 (0 is ordinary least squares).
//
// A rank-deficient stacked system is reported as core.ErrSingularSystem; the
// requested omega is never perturbed to recover.
//
// Complexity: O((nt+nk)·nk²) for the QR path.
func Solve(a, r matrix.Matrix, g []float64, omega float64, opts ...Option) (*Solution, error) {
	const op = "inverse.Solve"
	if matrix.ValidateNotNil(a) != nil || matrix.ValidateNotNil(r) != nil {
		return nil, core.ArgumentError(op, "A/R", nil, "must be non-nil")
	}
	nt, nk := a.Rows(), a.Cols()
	if err := matrix.ValidateSquare(r); err != nil {
		return nil, fmt.Errorf("%s: R: %w: %w", op, core.ErrDimensionMismatch, err)
	}
	if r.Rows() != nk {
		return nil, fmt.Errorf("%s: R is %dx%d, want %dx%d: %w", op, r.Rows(), r.Cols(), nk, nk, core.ErrDimensionMismatch)
	}
	if len(g) != nt {
		return nil, core.LengthError(op, "g", len(g), nt)
	}
	if err := core.RequireFinite(op, "g", g); err != nil {
		return nil, err
	}
	if math.IsNaN(omega) || math.IsInf(omega, 0) || omega < 0 {
		return nil, core.ArgumentError(op, "omega", omega, "must be finite and >= 0")
	}
	o := gatherOptions(opts...)

	wr, err := matrix.Scale(r, omega)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	stacked, err := matrix.VStack(a, wr)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	rhs := make([]float64, nt+nk)
	copy(rhs, g)

	var f []float64
	if o.nonNegative {
		f, err = matrix.NNLS(stacked, rhs, o.kernel...)
	} else {
		f, err = matrix.LeastSquares(stacked, rhs, o.kernel...)
	}
	if err != nil {
		if errors.Is(err, matrix.ErrSingular) {
			return nil, fmt.Errorf("%s: omega=%g: %w: %w", op, omega, core.ErrSingularSystem, err)
		}

		return nil, fmt.Errorf("%s: omega=%g: %w", op, omega, err)
	}

	return Evaluate(a, r, g, f, omega)
}

// Evaluate computes the residual and roughness norms of a given f.
func Evaluate(a, r matrix.Matrix, g, f []float64, omega float64) (*Solution, error) {
	const op = "inverse.Evaluate"
	af, err := matrix.MatVec(a, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(g) != len(af) {
		return nil, core.LengthError(op, "g", len(g), len(af))
	}
	rf, err := matrix.MatVec(r, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Solution{
		F:         f,
		Residual:  floats.Distance(af, g, 2),
		Roughness: floats.Norm(rf, 2),
		Omega:     omega,
	}, nil
}
