package inverse

import (
	"fmt"

	"github.com/katalvlaran/daemkit/core"
	"github.com/katalvlaran/daemkit/matrix"
)

// MinGridSize is the smallest grid a second difference is defined on.
const MinGridSize = 3

// Roughness returns the nk×nk second-difference operator. Interior rows are
// [1, -2, 1] centred on the diagonal; the first and last rows are the same
// stencil with the out-of-grid neighbour dropped ([-2, 1, …] and […, 1, -2]).
// The result is nonsingular for every nk ≥ 3.
func Roughness(nk int) (*matrix.Dense, error) {
	if nk < MinGridSize {
		return nil, fmt.Errorf("Roughness: nk=%d, want >= %d: %w", nk, MinGridSize, core.ErrInvalidDimension)
	}
	r, err := matrix.NewDense(nk, nk)
	if err != nil {
		return nil, fmt.Errorf("Roughness: %w", err)
	}
	for i := 0; i < nk; i++ {
		_ = r.Set(i, i, -2)
		if i > 0 {
			_ = r.Set(i, i-1, 1)
		}
		if i < nk-1 {
			_ = r.Set(i, i+1, 1)
		}
	}

	return r, nil
}
