package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for daemkit operations.
var (
	// ErrInvalidArgument indicates a malformed scalar parameter or option value.
	ErrInvalidArgument = errors.New("core: invalid argument")

	// ErrDimensionMismatch indicates that two arrays which must align do not.
	ErrDimensionMismatch = errors.New("core: dimension mismatch")

	// ErrInvalidDimension indicates a grid too small for the requested operator.
	ErrInvalidDimension = errors.New("core: invalid dimension")

	// ErrSingularSystem indicates a numerically rank-deficient regularized system.
	ErrSingularSystem = errors.New("core: singular system")
)

// LengthError reports that array name has length got where want was expected.
func LengthError(op, name string, got, want int) error {
	return fmt.Errorf("%s: len(%s)=%d, want %d: %w", op, name, got, want, ErrDimensionMismatch)
}

// ArgumentError reports an invalid value for parameter name.
func ArgumentError(op, name string, value any, reason string) error {
	return fmt.Errorf("%s: %s=%v %s: %w", op, name, value, reason, ErrInvalidArgument)
}
