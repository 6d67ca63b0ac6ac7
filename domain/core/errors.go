package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Unimplemented-feature errors
	ErrNotImplemented         = errors.New("feature not implemented")
	ErrVariantNotImplemented  = fmt.Errorf("%w: PLS variant", ErrNotImplemented)
	ErrRotationNotImplemented = fmt.Errorf("%w: rotation method", ErrNotImplemented)
	ErrMultiGroup             = fmt.Errorf("%w: multi-group analysis", ErrNotImplemented)

	// Configuration errors
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrUnknownVariant    = fmt.Errorf("%w: unknown PLS variant", ErrInvalidConfig)
	ErrBadConditionOrder = fmt.Errorf("%w: condition order", ErrInvalidConfig)
	ErrBadIterations     = fmt.Errorf("%w: iteration count", ErrInvalidConfig)
	ErrBadCIBounds       = fmt.Errorf("%w: confidence interval bounds", ErrInvalidConfig)

	// Shape errors
	ErrShapeMismatch = errors.New("matrix shape mismatch")
)

// Error constructors with context

func NewRotationError(method int) error {
	return fmt.Errorf("%w: rotation method %d", ErrRotationNotImplemented, method)
}

func NewConfigError(field string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidConfig, field, reason)
}

func NewShapeError(what string, gotRows, gotCols, wantRows, wantCols int) error {
	return fmt.Errorf("%w: %s is %dx%d, expected %dx%d",
		ErrShapeMismatch, what, gotRows, gotCols, wantRows, wantCols)
}

// Error checking helpers

func IsNotImplemented(err error) bool {
	return errors.Is(err, ErrNotImplemented)
}

func IsConfigError(err error) bool {
	return errors.Is(err, ErrInvalidConfig)
}

func IsShapeError(err error) bool {
	return errors.Is(err, ErrShapeMismatch)
}
