package pls

import (
	"fmt"

	"plsgo/domain/core"
)

// RotateMethod selects how each resampled decomposition is aligned against
// the reference solution.
type RotateMethod int

const (
	// RotateNone decomposes the resampled matrix and uses the result as-is.
	RotateNone RotateMethod = 0
	// RotateProcrustes decomposes the resampled matrix, then applies the
	// orthogonal Procrustes rotation of its right singular vectors toward
	// the reference V before recomputing singular values.
	RotateProcrustes RotateMethod = 1
	// RotateDerived skips the fresh decomposition and derives singular
	// values and vectors directly from projections onto the reference
	// solution.
	RotateDerived RotateMethod = 2
)

func (r RotateMethod) String() string {
	switch r {
	case RotateNone:
		return "none"
	case RotateProcrustes:
		return "procrustes"
	case RotateDerived:
		return "derived"
	default:
		return fmt.Sprintf("rotate(%d)", int(r))
	}
}

// Options is the explicit resample-test configuration. Every recognized
// option lives here; there is no open-ended keyword mechanism.
type Options struct {
	// NumPerm is the permutation test iteration count.
	NumPerm int
	// NumBoot is the bootstrap test iteration count.
	NumBoot int
	// RotateMethod aligns resampled decompositions against the reference.
	RotateMethod RotateMethod
	// CIBounds holds the lower and upper quantiles of the bootstrap
	// confidence interval, each in [0,1], lower <= upper.
	CIBounds [2]float64
	// Seed makes runs reproducible. Zero means seed from the clock.
	Seed int64
	// Concurrency bounds the resample worker pool. Zero means one worker
	// per CPU. Results are identical for any setting.
	Concurrency int
}

// DefaultOptions mirrors the conventional PLS defaults: 1000 iterations for
// both tests and a 90% element-wise confidence interval.
func DefaultOptions() Options {
	return Options{
		NumPerm:      1000,
		NumBoot:      1000,
		RotateMethod: RotateNone,
		CIBounds:     [2]float64{0.05, 0.95},
	}
}

// Validate rejects malformed configuration before any iteration runs.
// The degenerate interval lower == upper is allowed.
func (o Options) Validate() error {
	if o.NumPerm < 1 {
		return fmt.Errorf("%w: num_perm must be >= 1, got %d", core.ErrBadIterations, o.NumPerm)
	}
	if o.NumBoot < 1 {
		return fmt.Errorf("%w: num_boot must be >= 1, got %d", core.ErrBadIterations, o.NumBoot)
	}
	lo, hi := o.CIBounds[0], o.CIBounds[1]
	if lo < 0 || hi > 1 || lo > hi {
		return fmt.Errorf("%w: got (%g, %g)", core.ErrBadCIBounds, lo, hi)
	}
	if o.Concurrency < 0 {
		return core.NewConfigError("concurrency", "must be >= 0")
	}
	return nil
}
