package engine

import (
	"context"

	"plsgo/domain/pls"

	"gonum.org/v1/gonum/mat"
)

// ResampleTest owns the configuration for one pair of resample tests and
// runs them sequentially against a shared, read-only reference
// decomposition. It holds no state between runs; the result bundle is
// immutable once returned.
type ResampleTest struct {
	cfg Config
}

// NewResampleTest creates the orchestrator for the given collaborators.
func NewResampleTest(cfg Config) *ResampleTest {
	return &ResampleTest{cfg: cfg}
}

// Run validates the configuration once, then executes the permutation test
// followed by the bootstrap test. Configuration problems, including an
// unsupported rotation method, surface before the first iteration.
func (t *ResampleTest) Run(
	ctx context.Context,
	x, y *mat.Dense,
	ref pls.Decomposition,
	cond pls.CondOrder,
	opts pls.Options,
) (pls.ResampleResult, error) {
	if err := opts.Validate(); err != nil {
		return pls.ResampleResult{}, err
	}
	if err := ref.Validate(); err != nil {
		return pls.ResampleResult{}, err
	}
	rows, _ := x.Dims()
	if err := cond.Validate(rows); err != nil {
		return pls.ResampleResult{}, err
	}

	rot, err := NewStrategy(opts.RotateMethod, t.cfg.Decomposer)
	if err != nil {
		return pls.ResampleResult{}, err
	}

	perm, err := NewPermutationEngine(t.cfg).Run(ctx, x, y, ref, cond, opts.NumPerm, rot)
	if err != nil {
		return pls.ResampleResult{}, err
	}
	boot, err := NewBootstrapEngine(t.cfg).Run(ctx, x, y, ref, cond, opts.NumBoot, rot, opts.CIBounds)
	if err != nil {
		return pls.ResampleResult{}, err
	}

	return pls.ResampleResult{
		Permutation: perm,
		Bootstrap:   boot,
		CIBounds:    opts.CIBounds,
	}, nil
}
