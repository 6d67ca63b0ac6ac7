package engine

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"sync/atomic"

	"plsgo/domain/core"
	"plsgo/domain/pls"

	"gonum.org/v1/gonum/mat"
)

const permutationStream = "permutation"

// PermutationEngine estimates how often condition-shuffled data produces
// singular values at least as large as the reference solution. A higher
// ratio means the component is more consistent with chance.
type PermutationEngine struct {
	cfg Config
}

// NewPermutationEngine creates a permutation engine over the shared config.
func NewPermutationEngine(cfg Config) *PermutationEngine {
	return &PermutationEngine{cfg: cfg}
}

// Run resamples X (and Y, with the same row order) without replacement,
// preprocesses, derives singular values through the rotation strategy, and
// accumulates element-wise exceedance counts against the reference values.
func (e *PermutationEngine) Run(
	ctx context.Context,
	x, y *mat.Dense,
	ref pls.Decomposition,
	cond pls.CondOrder,
	iterations int,
	rot Strategy,
) (pls.PermutationResult, error) {
	if iterations < 1 {
		return pls.PermutationResult{}, fmt.Errorf("%w: permutation iterations must be >= 1, got %d",
			core.ErrBadIterations, iterations)
	}
	if err := ref.Validate(); err != nil {
		return pls.PermutationResult{}, err
	}
	rows, _ := x.Dims()
	if err := cond.Validate(rows); err != nil {
		return pls.PermutationResult{}, err
	}
	if err := checkPaired(x, y); err != nil {
		return pls.PermutationResult{}, err
	}

	k := ref.Components()
	counts := make([]float64, k)
	var mu sync.Mutex
	var done atomic.Int64

	log.Printf("[PermutationEngine] starting: iterations=%d components=%d", iterations, k)

	err := e.cfg.runIterations(ctx, permutationStream, iterations, func(i int, rng *rand.Rand) error {
		xNew, idx, err := e.cfg.Resampler.WithoutReplacement(rng, x, cond)
		if err != nil {
			return err
		}
		var yNew *mat.Dense
		if y != nil {
			yNew = pls.TakeRows(y, idx)
		}

		permuted, err := e.cfg.Preprocess(xNew, yNew, cond)
		if err != nil {
			return err
		}
		sHat, err := rot.Values(permuted, ref)
		if err != nil {
			return err
		}
		if len(sHat) != k {
			return fmt.Errorf("%w: resampled %d singular values, reference has %d",
				core.ErrShapeMismatch, len(sHat), k)
		}

		exceed := make([]float64, k)
		for j := range sHat {
			if sHat[j] >= ref.S[j] {
				exceed[j] = 1
			}
		}

		mu.Lock()
		for j := range exceed {
			counts[j] += exceed[j]
		}
		mu.Unlock()

		if n := done.Add(1); n%50 == 0 {
			log.Printf("[PermutationEngine] iteration %d/%d", n, iterations)
		}
		return nil
	})
	if err != nil {
		return pls.PermutationResult{}, err
	}

	ratio := make([]float64, k)
	for j := range counts {
		ratio[j] = counts[j] / float64(iterations)
	}
	return pls.PermutationResult{Ratio: ratio, Iterations: iterations}, nil
}

// checkPaired verifies that a paired outcome matrix, when present, has the
// same row partition as the observation matrix.
func checkPaired(x, y *mat.Dense) error {
	if y == nil {
		return nil
	}
	xr, _ := x.Dims()
	yr, yc := y.Dims()
	if yr != xr {
		return core.NewShapeError("outcome matrix", yr, yc, xr, yc)
	}
	return nil
}
