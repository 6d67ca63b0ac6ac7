package engine

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync/atomic"

	"plsgo/domain/core"
	"plsgo/domain/pls"
	"plsgo/internal/profiling"

	"gonum.org/v1/gonum/mat"
)

const bootstrapStream = "bootstrap"

// BootstrapEngine estimates the stability of the reference singular vectors
// by resampling with replacement: element-wise confidence intervals for the
// left vectors, standard errors for the right vectors, and stability ratios
// against the reference V.
type BootstrapEngine struct {
	cfg Config
}

// NewBootstrapEngine creates a bootstrap engine over the shared config.
func NewBootstrapEngine(cfg Config) *BootstrapEngine {
	return &BootstrapEngine{cfg: cfg}
}

// Run resamples X (and Y, with the same row order) with replacement,
// preprocesses, derives the full decomposition through the rotation
// strategy, and stores each iteration's vectors in its own slot. Every slot
// is written exactly once, so iterations merge without contention.
func (e *BootstrapEngine) Run(
	ctx context.Context,
	x, y *mat.Dense,
	ref pls.Decomposition,
	cond pls.CondOrder,
	iterations int,
	rot Strategy,
	ciBounds [2]float64,
) (pls.BootstrapResult, error) {
	if iterations < 1 {
		return pls.BootstrapResult{}, fmt.Errorf("%w: bootstrap iterations must be >= 1, got %d",
			core.ErrBadIterations, iterations)
	}
	if err := ref.Validate(); err != nil {
		return pls.BootstrapResult{}, err
	}
	rows, _ := x.Dims()
	if err := cond.Validate(rows); err != nil {
		return pls.BootstrapResult{}, err
	}
	if err := checkPaired(x, y); err != nil {
		return pls.BootstrapResult{}, err
	}
	if lo, hi := ciBounds[0], ciBounds[1]; lo < 0 || hi > 1 || lo > hi {
		return pls.BootstrapResult{}, fmt.Errorf("%w: got (%g, %g)", core.ErrBadCIBounds, lo, hi)
	}

	uRows, uCols := ref.U.Dims()
	vRows, vCols := ref.V.Dims()
	uSlots := make([]*mat.Dense, iterations)
	vSlots := make([]*mat.Dense, iterations)
	var done atomic.Int64

	log.Printf("[BootstrapEngine] starting: iterations=%d components=%d", iterations, ref.Components())

	err := e.cfg.runIterations(ctx, bootstrapStream, iterations, func(i int, rng *rand.Rand) error {
		xNew, idx, err := e.cfg.Resampler.WithReplacement(rng, x, cond)
		if err != nil {
			return err
		}
		var yNew *mat.Dense
		if y != nil {
			yNew = pls.TakeRows(y, idx)
		}

		resampled, err := e.cfg.Preprocess(xNew, yNew, cond)
		if err != nil {
			return err
		}
		uHat, _, vHat, err := rot.Vectors(resampled, ref)
		if err != nil {
			return err
		}
		if r, c := uHat.Dims(); r != uRows || c != uCols {
			return core.NewShapeError("resampled left vectors", r, c, uRows, uCols)
		}
		if r, c := vHat.Dims(); r != vRows || c != vCols {
			return core.NewShapeError("resampled right vectors", r, c, vRows, vCols)
		}

		// Slot i belongs to this iteration alone.
		uSlots[i] = uHat
		vSlots[i] = vHat

		if n := done.Add(1); n%50 == 0 {
			log.Printf("[BootstrapEngine] iteration %d/%d", n, iterations)
		}
		return nil
	})
	if err != nil {
		return pls.BootstrapResult{}, err
	}

	lower := mat.NewDense(uRows, uCols, nil)
	upper := mat.NewDense(uRows, uCols, nil)
	samples := make([]float64, iterations)
	for r := 0; r < uRows; r++ {
		for c := 0; c < uCols; c++ {
			for i := range uSlots {
				samples[i] = uSlots[i].At(r, c)
			}
			lower.Set(r, c, profiling.Quantile(samples, ciBounds[0]))
			upper.Set(r, c, profiling.Quantile(samples, ciBounds[1]))
		}
	}

	stdErrs := mat.NewDense(vRows, vCols, nil)
	ratios := mat.NewDense(vRows, vCols, nil)
	for r := 0; r < vRows; r++ {
		for c := 0; c < vCols; c++ {
			for i := range vSlots {
				samples[i] = vSlots[i].At(r, c)
			}
			se := profiling.StandardError(samples)
			stdErrs.Set(r, c, se)
			// Near-zero reference loadings yield non-finite ratios,
			// which is the signal, not an error.
			ratios.Set(r, c, se/ref.V.At(r, c))
		}
	}

	return pls.BootstrapResult{
		LowerCI:    lower,
		UpperCI:    upper,
		StdErrs:    stdErrs,
		Ratios:     ratios,
		Iterations: iterations,
	}, nil
}
