// Package app wires the PLS variants to the resample engines. Each variant
// is one row of the variant table: its preprocess, its latent projection,
// and whether it carries an outcome block.
package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"plsgo/domain/core"
	"plsgo/domain/pls"
	"plsgo/domain/run"
	"plsgo/internal/engine"
	"plsgo/ports"

	"gonum.org/v1/gonum/mat"
)

// AnalysisRequest defines the inputs of one PLS analysis.
type AnalysisRequest struct {
	Variant       pls.Variant
	X             *mat.Dense
	Y             *mat.Dense
	GroupSizes    []int
	NumConditions int
	// CondOrder overrides the default condition ordering generated from
	// GroupSizes and NumConditions when non-nil.
	CondOrder pls.CondOrder
	Options   pls.Options
}

// Analysis is the immutable result bundle of one run.
type Analysis struct {
	Variant       pls.Variant
	Decomposition pls.Decomposition
	Latents       *mat.Dense
	Resample      pls.ResampleResult
	Manifest      run.Manifest
}

// variantPipeline is one row of the variant table.
type variantPipeline struct {
	preprocess ports.Preprocess
	latents    func(preprocessed, x *mat.Dense, dec pls.Decomposition) *mat.Dense
	needsY     bool
}

// variantTable maps every recognized variant tag to its pipeline. A nil
// entry marks a recognized method that is not implemented yet.
var variantTable = map[pls.Variant]*variantPipeline{
	pls.VariantMeanCenterTask: {
		preprocess: MeanCenter,
		latents: func(preprocessed, _ *mat.Dense, dec pls.Decomposition) *mat.Dense {
			return taskLatents(preprocessed, dec)
		},
	},
	pls.VariantBehavioral: {
		preprocess: CrossBlockCorrelation,
		latents: func(_, x *mat.Dense, dec pls.Decomposition) *mat.Dense {
			return behavioralLatents(x, dec)
		},
		needsY: true,
	},
	pls.VariantNonRotatedTask:       nil,
	pls.VariantMultiblock:           nil,
	pls.VariantNonRotatedBehavior:   nil,
	pls.VariantNonRotatedMultiblock: nil,
}

// AnalysisService runs PLS analyses end to end: preprocess, reference
// decomposition, latent projection, then the permutation and bootstrap
// tests.
type AnalysisService struct {
	decomposer ports.Decomposer
	resampler  ports.Resampler
	newRNG     func(seed int64) ports.RNG
}

// NewAnalysisService creates an analysis service
func NewAnalysisService(decomposer ports.Decomposer, resampler ports.Resampler, newRNG func(seed int64) ports.RNG) *AnalysisService {
	return &AnalysisService{
		decomposer: decomposer,
		resampler:  resampler,
		newRNG:     newRNG,
	}
}

// Run executes the requested variant and returns the immutable analysis
// bundle. Configuration problems, an unknown variant tag, and recognized
// but unimplemented methods all fail before the first iteration.
func (s *AnalysisService) Run(ctx context.Context, req AnalysisRequest) (*Analysis, error) {
	startTime := time.Now()

	if err := req.Variant.CheckKnown(); err != nil {
		return nil, err
	}
	pipeline := variantTable[req.Variant]
	if pipeline == nil {
		return nil, fmt.Errorf("%w %q (%s)", core.ErrVariantNotImplemented,
			string(req.Variant), req.Variant.Name())
	}
	if err := req.Options.Validate(); err != nil {
		return nil, err
	}
	if req.X == nil {
		return nil, core.NewConfigError("analysis", "observation matrix X is required")
	}
	if pipeline.needsY && req.Y == nil {
		return nil, core.NewConfigError("analysis", "outcome matrix Y is required")
	}
	if !pipeline.needsY && req.Y != nil {
		return nil, core.NewConfigError("analysis", "Y must be nil for this variant")
	}

	cond := req.CondOrder
	if cond == nil {
		cond = pls.NewCondOrder(req.GroupSizes, req.NumConditions)
	}
	rows, _ := req.X.Dims()
	if err := cond.Validate(rows); err != nil {
		return nil, err
	}

	seed := req.Options.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	log.Printf("[AnalysisService] running %s: rows=%d seed=%d num_perm=%d num_boot=%d rotate=%s",
		req.Variant.Name(), rows, seed, req.Options.NumPerm, req.Options.NumBoot,
		req.Options.RotateMethod)

	preprocessed, err := pipeline.preprocess(req.X, req.Y, cond)
	if err != nil {
		return nil, err
	}
	ref, err := s.decomposer.Decompose(preprocessed)
	if err != nil {
		return nil, fmt.Errorf("reference decomposition failed: %w", err)
	}
	latents := pipeline.latents(preprocessed, req.X, ref)

	cfg := engine.Config{
		Decomposer:  s.decomposer,
		Resampler:   s.resampler,
		RNG:         s.newRNG(seed),
		Preprocess:  pipeline.preprocess,
		Concurrency: req.Options.Concurrency,
	}
	resample, err := engine.NewResampleTest(cfg).Run(ctx, req.X, req.Y, ref, cond, req.Options)
	if err != nil {
		return nil, err
	}

	runtimeMs := time.Since(startTime).Milliseconds()
	manifest := run.NewManifest(req.Variant, seed, req.Options, runtimeMs)

	log.Printf("[AnalysisService] %s complete: components=%d runtime=%dms run_id=%s",
		req.Variant.Name(), ref.Components(), runtimeMs, manifest.RunID)

	return &Analysis{
		Variant:       req.Variant,
		Decomposition: ref,
		Latents:       latents,
		Resample:      resample,
		Manifest:      manifest,
	}, nil
}
