package app

import (
	"context"
	"math/rand"
	"testing"

	"plsgo/adapters/gsvd"
	"plsgo/adapters/resample"
	"plsgo/domain/core"
	"plsgo/domain/pls"
	"plsgo/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func testService() *AnalysisService {
	return NewAnalysisService(
		gsvd.New(),
		resample.New(),
		func(seed int64) ports.RNG { return resample.NewSeedStream(seed) },
	)
}

func randomMatrix(rows, cols int, seed int64) *mat.Dense {
	rng := rand.New(rand.NewSource(seed))
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = rng.NormFloat64()
	}
	return mat.NewDense(rows, cols, data)
}

func smallOptions() pls.Options {
	return pls.Options{
		NumPerm:     5,
		NumBoot:     5,
		CIBounds:    [2]float64{0.05, 0.95},
		Seed:        42,
		Concurrency: 1,
	}
}

func TestRunTaskPLS(t *testing.T) {
	analysis, err := testService().Run(context.Background(), AnalysisRequest{
		Variant:       pls.VariantMeanCenterTask,
		X:             randomMatrix(6, 4, 1),
		GroupSizes:    []int{2},
		NumConditions: 3,
		Options:       smallOptions(),
	})
	require.NoError(t, err)

	assert.Equal(t, pls.VariantMeanCenterTask, analysis.Variant)
	assert.Equal(t, analysis.Decomposition.Components(), len(analysis.Resample.Permutation.Ratio))

	// Latents are the mean-centered matrix projected onto V.
	rows, cols := analysis.Latents.Dims()
	assert.Equal(t, 6, rows)
	assert.Equal(t, analysis.Decomposition.Components(), cols)

	for _, r := range analysis.Resample.Permutation.Ratio {
		assert.GreaterOrEqual(t, r, 0.0)
		assert.LessOrEqual(t, r, 1.0)
	}

	assert.Equal(t, int64(42), analysis.Manifest.Seed)
	assert.False(t, analysis.Manifest.Fingerprint.IsEmpty())
}

func TestRunBehavioralPLS(t *testing.T) {
	analysis, err := testService().Run(context.Background(), AnalysisRequest{
		Variant:       pls.VariantBehavioral,
		X:             randomMatrix(16, 4, 2),
		Y:             randomMatrix(16, 2, 3),
		GroupSizes:    []int{8},
		NumConditions: 2,
		Options:       smallOptions(),
	})
	require.NoError(t, err)

	// Two cells of two behavior rows each.
	rows, _ := analysis.Decomposition.U.Dims()
	assert.Equal(t, 4, rows)
	assert.NotNil(t, analysis.Resample.Bootstrap.Ratios)
}

func TestRunRejectsUnknownVariant(t *testing.T) {
	_, err := testService().Run(context.Background(), AnalysisRequest{
		Variant:       pls.Variant("bogus"),
		X:             randomMatrix(6, 4, 1),
		GroupSizes:    []int{2},
		NumConditions: 3,
		Options:       smallOptions(),
	})
	assert.True(t, core.IsConfigError(err), "unknown tag must be a config error, got %v", err)
}

func TestRunRejectsUnimplementedVariant(t *testing.T) {
	for _, variant := range []pls.Variant{
		pls.VariantNonRotatedTask,
		pls.VariantMultiblock,
		pls.VariantNonRotatedBehavior,
		pls.VariantNonRotatedMultiblock,
	} {
		_, err := testService().Run(context.Background(), AnalysisRequest{
			Variant:       variant,
			X:             randomMatrix(6, 4, 1),
			GroupSizes:    []int{2},
			NumConditions: 3,
			Options:       smallOptions(),
		})
		assert.True(t, core.IsNotImplemented(err),
			"variant %s must fail as not implemented, got %v", variant, err)
	}
}

func TestRunRejectsStrayY(t *testing.T) {
	_, err := testService().Run(context.Background(), AnalysisRequest{
		Variant:       pls.VariantMeanCenterTask,
		X:             randomMatrix(6, 4, 1),
		Y:             randomMatrix(6, 2, 2),
		GroupSizes:    []int{2},
		NumConditions: 3,
		Options:       smallOptions(),
	})
	assert.True(t, core.IsConfigError(err), "Y must be rejected for task PLS, got %v", err)
}

func TestRunDeterministicAcrossRuns(t *testing.T) {
	req := AnalysisRequest{
		Variant:       pls.VariantMeanCenterTask,
		X:             randomMatrix(6, 4, 1),
		GroupSizes:    []int{2},
		NumConditions: 3,
		Options:       smallOptions(),
	}

	first, err := testService().Run(context.Background(), req)
	require.NoError(t, err)
	second, err := testService().Run(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.Resample.Permutation.Ratio, second.Resample.Permutation.Ratio)
	assert.True(t, mat.Equal(first.Resample.Bootstrap.StdErrs, second.Resample.Bootstrap.StdErrs))
	assert.Equal(t, first.Manifest.Fingerprint, second.Manifest.Fingerprint)
	assert.NotEqual(t, first.Manifest.RunID, second.Manifest.RunID)
}
