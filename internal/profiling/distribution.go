// Package profiling holds the distribution statistics used to summarize the
// resampled decompositions: empirical quantiles for confidence intervals,
// standard errors of the mean, and the normal-reference p-values derived
// from bootstrap ratios.
package profiling

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Quantile returns the empirical q-quantile of samples, q in [0,1].
// Out-of-range q saturates to the sample minimum or maximum.
func Quantile(samples []float64, q float64) float64 {
	if len(samples) == 0 {
		return math.NaN()
	}
	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	return stat.Quantile(q, stat.Empirical, sorted, nil)
}

// StandardError returns the standard error of the mean of samples, using the
// sample standard deviation. A single sample has no defined standard error;
// the degenerate result is NaN, not an error, so instability flows through
// as data.
func StandardError(samples []float64) float64 {
	if len(samples) < 2 {
		return math.NaN()
	}
	sd, err := stats.StandardDeviationSample(stats.Float64Data(samples))
	if err != nil {
		return math.NaN()
	}
	return sd / math.Sqrt(float64(len(samples)))
}

// NormalPValues converts bootstrap ratios to two-tailed p-values under the
// standard normal reference distribution. Non-finite ratios map to p = 0
// (infinite instability) or NaN and are reported as-is.
func NormalPValues(ratios *mat.Dense) *mat.Dense {
	rows, cols := ratios.Dims()
	out := mat.NewDense(rows, cols, nil)
	norm := distuv.UnitNormal
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			z := ratios.At(i, j)
			if math.IsNaN(z) {
				out.Set(i, j, math.NaN())
				continue
			}
			out.Set(i, j, 2*norm.Survival(math.Abs(z)))
		}
	}
	return out
}
