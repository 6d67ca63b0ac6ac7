package pls

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// PermutationResult is the finalized output of the permutation test.
// Each ratio entry is the fraction of resampled singular values that met or
// exceeded the reference value; higher means more consistent with chance.
type PermutationResult struct {
	Ratio      []float64
	Iterations int
}

// BootstrapResult is the finalized output of the bootstrap test.
// LowerCI/UpperCI are element-wise quantiles of the resampled left singular
// vectors; StdErrs are element-wise standard errors of the resampled right
// singular vectors; Ratios divides StdErrs by the reference V, so entries
// over near-zero reference loadings are deliberately non-finite.
type BootstrapResult struct {
	LowerCI    *mat.Dense
	UpperCI    *mat.Dense
	StdErrs    *mat.Dense
	Ratios     *mat.Dense
	Iterations int
}

// ResampleResult bundles both resample tests for one reference
// decomposition. It is immutable after construction.
type ResampleResult struct {
	Permutation PermutationResult
	Bootstrap   BootstrapResult
	CIBounds    [2]float64
}

// String renders the summary report for both tests.
func (r ResampleResult) String() string {
	var b strings.Builder
	b.WriteString("Permutation Test Results\n")
	b.WriteString("------------------------\n\n")
	fmt.Fprintf(&b, "Ratio: %v\n\n", r.Permutation.Ratio)
	b.WriteString("Bootstrap Test Results\n")
	b.WriteString("----------------------\n\n")
	fmt.Fprintf(&b, "Element-wise Confidence Interval: (%g, %g)\n", r.CIBounds[0], r.CIBounds[1])
	fmt.Fprintf(&b, "\nLower CI:\n%v\n", mat.Formatted(r.Bootstrap.LowerCI))
	fmt.Fprintf(&b, "\nUpper CI:\n%v\n", mat.Formatted(r.Bootstrap.UpperCI))
	fmt.Fprintf(&b, "\nStandard Errors:\n%v\n", mat.Formatted(r.Bootstrap.StdErrs))
	fmt.Fprintf(&b, "\nBootstrap Ratios:\n%v\n", mat.Formatted(r.Bootstrap.Ratios))
	return b.String()
}
