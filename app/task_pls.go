package app

import (
	"plsgo/domain/core"
	"plsgo/domain/pls"

	"gonum.org/v1/gonum/mat"
)

// MeanCenter is the mean-centering task PLS preprocess: remove the column
// means of X, then scale the residual by its Frobenius norm. The outcome
// matrix is ignored; task PLS carries no Y block.
func MeanCenter(x, _ *mat.Dense, cond pls.CondOrder) (*mat.Dense, error) {
	if cond.NumGroups() > 1 {
		return nil, core.ErrMultiGroup
	}
	rows, cols := x.Dims()
	out := mat.NewDense(rows, cols, nil)
	for j := 0; j < cols; j++ {
		mean := 0.0
		for i := 0; i < rows; i++ {
			mean += x.At(i, j)
		}
		mean /= float64(rows)
		for i := 0; i < rows; i++ {
			out.Set(i, j, x.At(i, j)-mean)
		}
	}
	// An all-constant X has a zero residual norm; the resulting non-finite
	// entries flow through to the decomposition as data.
	norm := mat.Norm(out, 2)
	out.Scale(1/norm, out)
	return out, nil
}

// taskLatents projects the mean-centered matrix onto the right singular
// vectors.
func taskLatents(preprocessed *mat.Dense, dec pls.Decomposition) *mat.Dense {
	var latent mat.Dense
	latent.Mul(preprocessed, dec.V)
	return &latent
}
