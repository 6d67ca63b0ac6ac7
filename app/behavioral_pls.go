package app

import (
	"math"

	"plsgo/domain/core"
	"plsgo/domain/pls"

	"gonum.org/v1/gonum/mat"
)

// CrossBlockCorrelation is the behavioral PLS preprocess: for every
// group/condition cell, standardize the columns of X and Y over the cell's
// rows and compute their correlation matrix, then stack the per-cell
// matrices vertically in cell order. The result has one Y-column block of
// rows per cell and one column per X variable.
func CrossBlockCorrelation(x, y *mat.Dense, cond pls.CondOrder) (*mat.Dense, error) {
	if y == nil {
		return nil, core.NewConfigError("behavioral_pls", "outcome matrix Y is required")
	}
	xRows, xCols := x.Dims()
	yRows, yCols := y.Dims()
	if yRows != xRows {
		return nil, core.NewShapeError("outcome matrix", yRows, yCols, xRows, yCols)
	}

	cells := cond.Cells()
	out := mat.NewDense(len(cells)*yCols, xCols, nil)
	for ci, cell := range cells {
		xz := standardized(x, cell)
		yz := standardized(y, cell)

		// corr = Yz^T Xz / (n-1) over the cell's rows.
		var corr mat.Dense
		corr.Mul(yz.T(), xz)
		corr.Scale(1/float64(len(cell)-1), &corr)
		for r := 0; r < yCols; r++ {
			for c := 0; c < xCols; c++ {
				out.Set(ci*yCols+r, c, corr.At(r, c))
			}
		}
	}
	return out, nil
}

// behavioralLatents projects the observation matrix onto the right singular
// vectors of the correlation structure.
func behavioralLatents(x *mat.Dense, dec pls.Decomposition) *mat.Dense {
	var latent mat.Dense
	latent.Mul(x, dec.V)
	return &latent
}

// standardized z-scores each column of m over the given rows using the
// sample standard deviation. A constant column divides by zero and yields
// non-finite entries, which propagate as data.
func standardized(m *mat.Dense, rows []int) *mat.Dense {
	_, cols := m.Dims()
	n := float64(len(rows))
	out := mat.NewDense(len(rows), cols, nil)
	for j := 0; j < cols; j++ {
		mean := 0.0
		for _, r := range rows {
			mean += m.At(r, j)
		}
		mean /= n
		ss := 0.0
		for _, r := range rows {
			d := m.At(r, j) - mean
			ss += d * d
		}
		sd := math.Sqrt(ss / (n - 1))
		for i, r := range rows {
			out.Set(i, j, (m.At(r, j)-mean)/sd)
		}
	}
	return out
}
