package ports

import (
	"plsgo/domain/pls"

	"gonum.org/v1/gonum/mat"
)

// Preprocess transforms a (resampled) observation matrix into the matrix the
// decomposition oracle runs on. It must be the same transform used to build
// the reference decomposition. Y is nil for task PLS; for behavioral PLS the
// result is a cross-block structure over X and Y.
type Preprocess func(x, y *mat.Dense, cond pls.CondOrder) (*mat.Dense, error)
