package ports

import (
	"math/rand"

	"plsgo/domain/pls"

	"gonum.org/v1/gonum/mat"
)

// Resampler produces row-resampled matrices that respect the group/condition
// block structure. Both operations preserve row and column counts and return
// the source row index per output row, so a paired outcome matrix can be
// resampled with the exact same row order.
type Resampler interface {
	// WithoutReplacement permutes rows within each condition block.
	WithoutReplacement(rng *rand.Rand, m *mat.Dense, cond pls.CondOrder) (*mat.Dense, []int, error)

	// WithReplacement samples rows with replacement within each condition block.
	WithReplacement(rng *rand.Rand, m *mat.Dense, cond pls.CondOrder) (*mat.Dense, []int, error)
}
