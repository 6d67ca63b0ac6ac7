// Package resample implements the block-structured row resampler and the
// statistics helpers consumed by the resample engines.
package resample

import (
	"math/rand"

	"plsgo/domain/pls"
	"plsgo/ports"

	"gonum.org/v1/gonum/mat"
)

// BlockResampler implements ports.Resampler. Permutation shuffles rows
// across conditions within each group block (the condition-label shuffle of
// the permutation test); bootstrap sampling draws with replacement within
// each group/condition cell so condition membership is preserved.
type BlockResampler struct{}

// New creates a new block resampler.
func New() *BlockResampler { return &BlockResampler{} }

var _ ports.Resampler = (*BlockResampler)(nil)

// WithoutReplacement permutes the rows of each group block in place of one
// another. The returned index slice maps output row -> source row.
func (r *BlockResampler) WithoutReplacement(rng *rand.Rand, m *mat.Dense, cond pls.CondOrder) (*mat.Dense, []int, error) {
	rows, _ := m.Dims()
	if err := cond.Validate(rows); err != nil {
		return nil, nil, err
	}

	idx := identity(rows)
	offset := 0
	for _, labels := range cond {
		n := len(labels)
		block := idx[offset : offset+n]
		rng.Shuffle(n, func(i, j int) {
			block[i], block[j] = block[j], block[i]
		})
		offset += n
	}
	return pls.TakeRows(m, idx), idx, nil
}

// WithReplacement samples rows with replacement within each group/condition
// cell. The returned index slice maps output row -> source row.
func (r *BlockResampler) WithReplacement(rng *rand.Rand, m *mat.Dense, cond pls.CondOrder) (*mat.Dense, []int, error) {
	rows, _ := m.Dims()
	if err := cond.Validate(rows); err != nil {
		return nil, nil, err
	}

	idx := make([]int, rows)
	for _, cell := range cond.Cells() {
		for _, row := range cell {
			idx[row] = cell[rng.Intn(len(cell))]
		}
	}
	return pls.TakeRows(m, idx), idx, nil
}

func identity(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}
