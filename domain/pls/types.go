package pls

import (
	"fmt"

	"plsgo/domain/core"

	"gonum.org/v1/gonum/mat"
)

// CondOrder describes the group/condition structure of the observation
// matrix. Each entry is one group's block: a condition label per row, in the
// exact order the rows are stacked. Row order is load-bearing; every
// resampling operation must preserve the block partition it encodes.
type CondOrder [][]int

// NewCondOrder generates the default condition ordering for the given group
// sizes: within each group block, rows are stacked condition by condition,
// groupSizes[g] rows per condition.
func NewCondOrder(groupSizes []int, numConditions int) CondOrder {
	order := make(CondOrder, 0, len(groupSizes))
	for _, size := range groupSizes {
		labels := make([]int, 0, size*numConditions)
		for k := 0; k < numConditions; k++ {
			for i := 0; i < size; i++ {
				labels = append(labels, k)
			}
		}
		order = append(order, labels)
	}
	return order
}

// NumGroups returns the number of group blocks.
func (c CondOrder) NumGroups() int { return len(c) }

// GroupRows returns the row count of each group block.
func (c CondOrder) GroupRows() []int {
	rows := make([]int, len(c))
	for g, labels := range c {
		rows[g] = len(labels)
	}
	return rows
}

// TotalRows returns the row count implied by the full block partition.
func (c CondOrder) TotalRows() int {
	total := 0
	for _, labels := range c {
		total += len(labels)
	}
	return total
}

// Validate checks that the block partition is consistent with a matrix of
// `rows` rows.
func (c CondOrder) Validate(rows int) error {
	if len(c) == 0 {
		return fmt.Errorf("%w: no groups defined", core.ErrBadConditionOrder)
	}
	for _, labels := range c {
		if len(labels) == 0 {
			return fmt.Errorf("%w: empty group block", core.ErrBadConditionOrder)
		}
	}
	if total := c.TotalRows(); total != rows {
		return fmt.Errorf("%w: row partition covers %d rows, data has %d",
			core.ErrBadConditionOrder, total, rows)
	}
	return nil
}

// Cells groups the global row indices of every group/condition cell, groups
// in block order and condition labels in first-seen order within each group.
func (c CondOrder) Cells() [][]int {
	var cells [][]int
	base := 0
	for _, labels := range c {
		seen := map[int]int{}
		for offset, label := range labels {
			idx, ok := seen[label]
			if !ok {
				idx = len(cells)
				seen[label] = idx
				cells = append(cells, nil)
			}
			cells[idx] = append(cells[idx], base+offset)
		}
		base += len(labels)
	}
	return cells
}

// TakeRows gathers the given source rows of m into a new matrix, in order.
// Resamplers use it to realize a drawn row order, and the engines reuse the
// same order to resample a paired outcome matrix in lockstep.
func TakeRows(m *mat.Dense, indices []int) *mat.Dense {
	_, cols := m.Dims()
	out := mat.NewDense(len(indices), cols, nil)
	for i, src := range indices {
		out.SetRow(i, m.RawRowView(src))
	}
	return out
}

// Decomposition holds the reference singular value decomposition of the
// preprocessed observation matrix. S is ordered descending; U and V carry
// one column per component.
type Decomposition struct {
	U *mat.Dense
	S []float64
	V *mat.Dense
}

// Components returns the component count of the decomposition.
func (d Decomposition) Components() int { return len(d.S) }

// Validate checks the cross-shape invariants that make resample accumulation
// well-defined.
func (d Decomposition) Validate() error {
	if d.U == nil || d.V == nil || len(d.S) == 0 {
		return core.NewConfigError("decomposition", "incomplete reference decomposition")
	}
	_, uc := d.U.Dims()
	_, vc := d.V.Dims()
	if uc != len(d.S) || vc != len(d.S) {
		return core.NewShapeError("decomposition components", uc, vc, len(d.S), len(d.S))
	}
	return nil
}
