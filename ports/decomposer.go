package ports

import (
	"plsgo/domain/pls"

	"gonum.org/v1/gonum/mat"
)

// Decomposer is the decomposition oracle. Implementations must return
// singular values in descending order with orthonormal-column U and V, and
// must tolerate rectangular input.
type Decomposer interface {
	// Decompose computes the thin singular value decomposition of m.
	Decompose(m *mat.Dense) (pls.Decomposition, error)

	// SingularValues computes only the singular values of m, descending.
	SingularValues(m *mat.Dense) ([]float64, error)
}
