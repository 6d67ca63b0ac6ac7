// Package gsvd adapts gonum's singular value decomposition as the
// decomposition oracle used by the resample engines.
package gsvd

import (
	"errors"

	"plsgo/domain/pls"
	"plsgo/ports"

	"gonum.org/v1/gonum/mat"
)

// Oracle implements ports.Decomposer with gonum's thin SVD.
type Oracle struct{}

// New creates a new decomposition oracle.
func New() *Oracle { return &Oracle{} }

var _ ports.Decomposer = (*Oracle)(nil)

// Decompose computes the thin SVD of m. Singular values come back in
// descending order; U and V have one orthonormal column per component.
func (o *Oracle) Decompose(m *mat.Dense) (pls.Decomposition, error) {
	var svd mat.SVD
	if ok := svd.Factorize(m, mat.SVDThin); !ok {
		return pls.Decomposition{}, errors.New("gonum mat.SVD Factorize failed")
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	return pls.Decomposition{U: &u, S: svd.Values(nil), V: &v}, nil
}

// SingularValues computes only the singular values of m, descending.
func (o *Oracle) SingularValues(m *mat.Dense) ([]float64, error) {
	var svd mat.SVD
	if ok := svd.Factorize(m, mat.SVDNone); !ok {
		return nil, errors.New("gonum mat.SVD Factorize failed")
	}
	return svd.Values(nil), nil
}
