package engine

import (
	"math"

	"plsgo/domain/core"
	"plsgo/domain/pls"
	"plsgo/ports"

	"gonum.org/v1/gonum/mat"
)

// Strategy aligns each resampled decomposition against the reference
// solution. Both engines invoke the same strategy: the permutation test
// needs only Values, the bootstrap test needs Vectors.
type Strategy interface {
	// Values computes the singular values of the resampled matrix.
	Values(resampled *mat.Dense, ref pls.Decomposition) ([]float64, error)

	// Vectors computes the left singular vectors, singular values, and
	// right singular vectors of the resampled matrix.
	Vectors(resampled *mat.Dense, ref pls.Decomposition) (u *mat.Dense, s []float64, v *mat.Dense, err error)
}

// NewStrategy builds the strategy for the requested rotation method. An
// unsupported method fails here, before any iteration runs.
func NewStrategy(method pls.RotateMethod, dec ports.Decomposer) (Strategy, error) {
	switch method {
	case pls.RotateNone:
		return plainStrategy{dec: dec}, nil
	case pls.RotateProcrustes:
		return procrustesStrategy{dec: dec}, nil
	case pls.RotateDerived:
		return derivedStrategy{}, nil
	default:
		return nil, core.NewRotationError(int(method))
	}
}

// plainStrategy decomposes the resampled matrix and uses the result as-is.
type plainStrategy struct {
	dec ports.Decomposer
}

func (s plainStrategy) Values(resampled *mat.Dense, ref pls.Decomposition) ([]float64, error) {
	return s.dec.SingularValues(resampled)
}

func (s plainStrategy) Vectors(resampled *mat.Dense, ref pls.Decomposition) (*mat.Dense, []float64, *mat.Dense, error) {
	d, err := s.dec.Decompose(resampled)
	if err != nil {
		return nil, nil, nil, err
	}
	return d.U, d.S, d.V, nil
}

// procrustesStrategy decomposes the resampled matrix, rotates its right
// singular vectors onto the reference V with the orthogonal Procrustes
// solution, and rebuilds values and left vectors from the rotated
// reprojection so the triplet stays consistent.
type procrustesStrategy struct {
	dec ports.Decomposer
}

func (s procrustesStrategy) rotate(resampled *mat.Dense, ref pls.Decomposition) (*mat.Dense, []float64, *mat.Dense, error) {
	if err := checkProjectable(resampled, ref); err != nil {
		return nil, nil, nil, err
	}
	d, err := s.dec.Decompose(resampled)
	if err != nil {
		return nil, nil, nil, err
	}

	// Procrustes alignment of d.V toward ref.V: SVD(ref.V^T d.V) = Ubar S Vbar^T,
	// rotation = Vbar Ubar^T.
	var cross mat.Dense
	cross.Mul(ref.V.T(), d.V)
	align, err := s.dec.Decompose(&cross)
	if err != nil {
		return nil, nil, nil, err
	}
	var rot mat.Dense
	rot.Mul(align.V, align.U.T())

	var vRot mat.Dense
	vRot.Mul(d.V, &rot)
	var proj mat.Dense
	proj.Mul(resampled, &vRot)
	return &proj, columnNorms(&proj), &vRot, nil
}

func (s procrustesStrategy) Values(resampled *mat.Dense, ref pls.Decomposition) ([]float64, error) {
	_, sRot, _, err := s.rotate(resampled, ref)
	return sRot, err
}

func (s procrustesStrategy) Vectors(resampled *mat.Dense, ref pls.Decomposition) (*mat.Dense, []float64, *mat.Dense, error) {
	proj, sRot, vRot, err := s.rotate(resampled, ref)
	if err != nil {
		return nil, nil, nil, err
	}
	return scaleColumns(proj, sRot), sRot, vRot, nil
}

// derivedStrategy skips the fresh decomposition entirely: singular values
// are the column norms of the reprojection onto the reference V, left
// vectors are that reprojection normalized by the derived values, and right
// vectors are the transposed back-projection through the reference U. The
// permutation-side X'V and bootstrap-side V^T X'^T conventions of the
// derivation are transposes of one another and both reduce to norms along
// the observation axis.
type derivedStrategy struct{}

func (derivedStrategy) Values(resampled *mat.Dense, ref pls.Decomposition) ([]float64, error) {
	if err := checkProjectable(resampled, ref); err != nil {
		return nil, err
	}
	var proj mat.Dense
	proj.Mul(resampled, ref.V)
	return columnNorms(&proj), nil
}

func (derivedStrategy) Vectors(resampled *mat.Dense, ref pls.Decomposition) (*mat.Dense, []float64, *mat.Dense, error) {
	if err := checkProjectable(resampled, ref); err != nil {
		return nil, nil, nil, err
	}
	var proj mat.Dense
	proj.Mul(resampled, ref.V)
	s := columnNorms(&proj)
	u := scaleColumns(&proj, s)

	var back mat.Dense
	back.Mul(resampled.T(), ref.U)
	v := scaleColumns(&back, s)
	return u, s, v, nil
}

// checkProjectable verifies the resampled matrix still projects onto the
// reference basis.
func checkProjectable(resampled *mat.Dense, ref pls.Decomposition) error {
	rows, cols := resampled.Dims()
	vRows, _ := ref.V.Dims()
	if cols != vRows {
		return core.NewShapeError("resampled matrix", rows, cols, rows, vRows)
	}
	return nil
}

// columnNorms returns the Euclidean norm of each column of m.
func columnNorms(m *mat.Dense) []float64 {
	rows, cols := m.Dims()
	norms := make([]float64, cols)
	for j := 0; j < cols; j++ {
		sum := 0.0
		for i := 0; i < rows; i++ {
			v := m.At(i, j)
			sum += v * v
		}
		norms[j] = math.Sqrt(sum)
	}
	return norms
}

// scaleColumns divides each column of m by the matching scale. Near-zero
// scales produce non-finite entries on purpose: they mark degenerate
// components and must not be masked.
func scaleColumns(m *mat.Dense, scale []float64) *mat.Dense {
	rows, cols := m.Dims()
	out := mat.NewDense(rows, cols, nil)
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			out.Set(i, j, m.At(i, j)/scale[j])
		}
	}
	return out
}
