package app

import (
	"errors"
	"math"
	"testing"

	"plsgo/domain/core"
	"plsgo/domain/pls"

	"gonum.org/v1/gonum/mat"
)

func TestMeanCenter(t *testing.T) {
	x := mat.NewDense(4, 2, []float64{
		1, 10,
		3, 20,
		5, 30,
		7, 40,
	})
	cond := pls.NewCondOrder([]int{2}, 2)

	out, err := MeanCenter(x, nil, cond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows, cols := out.Dims()
	if rows != 4 || cols != 2 {
		t.Fatalf("shape changed: %dx%d", rows, cols)
	}
	for j := 0; j < cols; j++ {
		sum := 0.0
		for i := 0; i < rows; i++ {
			sum += out.At(i, j)
		}
		if math.Abs(sum) > 1e-12 {
			t.Errorf("column %d not centered: sum %g", j, sum)
		}
	}
	if norm := mat.Norm(out, 2); math.Abs(norm-1) > 1e-12 {
		t.Errorf("Frobenius norm must be 1, got %g", norm)
	}

	// The input must stay untouched.
	if x.At(0, 0) != 1 || x.At(3, 1) != 40 {
		t.Error("MeanCenter mutated its input")
	}
}

func TestMeanCenterRejectsMultiGroup(t *testing.T) {
	x := mat.NewDense(4, 2, nil)
	cond := pls.NewCondOrder([]int{1, 1}, 2)

	_, err := MeanCenter(x, nil, cond)
	if !errors.Is(err, core.ErrMultiGroup) {
		t.Errorf("expected multi-group error, got %v", err)
	}
	if !core.IsNotImplemented(err) {
		t.Errorf("multi-group must classify as not implemented, got %v", err)
	}
}
