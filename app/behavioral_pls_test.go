package app

import (
	"math"
	"testing"

	"plsgo/domain/core"
	"plsgo/domain/pls"

	"gonum.org/v1/gonum/mat"
)

func TestCrossBlockCorrelationShape(t *testing.T) {
	// One group, two conditions of 3 subjects: 2 cells.
	x := mat.NewDense(6, 3, []float64{
		1, 2, 0,
		2, 4, 1,
		3, 5, 0,
		4, 1, 2,
		5, 3, 1,
		6, 2, 2,
	})
	y := mat.NewDense(6, 2, []float64{
		1, 0,
		2, 1,
		3, 0,
		4, 2,
		5, 1,
		6, 2,
	})
	cond := pls.NewCondOrder([]int{3}, 2)

	out, err := CrossBlockCorrelation(x, y, cond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rows, cols := out.Dims()
	if rows != 2*2 || cols != 3 {
		t.Fatalf("expected 4x3 stacked correlations, got %dx%d", rows, cols)
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v := out.At(r, c)
			if math.IsNaN(v) {
				continue // constant column within a cell
			}
			if v < -1-1e-12 || v > 1+1e-12 {
				t.Errorf("correlation out of range at (%d,%d): %g", r, c, v)
			}
		}
	}
}

func TestCrossBlockCorrelationPerfectCorrelation(t *testing.T) {
	// Y is X's first column, so its correlation with itself is exactly 1.
	x := mat.NewDense(4, 1, []float64{1, 2, 3, 5})
	y := mat.NewDense(4, 1, []float64{1, 2, 3, 5})
	cond := pls.NewCondOrder([]int{4}, 1)

	out, err := CrossBlockCorrelation(x, y, cond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := out.At(0, 0); math.Abs(got-1) > 1e-12 {
		t.Errorf("expected correlation 1, got %g", got)
	}
}

func TestCrossBlockCorrelationRequiresY(t *testing.T) {
	x := mat.NewDense(4, 2, nil)
	cond := pls.NewCondOrder([]int{2}, 2)

	_, err := CrossBlockCorrelation(x, nil, cond)
	if !core.IsConfigError(err) {
		t.Errorf("expected config error, got %v", err)
	}
}

func TestCrossBlockCorrelationRejectsRowMismatch(t *testing.T) {
	x := mat.NewDense(4, 2, nil)
	y := mat.NewDense(3, 2, nil)
	cond := pls.NewCondOrder([]int{2}, 2)

	_, err := CrossBlockCorrelation(x, y, cond)
	if !core.IsShapeError(err) {
		t.Errorf("expected shape error, got %v", err)
	}
}

func TestCrossBlockCorrelationConstantColumn(t *testing.T) {
	// A constant X column has zero variance; its correlations are
	// non-finite and must flow through untouched.
	x := mat.NewDense(4, 2, []float64{
		7, 1,
		7, 2,
		7, 3,
		7, 5,
	})
	y := mat.NewDense(4, 1, []float64{1, 2, 3, 5})
	cond := pls.NewCondOrder([]int{4}, 1)

	out, err := CrossBlockCorrelation(x, y, cond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v := out.At(0, 0); !math.IsNaN(v) {
		t.Errorf("constant column must yield NaN, got %g", v)
	}
}
