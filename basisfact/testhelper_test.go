package basisfact

import (
	"math"
	"testing"

	"github.com/NeuralNetworkVerification/Marabou-sub005/sparsevec"
)

// denseOracle serves the columns of a fixed dense matrix, row-major m*m,
// the simplest possible Oracle for end-to-end tests.
type denseOracle struct {
	m int
	a []float64 // row-major m*m
}

func newDenseOracle(m int, a []float64) *denseOracle {
	cp := make([]float64, len(a))
	copy(cp, a)
	return &denseOracle{m: m, a: cp}
}

func (o *denseOracle) BasisColumnDense(j int, dst []float64) error {
	for i := 0; i < o.m; i++ {
		dst[i] = o.a[i*o.m+j]
	}
	return nil
}

func (o *denseOracle) BasisColumnSparse(j int) (*sparsevec.Vector, error) {
	v := sparsevec.NewVector(o.m)
	col := make([]float64, o.m)
	o.BasisColumnDense(j, col)
	v.GatherFrom(col, 1e-12)
	return v, nil
}

// setColumn overwrites column j of the oracle's matrix in place, the
// simplex-style "column q of B has been replaced" mutation that must
// accompany every UpdateToAdjacentBasis call in these tests.
func (o *denseOracle) setColumn(j int, col []float64) {
	for i := 0; i < o.m; i++ {
		o.a[i*o.m+j] = col[i]
	}
}

func matVec(m int, a []float64, x []float64) []float64 {
	y := make([]float64, m)
	for i := 0; i < m; i++ {
		s := 0.0
		for j := 0; j < m; j++ {
			s += a[i*m+j] * x[j]
		}
		y[i] = s
	}
	return y
}

func rowVecMat(m int, x []float64, a []float64) []float64 {
	y := make([]float64, m)
	for j := 0; j < m; j++ {
		s := 0.0
		for i := 0; i < m; i++ {
			s += x[i] * a[i*m+j]
		}
		y[j] = s
	}
	return y
}

func approxEqual(t *testing.T, got, want []float64, tol float64, msg string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: length mismatch: got %d want %d", msg, len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > tol {
			t.Fatalf("%s: index %d: got %v want %v (full got=%v want=%v)", msg, i, got[i], want[i], got, want)
		}
	}
}
