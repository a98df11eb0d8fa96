package gauss

import (
	"math"
	"testing"

	"github.com/NeuralNetworkVerification/Marabou-sub005/sparsevec"
)

const testTol = 1e-9

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func columnsFromDense(m int, dense [][]float64) []*sparsevec.Vector {
	cols := make([]*sparsevec.Vector, m)
	for c := 0; c < m; c++ {
		col := sparsevec.NewVector(m)
		for r := 0; r < m; r++ {
			col.Set(r, dense[r][c], testTol)
		}
		cols[c] = col
	}
	return cols
}

func TestEliminateIdentity(t *testing.T) {
	cols := columnsFromDense(3, [][]float64{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	})
	lu, err := Eliminate(3, cols, DefaultConfig())
	if err != nil {
		t.Fatalf("Eliminate: %v", err)
	}
	dense := make([]float64, 9)
	lu.ToDense(dense)
	want := []float64{1, 0, 0, 0, 1, 0, 0, 0, 1}
	for i := range want {
		if !almostEqual(dense[i], want[i]) {
			t.Fatalf("ToDense = %v, want %v", dense, want)
		}
	}
}

// TestEliminateMarkowitzPivoting reconstructs A from the LU factors for
// the worked example A = [[2,4,5],[3,-1,0],[0,-10,-2]]: the eliminator
// must pivot row 0<->1 at step 0 (cost ties resolved toward the larger,
// more stable magnitude) and row 1<->2 at step 1.
func TestEliminateMarkowitzPivoting(t *testing.T) {
	a := [][]float64{
		{2, 4, 5},
		{3, -1, 0},
		{0, -10, -2},
	}
	cols := columnsFromDense(3, a)
	lu, err := Eliminate(3, cols, DefaultConfig())
	if err != nil {
		t.Fatalf("Eliminate: %v", err)
	}

	wantRow := []int{1, 2, 0}
	for i, want := range wantRow {
		if lu.P.Row[i] != want {
			t.Fatalf("P.Row = %v, want pivot order %v", lu.P.Row, wantRow)
		}
	}
	if !lu.Q.IsIdentity() {
		t.Fatalf("Q = %v, want identity (no column pivoting needed)", lu.Q.Row)
	}

	dense := make([]float64, 9)
	lu.ToDense(dense)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if !almostEqual(dense[r*3+c], a[r][c]) {
				t.Fatalf("ToDense = %v, want flattened %v", dense, a)
			}
		}
	}
}

func TestEliminateSingularBasisFails(t *testing.T) {
	cols := columnsFromDense(2, [][]float64{
		{1, 1},
		{1, 1},
	})
	if _, err := Eliminate(2, cols, DefaultConfig()); err != ErrEliminationFailed {
		t.Fatalf("Eliminate on a singular basis = %v, want ErrEliminationFailed", err)
	}
}

func TestEliminateSingleElement(t *testing.T) {
	cols := columnsFromDense(1, [][]float64{{7}})
	lu, err := Eliminate(1, cols, DefaultConfig())
	if err != nil {
		t.Fatalf("Eliminate: %v", err)
	}
	if lu.Diag[0] != 7 {
		t.Fatalf("Diag[0] = %v, want 7", lu.Diag[0])
	}
}
