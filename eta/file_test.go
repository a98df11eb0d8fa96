package eta

import "testing"

func TestSparseFileChain(t *testing.T) {
	m := 3
	col1 := []float64{2, 1, -1}
	col2 := []float64{1, 3, 2}
	e1 := NewSparse(m, 0, col1, unitTestTol)
	e2 := NewSparse(m, 2, col2, unitTestTol)

	var f SparseFile
	f.Append(e1)
	f.Append(e2)
	if f.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", f.Len())
	}

	mat1 := denseEtaMatrix(m, 0, col1)
	mat2 := denseEtaMatrix(m, 2, col2)

	x := []float64{1, -2, 3}
	y1 := matVecUnit(m, mat2, x)
	y := matVecUnit(m, mat1, y1)
	if err := f.Forward(y, unitTestTol); err != nil {
		t.Fatalf("Forward: %v", err)
	}
	approxEqualVec(t, y, x, 1e-9, "SparseFile.Forward")

	xb := []float64{0.5, 2, -1}
	yb1 := rowVecMatUnit(m, xb, mat1)
	yb := rowVecMatUnit(m, yb1, mat2)
	if err := f.Backward(yb, unitTestTol); err != nil {
		t.Fatalf("Backward: %v", err)
	}
	approxEqualVec(t, yb, xb, 1e-9, "SparseFile.Backward")

	clone := f.Clone()
	clone.Clear()
	if f.Len() != 2 {
		t.Errorf("original Len() after clone's Clear() = %d, want 2 (clone must be independent)", f.Len())
	}
}

func TestSparseFilePropagatesSingular(t *testing.T) {
	var f SparseFile
	f.Append(NewSparse(2, 0, []float64{1, 2}, unitTestTol))
	f.Append(NewSparse(2, 1, []float64{3, 1e-12}, unitTestTol))
	y := []float64{1, 1}
	if err := f.Forward(y, unitTestTol); err != ErrSingularEta {
		t.Errorf("Forward with a singular eta in the chain: err = %v, want ErrSingularEta", err)
	}
}

func TestDenseFileChain(t *testing.T) {
	m := 3
	col1 := []float64{2, 1, -1}
	col2 := []float64{1, 3, 2}
	e1 := NewDense(0, col1)
	e2 := NewDense(2, col2)

	var f DenseFile
	f.Append(e1)
	f.Append(e2)

	mat1 := denseEtaMatrix(m, 0, col1)
	mat2 := denseEtaMatrix(m, 2, col2)

	x := []float64{1, -2, 3}
	y1 := matVecUnit(m, mat2, x)
	y := matVecUnit(m, mat1, y1)
	if err := f.Forward(y, unitTestTol); err != nil {
		t.Fatalf("Forward: %v", err)
	}
	approxEqualVec(t, y, x, 1e-9, "DenseFile.Forward")

	xb := []float64{0.5, 2, -1}
	yb1 := rowVecMatUnit(m, xb, mat1)
	yb := rowVecMatUnit(m, yb1, mat2)
	if err := f.Backward(yb, unitTestTol); err != nil {
		t.Fatalf("Backward: %v", err)
	}
	approxEqualVec(t, yb, xb, 1e-9, "DenseFile.Backward")

	clone := f.Clone()
	clone.etas[0].Col[0] = 999
	if f.etas[0].Col[0] == 999 {
		t.Errorf("Clone() shares underlying Col slice with the original")
	}
}
