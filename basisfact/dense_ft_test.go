package basisfact

import "testing"

// TestDenseFTUpdatesMatchTrueMatrix mirrors
// TestSparseFTUpdatesMatchTrueMatrix for the dense Forrest-Tomlin variant.
func TestDenseFTUpdatesMatchTrueMatrix(t *testing.T) {
	m := 3
	a := []float64{
		1, 2, 4,
		4, 5, 7,
		7, 8, 9,
	}
	oracle := newDenseOracle(m, a)
	cfg := DefaultConfig(TypeDenseFT)
	f := NewDenseFT(m, oracle, cfg, nil)
	if err := f.ObtainFreshBasis(); err != nil {
		t.Fatalf("ObtainFreshBasis: %v", err)
	}

	c1 := []float64{1, 1, 3}
	oracle.setColumn(1, c1)
	if err := f.UpdateToAdjacentBasis(1, nil, c1); err != nil {
		t.Fatalf("UpdateToAdjacentBasis(1): %v", err)
	}

	c2 := []float64{2, 1, 1}
	oracle.setColumn(0, c2)
	if err := f.UpdateToAdjacentBasis(0, nil, c2); err != nil {
		t.Fatalf("UpdateToAdjacentBasis(0): %v", err)
	}

	x := []float64{2, -1, 4}
	y := matVec(m, oracle.a, x)
	got := make([]float64, m)
	if err := f.ForwardTransformation(y, got); err != nil {
		t.Fatalf("ForwardTransformation: %v", err)
	}
	approxEqual(t, got, x, 1e-6, "forward solve after FT updates")

	xb := []float64{-6, 9, -4}
	yb := rowVecMat(m, xb, oracle.a)
	gotb := make([]float64, m)
	if err := f.BackwardTransformation(yb, gotb); err != nil {
		t.Fatalf("BackwardTransformation: %v", err)
	}
	approxEqual(t, gotb, xb, 1e-6, "backward solve after FT updates")
}

// TestDenseFTInvariantI1 checks forward_transformation(B*e_j) == e_j after
// a fresh factorization.
func TestDenseFTInvariantI1(t *testing.T) {
	m := 3
	a := []float64{
		2, 0, 3,
		-1, 2, 1,
		0, 3, 4,
	}
	oracle := newDenseOracle(m, a)
	f := NewDenseFT(m, oracle, DefaultConfig(TypeDenseFT), nil)
	if err := f.ObtainFreshBasis(); err != nil {
		t.Fatalf("ObtainFreshBasis: %v", err)
	}
	for j := 0; j < m; j++ {
		e := make([]float64, m)
		e[j] = 1
		y := matVec(m, a, e)
		x := make([]float64, m)
		if err := f.ForwardTransformation(y, x); err != nil {
			t.Fatalf("ForwardTransformation: %v", err)
		}
		approxEqual(t, x, e, 1e-9, "I1 unit vector reconstruction")
	}
}

// TestDenseFTManyUpdatesStayWithinThreshold pushes updates past a tight
// refactorization threshold and checks the eta file never exceeds it while
// solves against the oracle's matrix keep matching.
func TestDenseFTManyUpdatesStayWithinThreshold(t *testing.T) {
	m := 3
	a := []float64{
		3, 1, 2,
		1, 4, 1,
		2, 1, 5,
	}
	oracle := newDenseOracle(m, a)
	cfg := DefaultConfig(TypeDenseFT)
	cfg.RefactorizationThreshold = 5
	f := NewDenseFT(m, oracle, cfg, nil)
	if err := f.ObtainFreshBasis(); err != nil {
		t.Fatalf("ObtainFreshBasis: %v", err)
	}

	cols := [][]float64{
		{1, 1, 1}, {2, 1, 3}, {1, 2, 1}, {3, 1, 1}, {1, 3, 2},
	}
	for round := 0; round < 5; round++ {
		for q := 0; q < m; q++ {
			col := cols[(round+q)%len(cols)]
			oracle.setColumn(q, col)
			if err := f.UpdateToAdjacentBasis(q, nil, col); err != nil {
				t.Fatalf("round %d UpdateToAdjacentBasis(%d): %v", round, q, err)
			}
		}
	}
	if f.etaFile.Len() > cfg.RefactorizationThreshold {
		t.Fatalf("eta file length %d exceeds refactorization threshold %d", f.etaFile.Len(), cfg.RefactorizationThreshold)
	}

	x := []float64{1, 2, 3}
	y := matVec(m, oracle.a, x)
	got := make([]float64, m)
	if err := f.ForwardTransformation(y, got); err != nil {
		t.Fatalf("ForwardTransformation: %v", err)
	}
	approxEqual(t, got, x, 1e-6, "forward solve after many updates")
}

// TestDenseFTStoreRestore checks I4 for the dense Forrest-Tomlin variant:
// updates on self after Store must not leak into other.
func TestDenseFTStoreRestore(t *testing.T) {
	m := 3
	a := []float64{
		2, 0, 3,
		-1, 2, 1,
		0, 3, 4,
	}
	oracle := newDenseOracle(m, a)
	f := NewDenseFT(m, oracle, DefaultConfig(TypeDenseFT), nil)
	if err := f.ObtainFreshBasis(); err != nil {
		t.Fatalf("ObtainFreshBasis: %v", err)
	}
	other := NewDenseFT(m, oracle, DefaultConfig(TypeDenseFT), nil)
	if err := f.Store(other); err != nil {
		t.Fatalf("Store: %v", err)
	}

	col := []float64{9, 9, 9}
	oracle.setColumn(0, col)
	if err := f.UpdateToAdjacentBasis(0, nil, col); err != nil {
		t.Fatalf("UpdateToAdjacentBasis: %v", err)
	}

	y := []float64{1, 2, 3}
	xOther := make([]float64, m)
	if err := other.ForwardTransformation(y, xOther); err != nil {
		t.Fatalf("other.ForwardTransformation: %v", err)
	}
	want := matVec(m, a, xOther)
	approxEqual(t, want, y, 1e-9, "other still solves against the original basis")
}

// TestDenseFTBoundaryM1 checks the m=1 boundary through an update.
func TestDenseFTBoundaryM1(t *testing.T) {
	oracle := newDenseOracle(1, []float64{4})
	f := NewDenseFT(1, oracle, DefaultConfig(TypeDenseFT), nil)
	if err := f.ObtainFreshBasis(); err != nil {
		t.Fatalf("ObtainFreshBasis: %v", err)
	}
	col := []float64{5}
	oracle.setColumn(0, col)
	if err := f.UpdateToAdjacentBasis(0, nil, col); err != nil {
		t.Fatalf("UpdateToAdjacentBasis: %v", err)
	}
	x := make([]float64, 1)
	if err := f.ForwardTransformation([]float64{10}, x); err != nil {
		t.Fatalf("ForwardTransformation: %v", err)
	}
	approxEqual(t, x, []float64{2}, 1e-12, "m=1 forward after update")
}
