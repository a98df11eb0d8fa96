package basisfact

import "testing"

func TestDenseLUNonIdentityBasis(t *testing.T) {
	m := 3
	oracle := newDenseOracle(m, []float64{
		1, 2, 4,
		4, 5, 7,
		7, 8, 9,
	})
	cfg := DefaultConfig(TypeDenseLU)
	d := NewDenseLU(m, oracle, cfg, nil)
	if err := d.ObtainFreshBasis(); err != nil {
		t.Fatalf("ObtainFreshBasis: %v", err)
	}

	pushes := []struct {
		q   int
		col []float64
	}{
		{1, []float64{1, 1, 3}},
		{0, []float64{2, 1, 1}},
		{2, []float64{0.5, 0.5, 0.5}},
	}
	for _, p := range pushes {
		if err := d.UpdateToAdjacentBasis(p.q, p.col, p.col); err != nil {
			t.Fatalf("UpdateToAdjacentBasis(%d): %v", p.q, err)
		}
	}

	x := make([]float64, m)
	if err := d.ForwardTransformation([]float64{2, -1, 4}, x); err != nil {
		t.Fatalf("ForwardTransformation: %v", err)
	}
	approxEqual(t, x, []float64{42, 116, -131}, 1e-6, "forward solve")

	xb := make([]float64, m)
	if err := d.BackwardTransformation([]float64{19, 12, 17}, xb); err != nil {
		t.Fatalf("BackwardTransformation: %v", err)
	}
	approxEqual(t, xb, []float64{-6, 9, -4}, 1e-6, "backward solve")
}

func TestDenseLUInvariantI1(t *testing.T) {
	m := 3
	a := []float64{
		2, 0, 3,
		-1, 2, 1,
		0, 3, 4,
	}
	oracle := newDenseOracle(m, a)
	d := NewDenseLU(m, oracle, DefaultConfig(TypeDenseLU), nil)
	if err := d.ObtainFreshBasis(); err != nil {
		t.Fatalf("ObtainFreshBasis: %v", err)
	}
	for j := 0; j < m; j++ {
		e := make([]float64, m)
		e[j] = 1
		y := matVec(m, a, e)
		x := make([]float64, m)
		if err := d.ForwardTransformation(y, x); err != nil {
			t.Fatalf("ForwardTransformation: %v", err)
		}
		approxEqual(t, x, e, 1e-9, "I1 unit vector reconstruction")
	}
}

func TestDenseLUInvertBasis(t *testing.T) {
	m := 3
	a := []float64{
		2, 0, 3,
		-1, 2, 1,
		0, 3, 4,
	}
	oracle := newDenseOracle(m, a)
	d := NewDenseLU(m, oracle, DefaultConfig(TypeDenseLU), nil)
	if err := d.ObtainFreshBasis(); err != nil {
		t.Fatalf("ObtainFreshBasis: %v", err)
	}
	inv := make([]float64, m*m)
	if err := d.InvertBasis(inv); err != nil {
		t.Fatalf("InvertBasis: %v", err)
	}
	approxEqual(t, inv, []float64{5, 9, -6, 4, 8, -5, -3, -6, 4}, 1e-9, "invert_basis")
}

func TestDenseLUStoreRestore(t *testing.T) {
	m := 3
	a := []float64{
		2, 0, 3,
		-1, 2, 1,
		0, 3, 4,
	}
	oracle := newDenseOracle(m, a)
	d := NewDenseLU(m, oracle, DefaultConfig(TypeDenseLU), nil)
	if err := d.ObtainFreshBasis(); err != nil {
		t.Fatalf("ObtainFreshBasis: %v", err)
	}
	other := NewDenseLU(m, oracle, DefaultConfig(TypeDenseLU), nil)
	if err := d.Store(other); err != nil {
		t.Fatalf("Store: %v", err)
	}
	col := []float64{9, 9, 9}
	if err := d.UpdateToAdjacentBasis(0, col, col); err != nil {
		t.Fatalf("UpdateToAdjacentBasis: %v", err)
	}

	y := []float64{1, 2, 3}
	xOther := make([]float64, m)
	if err := other.ForwardTransformation(y, xOther); err != nil {
		t.Fatalf("other.ForwardTransformation: %v", err)
	}
	fresh := NewDenseLU(m, oracle, DefaultConfig(TypeDenseLU), nil)
	if err := fresh.ObtainFreshBasis(); err != nil {
		t.Fatalf("fresh.ObtainFreshBasis: %v", err)
	}
	xFresh := make([]float64, m)
	if err := fresh.ForwardTransformation(y, xFresh); err != nil {
		t.Fatalf("fresh.ForwardTransformation: %v", err)
	}
	approxEqual(t, xOther, xFresh, 1e-9, "I4 store/restore leaves other at original basis")
}

func TestDenseLUBoundaryM1(t *testing.T) {
	oracle := newDenseOracle(1, []float64{4})
	d := NewDenseLU(1, oracle, DefaultConfig(TypeDenseLU), nil)
	if err := d.ObtainFreshBasis(); err != nil {
		t.Fatalf("ObtainFreshBasis: %v", err)
	}
	x := make([]float64, 1)
	if err := d.ForwardTransformation([]float64{10}, x); err != nil {
		t.Fatalf("ForwardTransformation: %v", err)
	}
	approxEqual(t, x, []float64{2.5}, 1e-12, "m=1 forward")
}

func TestDenseLUSingularBasisFails(t *testing.T) {
	oracle := newDenseOracle(2, []float64{
		1, 1,
		2, 2,
	})
	d := NewDenseLU(2, oracle, DefaultConfig(TypeDenseLU), nil)
	err := d.ObtainFreshBasis()
	if err != ErrGaussianEliminationFailed {
		t.Fatalf("expected ErrGaussianEliminationFailed, got %v", err)
	}
}
