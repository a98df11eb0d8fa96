package sparsevec

import "testing"

const testTol = 1e-9

func TestVectorSetGet(t *testing.T) {
	v := NewVector(5)
	v.Set(2, 3.5, testTol)
	v.Set(4, -1.0, testTol)
	if got := v.At(2); got != 3.5 {
		t.Errorf("At(2) = %v, want 3.5", got)
	}
	if got := v.At(0); got != 0 {
		t.Errorf("At(0) = %v, want 0", got)
	}
	if v.NNZ() != 2 {
		t.Errorf("NNZ() = %d, want 2", v.NNZ())
	}
}

func TestVectorSetErasesOnZero(t *testing.T) {
	v := NewVector(3)
	v.Set(1, 5, testTol)
	v.Set(1, 1e-12, testTol)
	if v.NNZ() != 0 {
		t.Errorf("NNZ() = %d, want 0 after eliding a near-zero write", v.NNZ())
	}
	if got := v.At(1); got != 0 {
		t.Errorf("At(1) = %v, want 0", got)
	}
}

func TestVectorAppendFastPath(t *testing.T) {
	v := NewVector(4)
	v.Append(0, 1)
	v.Append(3, 2)
	if v.NNZ() != 2 {
		t.Fatalf("NNZ() = %d, want 2", v.NNZ())
	}
	sum := 0.0
	v.Do(func(_ int, x float64) { sum += x })
	if sum != 3 {
		t.Errorf("sum of entries = %v, want 3", sum)
	}
}

func TestVectorScatterGatherRoundTrip(t *testing.T) {
	v := NewVector(4)
	v.Set(1, 2, testTol)
	v.Set(3, -4, testTol)
	dense := make([]float64, 4)
	v.ScatterTo(dense)
	want := []float64{0, 2, 0, -4}
	for i := range want {
		if dense[i] != want[i] {
			t.Errorf("dense[%d] = %v, want %v", i, dense[i], want[i])
		}
	}
	v2 := NewVector(4)
	v2.GatherFrom(dense, testTol)
	if v2.NNZ() != 2 {
		t.Errorf("NNZ() after GatherFrom = %d, want 2", v2.NNZ())
	}
}

func TestVectorOutOfRangePanics(t *testing.T) {
	v := NewVector(2)
	defer func() {
		if recover() == nil {
			t.Error("expected panic on out-of-range index")
		}
	}()
	v.Set(5, 1, testTol)
}

func TestVectorClone(t *testing.T) {
	v := NewVector(3)
	v.Set(0, 1, testTol)
	v.Set(2, -2, testTol)
	c := v.Clone()
	c.Set(0, 99, testTol)
	if v.At(0) != 1 {
		t.Errorf("mutating clone affected original: At(0) = %v", v.At(0))
	}
}
