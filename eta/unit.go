package eta

import "github.com/NeuralNetworkVerification/Marabou-sub005/sparsevec"

// UnitSparse is the eta representation used by the Forrest-Tomlin H
// eta-file: the elimination of a row spike against the existing diagonal
// pivots, which always has an implicit unit pivot (the row being
// eliminated keeps coefficient 1 on itself; the multipliers subtracted
// out land on the other rows). Because the pivot is always 1, there is no
// division and no singularity to detect — unlike Sparse, whose replaced
// column can have an arbitrary, possibly near-zero pivot.
//
// Grounded in the source's hForwardTransformation/hBackwardTransformation
// (SparseFTFactorization.cpp), which apply this same no-division sweep.
type UnitSparse struct {
	Pivot   int
	Entries *sparsevec.Vector // multipliers for every row the pivot row was eliminated against; Entries.At(Pivot) is always 0
}

// NewUnitSparse builds a unit-pivot eta from a dense multiplier buffer.
// multipliers[Pivot] is ignored (the pivot row never multiplies itself).
func NewUnitSparse(m, pivot int, multipliers []float64, tol float64) *UnitSparse {
	e := sparsevec.NewVector(m)
	e.GatherFrom(multipliers, tol)
	e.Set(pivot, 0, 1) // elide any accidental entry at the pivot itself
	return &UnitSparse{Pivot: pivot, Entries: e}
}

// Forward applies the elimination to y in place: y[Pivot] -=
// sum(multiplier_i * y[i]), carrying the same row operation that produced
// the stored V row into every subsequent right-hand side.
func (e *UnitSparse) Forward(y []float64) {
	sum := 0.0
	e.Entries.Do(func(i int, v float64) {
		sum += v * y[i]
	})
	y[e.Pivot] -= sum
}

// Backward solves x*H = y in place: the pivot entry of y is left
// unchanged and read once, then subtracted off every other row it
// multiplies — the mirror of Forward's "gather into the pivot" shape,
// not its sign-flipped twin. Grounded in hBackwardTransformation's
// pivotValue := x[pivotIndex] followed by x[entryIndex] -=
// value*pivotValue sweep (SparseFTFactorization.cpp).
func (e *UnitSparse) Backward(y []float64) {
	pv := y[e.Pivot]
	e.Entries.Do(func(i int, v float64) {
		y[i] -= v * pv
	})
}

// UnitSparseFile is an ordered chain of UnitSparse etas, the H factor of
// A = F*H*V.
type UnitSparseFile struct {
	etas []*UnitSparse
}

func (f *UnitSparseFile) Len() int           { return len(f.etas) }
func (f *UnitSparseFile) Append(e *UnitSparse) { f.etas = append(f.etas, e) }
func (f *UnitSparseFile) Clear()             { f.etas = f.etas[:0] }

// Forward applies every eta front-to-back.
func (f *UnitSparseFile) Forward(y []float64) {
	for _, e := range f.etas {
		e.Forward(y)
	}
}

// Backward applies the inverse product in reverse eta order.
func (f *UnitSparseFile) Backward(y []float64) {
	for i := len(f.etas) - 1; i >= 0; i-- {
		f.etas[i].Backward(y)
	}
}

// Clone returns an independent deep copy of the file.
func (f *UnitSparseFile) Clone() *UnitSparseFile {
	c := &UnitSparseFile{etas: make([]*UnitSparse, len(f.etas))}
	for i, e := range f.etas {
		c.etas[i] = &UnitSparse{Pivot: e.Pivot, Entries: e.Entries.Clone()}
	}
	return c
}

// UnitDense is the dense analogue of UnitSparse, used by the dense-FT
// variant's H eta-file.
type UnitDense struct {
	Pivot int
	Mult  []float64
}

// NewUnitDense builds a dense unit-pivot eta, copying multipliers.
// multipliers[pivot] is ignored.
func NewUnitDense(pivot int, multipliers []float64) *UnitDense {
	m := make([]float64, len(multipliers))
	copy(m, multipliers)
	m[pivot] = 0
	return &UnitDense{Pivot: pivot, Mult: m}
}

func (e *UnitDense) Forward(y []float64) {
	sum := 0.0
	for i, v := range e.Mult {
		if v == 0 {
			continue
		}
		sum += v * y[i]
	}
	y[e.Pivot] -= sum
}

// Backward solves x*H = y in place: the dense analogue of
// UnitSparse.Backward. The pivot entry is read once and left in place;
// every other entry it multiplies is decremented by that reading.
func (e *UnitDense) Backward(y []float64) {
	pv := y[e.Pivot]
	for i, v := range e.Mult {
		if v == 0 {
			continue
		}
		y[i] -= v * pv
	}
}

// UnitDenseFile is the dense analogue of UnitSparseFile.
type UnitDenseFile struct {
	etas []*UnitDense
}

func (f *UnitDenseFile) Len() int             { return len(f.etas) }
func (f *UnitDenseFile) Append(e *UnitDense) { f.etas = append(f.etas, e) }
func (f *UnitDenseFile) Clear()               { f.etas = f.etas[:0] }

func (f *UnitDenseFile) Forward(y []float64) {
	for _, e := range f.etas {
		e.Forward(y)
	}
}

func (f *UnitDenseFile) Backward(y []float64) {
	for i := len(f.etas) - 1; i >= 0; i-- {
		f.etas[i].Backward(y)
	}
}

func (f *UnitDenseFile) Clone() *UnitDenseFile {
	c := &UnitDenseFile{etas: make([]*UnitDense, len(f.etas))}
	for i, e := range f.etas {
		cc := &UnitDense{Pivot: e.Pivot, Mult: make([]float64, len(e.Mult))}
		copy(cc.Mult, e.Mult)
		c.etas[i] = cc
	}
	return c
}
