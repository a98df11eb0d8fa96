package eta

// SparseFile is an ordered product E1*...*En of sparse eta matrices, the
// representation used by the sparse-LU eta file (the Forrest-Tomlin
// variants use UnitSparseFile and UnitDenseFile). Forward solves walk the
// list front-to-back; backward solves walk it back-to-front.
type SparseFile struct {
	etas []*Sparse
}

// Len returns the number of etas currently recorded.
func (f *SparseFile) Len() int { return len(f.etas) }

// Append records a new eta at the end of the file.
func (f *SparseFile) Append(e *Sparse) { f.etas = append(f.etas, e) }

// Clear empties the file.
func (f *SparseFile) Clear() { f.etas = f.etas[:0] }

// Forward solves (E1*...*En)*x = y in place by solving each eta in turn
// against the running residual.
func (f *SparseFile) Forward(y []float64, pivotTol float64) error {
	for _, e := range f.etas {
		if err := e.Forward(y, pivotTol); err != nil {
			return err
		}
	}
	return nil
}

// Backward applies the inverse product in reverse eta order.
func (f *SparseFile) Backward(y []float64, pivotTol float64) error {
	for i := len(f.etas) - 1; i >= 0; i-- {
		if err := f.etas[i].Backward(y, pivotTol); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns an independent deep copy of the file.
func (f *SparseFile) Clone() *SparseFile {
	c := &SparseFile{etas: make([]*Sparse, len(f.etas))}
	for i, e := range f.etas {
		c.etas[i] = &Sparse{Pivot: e.Pivot, Col: e.Col.Clone()}
	}
	return c
}

// DenseFile is the dense analogue of SparseFile, used by the dense-LU
// eta-file variant.
type DenseFile struct {
	etas []*Dense
}

// Len returns the number of etas currently recorded.
func (f *DenseFile) Len() int { return len(f.etas) }

// Append records a new eta at the end of the file.
func (f *DenseFile) Append(e *Dense) { f.etas = append(f.etas, e) }

// Clear empties the file.
func (f *DenseFile) Clear() { f.etas = f.etas[:0] }

// Forward solves (E1*...*En)*x = y in place.
func (f *DenseFile) Forward(y []float64, pivotTol float64) error {
	for _, e := range f.etas {
		if err := e.Forward(y, pivotTol); err != nil {
			return err
		}
	}
	return nil
}

// Backward applies the inverse product in reverse eta order.
func (f *DenseFile) Backward(y []float64, pivotTol float64) error {
	for i := len(f.etas) - 1; i >= 0; i-- {
		if err := f.etas[i].Backward(y, pivotTol); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns an independent deep copy of the file.
func (f *DenseFile) Clone() *DenseFile {
	c := &DenseFile{etas: make([]*Dense, len(f.etas))}
	for i, e := range f.etas {
		cc := &Dense{Pivot: e.Pivot, Col: make([]float64, len(e.Col))}
		copy(cc.Col, e.Col)
		c.etas[i] = cc
	}
	return c
}
