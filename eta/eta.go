// Package eta implements the rank-one eta matrix update used to record a
// simplex pivot cheaply: an identity matrix with one column replaced, and
// the forward/backward elimination sweeps that apply it (and a list of
// such matrices) to a vector without ever materializing the matrix.
//
// The two sweeps follow the classical eta-file technique described in the
// source's SparseEtaMatrix and the LU-eta update path of
// IBasisFactorization::updateToAdjacentBasis (§4.3 of the design).
package eta

import (
	"math"

	"github.com/NeuralNetworkVerification/Marabou-sub005/sparsevec"
)

// Sparse is an eta matrix whose replaced column is stored sparsely. Pivot
// is the column index that was replaced; Col[Pivot] is the pivot entry
// and must be non-zero (checked against a tolerance at solve time, not at
// construction, since the column is produced by upstream solves that may
// not know the tolerance yet).
type Sparse struct {
	Pivot int
	Col   *sparsevec.Vector
}

// NewSparse builds an eta matrix from a dense change column, keeping only
// entries that pass tol.
func NewSparse(m, pivot int, changeColumn []float64, tol float64) *Sparse {
	col := sparsevec.NewVector(m)
	col.GatherFrom(changeColumn, tol)
	return &Sparse{Pivot: pivot, Col: col}
}

// Forward solves E*x = y in place: y is overwritten with x. Returns an
// error if the pivot entry is below pivotTol ("singular eta", §4.3);
// the caller is expected to refactorize from the oracle in that case.
func (e *Sparse) Forward(y []float64, pivotTol float64) error {
	pivotVal := e.Col.At(e.Pivot)
	if math.Abs(pivotVal) < pivotTol {
		return ErrSingularEta
	}
	xq := y[e.Pivot] / pivotVal
	e.Col.Do(func(i int, c float64) {
		if i == e.Pivot {
			return
		}
		y[i] -= xq * c
	})
	y[e.Pivot] = xq
	return nil
}

// Backward solves x*E = y in place: y is overwritten with x.
func (e *Sparse) Backward(y []float64, pivotTol float64) error {
	pivotVal := e.Col.At(e.Pivot)
	if math.Abs(pivotVal) < pivotTol {
		return ErrSingularEta
	}
	sum := 0.0
	e.Col.Do(func(i int, c float64) {
		if i == e.Pivot {
			return
		}
		sum += y[i] * c
	})
	y[e.Pivot] = (y[e.Pivot] - sum) / pivotVal
	return nil
}

// Dense is the dense-column analogue of Sparse, used by the dense-LU
// variant's eta file.
type Dense struct {
	Pivot int
	Col   []float64
}

// NewDense builds a dense eta matrix, copying changeColumn.
func NewDense(pivot int, changeColumn []float64) *Dense {
	col := make([]float64, len(changeColumn))
	copy(col, changeColumn)
	return &Dense{Pivot: pivot, Col: col}
}

// Forward solves E*x = y in place.
func (e *Dense) Forward(y []float64, pivotTol float64) error {
	pivotVal := e.Col[e.Pivot]
	if math.Abs(pivotVal) < pivotTol {
		return ErrSingularEta
	}
	xq := y[e.Pivot] / pivotVal
	for i, c := range e.Col {
		if i == e.Pivot || c == 0 {
			continue
		}
		y[i] -= xq * c
	}
	y[e.Pivot] = xq
	return nil
}

// Backward solves x*E = y in place.
func (e *Dense) Backward(y []float64, pivotTol float64) error {
	pivotVal := e.Col[e.Pivot]
	if math.Abs(pivotVal) < pivotTol {
		return ErrSingularEta
	}
	sum := 0.0
	for i, c := range e.Col {
		if i == e.Pivot || c == 0 {
			continue
		}
		sum += y[i] * c
	}
	y[e.Pivot] = (y[e.Pivot] - sum) / pivotVal
	return nil
}
