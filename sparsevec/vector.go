// Package sparsevec provides indexed storage for the sparse vectors and
// matrices that the basis factorization operates over: unordered
// (index, value) lists with O(nnz) iteration, dense materialization, and
// the zero-elision convention shared by every producer in the package tree.
package sparsevec

// Vector is an unordered list of (index, value) entries, index < Len(),
// with no duplicate indices and no entries whose value is exactly zero
// once Set has been used to write them. Producers that bypass Set (via
// Append) are responsible for the same convention.
//
// Iteration order is implementation-defined but stable between mutations,
// matching the contract used by every consumer in this module: two calls
// to Do between mutations visit entries in the same order.
type Vector struct {
	n   int
	idx []int
	val []float64
}

// NewVector returns an empty sparse vector of dimension n.
func NewVector(n int) *Vector {
	if n < 0 {
		panic(ErrNegativeDim)
	}
	return &Vector{n: n}
}

// Len returns the vector's fixed dimension.
func (v *Vector) Len() int { return v.n }

// NNZ returns the number of stored entries, which may include explicit
// zeros left behind by Append.
func (v *Vector) NNZ() int { return len(v.idx) }

func (v *Vector) position(i int) int {
	for k, j := range v.idx {
		if j == i {
			return k
		}
	}
	return -1
}

// At returns the stored value at i, or 0 if absent. It panics if i is out
// of range; a size mismatch between operands is a programmer error, not a
// runtime condition the package recovers from.
func (v *Vector) At(i int) float64 {
	if i < 0 || i >= v.n {
		panic(ErrIndexOutOfRange)
	}
	if k := v.position(i); k >= 0 {
		return v.val[k]
	}
	return 0
}

// Set writes v[i] = x, erasing the entry when |x| is below tol. This is
// the sole source of zero elision in the package and every producer that
// cannot guarantee the absence of index i must route through it.
func (v *Vector) Set(i int, x, tol float64) {
	if i < 0 || i >= v.n {
		panic(ErrIndexOutOfRange)
	}
	k := v.position(i)
	if x > -tol && x < tol {
		if k >= 0 {
			last := len(v.idx) - 1
			v.idx[k] = v.idx[last]
			v.val[k] = v.val[last]
			v.idx = v.idx[:last]
			v.val = v.val[:last]
		}
		return
	}
	if k >= 0 {
		v.val[k] = x
		return
	}
	v.idx = append(v.idx, i)
	v.val = append(v.val, x)
}

// Append adds (i, x) without checking for an existing entry at i. It is a
// fast path for producers that can guarantee the index is not already
// present; callers that cannot make that guarantee must call Set instead.
func (v *Vector) Append(i int, x float64) {
	if i < 0 || i >= v.n {
		panic(ErrIndexOutOfRange)
	}
	v.idx = append(v.idx, i)
	v.val = append(v.val, x)
}

// Clear empties the vector without changing its dimension.
func (v *Vector) Clear() {
	v.idx = v.idx[:0]
	v.val = v.val[:0]
}

// Do calls fn once for every stored entry. fn must not mutate the vector.
func (v *Vector) Do(fn func(i int, x float64)) {
	for k, i := range v.idx {
		fn(i, v.val[k])
	}
}

// ScatterTo writes the dense form of v into dst, which must have length
// Len(). Absent indices are zero-filled and no allocation occurs.
func (v *Vector) ScatterTo(dst []float64) {
	if len(dst) != v.n {
		panic(ErrShape)
	}
	for i := range dst {
		dst[i] = 0
	}
	for k, i := range v.idx {
		dst[i] = v.val[k]
	}
}

// GatherFrom replaces v's contents with the non-zero entries of a dense
// vector src (length Len()), eliding entries below tol.
func (v *Vector) GatherFrom(src []float64, tol float64) {
	if len(src) != v.n {
		panic(ErrShape)
	}
	v.Clear()
	for i, x := range src {
		if x <= -tol || x >= tol {
			v.Append(i, x)
		}
	}
}

// Clone returns an independent deep copy of v.
func (v *Vector) Clone() *Vector {
	c := &Vector{n: v.n}
	c.idx = append(c.idx, v.idx...)
	c.val = append(c.val, v.val...)
	return c
}
