package sparsevec

// Matrix is an m×m sparse matrix stored as m sparse row vectors plus,
// when constructed WithColumns, a parallel set of m sparse column vectors
// kept in lock-step: for every stored (r, c, v) the same entry appears in
// both Row(r) and Col(c) with identical value. The basis-factorization
// façade relies on this symmetric storage (Design Notes, "Sparse row/column
// symmetry") so that both forward and backward solves can walk contiguous
// non-zeros without recomputing a transpose on every pivot.
type Matrix struct {
	m       int
	rows    []Vector
	cols    []Vector
	hasCols bool
}

// NewMatrix returns an empty m×m sparse matrix. withColumns enables the
// column-major shadow copy used by factors that need both orientations
// (F and V of package lufactors); a matrix that only ever walks rows can
// omit it to halve the bookkeeping cost of every mutation.
func NewMatrix(m int, withColumns bool) *Matrix {
	if m < 0 {
		panic(ErrNegativeDim)
	}
	mat := &Matrix{m: m, hasCols: withColumns}
	mat.rows = make([]Vector, m)
	for i := range mat.rows {
		mat.rows[i] = Vector{n: m}
	}
	if withColumns {
		mat.cols = make([]Vector, m)
		for j := range mat.cols {
			mat.cols[j] = Vector{n: m}
		}
	}
	return mat
}

// Dim returns the matrix dimension m.
func (mat *Matrix) Dim() int { return mat.m }

// HasColumns reports whether column-wise storage is maintained.
func (mat *Matrix) HasColumns() bool { return mat.hasCols }

// Row returns the sparse row vector r. The returned vector must not be
// mutated directly unless the caller is prepared to also fix up the
// column shadow; use Set for that.
func (mat *Matrix) Row(r int) *Vector {
	if r < 0 || r >= mat.m {
		panic(ErrIndexOutOfRange)
	}
	return &mat.rows[r]
}

// Col returns the sparse column vector c. Panics if the matrix was built
// without column storage.
func (mat *Matrix) Col(c int) *Vector {
	if !mat.hasCols {
		panic(ErrShape)
	}
	if c < 0 || c >= mat.m {
		panic(ErrIndexOutOfRange)
	}
	return &mat.cols[c]
}

// At returns the value at (r, c), or 0 if absent.
func (mat *Matrix) At(r, c int) float64 {
	return mat.Row(r).At(c)
}

// Set writes mat[r][c] = x, eliding the entry when |x| < tol, and keeps
// the row and column shadows in lock-step.
func (mat *Matrix) Set(r, c int, x, tol float64) {
	if r < 0 || r >= mat.m || c < 0 || c >= mat.m {
		panic(ErrIndexOutOfRange)
	}
	mat.rows[r].Set(c, x, tol)
	if mat.hasCols {
		mat.cols[c].Set(r, x, tol)
	}
}

// ClearColumn removes every entry in column c, from both the column
// shadow and the rows that referenced it. Used before a Forrest-Tomlin
// column rewrite (§4.5.2 step 1).
func (mat *Matrix) ClearColumn(c int) {
	if c < 0 || c >= mat.m {
		panic(ErrIndexOutOfRange)
	}
	if mat.hasCols {
		mat.cols[c].Do(func(r int, _ float64) {
			mat.rows[r].Set(c, 0, 1)
		})
		mat.cols[c].Clear()
	} else {
		for r := 0; r < mat.m; r++ {
			mat.rows[r].Set(c, 0, 1)
		}
	}
}

// ClearRow removes every entry in row r.
func (mat *Matrix) ClearRow(r int) {
	if r < 0 || r >= mat.m {
		panic(ErrIndexOutOfRange)
	}
	if mat.hasCols {
		mat.rows[r].Do(func(c int, _ float64) {
			mat.cols[c].Set(r, 0, 1)
		})
	}
	mat.rows[r].Clear()
}

// RowDense writes row r densely into dst (length m).
func (mat *Matrix) RowDense(r int, dst []float64) {
	mat.Row(r).ScatterTo(dst)
}

// SetRowFromDense replaces row r with the non-zero entries of a dense
// vector, eliding below tol, and updates the column shadow.
func (mat *Matrix) SetRowFromDense(r int, dense []float64, tol float64) {
	if r < 0 || r >= mat.m {
		panic(ErrIndexOutOfRange)
	}
	if mat.hasCols {
		mat.rows[r].Do(func(c int, _ float64) {
			mat.cols[c].Set(r, 0, 1)
		})
	}
	mat.rows[r].GatherFrom(dense, tol)
	if mat.hasCols {
		mat.rows[r].Do(func(c int, v float64) {
			mat.cols[c].Set(r, v, tol)
		})
	}
}

// ToDense writes the full matrix into dst, a row-major m*m slice.
func (mat *Matrix) ToDense(dst []float64) {
	if len(dst) != mat.m*mat.m {
		panic(ErrShape)
	}
	for i := range dst {
		dst[i] = 0
	}
	for r := 0; r < mat.m; r++ {
		mat.rows[r].Do(func(c int, v float64) {
			dst[r*mat.m+c] = v
		})
	}
}

// Clone returns an independent deep copy.
func (mat *Matrix) Clone() *Matrix {
	c := NewMatrix(mat.m, mat.hasCols)
	for r := 0; r < mat.m; r++ {
		mat.rows[r].Do(func(col int, v float64) {
			c.rows[r].Append(col, v)
		})
	}
	if mat.hasCols {
		for j := 0; j < mat.m; j++ {
			mat.cols[j].Do(func(row int, v float64) {
				c.cols[j].Append(row, v)
			})
		}
	}
	return c
}

// CopyInto overwrites dst with a deep copy of mat. dst must share mat's
// dimension and column-storage configuration.
func (mat *Matrix) CopyInto(dst *Matrix) {
	if dst.m != mat.m || dst.hasCols != mat.hasCols {
		panic(ErrShape)
	}
	for r := 0; r < mat.m; r++ {
		dst.rows[r].Clear()
		mat.rows[r].Do(func(c int, v float64) {
			dst.rows[r].Append(c, v)
		})
	}
	if mat.hasCols {
		for j := 0; j < mat.m; j++ {
			dst.cols[j].Clear()
			mat.cols[j].Do(func(r int, v float64) {
				dst.cols[j].Append(r, v)
			})
		}
	}
}
