// Package lufactors holds the LU-factors representation shared by every
// basis-factorization variant: A = F*V with F = P*L*P' (unit lower
// triangular once permuted) and V = P*U*Q (upper triangular once
// permuted), plus the diagonal of U stored explicitly in Diag.
//
// The type mirrors SparseLUFactors from the source
// (original_source/src/basis_factorization/SparseLUFactors.{h,cpp}),
// collapsing its four sparse containers (F, Ft, V, Vt) into two
// row/column-symmetric sparsevec.Matrix values per Design Notes option
// (a): a matrix-with-transpose type that updates both orientations in
// lock-step, rather than storing the transpose separately.
package lufactors

import (
	"github.com/NeuralNetworkVerification/Marabou-sub005/permute"
	"github.com/NeuralNetworkVerification/Marabou-sub005/sparsevec"
)

// LUFactors is the output of Gaussian elimination (package gauss) and the
// representation the basis-factorization façade solves against.
type LUFactors struct {
	M int

	// F is strictly lower-triangular below an implicit unit diagonal,
	// stored row- and column-wise; F = P*L*P'.
	F *sparsevec.Matrix
	// V is upper-triangular once permuted by P and Q; V = P*U*Q. Its own
	// diagonal (in V's natural indexing) is never read: Diag supplies it.
	V *sparsevec.Matrix

	P *permute.Permutation
	Q *permute.Permutation

	// Diag holds U's diagonal, indexed by V-row: Diag[P.Row[i]] is the
	// pivot used at elimination step i.
	Diag []float64

	// PForF is a copy of P frozen at the most recent refactorization, used
	// to read L out of F once Forrest-Tomlin updates have continued to
	// mutate P and Q for V's sake. UsePForF is false until the first
	// post-refactorization FT update switches it on.
	PForF    *permute.Permutation
	UsePForF bool

	work []float64
	z    []float64
}

// New allocates an empty LUFactors of dimension m. Callers populate F, V,
// P, Q and Diag (typically via package gauss) before using the solves.
func New(m int) *LUFactors {
	return &LUFactors{
		M:     m,
		F:     sparsevec.NewMatrix(m, true),
		V:     sparsevec.NewMatrix(m, true),
		P:     permute.NewIdentity(m),
		Q:     permute.NewIdentity(m),
		Diag:  make([]float64, m),
		PForF: permute.NewIdentity(m),
		work:  make([]float64, m),
		z:     make([]float64, m),
	}
}

func (lu *LUFactors) fPermutation() *permute.Permutation {
	if lu.UsePForF {
		return lu.PForF
	}
	return lu.P
}

// FreezePForF copies the current P into PForF and switches F's
// permutation reading over to it. The first update after a
// refactorization does this so that later changes to Q and P (driven by
// V's spike elimination) leave the L = P'*F*P reading of F undisturbed.
func (lu *LUFactors) FreezePForF() {
	if lu.UsePForF {
		return
	}
	lu.P.CopyInto(lu.PForF)
	lu.UsePForF = true
}

// FForward solves F*x = y, writing the result into x (which may alias
// neither the scratch buffers nor, safely, y itself unless the caller
// has already copied it).
//
// p.Row[pos] is the original row that elimination step pos assigned to
// that position; p.Col is its inverse (identity row -> position). The
// l-order sweep below walks positions 0..m-1 and translates each to the
// original F-row via Row.
func (lu *LUFactors) FForward(y, x []float64) {
	copy(x, y)
	p := lu.fPermutation()
	for lRow := 0; lRow < lu.M; lRow++ {
		fRow := p.Row[lRow]
		lu.F.Row(fRow).Do(func(fCol int, v float64) {
			x[fRow] -= x[fCol] * v
		})
	}
}

// FBackward solves x*F = y, writing the result into x.
func (lu *LUFactors) FBackward(y, x []float64) {
	copy(x, y)
	p := lu.fPermutation()
	for lCol := lu.M - 1; lCol >= 0; lCol-- {
		fCol := p.Row[lCol]
		lu.F.Col(fCol).Do(func(fRow int, v float64) {
			x[fCol] -= v * x[fRow]
		})
	}
}

// VForward solves V*x = y, writing the result into x.
func (lu *LUFactors) VForward(y, x []float64) {
	w := lu.work
	copy(w, y)
	for uRow := lu.M - 1; uRow >= 0; uRow-- {
		vRow := lu.P.Row[uRow]
		vCol := lu.Q.Row[uRow]
		diag := lu.Diag[vRow]
		xElem := w[vRow] / diag
		x[vCol] = xElem
		if xElem != 0 {
			lu.V.Col(vCol).Do(func(i int, v float64) {
				w[i] -= xElem * v
			})
		}
	}
}

// VBackward solves x*V = y, writing the result into x.
func (lu *LUFactors) VBackward(y, x []float64) {
	w := lu.work
	copy(w, y)
	for ut := 0; ut < lu.M; ut++ {
		vRow := lu.P.Row[ut]
		vCol := lu.Q.Row[ut]
		diag := lu.Diag[vRow]
		xElem := w[vCol] / diag
		x[vRow] = xElem
		if xElem != 0 {
			lu.V.Row(vRow).Do(func(i int, v float64) {
				w[i] -= xElem * v
			})
		}
	}
}

// Forward solves A*x = y where A = F*V, writing the result into x.
func (lu *LUFactors) Forward(y, x []float64) {
	lu.FForward(y, lu.z)
	lu.VForward(lu.z, x)
}

// Backward solves x*A = y where A = F*V, writing the result into x.
func (lu *LUFactors) Backward(y, x []float64) {
	lu.VBackward(y, lu.z)
	lu.FBackward(lu.z, x)
}

// InvertBasis computes B^-1 into result (a row-major m*m slice) by
// solving B*x = e_k for every standard basis vector e_k and writing x as
// column k of the result. Each solve reuses the already-verified Forward
// sweep, so the permutation bookkeeping is exercised exactly once rather
// than re-derived here; §4.5.4 describes an equivalent direct sweep over
// L and U for implementations that forgo the m extra solves.
//
// It requires UsePForF to be false: a non-trivial PForF means F can no
// longer be read against the same P that indexes V, and the factors
// must be refreshed first (CANT_INVERT_BASIS_BECAUSE_OF_ETAS at the
// façade layer covers this).
func (lu *LUFactors) InvertBasis(result []float64) error {
	if lu.UsePForF {
		return ErrCannotInvertWithEtas
	}
	m := lu.M
	if m == 0 {
		return nil
	}
	e := make([]float64, m)
	col := make([]float64, m)
	for k := 0; k < m; k++ {
		for i := range e {
			e[i] = 0
		}
		e[k] = 1
		lu.Forward(e, col)
		for i := 0; i < m; i++ {
			result[i*m+k] = col[i]
		}
	}
	return nil
}

// ToDense reconstructs A = F*V densely into dst (row-major m*m), for
// invariant checking (I5).
func (lu *LUFactors) ToDense(dst []float64) {
	m := lu.M
	fDense := make([]float64, m*m)
	lu.F.ToDense(fDense)
	for i := 0; i < m; i++ {
		fDense[i*m+i] = 1
	}
	vDense := make([]float64, m*m)
	lu.V.ToDense(vDense)
	for i := 0; i < m; i++ {
		vDense[lu.P.Row[i]*m+lu.Q.Row[i]] = lu.Diag[lu.P.Row[i]]
	}
	for i := 0; i < m*m; i++ {
		dst[i] = 0
	}
	for i := 0; i < m; i++ {
		for k := 0; k < m; k++ {
			fik := fDense[i*m+k]
			if fik == 0 {
				continue
			}
			for j := 0; j < m; j++ {
				dst[i*m+j] += fik * vDense[k*m+j]
			}
		}
	}
}

// Clone returns an independent deep copy of lu.
func (lu *LUFactors) Clone() *LUFactors {
	c := New(lu.M)
	lu.CopyInto(c)
	return c
}

// CopyInto overwrites dst with a deep copy of lu. dst must share lu's
// dimension.
func (lu *LUFactors) CopyInto(dst *LUFactors) {
	if dst.M != lu.M {
		panic(ErrShape)
	}
	lu.F.CopyInto(dst.F)
	lu.V.CopyInto(dst.V)
	lu.P.CopyInto(dst.P)
	lu.Q.CopyInto(dst.Q)
	copy(dst.Diag, lu.Diag)
	dst.UsePForF = false
}
