// Package permute implements the row/column permutation matrices used
// throughout the basis factorization: two mutually-inverse index arrays
// with O(1) swap and O(m) inversion, following the same identity-with-
// reordered-rows model as the source's PermutationMatrix
// (original_source/src/basis_factorization/PermutationMatrix.{h,cpp}).
package permute

// Permutation represents an m×m permutation matrix as two arrays. Row[i]
// is the column holding the single 1 in row i; Col is its inverse, so
// Col[Row[i]] == i holds after every mutation.
type Permutation struct {
	m   int
	Row []int
	Col []int
}

// NewIdentity returns the identity permutation of dimension m.
func NewIdentity(m int) *Permutation {
	if m < 0 {
		panic(ErrNegativeDim)
	}
	p := &Permutation{m: m, Row: make([]int, m), Col: make([]int, m)}
	p.ResetToIdentity()
	return p
}

// Dim returns the permutation's dimension.
func (p *Permutation) Dim() int { return p.m }

// ResetToIdentity restores the identity ordering.
func (p *Permutation) ResetToIdentity() {
	for i := range p.Row {
		p.Row[i] = i
		p.Col[i] = i
	}
}

// IsIdentity reports whether the permutation is currently the identity.
func (p *Permutation) IsIdentity() bool {
	for i, j := range p.Row {
		if i != j {
			return false
		}
	}
	return true
}

// SwapRows exchanges rows a and b, maintaining the mutual-inverse
// invariant between Row and Col.
func (p *Permutation) SwapRows(a, b int) {
	if a == b {
		return
	}
	ca, cb := p.Row[a], p.Row[b]
	p.Row[a], p.Row[b] = cb, ca
	p.Col[ca], p.Col[cb] = b, a
}

// SwapCols exchanges columns a and b, maintaining the mutual-inverse
// invariant between Row and Col.
func (p *Permutation) SwapCols(a, b int) {
	if a == b {
		return
	}
	ra, rb := p.Col[a], p.Col[b]
	p.Col[a], p.Col[b] = rb, ra
	p.Row[ra], p.Row[rb] = b, a
}

// FindRow returns Col[i], the position j with Row[j] == i. The
// name mirrors the source's findIndexOfRow: given a row of the identity
// that has been permuted into position i, find which position it now
// occupies.
func (p *Permutation) FindRow(i int) int {
	if i < 0 || i >= p.m {
		panic(ErrCorrupt)
	}
	j := p.Col[i]
	if j < 0 || j >= p.m || p.Row[j] != i {
		panic(ErrCorrupt)
	}
	return j
}

// Invert exchanges the Row and Col arrays in place, turning P into P^-1
// (equivalently P^T, since permutation matrices are orthogonal).
func (p *Permutation) Invert() {
	p.Row, p.Col = p.Col, p.Row
}

// InvertInto fills out with the inverse of p without mutating p.
func (p *Permutation) InvertInto(out *Permutation) {
	if out.m != p.m {
		panic(ErrShape)
	}
	copy(out.Row, p.Col)
	copy(out.Col, p.Row)
}

// Verify checks the mutual-inverse invariant, returning false if the
// orderings have become inconsistent (a corrupt-permutation condition
// the factorization treats as fatal, §4.2).
func (p *Permutation) Verify() bool {
	for i, j := range p.Row {
		if j < 0 || j >= p.m || p.Col[j] != i {
			return false
		}
	}
	return true
}

// Clone returns an independent deep copy.
func (p *Permutation) Clone() *Permutation {
	c := &Permutation{m: p.m, Row: make([]int, p.m), Col: make([]int, p.m)}
	copy(c.Row, p.Row)
	copy(c.Col, p.Col)
	return c
}

// CopyInto overwrites dst with a deep copy of p. dst must share p's
// dimension.
func (p *Permutation) CopyInto(dst *Permutation) {
	if dst.m != p.m {
		panic(ErrShape)
	}
	copy(dst.Row, p.Row)
	copy(dst.Col, p.Col)
}
