// Package basisfact implements the basis-factorization façade (C5): the
// public contract the simplex pivot loop drives every iteration, and its
// four interchangeable representations (dense-LU, sparse-LU, dense-FT,
// sparse-FT), composing the sparse primitives, permutations, eta
// matrices and Gaussian eliminator of the sibling packages.
//
// None of the four variants logs (§7). The two LU variants, on meeting
// a singular eta during a solve, refactorize from the oracle and repeat
// the solve once; other failures are reported as errors, and the caller
// — the simplex engine, outside this module's scope — decides whether to
// refactorize, pick a different basis, or abort the search node. Solves
// reuse buffers allocated at construction, except the dense-LU backward
// solve, which allocates two work slices of length m per call.
package basisfact

// Factorization is the capability set every variant exposes, matching
// the source's IBasisFactorization virtual interface (§4.5). The four
// concrete types satisfy it without further dynamic dispatch once
// constructed (§9, "Polymorphism over four variants").
type Factorization interface {
	// Dim returns m, fixed at construction.
	Dim() int

	// ForwardTransformation finds x with B*x = y (§4.5.1).
	ForwardTransformation(y, x []float64) error
	// BackwardTransformation finds x with x*B = y (§4.5.1).
	BackwardTransformation(y, x []float64) error

	// UpdateToAdjacentBasis informs the factorization that column q of B
	// has been replaced with a, where d = B^-1*a (§4.5.2).
	UpdateToAdjacentBasis(q int, changeColumn, newColumn []float64) error

	// ObtainFreshBasis clears all updates and refactorizes from the
	// oracle (§4.5.3).
	ObtainFreshBasis() error

	// ExplicitBasisAvailable reports whether InvertBasis can succeed
	// without refactorizing first (§4.5.4).
	ExplicitBasisAvailable() bool
	// MakeExplicitBasisAvailable refactorizes if necessary so that
	// ExplicitBasisAvailable becomes true.
	MakeExplicitBasisAvailable() error
	// InvertBasis computes B^-1 into out, a row-major m*m slice.
	InvertBasis(out []float64) error

	// Store deep-copies this factorization's representation into other,
	// first collapsing any pending updates by refactorizing self
	// (§4.5.5). other must be the same concrete type and dimension.
	Store(other Factorization) error
	// Restore deep-copies from's representation into this factorization
	// and clears any pending updates. from must have an empty update log.
	Restore(from Factorization) error
}
