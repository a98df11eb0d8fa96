package lufactors

import "errors"

// Error is a string-typed error for programmer-facing invariant violations
// (dimension mismatches), following the mat64.Error convention of the
// gonum teacher package.
type Error string

func (e Error) Error() string { return string(e) }

// ErrShape is panicked when two LUFactors values of differing dimension
// are mixed.
const ErrShape = Error("lufactors: dimension mismatch")

// ErrCannotInvertWithEtas is returned by InvertBasis when Forrest-Tomlin
// updates have advanced P and Q past the permutation F was frozen under
// (UsePForF is set); maps to the façade's
// CANT_INVERT_BASIS_BECAUSE_OF_ETAS condition.
var ErrCannotInvertWithEtas = errors.New("lufactors: cannot invert basis while Forrest-Tomlin etas are pending")

// ErrCorruptFactors names the condition of a diagonal entry that is
// non-zero by construction reading as zero. No function in this package
// returns it.
var ErrCorruptFactors = errors.New("lufactors: corrupt factors (zero diagonal entry)")
