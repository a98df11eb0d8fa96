package gauss

import "errors"

// Error is a string-typed error for programmer-facing invariant
// violations, following the mat64.Error convention of the gonum
// teacher package.
type Error string

func (e Error) Error() string { return string(e) }

// ErrShape is panicked when the supplied columns don't match the
// declared dimension.
const ErrShape = Error("gauss: dimension mismatch")

// ErrEliminationFailed is returned when no pivot candidate survives
// even the most relaxed stability threshold — a singular basis. Maps to
// the façade's GAUSSIAN_ELIMINATION_FAILED condition (§4.5.6).
var ErrEliminationFailed = errors.New("gauss: elimination failed (singular basis under relaxed Markowitz pivoting)")
