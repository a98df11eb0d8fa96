package basisfact

import "errors"

// The seven failure conditions of §4.5.6, grounded in the source's
// BasisFactorizationError.h enumeration. All are programmer/caller
// errors or unrecoverable numerical failure; none are retried inside
// the core.
var (
	ErrAllocationFailed                         = errors.New("basisfact: allocation failed")
	ErrCantInvertBasisBecauseOfEtas             = errors.New("basisfact: cannot invert basis because of etas")
	ErrCorruptPermutationMatrix                 = errors.New("basisfact: corrupt permutation matrix")
	ErrGaussianEliminationFailed                = errors.New("basisfact: gaussian elimination failed (malformed basis)")
	ErrUnknownBasisFactorizationType             = errors.New("basisfact: unknown basis factorization type")
	ErrFeatureNotYetSupported                    = errors.New("basisfact: feature not yet supported")
	ErrCantInvertBasisBecauseBasisIsntAvailable = errors.New("basisfact: cannot invert basis because an explicit basis isn't available")
)

// ErrVariantMismatch is panicked when Store/Restore is called with a peer
// of a different concrete variant or dimension — a programmer error, not
// one of the seven runtime conditions above.
var ErrVariantMismatch = errors.New("basisfact: store/restore peer is not the same variant and dimension")
