package basisfact

import "github.com/NeuralNetworkVerification/Marabou-sub005/sparsevec"

// Oracle is the single external collaborator the factorization depends
// on: given a column index of the current basis matrix B, it reports
// that column. Implementations typically read it out of the simplex
// engine's tableau; the factorization never retains a reference to
// anything the oracle returns beyond the call that produced it.
type Oracle interface {
	// BasisColumnDense writes column j of B into dst, which has length m.
	BasisColumnDense(j int, dst []float64) error
	// BasisColumnSparse returns column j of B as a sparse vector of
	// length m, for the sparse variants' refactorization path.
	BasisColumnSparse(j int) (*sparsevec.Vector, error)
}
