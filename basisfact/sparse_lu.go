package basisfact

import (
	"github.com/NeuralNetworkVerification/Marabou-sub005/eta"
	"github.com/NeuralNetworkVerification/Marabou-sub005/gauss"
	"github.com/NeuralNetworkVerification/Marabou-sub005/lufactors"
	"github.com/NeuralNetworkVerification/Marabou-sub005/sparsevec"
)

// SparseLU is the sparse-LU-plus-eta-file variant: B = B0*E1*...*En,
// where B0 is the sparse LU factorization (package lufactors, produced
// by package gauss) computed at the last refactorization and the etas
// record every pivot since. Grounded in the source's
// SparseLUFactors.cpp composition of f/v-forward and f/v-backward
// transformations (§4.5.1) plus an eta file for updates (§4.5.2, the
// "LU-eta variants" branch).
type SparseLU struct {
	m      int
	cfg    Config
	oracle Oracle
	stats  Stats

	b0      *lufactors.LUFactors
	etaFile eta.SparseFile

	scratch []float64
}

// NewSparseLU constructs a sparse-LU façade of dimension m. It does not
// factorize until ObtainFreshBasis is called.
func NewSparseLU(m int, oracle Oracle, cfg Config, stats Stats) *SparseLU {
	return &SparseLU{
		m:       m,
		cfg:     cfg,
		oracle:  oracle,
		stats:   stats,
		b0:      lufactors.New(m),
		scratch: make([]float64, m),
	}
}

func (s *SparseLU) Dim() int { return s.m }

func (s *SparseLU) ForwardTransformation(y, x []float64) error {
	s.b0.Forward(y, s.scratch)
	copy(x, s.scratch)
	if err := s.etaFile.Forward(x, s.cfg.PivotEpsilon); err != nil {
		if refErr := s.ObtainFreshBasis(); refErr != nil {
			return refErr
		}
		return s.ForwardTransformation(y, x)
	}
	return nil
}

func (s *SparseLU) BackwardTransformation(y, x []float64) error {
	copy(s.scratch, y)
	if err := s.etaFile.Backward(s.scratch, s.cfg.PivotEpsilon); err != nil {
		if refErr := s.ObtainFreshBasis(); refErr != nil {
			return refErr
		}
		return s.BackwardTransformation(y, x)
	}
	s.b0.Backward(s.scratch, x)
	return nil
}

func (s *SparseLU) UpdateToAdjacentBasis(q int, changeColumn, newColumn []float64) error {
	s.etaFile.Append(eta.NewSparse(s.m, q, changeColumn, s.cfg.ZeroTolerance))
	if s.etaFile.Len() > s.cfg.RefactorizationThreshold {
		if s.stats != nil {
			s.stats.IncRefactorDueToInstability()
		}
		return s.ObtainFreshBasis()
	}
	return nil
}

func (s *SparseLU) ObtainFreshBasis() error {
	s.etaFile.Clear()
	columns, err := gatherSparseColumns(s.oracle, s.m)
	if err != nil {
		return err
	}
	fresh, err := gauss.Eliminate(s.m, columns, gauss.Config{
		PivotThreshold: s.cfg.PivotThreshold,
		ZeroTolerance:  s.cfg.ZeroTolerance,
		PivotEpsilon:   s.cfg.PivotEpsilon,
	})
	if err != nil {
		return ErrGaussianEliminationFailed
	}
	s.b0 = fresh
	if s.stats != nil {
		s.stats.IncRefactorizations()
	}
	return nil
}

func (s *SparseLU) ExplicitBasisAvailable() bool { return s.etaFile.Len() == 0 }

func (s *SparseLU) MakeExplicitBasisAvailable() error {
	if s.ExplicitBasisAvailable() {
		return nil
	}
	return s.ObtainFreshBasis()
}

func (s *SparseLU) InvertBasis(out []float64) error {
	if !s.ExplicitBasisAvailable() {
		return ErrCantInvertBasisBecauseOfEtas
	}
	return s.b0.InvertBasis(out)
}

func (s *SparseLU) Store(other Factorization) error {
	dst, ok := other.(*SparseLU)
	if !ok || dst.m != s.m {
		panic(ErrVariantMismatch)
	}
	if err := s.MakeExplicitBasisAvailable(); err != nil {
		return err
	}
	s.b0.CopyInto(dst.b0)
	dst.etaFile.Clear()
	return nil
}

func (s *SparseLU) Restore(from Factorization) error {
	src, ok := from.(*SparseLU)
	if !ok || src.m != s.m {
		panic(ErrVariantMismatch)
	}
	if !src.ExplicitBasisAvailable() {
		return ErrCantInvertBasisBecauseOfEtas
	}
	src.b0.CopyInto(s.b0)
	s.etaFile.Clear()
	return nil
}

func gatherSparseColumns(oracle Oracle, m int) ([]*sparsevec.Vector, error) {
	cols := make([]*sparsevec.Vector, m)
	for j := 0; j < m; j++ {
		col, err := oracle.BasisColumnSparse(j)
		if err != nil {
			return nil, ErrAllocationFailed
		}
		cols[j] = col
	}
	return cols, nil
}
