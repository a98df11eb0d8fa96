package basisfact

import (
	"math"

	"github.com/NeuralNetworkVerification/Marabou-sub005/eta"
	"github.com/NeuralNetworkVerification/Marabou-sub005/gauss"
	"github.com/NeuralNetworkVerification/Marabou-sub005/lufactors"
)

// SparseFT is the sparse Forrest-Tomlin variant: B = F*H*V, where F and V
// are the sparse LU factors of the last refactorization (package
// lufactors) and H = E1*...*En is a file of single-pivot eta updates
// (package eta) with one eta for each update since then that had to
// eliminate a spike row; updates that leave V triangular add none.
// Grounded in the source's SparseFTFactorization.cpp, in particular
// updateToAdjacentBasis's six-step spike handling (§4.5.2).
type SparseFT struct {
	m      int
	cfg    Config
	oracle Oracle
	stats  Stats

	lu      *lufactors.LUFactors
	etaFile eta.UnitSparseFile

	z1, z2, z3, z4 []float64
	multBuf        []float64
}

// NewSparseFT constructs a sparse Forrest-Tomlin façade of dimension m.
func NewSparseFT(m int, oracle Oracle, cfg Config, stats Stats) *SparseFT {
	return &SparseFT{
		m:       m,
		cfg:     cfg,
		oracle:  oracle,
		stats:   stats,
		lu:      lufactors.New(m),
		z1:      make([]float64, m),
		z2:      make([]float64, m),
		z3:      make([]float64, m),
		z4:      make([]float64, m),
		multBuf: make([]float64, m),
	}
}

func (s *SparseFT) Dim() int { return s.m }

// ForwardTransformation solves B*x = y via F, then H, then V in turn.
func (s *SparseFT) ForwardTransformation(y, x []float64) error {
	s.lu.FForward(y, s.z1)
	copy(s.z2, s.z1)
	s.etaFile.Forward(s.z2)
	s.lu.VForward(s.z2, x)
	return nil
}

// BackwardTransformation solves x*B = y via V, then H, then F in turn.
func (s *SparseFT) BackwardTransformation(y, x []float64) error {
	s.lu.VBackward(y, s.z1)
	copy(s.z2, s.z1)
	s.etaFile.Backward(s.z2)
	s.lu.FBackward(s.z2, x)
	return nil
}

// UpdateToAdjacentBasis replaces column q of B with the raw column a
// (newColumn), per the six-step spike procedure: rewrite V's column,
// detect whether U stayed triangular, if not cyclically permute the
// spike from a column to a row and eliminate it against the existing
// diagonal pivots, recording the elimination as a new eta. changeColumn
// (d = B^-1*a) is unused here; the FT variant rebuilds it itself via
// F and H, since H may have grown since d was computed by the caller.
func (s *SparseFT) UpdateToAdjacentBasis(q int, changeColumn, newColumn []float64) error {
	if s.etaFile.Len() > s.cfg.RefactorizationThreshold {
		if s.stats != nil {
			s.stats.IncRefactorDueToInstability()
		}
		return s.ObtainFreshBasis()
	}

	s.lu.FreezePForF()

	// Step 1: the U-position of the column being replaced, and the V-row
	// presently diagonal at that position.
	uColumnIndex := s.lu.Q.FindRow(q)
	vRowDiagonalIndex := s.lu.P.Row[uColumnIndex]

	s.lu.FForward(newColumn, s.z3)
	copy(s.z4, s.z3)
	s.etaFile.Forward(s.z4)

	lastNonZeroEntryInU := 0
	s.lu.V.ClearColumn(q)
	for i := 0; i < s.m; i++ {
		if math.Abs(s.z4[i]) >= s.cfg.ZeroTolerance {
			uRow := s.lu.P.FindRow(i)
			if uRow > lastNonZeroEntryInU {
				lastNonZeroEntryInU = uRow
			}
			s.lu.V.Set(i, q, s.z4[i], s.cfg.ZeroTolerance)
		}
	}
	pivotElement := s.z4[vRowDiagonalIndex]

	// Step 2: U stayed upper triangular.
	if lastNonZeroEntryInU <= uColumnIndex {
		s.lu.Diag[vRowDiagonalIndex] = pivotElement
		return nil
	}

	// Step 3: move the spike from a column to a row by cyclically
	// permuting positions uColumnIndex..lastNonZeroEntryInU.
	P, Q := s.lu.P, s.lu.Q
	for i := uColumnIndex; i < lastNonZeroEntryInU; i++ {
		P.Row[i] = P.Row[i+1]
		Q.Row[i] = Q.Row[i+1]
		P.Col[P.Row[i]] = i
		Q.Col[Q.Row[i]] = i
	}
	P.Row[lastNonZeroEntryInU] = vRowDiagonalIndex
	Q.Row[lastNonZeroEntryInU] = q
	P.Col[vRowDiagonalIndex] = lastNonZeroEntryInU
	Q.Col[q] = lastNonZeroEntryInU

	haveSpike := false
	s.lu.V.Row(vRowDiagonalIndex).Do(func(vColumn int, _ float64) {
		if Q.FindRow(vColumn) < lastNonZeroEntryInU {
			haveSpike = true
		}
	})
	if !haveSpike {
		s.lu.Diag[vRowDiagonalIndex] = pivotElement
		return nil
	}

	// Step 4: eliminate the spike row against the existing diagonal
	// pivots at positions uColumnIndex..lastNonZeroEntryInU-1, recording
	// each multiplier in a new eta whose implicit pivot is 1.
	s.lu.V.RowDense(vRowDiagonalIndex, s.z3)
	for i := range s.multBuf {
		s.multBuf[i] = 0
	}
	for i := uColumnIndex; i < lastNonZeroEntryInU; i++ {
		vPivotRow := P.Row[i]
		vPivotColumn := Q.Row[i]
		subDiagonal := s.z3[vPivotColumn]
		if math.Abs(subDiagonal) < s.cfg.ZeroTolerance {
			continue
		}
		pivot := s.lu.Diag[vPivotRow]
		multiplier := subDiagonal / pivot
		s.multBuf[vPivotRow] = multiplier
		s.lu.V.Row(vPivotRow).Do(func(col int, val float64) {
			if col == vPivotColumn {
				s.z3[col] = 0
				return
			}
			s.z3[col] -= multiplier * val
			if math.Abs(s.z3[col]) < s.cfg.ZeroTolerance {
				s.z3[col] = 0
			}
		})
		s.z3[vPivotColumn] = 0
	}

	if math.Abs(s.z3[q]) < s.cfg.FTDiagonalTolerance {
		return s.ObtainFreshBasis()
	}

	// Step 5: record the elimination.
	s.etaFile.Append(eta.NewUnitSparse(s.m, vRowDiagonalIndex, s.multBuf, s.cfg.ZeroTolerance))

	// Step 6: write the eliminated spike row back into V.
	s.lu.V.SetRowFromDense(vRowDiagonalIndex, s.z3, s.cfg.ZeroTolerance)
	s.lu.Diag[vRowDiagonalIndex] = s.z3[q]

	if s.stats != nil {
		s.stats.IncFTUpdates()
	}
	if s.etaFile.Len() > s.cfg.RefactorizationThreshold {
		if s.stats != nil {
			s.stats.IncRefactorDueToInstability()
		}
		return s.ObtainFreshBasis()
	}
	return nil
}

func (s *SparseFT) ObtainFreshBasis() error {
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
	s.lu = fresh
	if s.stats != nil {
		s.stats.IncRefactorizations()
	}
	return nil
}

func (s *SparseFT) ExplicitBasisAvailable() bool {
	return s.etaFile.Len() == 0 && !s.lu.UsePForF
}

func (s *SparseFT) MakeExplicitBasisAvailable() error {
	if s.ExplicitBasisAvailable() {
		return nil
	}
	return s.ObtainFreshBasis()
}

func (s *SparseFT) InvertBasis(out []float64) error {
	if !s.ExplicitBasisAvailable() {
		return ErrCantInvertBasisBecauseOfEtas
	}
	return s.lu.InvertBasis(out)
}

func (s *SparseFT) Store(other Factorization) error {
	dst, ok := other.(*SparseFT)
	if !ok || dst.m != s.m {
		panic(ErrVariantMismatch)
	}
	if err := s.MakeExplicitBasisAvailable(); err != nil {
		return err
	}
	s.lu.CopyInto(dst.lu)
	dst.etaFile.Clear()
	return nil
}

func (s *SparseFT) Restore(from Factorization) error {
	src, ok := from.(*SparseFT)
	if !ok || src.m != s.m {
		panic(ErrVariantMismatch)
	}
	if !src.ExplicitBasisAvailable() {
		return ErrCantInvertBasisBecauseOfEtas
	}
	src.lu.CopyInto(s.lu)
	s.etaFile.Clear()
	return nil
}
