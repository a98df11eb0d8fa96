package basisfact

import (
	"math"

	"github.com/NeuralNetworkVerification/Marabou-sub005/eta"
)

// denseLU holds a dense LU factorization with partial pivoting: a single
// m*m row-major buffer storing L below the diagonal (unit, implicit) and
// U on and above it, plus the row permutation applied during
// elimination. The layout follows the combined-storage convention of
// the teacher's mat64.LU (gonum.org/v1/gonum/mat64/lu.go), adapted here
// to hand-rolled partial pivoting since the basis dimension is small
// relative to BLAS's crossover point and the façade needs direct access
// to the permutation for BackwardTransformation's transpose solve.
type denseLU struct {
	m    int
	lu   []float64
	perm []int
}

func factorizeDense(a []float64, m int, zeroTol float64) (*denseLU, error) {
	lu := make([]float64, len(a))
	copy(lu, a)
	perm := make([]int, m)
	for i := range perm {
		perm[i] = i
	}
	for k := 0; k < m; k++ {
		maxRow, maxVal := k, math.Abs(lu[k*m+k])
		for i := k + 1; i < m; i++ {
			if v := math.Abs(lu[i*m+k]); v > maxVal {
				maxVal, maxRow = v, i
			}
		}
		if maxVal < zeroTol {
			return nil, ErrGaussianEliminationFailed
		}
		if maxRow != k {
			for c := 0; c < m; c++ {
				lu[k*m+c], lu[maxRow*m+c] = lu[maxRow*m+c], lu[k*m+c]
			}
			perm[k], perm[maxRow] = perm[maxRow], perm[k]
		}
		pivot := lu[k*m+k]
		for i := k + 1; i < m; i++ {
			mult := lu[i*m+k] / pivot
			lu[i*m+k] = mult
			if mult != 0 {
				for c := k + 1; c < m; c++ {
					lu[i*m+c] -= mult * lu[k*m+c]
				}
			}
		}
	}
	return &denseLU{m: m, lu: lu, perm: perm}, nil
}

// forward solves A*x = y given A = Perm'*L*U, writing x.
func (d *denseLU) forward(y, x []float64) {
	m := d.m
	z := x // reuse x as scratch for the forward sweep
	for i := 0; i < m; i++ {
		z[i] = y[d.perm[i]]
	}
	for i := 0; i < m; i++ {
		sum := z[i]
		for j := 0; j < i; j++ {
			sum -= d.lu[i*m+j] * z[j]
		}
		z[i] = sum
	}
	for i := m - 1; i >= 0; i-- {
		sum := z[i]
		for j := i + 1; j < m; j++ {
			sum -= d.lu[i*m+j] * z[j]
		}
		z[i] = sum / d.lu[i*m+i]
	}
}

// backward solves x*A = y, writing x.
func (d *denseLU) backward(y, x []float64) {
	m := d.m
	w := make([]float64, m)
	for i := 0; i < m; i++ {
		sum := y[i]
		for j := 0; j < i; j++ {
			sum -= d.lu[j*m+i] * w[j]
		}
		w[i] = sum / d.lu[i*m+i]
	}
	v := make([]float64, m)
	for i := m - 1; i >= 0; i-- {
		sum := w[i]
		for j := i + 1; j < m; j++ {
			sum -= d.lu[j*m+i] * v[j]
		}
		v[i] = sum
	}
	for i := 0; i < m; i++ {
		x[d.perm[i]] = v[i]
	}
}

func (d *denseLU) clone() *denseLU {
	c := &denseLU{m: d.m, lu: make([]float64, len(d.lu)), perm: make([]int, len(d.perm))}
	copy(c.lu, d.lu)
	copy(c.perm, d.perm)
	return c
}

// DenseLU is the dense-LU-plus-eta-file variant: the same B0*E1*...*En
// composition as SparseLU, but B0 is a dense partial-pivot LU
// factorization and the eta file stores dense columns.
type DenseLU struct {
	m      int
	cfg    Config
	oracle Oracle
	stats  Stats

	b0      *denseLU
	etaFile eta.DenseFile

	scratch []float64
	col     []float64
}

// NewDenseLU constructs a dense-LU façade of dimension m.
func NewDenseLU(m int, oracle Oracle, cfg Config, stats Stats) *DenseLU {
	return &DenseLU{
		m:       m,
		cfg:     cfg,
		oracle:  oracle,
		stats:   stats,
		scratch: make([]float64, m),
		col:     make([]float64, m),
	}
}

func (d *DenseLU) Dim() int { return d.m }

func (d *DenseLU) ForwardTransformation(y, x []float64) error {
	if d.b0 == nil {
		if err := d.ObtainFreshBasis(); err != nil {
			return err
		}
	}
	d.b0.forward(y, d.scratch)
	copy(x, d.scratch)
	if err := d.etaFile.Forward(x, d.cfg.PivotEpsilon); err != nil {
		if refErr := d.ObtainFreshBasis(); refErr != nil {
			return refErr
		}
		return d.ForwardTransformation(y, x)
	}
	return nil
}

func (d *DenseLU) BackwardTransformation(y, x []float64) error {
	if d.b0 == nil {
		if err := d.ObtainFreshBasis(); err != nil {
			return err
		}
	}
	copy(d.scratch, y)
	if err := d.etaFile.Backward(d.scratch, d.cfg.PivotEpsilon); err != nil {
		if refErr := d.ObtainFreshBasis(); refErr != nil {
			return refErr
		}
		return d.BackwardTransformation(y, x)
	}
	d.b0.backward(d.scratch, x)
	return nil
}

func (d *DenseLU) UpdateToAdjacentBasis(q int, changeColumn, newColumn []float64) error {
	d.etaFile.Append(eta.NewDense(q, changeColumn))
	if d.etaFile.Len() > d.cfg.RefactorizationThreshold {
		if d.stats != nil {
			d.stats.IncRefactorDueToInstability()
		}
		return d.ObtainFreshBasis()
	}
	return nil
}

func (d *DenseLU) ObtainFreshBasis() error {
	d.etaFile.Clear()
	dense := make([]float64, d.m*d.m)
	for j := 0; j < d.m; j++ {
		if err := d.oracle.BasisColumnDense(j, d.col); err != nil {
			return ErrAllocationFailed
		}
		for i := 0; i < d.m; i++ {
			dense[i*d.m+j] = d.col[i]
		}
	}
	fresh, err := factorizeDense(dense, d.m, d.cfg.ZeroTolerance)
	if err != nil {
		return ErrGaussianEliminationFailed
	}
	d.b0 = fresh
	if d.stats != nil {
		d.stats.IncRefactorizations()
	}
	return nil
}

func (d *DenseLU) ExplicitBasisAvailable() bool { return d.etaFile.Len() == 0 }

func (d *DenseLU) MakeExplicitBasisAvailable() error {
	if d.ExplicitBasisAvailable() {
		return nil
	}
	return d.ObtainFreshBasis()
}

func (d *DenseLU) InvertBasis(out []float64) error {
	if !d.ExplicitBasisAvailable() {
		return ErrCantInvertBasisBecauseOfEtas
	}
	if d.b0 == nil {
		return ErrCantInvertBasisBecauseBasisIsntAvailable
	}
	e := make([]float64, d.m)
	col := make([]float64, d.m)
	for k := 0; k < d.m; k++ {
		for i := range e {
			e[i] = 0
		}
		e[k] = 1
		d.b0.forward(e, col)
		for i := 0; i < d.m; i++ {
			out[i*d.m+k] = col[i]
		}
	}
	return nil
}

func (d *DenseLU) Store(other Factorization) error {
	dst, ok := other.(*DenseLU)
	if !ok || dst.m != d.m {
		panic(ErrVariantMismatch)
	}
	if err := d.MakeExplicitBasisAvailable(); err != nil {
		return err
	}
	dst.b0 = d.b0.clone()
	dst.etaFile.Clear()
	return nil
}

func (d *DenseLU) Restore(from Factorization) error {
	src, ok := from.(*DenseLU)
	if !ok || src.m != d.m {
		panic(ErrVariantMismatch)
	}
	if !src.ExplicitBasisAvailable() {
		return ErrCantInvertBasisBecauseOfEtas
	}
	d.b0 = src.b0.clone()
	d.etaFile.Clear()
	return nil
}
