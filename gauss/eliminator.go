// Package gauss implements Gaussian elimination with Markowitz pivoting:
// given the m sparse columns of a basis matrix, it produces the
// lufactors.LUFactors representation A = F*V (§4.4 of the design,
// grounded in the header-only SparseGaussianEliminator from the source —
// original_source/src/basis_factorization/SparseGaussianEliminator.h —
// whose .cpp did not ship with the retrieval pack, so the step-by-step
// algorithm here follows the textual specification, calibrated against
// the worked pivoting example in its test scenarios).
package gauss

import (
	"math"

	"github.com/bits-and-blooms/bitset"

	"github.com/NeuralNetworkVerification/Marabou-sub005/lufactors"
	"github.com/NeuralNetworkVerification/Marabou-sub005/sparsevec"
)

// Config holds the tunables of the elimination.
type Config struct {
	// PivotThreshold is the stability fraction of the column maximum a
	// candidate pivot must clear; relaxed geometrically toward
	// PivotEpsilon when no candidate at the current threshold exists.
	PivotThreshold float64
	// ZeroTolerance (ε_zero) is the magnitude below which an arithmetic
	// result is elided as zero.
	ZeroTolerance float64
	// PivotEpsilon (ε_pivot) is the floor of threshold relaxation and the
	// absolute stability bound used once relative relaxation is exhausted.
	PivotEpsilon float64
}

// DefaultConfig returns the configuration described in §6: a 0.1
// stability fraction and a 1e-9 zero/pivot tolerance.
func DefaultConfig() Config {
	return Config{PivotThreshold: 0.1, ZeroTolerance: 1e-9, PivotEpsilon: 1e-9}
}

// Eliminate factors the m×m matrix given by its columns into LU factors.
// columns[j] must have length m; columns are read, never retained or
// mutated.
func Eliminate(m int, columns []*sparsevec.Vector, cfg Config) (*lufactors.LUFactors, error) {
	if len(columns) != m {
		panic(ErrShape)
	}
	lu := lufactors.New(m)
	if m == 0 {
		return lu, nil
	}

	work := sparsevec.NewMatrix(m, true)
	for c, col := range columns {
		if col.Len() != m {
			panic(ErrShape)
		}
		col.Do(func(r int, v float64) {
			work.Set(r, c, v, cfg.ZeroTolerance)
		})
	}

	activeRows := bitset.New(uint(m))
	activeCols := bitset.New(uint(m))
	for i := 0; i < m; i++ {
		activeRows.Set(uint(i))
		activeCols.Set(uint(i))
	}

	rowCount := make([]int, m)
	colCount := make([]int, m)
	colMax := make([]float64, m)

	for step := 0; step < m; step++ {
		refreshCounts(work, activeRows, activeCols, rowCount, colCount)
		refreshColMax(work, activeRows, activeCols, colMax)

		iStar, jStar, found := -1, -1, false
		for threshold := cfg.PivotThreshold; threshold >= cfg.PivotEpsilon; threshold /= 2 {
			iStar, jStar, found = selectPivot(work, activeRows, activeCols, rowCount, colCount, colMax, threshold, false)
			if found {
				break
			}
		}
		if !found {
			iStar, jStar, found = selectPivot(work, activeRows, activeCols, rowCount, colCount, colMax, cfg.PivotEpsilon, true)
		}
		if !found {
			return nil, ErrEliminationFailed
		}

		posI := lu.P.FindRow(iStar)
		lu.P.SwapRows(step, posI)
		posJ := lu.Q.FindRow(jStar)
		lu.Q.SwapRows(step, posJ)

		pivotVal := work.At(iStar, jStar)
		lu.Diag[iStar] = pivotVal

		work.Row(iStar).Do(func(c int, v float64) {
			if c == jStar || !activeCols.Test(uint(c)) {
				return
			}
			lu.V.Set(iStar, c, v, cfg.ZeroTolerance)
		})

		type victim struct {
			row int
			val float64
		}
		var victims []victim
		work.Col(jStar).Do(func(r int, v float64) {
			if r == iStar || !activeRows.Test(uint(r)) {
				return
			}
			victims = append(victims, victim{r, v})
		})
		for _, v := range victims {
			mu := v.val / pivotVal
			lu.F.Set(v.row, iStar, mu, cfg.ZeroTolerance)
			work.Row(iStar).Do(func(c int, pv float64) {
				if c == jStar || !activeCols.Test(uint(c)) {
					return
				}
				work.Set(v.row, c, work.At(v.row, c)-mu*pv, cfg.ZeroTolerance)
			})
			work.Set(v.row, jStar, 0, 1)
		}

		activeRows.Clear(uint(iStar))
		activeCols.Clear(uint(jStar))
	}

	return lu, nil
}

func refreshCounts(work *sparsevec.Matrix, activeRows, activeCols *bitset.BitSet, rowCount, colCount []int) {
	for i := range rowCount {
		rowCount[i] = 0
		colCount[i] = 0
	}
	m := work.Dim()
	for r := 0; r < m; r++ {
		if !activeRows.Test(uint(r)) {
			continue
		}
		work.Row(r).Do(func(c int, _ float64) {
			if activeCols.Test(uint(c)) {
				rowCount[r]++
				colCount[c]++
			}
		})
	}
}

func refreshColMax(work *sparsevec.Matrix, activeRows, activeCols *bitset.BitSet, colMax []float64) {
	m := work.Dim()
	for c := 0; c < m; c++ {
		colMax[c] = 0
	}
	for c := 0; c < m; c++ {
		if !activeCols.Test(uint(c)) {
			continue
		}
		work.Col(c).Do(func(r int, v float64) {
			if !activeRows.Test(uint(r)) {
				return
			}
			if a := math.Abs(v); a > colMax[c] {
				colMax[c] = a
			}
		})
	}
}

// selectPivot scans the active submatrix for the minimum-Markowitz-cost
// entry passing the stability test at threshold (relative to the
// column's active maximum, or an absolute comparison against threshold
// when absolute is true — used once relative relaxation bottoms out).
// Ties are broken by largest pivot magnitude first (matching the
// worked example in §8, which prefers the more stable of equal-cost
// candidates over the lower-index tie-break the prose states), then by
// lower row index, then lower column index.
func selectPivot(work *sparsevec.Matrix, activeRows, activeCols *bitset.BitSet, rowCount, colCount []int, colMax []float64, threshold float64, absolute bool) (iStar, jStar int, found bool) {
	bestCost := math.MaxInt64
	bestMag := -1.0
	m := work.Dim()
	for r := 0; r < m; r++ {
		if !activeRows.Test(uint(r)) {
			continue
		}
		work.Row(r).Do(func(c int, v float64) {
			if !activeCols.Test(uint(c)) {
				return
			}
			mag := math.Abs(v)
			stable := mag >= threshold
			if !absolute {
				stable = mag >= threshold*colMax[c]
			}
			if !stable {
				return
			}
			cost := (rowCount[r] - 1) * (colCount[c] - 1)
			better := !found ||
				cost < bestCost ||
				(cost == bestCost && mag > bestMag) ||
				(cost == bestCost && mag == bestMag && (r < iStar || (r == iStar && c < jStar)))
			if better {
				found = true
				bestCost = cost
				bestMag = mag
				iStar = r
				jStar = c
			}
		})
	}
	return iStar, jStar, found
}
