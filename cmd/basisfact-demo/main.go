// Command basisfact-demo drives one of the four basis-factorization
// variants through a sequence of column replacements and reports the
// solves and refactorization counters along the way. It exists to
// exercise the package from outside basisfact itself, which never logs
// (see basisfact's package doc): all structured logging lives here, at
// the boundary a simplex engine would normally occupy.
package main // import "github.com/NeuralNetworkVerification/Marabou-sub005/cmd/basisfact-demo"

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/NeuralNetworkVerification/Marabou-sub005/basisfact"
	"github.com/NeuralNetworkVerification/Marabou-sub005/sparsevec"
)

// scenario is the on-disk shape of a demo run: an initial basis matrix
// plus a sequence of column replacements to push through
// UpdateToAdjacentBasis (each preceded by the forward solve that computes
// its change column), and the right-hand side of one forward solve after
// the last update.
type scenario struct {
	Dim     int         `json:"dim"`
	Basis   [][]float64 `json:"basis"` // row-major m*m
	Updates []struct {
		Column int       `json:"column"`
		Values []float64 `json:"values"`
	} `json:"updates"`
	Solve []float64 `json:"solve"` // right-hand side for a final forward solve
}

func defaultScenario() scenario {
	s := scenario{
		Dim: 3,
		Basis: [][]float64{
			{1, 2, 4},
			{4, 5, 7},
			{7, 8, 9},
		},
	}
	s.Updates = []struct {
		Column int       `json:"column"`
		Values []float64 `json:"values"`
	}{
		{Column: 1, Values: []float64{1, 1, 3}},
		{Column: 0, Values: []float64{2, 1, 1}},
	}
	s.Solve = []float64{2, -1, 4}
	return s
}

// matrixOracle serves columns out of a mutable dense matrix, updated in
// lockstep with the calls the demo makes to UpdateToAdjacentBasis. A real
// simplex engine's oracle instead reads columns live out of its tableau.
type matrixOracle struct {
	m int
	a []float64 // row-major m*m
}

func newMatrixOracle(rows [][]float64) *matrixOracle {
	m := len(rows)
	o := &matrixOracle{m: m, a: make([]float64, m*m)}
	for i, row := range rows {
		copy(o.a[i*m:i*m+m], row)
	}
	return o
}

func (o *matrixOracle) BasisColumnDense(j int, dst []float64) error {
	for i := 0; i < o.m; i++ {
		dst[i] = o.a[i*o.m+j]
	}
	return nil
}

func (o *matrixOracle) BasisColumnSparse(j int) (*sparsevec.Vector, error) {
	dst := make([]float64, o.m)
	if err := o.BasisColumnDense(j, dst); err != nil {
		return nil, err
	}
	v := sparsevec.NewVector(o.m)
	v.GatherFrom(dst, 1e-12)
	return v, nil
}

func (o *matrixOracle) setColumn(j int, values []float64) {
	for i := 0; i < o.m; i++ {
		o.a[i*o.m+j] = values[i]
	}
}

func main() {
	variant := flag.String("variant", "sparse-ft", "factorization variant: dense-lu, sparse-lu, dense-ft, sparse-ft")
	scenarioPath := flag.String("scenario", "", "path to a JSON scenario file; uses a built-in example when empty")
	refactorThreshold := flag.Int("refactor-threshold", 20, "eta-file length that forces a refactorization")
	verbose := flag.Bool("v", false, "enable debug-level logging")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: basisfact-demo [options]

Exercises a basis-factorization variant against a sequence of column
replacements, logging the initial factorization, each update, the final
solve and the refactorization count.

Options:
`)
		flag.PrintDefaults()
	}
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).Level(level)

	typ, err := parseVariant(*variant)
	if err != nil {
		log.Fatal().Err(err).Str("variant", *variant).Msg("unknown factorization variant")
	}

	sc := defaultScenario()
	if *scenarioPath != "" {
		f, err := os.Open(*scenarioPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *scenarioPath).Msg("opening scenario file")
		}
		defer f.Close()
		if err := json.NewDecoder(f).Decode(&sc); err != nil {
			log.Fatal().Err(err).Msg("decoding scenario file")
		}
	}

	oracle := newMatrixOracle(sc.Basis)
	cfg := basisfact.DefaultConfig(typ)
	cfg.RefactorizationThreshold = *refactorThreshold
	stats := &basisfact.Counters{}

	f, err := basisfact.Create(cfg, sc.Dim, oracle, stats)
	if err != nil {
		log.Fatal().Err(err).Msg("creating factorization")
	}

	start := time.Now()
	if err := f.ObtainFreshBasis(); err != nil {
		log.Fatal().Err(err).Msg("initial factorization failed")
	}
	log.Info().Dur("elapsed", time.Since(start)).Int("dim", sc.Dim).Str("variant", typ.String()).Msg("factorized initial basis")

	for _, u := range sc.Updates {
		oracle.setColumn(u.Column, u.Values)
		changeColumn := make([]float64, sc.Dim)
		if err := f.ForwardTransformation(u.Values, changeColumn); err != nil {
			log.Fatal().Err(err).Int("column", u.Column).Msg("computing eta column for update")
		}

		start := time.Now()
		if err := f.UpdateToAdjacentBasis(u.Column, changeColumn, u.Values); err != nil {
			log.Fatal().Err(err).Int("column", u.Column).Msg("update_to_adjacent_basis failed")
		}
		log.Debug().Dur("elapsed", time.Since(start)).Int("column", u.Column).Msg("pushed column replacement")
	}

	x := make([]float64, sc.Dim)
	if err := f.ForwardTransformation(sc.Solve, x); err != nil {
		log.Fatal().Err(err).Msg("final forward solve failed")
	}

	log.Info().
		Floats64("rhs", sc.Solve).
		Floats64("solution", x).
		Int("refactorizations", stats.Refactorizations).
		Int("ft_updates", stats.FTUpdates).
		Int("refactor_due_to_instability", stats.RefactorDueToInstability).
		Dur("total_solve_time", stats.SolveTime).
		Msg("forward solve complete")
}

func parseVariant(s string) (basisfact.Type, error) {
	switch s {
	case "dense-lu":
		return basisfact.TypeDenseLU, nil
	case "sparse-lu":
		return basisfact.TypeSparseLU, nil
	case "dense-ft":
		return basisfact.TypeDenseFT, nil
	case "sparse-ft":
		return basisfact.TypeSparseFT, nil
	default:
		return 0, fmt.Errorf("unrecognized variant %q", s)
	}
}
