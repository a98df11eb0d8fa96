package basisfact

// Type selects one of the four interchangeable representations described
// in §2 of the design: the source's virtual-dispatch hierarchy rewritten
// as a tagged variant chosen once at construction (§9, "Polymorphism
// over four variants").
type Type int

const (
	TypeDenseLU Type = iota
	TypeSparseLU
	TypeDenseFT
	TypeSparseFT
)

func (t Type) String() string {
	switch t {
	case TypeDenseLU:
		return "DenseLU"
	case TypeSparseLU:
		return "SparseLU"
	case TypeDenseFT:
		return "DenseFT"
	case TypeSparseFT:
		return "SparseFT"
	default:
		return "Unknown"
	}
}

// Config collects the tunables shared by every variant. Fields are used
// as given, zero values included; DefaultConfig returns a Config with
// every field set to its default.
type Config struct {
	Type Type

	// RefactorizationThreshold bounds the eta-file (LU variants) or
	// Forrest-Tomlin eta-file (FT variants) length before
	// ObtainFreshBasis is triggered automatically. Default 20.
	RefactorizationThreshold int

	// FTDiagonalTolerance (SparseFTDiagonalElementTolerance) is the floor
	// below which a Forrest-Tomlin update's final diagonal entry forces a
	// refactorization instead of committing the update. Default 1e-9.
	FTDiagonalTolerance float64

	// PivotThreshold is the Markowitz stability fraction passed to the
	// Gaussian eliminator on refactorization. Default 0.1.
	PivotThreshold float64

	// ZeroTolerance (ε_zero) elides arithmetic results below this
	// magnitude throughout the factorization. Default 1e-9.
	ZeroTolerance float64

	// PivotEpsilon (ε_pivot) is the floor of Markowitz threshold
	// relaxation and the singular-eta/singular-pivot stability bound.
	// Default 1e-9.
	PivotEpsilon float64
}

// DefaultConfig returns the configuration in §6 for the given variant.
func DefaultConfig(t Type) Config {
	return Config{
		Type:                     t,
		RefactorizationThreshold: 20,
		FTDiagonalTolerance:      1e-9,
		PivotThreshold:           0.1,
		ZeroTolerance:            1e-9,
		PivotEpsilon:             1e-9,
	}
}
