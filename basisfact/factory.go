package basisfact

// Create builds a Factorization of the requested variant, following the
// source's BasisFactorizationFactory (§9, "Polymorphism over four
// variants"). stats may be nil.
func Create(cfg Config, m int, oracle Oracle, stats Stats) (Factorization, error) {
	switch cfg.Type {
	case TypeDenseLU:
		return NewDenseLU(m, oracle, cfg, stats), nil
	case TypeSparseLU:
		return NewSparseLU(m, oracle, cfg, stats), nil
	case TypeDenseFT:
		return NewDenseFT(m, oracle, cfg, stats), nil
	case TypeSparseFT:
		return NewSparseFT(m, oracle, cfg, stats), nil
	default:
		return nil, ErrUnknownBasisFactorizationType
	}
}
