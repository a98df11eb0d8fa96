package eta

import "errors"

// ErrSingularEta is returned by Forward/Backward when the eta's pivot
// entry is below the configured stability threshold. Callers respond by
// refactorizing the basis from the oracle rather than retrying (§4.3).
var ErrSingularEta = errors.New("eta: singular eta matrix (pivot below tolerance)")
