package basisfact

import "time"

// Stats is the optional statistics sink mentioned in the façade state of
// §3. A nil Stats is valid everywhere; every call site nil-checks before
// reporting.
type Stats interface {
	IncRefactorizations()
	IncFTUpdates()
	IncRefactorDueToInstability()
	ObserveSolveDuration(d time.Duration)
	ObserveRefactorDuration(d time.Duration)
}

// Counters is a minimal in-memory Stats implementation, grounded in the
// source's statistics counters (NUM_BASIS_REFACTORIZATIONS,
// NUM_FT_UPDATES, NUM_REFACTOR_DUE_TO_INSTABILITY); suitable for tests
// and the demo command.
type Counters struct {
	Refactorizations         int
	FTUpdates                int
	RefactorDueToInstability int
	SolveTime                time.Duration
	RefactorTime             time.Duration
}

func (c *Counters) IncRefactorizations()                    { c.Refactorizations++ }
func (c *Counters) IncFTUpdates()                           { c.FTUpdates++ }
func (c *Counters) IncRefactorDueToInstability()            { c.RefactorDueToInstability++ }
func (c *Counters) ObserveSolveDuration(d time.Duration)    { c.SolveTime += d }
func (c *Counters) ObserveRefactorDuration(d time.Duration) { c.RefactorTime += d }
