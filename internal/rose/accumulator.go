package rose

import (
	"sync"

	"github.com/jmwalls/windy/internal/domain"
)

// Accumulator collects clean samples from a live observation feed and
// builds roses over the set seen so far. Safe for concurrent use.
type Accumulator struct {
	mu      sync.RWMutex
	samples []domain.Sample
}

// NewAccumulator returns an empty Accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

// Add cleans and appends observations, returning how many samples were kept.
func (a *Accumulator) Add(obs ...domain.Observation) int {
	clean := domain.Clean(obs)
	if len(clean) == 0 {
		return 0
	}

	a.mu.Lock()
	a.samples = append(a.samples, clean...)
	a.mu.Unlock()

	return len(clean)
}

// Len reports the number of accumulated samples.
func (a *Accumulator) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.samples)
}

// Build bins the samples accumulated so far into a Rose.
func (a *Accumulator) Build(bins int, title string) (*Rose, error) {
	a.mu.RLock()
	samples := make([]domain.Sample, len(a.samples))
	copy(samples, a.samples)
	a.mu.RUnlock()

	return Build(samples, bins, title)
}
