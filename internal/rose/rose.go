// Package rose builds wind roses: an aggregate circular histogram of wind
// direction plus one histogram per calendar month.
package rose

import (
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/jmwalls/windy/internal/domain"
	"github.com/jmwalls/windy/internal/histogram"
)

// clock is a package-level time source so tests can freeze GeneratedAt.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Rose holds the aggregate wind-direction histogram for a clean sample set
// along with twelve per-calendar-month histograms sharing the same bin
// count and policies.
type Rose struct {
	Title       string
	Bins        int
	All         histogram.Histogram
	Monthly     [12]histogram.Histogram
	Samples     int
	GeneratedAt time.Time
}

// Build bins a clean sample set into a Rose. Months with no samples get
// degenerate all-zero histograms; an empty sample set is not an error.
func Build(samples []domain.Sample, bins int, title string) (*Rose, error) {
	all, err := histogram.Bin(toRadians(domain.Directions(samples)), bins)
	if err != nil {
		return nil, err
	}

	r := &Rose{
		Title:       title,
		Bins:        bins,
		All:         all,
		Samples:     len(samples),
		GeneratedAt: clock.Now(),
	}

	for m, directions := range domain.PartitionByMonth(samples) {
		h, err := histogram.Bin(toRadians(directions), bins)
		if err != nil {
			return nil, err
		}
		r.Monthly[m] = h
	}

	return r, nil
}

func toRadians(degrees []float64) []float64 {
	out := make([]float64, len(degrees))
	for i, d := range degrees {
		out[i] = histogram.DegToRad(d)
	}
	return out
}
