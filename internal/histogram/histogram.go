// Package histogram bins circular (directional) data into equal-width
// angular sectors.
//
// Compass headings use 0 = north, increasing clockwise. Polar plots use
// 0 = east (right), increasing counter-clockwise. [ToPolar] remaps one
// convention to the other so a rendered sector points the way the wind
// actually blew.
package histogram

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Histogram is the binned distribution of a circular sample set.
type Histogram struct {
	// Counts holds the number of samples per bin.
	Counts []int

	// Freqs holds the normalized frequency per bin. Frequencies sum to 1
	// for a non-empty sample set and are all zero for an empty one.
	Freqs []float64

	// Thetas holds the start angle of each bin in radians, polar
	// convention. Bin i covers the half-open range [Thetas[i], Thetas[i]+Width).
	Thetas []float64

	// Width is the angular width of every bin in radians.
	Width float64

	// Total is the number of samples counted across all bins.
	Total int
}

// ToPolar remaps a compass heading in radians to a polar plot angle:
// (-heading + pi/2) mod 2pi. The result is always in [0, 2pi).
func ToPolar(heading float64) float64 {
	th := math.Mod(-heading+math.Pi/2, 2*math.Pi)
	if th < 0 {
		th += 2 * math.Pi
	}
	return th
}

// DegToRad converts compass degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// Bin distributes heading samples (radians, compass convention) into bins
// equal-width angular sectors. Sectors tile the full circle starting at
// polar angle 0; each is half-open, closed on its lower edge. An empty
// sample set yields all-zero counts and frequencies.
func Bin(headings []float64, bins int) (Histogram, error) {
	if bins < 1 {
		return Histogram{}, fmt.Errorf("bin count must be >= 1, got %d", bins)
	}

	width := 2 * math.Pi / float64(bins)

	counts := make([]int, bins)
	for _, h := range headings {
		th := ToPolar(h)
		i := int(th / width)
		// th is strictly below 2pi, but th/width can round up to the
		// bin count on the last sector's edge.
		if i >= bins {
			i = bins - 1
		}
		counts[i]++
	}

	freqs := make([]float64, bins)
	for i, c := range counts {
		freqs[i] = float64(c)
	}
	if total := floats.Sum(freqs); total > 0 {
		floats.Scale(1/total, freqs)
	}

	thetas := make([]float64, bins)
	for i := range thetas {
		thetas[i] = float64(i) * width
	}

	return Histogram{
		Counts: counts,
		Freqs:  freqs,
		Thetas: thetas,
		Width:  width,
		Total:  len(headings),
	}, nil
}

// MaxFreq returns the largest bin frequency, or 0 for an empty histogram.
func (h Histogram) MaxFreq() float64 {
	if len(h.Freqs) == 0 {
		return 0
	}
	return floats.Max(h.Freqs)
}
