package histogram

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

const tolerance = 1e-12

func TestToPolar(t *testing.T) {
	cases := []struct {
		name    string
		heading float64
		want    float64
	}{
		{"north maps right of vertical", 0, math.Pi / 2},
		{"east maps to zero", math.Pi / 2, 0},
		{"south maps down", math.Pi, 3 * math.Pi / 2},
		{"west maps left", 3 * math.Pi / 2, math.Pi},
		{"full turn wraps", 2 * math.Pi, math.Pi / 2},
		{"negative heading wraps into range", -math.Pi / 2, math.Pi},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ToPolar(tc.heading)
			assert.InDelta(t, tc.want, got, tolerance)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.Less(t, got, 2*math.Pi)
		})
	}
}

func TestBin_CardinalHeadings(t *testing.T) {
	// 0, 90, 180, and 270 degrees with four bins: one sample per bin,
	// each with frequency 0.25. All four transformed angles land exactly
	// on bin edges, so this exercises the closed-lower-edge policy.
	headings := []float64{
		DegToRad(0),
		DegToRad(90),
		DegToRad(180),
		DegToRad(270),
	}

	h, err := Bin(headings, 4)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 1, 1, 1}, h.Counts)
	for i, f := range h.Freqs {
		assert.InDelta(t, 0.25, f, tolerance, "bin %d", i)
	}
	assert.Equal(t, 4, h.Total)
}

func TestBin_EmptyInput(t *testing.T) {
	h, err := Bin(nil, 20)
	require.NoError(t, err)

	assert.Equal(t, 0, h.Total)
	assert.Len(t, h.Counts, 20)
	assert.Len(t, h.Freqs, 20)
	assert.Zero(t, floats.Sum(h.Freqs))
	assert.Zero(t, h.MaxFreq())
}

func TestBin_InvalidBinCount(t *testing.T) {
	_, err := Bin([]float64{1.0}, 0)
	require.Error(t, err)

	_, err = Bin([]float64{1.0}, -3)
	require.Error(t, err)
}

func TestBin_SingleBinCapturesEverything(t *testing.T) {
	headings := []float64{0, 1, 2, 3, 4, 5, 6}

	h, err := Bin(headings, 1)
	require.NoError(t, err)

	assert.Equal(t, []int{7}, h.Counts)
	assert.InDelta(t, 1.0, h.Freqs[0], tolerance)
	assert.InDelta(t, 2*math.Pi, h.Width, tolerance)
}

func TestBin_CountsSumToSampleCount(t *testing.T) {
	// Pseudo-random spread of headings, including values beyond one turn.
	var headings []float64
	for i := 0; i < 997; i++ {
		headings = append(headings, math.Mod(float64(i)*0.7371, 4*math.Pi))
	}

	for _, bins := range []int{1, 4, 16, 20, 36} {
		h, err := Bin(headings, bins)
		require.NoError(t, err)

		sum := 0
		for _, c := range h.Counts {
			sum += c
		}
		assert.Equal(t, len(headings), sum, "bins=%d", bins)
		assert.InDelta(t, 1.0, floats.Sum(h.Freqs), 1e-9, "bins=%d", bins)
	}
}

func TestBin_ThetasStartEachSector(t *testing.T) {
	h, err := Bin(nil, 8)
	require.NoError(t, err)

	require.Len(t, h.Thetas, 8)
	for i, th := range h.Thetas {
		assert.InDelta(t, float64(i)*math.Pi/4, th, tolerance)
	}
}

func TestBin_BoundarySampleFallsInLowerBin(t *testing.T) {
	// A heading of 90 degrees transforms to exactly 0, the shared edge of
	// the first and last sectors. It must be counted once, in the first.
	h, err := Bin([]float64{DegToRad(90)}, 20)
	require.NoError(t, err)

	assert.Equal(t, 1, h.Counts[0])
	sum := 0
	for _, c := range h.Counts {
		sum += c
	}
	assert.Equal(t, 1, sum)
}
