package domain

import (
	"fmt"
	"math"
)

// Observation is one daily summary row as delivered by a source: the CSV
// loader or the live observation topic. Direction and speed are optional;
// a nil pointer marks a missing measurement.
type Observation struct {
	Station      string   `json:"station,omitempty"`
	Date         string   `json:"date"`
	DirectionDeg *float64 `json:"direction_deg,omitempty"`
	SpeedMPH     *float64 `json:"speed_mph,omitempty"`
}

// Sample is a clean (date, direction, speed) triple: both wind fields
// present. Samples are never mutated after cleaning.
type Sample struct {
	Date         string
	DirectionDeg float64
	SpeedMPH     float64
}

// Clean filters observations down to samples where both direction and
// speed are present and finite. Row order is preserved. No qualifying
// rows is not an error; the result is simply empty.
func Clean(obs []Observation) []Sample {
	samples := make([]Sample, 0, len(obs))
	for _, o := range obs {
		if o.DirectionDeg == nil || o.SpeedMPH == nil {
			continue
		}
		if math.IsNaN(*o.DirectionDeg) || math.IsNaN(*o.SpeedMPH) {
			continue
		}
		samples = append(samples, Sample{
			Date:         o.Date,
			DirectionDeg: *o.DirectionDeg,
			SpeedMPH:     *o.SpeedMPH,
		})
	}
	return samples
}

// CleanColumns filters three aligned columns (dates, directions, speeds)
// down to samples where both numeric fields are non-NaN, preserving row
// order. Missing values in the numeric columns are represented as NaN.
func CleanColumns(dates []string, directions, speeds []float64) ([]Sample, error) {
	if len(dates) != len(directions) || len(dates) != len(speeds) {
		return nil, fmt.Errorf("misaligned columns: %d dates, %d directions, %d speeds",
			len(dates), len(directions), len(speeds))
	}

	samples := make([]Sample, 0, len(dates))
	for i := range dates {
		if math.IsNaN(directions[i]) || math.IsNaN(speeds[i]) {
			continue
		}
		samples = append(samples, Sample{
			Date:         dates[i],
			DirectionDeg: directions[i],
			SpeedMPH:     speeds[i],
		})
	}
	return samples, nil
}
