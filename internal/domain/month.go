package domain

import (
	"fmt"
	"strings"
	"time"
)

// monthMarkers holds the "-MM-" substrings used to assign a row to a
// calendar month, index 0 = January.
var monthMarkers = func() [12]string {
	var m [12]string
	for i := range m {
		m[i] = fmt.Sprintf("-%02d-", i+1)
	}
	return m
}()

// MonthOf extracts the calendar month from a date field by matching its
// zero-padded "-MM-" component. Returns 0 when no month matches.
func MonthOf(date string) time.Month {
	for i, marker := range monthMarkers {
		if strings.Contains(date, marker) {
			return time.Month(i + 1)
		}
	}
	return 0
}

// PartitionByMonth groups sample directions (compass degrees) by calendar
// month, index 0 = January. Samples whose date matches no month are
// dropped from every group. A month with no samples gets an empty group.
func PartitionByMonth(samples []Sample) [12][]float64 {
	var groups [12][]float64
	for _, s := range samples {
		m := MonthOf(s.Date)
		if m == 0 {
			continue
		}
		groups[m-1] = append(groups[m-1], s.DirectionDeg)
	}
	return groups
}

// Directions returns the direction column of a sample set, in source order.
func Directions(samples []Sample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.DirectionDeg
	}
	return out
}
