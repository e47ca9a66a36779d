package domain

import (
	"errors"
	"sort"
)

// ErrMalformedRow is returned when an input row is missing a required column or
// holds a non-numeric value where a number is expected.
var ErrMalformedRow = errors.New("malformed row")

// Sample is one soil-survey point. It is created from an input row and
// enriched in place by projection and grid matching.
type Sample struct {
	ID         int
	Easting    float64
	Northing   float64
	SeriesCode int
	SeriesRaw  string
	SeriesName string

	Longitude float64
	Latitude  float64

	// GridID is the ID2 of the nearest georeference point.
	GridID int
	// MatchDistance is the great-circle distance in metres to that point.
	MatchDistance float64

	// Row is the 1-based row number in the source sheet, kept for error messages.
	Row int
}

// GridPoint is an immutable georeference point.
type GridPoint struct {
	Lon    float64
	Lat    float64
	GridID int
	// Index is the load order of the point within the grid file.
	Index int
}

// SortByGridID orders samples ascending by GridID. Samples sharing a GridID
// keep their input order.
func SortByGridID(samples []Sample) {
	sort.SliceStable(samples, func(i, j int) bool {
		return samples[i].GridID < samples[j].GridID
	})
}
