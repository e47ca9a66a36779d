package pipeline

import (
	"context"
	"fmt"

	"github.com/couchcryptid/soil-series-etl/internal/domain"
	"github.com/couchcryptid/soil-series-etl/internal/geo"
)

// Projector converts a projected position to longitude/latitude.
type Projector interface {
	Forward(easting, northing float64) (lon, lat float64, err error)
}

// Matcher finds the grid point nearest to a longitude/latitude position.
type Matcher interface {
	Match(lon, lat float64) (domain.GridPoint, error)
}

// SampleTransformer enriches a sample with its series name, geographic
// position and grid identifier.
type SampleTransformer struct {
	projector Projector
	matcher   Matcher
}

// NewTransformer creates a SampleTransformer.
func NewTransformer(projector Projector, matcher Matcher) *SampleTransformer {
	return &SampleTransformer{projector: projector, matcher: matcher}
}

func (t *SampleTransformer) Transform(_ context.Context, s domain.Sample) (domain.Sample, error) {
	s = domain.EnrichSeries(s)

	lon, lat, err := t.projector.Forward(s.Easting, s.Northing)
	if err != nil {
		return domain.Sample{}, fmt.Errorf("project: %w", err)
	}
	s.Longitude, s.Latitude = lon, lat

	gp, err := t.matcher.Match(lon, lat)
	if err != nil {
		return domain.Sample{}, fmt.Errorf("match: %w", err)
	}
	s.GridID = gp.GridID
	s.MatchDistance = geo.HaversineMeters(lon, lat, gp.Lon, gp.Lat)

	return s, nil
}
