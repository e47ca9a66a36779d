package geo

import (
	"math"

	"github.com/couchcryptid/soil-series-etl/internal/domain"
)

const earthRadiusMeters = 6371000.0

// PlanarDistance is the Euclidean distance between two points in the units of
// their coordinates (degrees for longitude/latitude).
func PlanarDistance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// HaversineMeters is the great-circle distance in metres between two
// longitude/latitude positions.
func HaversineMeters(lon1, lat1, lon2, lat2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// BruteForceNearest scans every point and returns the first one at minimum
// planar distance from (lon, lat). It reports false for an empty slice.
func BruteForceNearest(points []domain.GridPoint, lon, lat float64) (domain.GridPoint, bool) {
	best := -1
	bestD := math.Inf(1)
	for i, p := range points {
		dx := p.Lon - lon
		dy := p.Lat - lat
		if d := dx*dx + dy*dy; d < bestD {
			best, bestD = i, d
		}
	}
	if best < 0 {
		return domain.GridPoint{}, false
	}
	return points[best], true
}
