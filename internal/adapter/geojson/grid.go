// Package geojson loads the georeference grid from a GeoJSON FeatureCollection.
package geojson

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/couchcryptid/soil-series-etl/internal/domain"
)

// IDProperty is the feature property holding the grid identifier.
const IDProperty = "ID2"

// ErrInvalidGrid is returned for features the grid loader cannot use.
var ErrInvalidGrid = errors.New("invalid grid feature")

// FeatureCollection is the subset of a GeoJSON FeatureCollection the grid uses.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is a single GeoJSON feature.
type Feature struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	Geometry   *Geometry      `json:"geometry"`
}

// Geometry holds a point geometry. Coordinates are [lon, lat(, elevation)].
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// GridReader reads the georeference points from a GeoJSON file.
// It implements pipeline.GridExtractor.
type GridReader struct {
	path   string
	logger *slog.Logger
}

// NewGridReader creates a GridReader for path.
func NewGridReader(path string, logger *slog.Logger) *GridReader {
	return &GridReader{path: path, logger: logger}
}

// ExtractGrid loads every point feature in file order.
func (r *GridReader) ExtractGrid(ctx context.Context) ([]domain.GridPoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read grid %s: %w", r.path, err)
	}
	points, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("read grid %s: %w", r.path, err)
	}
	r.logger.Debug("grid read", "path", r.path, "grid_points", len(points))
	return points, nil
}

// Decode parses a FeatureCollection of Point features carrying an integer ID2.
func Decode(data []byte) ([]domain.GridPoint, error) {
	var fc FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse geojson: %w", err)
	}
	if !strings.EqualFold(fc.Type, "FeatureCollection") {
		return nil, fmt.Errorf("parse geojson: want FeatureCollection, got %q", fc.Type)
	}

	points := make([]domain.GridPoint, 0, len(fc.Features))
	for i, f := range fc.Features {
		p, err := toGridPoint(f)
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}
		p.Index = i
		points = append(points, p)
	}
	return points, nil
}

func toGridPoint(f Feature) (domain.GridPoint, error) {
	if f.Geometry == nil || !strings.EqualFold(f.Geometry.Type, "Point") {
		return domain.GridPoint{}, fmt.Errorf("%w: geometry is not a Point", ErrInvalidGrid)
	}
	if len(f.Geometry.Coordinates) < 2 {
		return domain.GridPoint{}, fmt.Errorf("%w: point has %d coordinates", ErrInvalidGrid, len(f.Geometry.Coordinates))
	}
	id, err := gridID(f.Properties[IDProperty])
	if err != nil {
		return domain.GridPoint{}, err
	}
	return domain.GridPoint{
		Lon:    f.Geometry.Coordinates[0],
		Lat:    f.Geometry.Coordinates[1],
		GridID: id,
	}, nil
}

func gridID(v any) (int, error) {
	switch id := v.(type) {
	case float64:
		if id != float64(int(id)) {
			return 0, fmt.Errorf("%w: %s %v is not an integer", ErrInvalidGrid, IDProperty, id)
		}
		return int(id), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(id))
		if err != nil {
			return 0, fmt.Errorf("%w: %s %q is not an integer", ErrInvalidGrid, IDProperty, id)
		}
		return n, nil
	case nil:
		return 0, fmt.Errorf("%w: missing %s", ErrInvalidGrid, IDProperty)
	default:
		return 0, fmt.Errorf("%w: %s has type %T", ErrInvalidGrid, IDProperty, v)
	}
}

// Encode renders grid points as a FeatureCollection. It is the inverse of Decode.
func Encode(points []domain.GridPoint) ([]byte, error) {
	fc := FeatureCollection{Type: "FeatureCollection", Features: make([]Feature, len(points))}
	for i, p := range points {
		fc.Features[i] = Feature{
			Type:       "Feature",
			Properties: map[string]any{IDProperty: p.GridID},
			Geometry:   &Geometry{Type: "Point", Coordinates: []float64{p.Lon, p.Lat}},
		}
	}
	return json.MarshalIndent(fc, "", "  ")
}
