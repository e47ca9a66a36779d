package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/soil-series-etl/internal/domain"
	"github.com/couchcryptid/soil-series-etl/internal/geo"
	"github.com/couchcryptid/soil-series-etl/internal/observability"
)

// SampleExtractor reads the survey samples.
type SampleExtractor interface {
	ExtractSamples(ctx context.Context) ([]domain.Sample, error)
}

// GridExtractor reads the georeference grid.
type GridExtractor interface {
	ExtractGrid(ctx context.Context) ([]domain.GridPoint, error)
}

// Loader writes the enriched, sorted samples and returns where they went.
type Loader interface {
	Load(ctx context.Context, samples []domain.Sample) (string, error)
}

// Result summarises a completed run.
type Result struct {
	Path       string
	Samples    int
	GridPoints int
}

// Pipeline runs one extract-transform-load pass.
type Pipeline struct {
	samples   SampleExtractor
	grid      GridExtractor
	projector Projector
	loader    Loader
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates a Pipeline with the given stages and observability.
func New(s SampleExtractor, g GridExtractor, proj Projector, l Loader, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		samples:   s,
		grid:      g,
		projector: proj,
		loader:    l,
		logger:    logger,
		metrics:   metrics,
	}
}

// Run loads the grid and samples, projects and matches every sample, sorts by
// grid identifier and writes the result. Any error aborts the run before
// output is written.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	start := time.Now()
	p.metrics.LastSuccess.Set(0)
	defer func() {
		p.metrics.RunDuration.Observe(time.Since(start).Seconds())
	}()

	points, err := p.grid.ExtractGrid(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("extract grid: %w", err)
	}
	p.metrics.GridPointsLoaded.Add(float64(len(points)))

	index := geo.NewIndex(points)
	if ext := index.Extent(); ext != nil {
		p.logger.Info("grid loaded", "grid_points", index.Len(),
			"min_lon", ext.Min.X, "min_lat", ext.Min.Y, "max_lon", ext.Max.X, "max_lat", ext.Max.Y)
	}

	samples, err := p.samples.ExtractSamples(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("extract samples: %w", err)
	}
	p.metrics.SamplesLoaded.Add(float64(len(samples)))
	p.logger.Info("samples loaded", "samples", len(samples))

	transformer := NewTransformer(p.projector, index)
	for i, raw := range samples {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		s, err := transformer.Transform(ctx, raw)
		if err != nil {
			return Result{}, fmt.Errorf("sample %d (row %d): %w", raw.ID, raw.Row, err)
		}
		p.observe(index, s)
		samples[i] = s
	}

	domain.SortByGridID(samples)

	path, err := p.loader.Load(ctx, samples)
	if err != nil {
		return Result{}, fmt.Errorf("load: %w", err)
	}
	p.metrics.RowsWritten.Add(float64(len(samples)))
	p.metrics.LastSuccess.Set(1)

	p.logger.Info("run complete", "path", path, "samples", len(samples), "duration", time.Since(start))
	return Result{Path: path, Samples: len(samples), GridPoints: len(points)}, nil
}

func (p *Pipeline) observe(index *geo.Index, s domain.Sample) {
	p.metrics.MatchDistance.Observe(s.MatchDistance)

	if s.SeriesName == "" {
		p.metrics.UnmappedSeries.Inc()
		p.logger.Debug("series code has no name", "id", s.ID, "series", s.SeriesRaw)
	}
	if !index.Contains(s.Longitude, s.Latitude) {
		p.metrics.OutsideGrid.Inc()
		p.logger.Warn("sample outside grid extent",
			"id", s.ID, "lon", s.Longitude, "lat", s.Latitude, "grid_id", s.GridID, "distance_m", s.MatchDistance)
	}
}
