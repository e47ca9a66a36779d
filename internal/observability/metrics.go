package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for a run.
type Metrics struct {
	SamplesLoaded    prometheus.Counter
	GridPointsLoaded prometheus.Counter
	UnmappedSeries   prometheus.Counter
	OutsideGrid      prometheus.Counter
	RowsWritten      prometheus.Counter

	MatchDistance prometheus.Histogram
	RunDuration   prometheus.Histogram
	LastSuccess   prometheus.Gauge

	gatherer prometheus.Gatherer
}

// NewMetrics creates the run metrics and registers them with a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		SamplesLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "soil_series",
			Name:      "samples_loaded_total",
			Help:      "Total sample rows read from the survey spreadsheet.",
		}),
		GridPointsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "soil_series",
			Name:      "grid_points_loaded_total",
			Help:      "Total georeference points read from the grid file.",
		}),
		UnmappedSeries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "soil_series",
			Name:      "unmapped_series_total",
			Help:      "Samples whose series code has no name.",
		}),
		OutsideGrid: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "soil_series",
			Name:      "samples_outside_grid_total",
			Help:      "Samples whose projected position falls outside the grid extent.",
		}),
		RowsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "soil_series",
			Name:      "rows_written_total",
			Help:      "Rows written to the cleaned CSV.",
		}),
		MatchDistance: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "soil_series",
			Name:      "match_distance_meters",
			Help:      "Great-circle distance from each sample to its matched grid point.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "soil_series",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete load-project-match-write run.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "soil_series",
			Name:      "last_run_success",
			Help:      "1 when the last run wrote its output, 0 otherwise.",
		}),
		gatherer: reg,
	}

	reg.MustRegister(
		m.SamplesLoaded,
		m.GridPointsLoaded,
		m.UnmappedSeries,
		m.OutsideGrid,
		m.RowsWritten,
		m.MatchDistance,
		m.RunDuration,
		m.LastSuccess,
	)

	return m
}

// WriteTextfile writes all metrics to path in the Prometheus text format,
// for node_exporter's textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.gatherer); err != nil {
		return fmt.Errorf("write metrics %s: %w", path, err)
	}
	return nil
}
