// Command soilseries cleans the Cook East NRCS soil-series survey: it reprojects
// every sample from UTM zone 11N to WGS 84, tags it with the ID2 of the nearest
// georeference point and writes output/CookEastNrcsSoilSeries_<date>_P1A1.csv.
//
// Inputs are read from input/ relative to the working directory; see
// internal/config for the environment overrides.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/couchcryptid/soil-series-etl/internal/adapter/csvout"
	"github.com/couchcryptid/soil-series-etl/internal/adapter/geojson"
	"github.com/couchcryptid/soil-series-etl/internal/adapter/spreadsheet"
	"github.com/couchcryptid/soil-series-etl/internal/config"
	"github.com/couchcryptid/soil-series-etl/internal/geo"
	"github.com/couchcryptid/soil-series-etl/internal/observability"
	"github.com/couchcryptid/soil-series-etl/internal/pipeline"
)

func main() {
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	projector, err := geo.NewSurveyProjector()
	if err != nil {
		logger.Error("failed to build projector", "error", err)
		os.Exit(1)
	}

	samples := spreadsheet.NewReader(cfg.SamplesPath(), cfg.SamplesSheet, logger)
	grid := geojson.NewGridReader(cfg.GridPath(), logger)
	writer := csvout.NewWriter(cfg.OutputDir, logger)

	p := pipeline.New(samples, grid, projector, writer, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("run starting", "samples", cfg.SamplesPath(), "grid", cfg.GridPath(), "projection", projector.String())
	_, runErr := p.Run(ctx)

	if cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
			logger.Error("metrics export failed", "error", err)
		}
	}

	if runErr != nil {
		logger.Error("run failed", "error", runErr)
		stop()
		os.Exit(1) //nolint:gocritic // stop is called explicitly above
	}
}
