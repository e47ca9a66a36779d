// Command genmock writes a synthetic survey workbook and georeference grid
// shaped like the Cook East inputs, so the cleaner can be run end to end
// without the field data.
//
// Usage:
//
//	go run ./cmd/genmock -out-dir input -samples 120 -seed 1
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/soil-series-etl/internal/adapter/geojson"
	"github.com/couchcryptid/soil-series-etl/internal/domain"
	"github.com/couchcryptid/soil-series-etl/internal/geo"
)

// Lower-left corner of the synthetic field in UTM zone 11N.
const (
	originEasting  = 493000.0
	originNorthing = 5180500.0
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("genmock", flag.ContinueOnError)
	outDir := fs.String("out-dir", "input", "directory to write the workbook and grid into")
	nSamples := fs.Int("samples", 120, "number of survey samples")
	cols := fs.Int("grid-cols", 12, "grid columns")
	rows := fs.Int("grid-rows", 10, "grid rows")
	spacing := fs.Float64("spacing", 60, "grid spacing in metres")
	seed := fs.Int64("seed", 1, "random seed")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *nSamples <= 0 || *cols <= 0 || *rows <= 0 || *spacing <= 0 {
		fs.Usage()
		return fmt.Errorf("samples, grid-cols, grid-rows and spacing must be positive")
	}

	proj, err := geo.NewSurveyProjector()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return err
	}

	grid, err := buildGrid(proj, *cols, *rows, *spacing)
	if err != nil {
		return fmt.Errorf("build grid: %w", err)
	}
	data, err := geojson.Encode(grid)
	if err != nil {
		return err
	}
	gridPath := filepath.Join(*outDir, "cookeast_georeferencepoint_20190924.geojson")
	if err := os.WriteFile(gridPath, data, 0o644); err != nil { //nolint:gosec // fixture data
		return err
	}
	log.Printf("grid: %d points -> %s", len(grid), gridPath)

	rng := rand.New(rand.NewSource(*seed))
	width := float64(*cols-1) * *spacing
	height := float64(*rows-1) * *spacing
	wbPath := filepath.Join(*outDir, "CAF_soil_type.xlsx")
	if err := writeWorkbook(wbPath, *nSamples, width, height, rng); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	log.Printf("samples: %d rows -> %s", *nSamples, wbPath)
	return nil
}

func buildGrid(proj *geo.Projector, cols, rows int, spacing float64) ([]domain.GridPoint, error) {
	points := make([]domain.GridPoint, 0, cols*rows)
	for r := range rows {
		for c := range cols {
			lon, lat, err := proj.Forward(originEasting+float64(c)*spacing, originNorthing+float64(r)*spacing)
			if err != nil {
				return nil, err
			}
			points = append(points, domain.GridPoint{Lon: lon, Lat: lat, GridID: len(points) + 1, Index: len(points)})
		}
	}
	return points, nil
}

func writeWorkbook(path string, n int, width, height float64, rng *rand.Rand) error {
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck // saved below

	const sheet = "Sheet1"
	header := []any{"ID", "Easting", "Northing", "Elevation", "Series"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i := range n {
		row := []any{
			i + 1,
			roundCm(originEasting + rng.Float64()*width),
			roundCm(originNorthing + rng.Float64()*height),
			roundCm(760 + rng.Float64()*60),
			1 + rng.Intn(10),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}

func roundCm(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
