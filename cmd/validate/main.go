// Command validate checks a cleaned soil-series CSV against the georeference
// grid it was keyed to: the header, the ID2 ordering, and that every row's ID2
// belongs to the grid point nearest its Latitude/Longitude.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -grid input/cookeast_georeferencepoint_20190924.geojson \
//	  -csv output/CookEastNrcsSoilSeries_20190924_P1A1.csv
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/couchcryptid/soil-series-etl/internal/adapter/geojson"
	"github.com/couchcryptid/soil-series-etl/internal/domain"
	"github.com/couchcryptid/soil-series-etl/internal/geo"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

// outputRow is one parsed line of the cleaned CSV.
type outputRow struct {
	line   int
	gridID int
	lat    float64
	lon    float64
}

func main() {
	gridPath := flag.String("grid", "", "path to the georeference grid GeoJSON")
	csvPath := flag.String("csv", "", "path to the cleaned CSV")
	flag.Parse()

	if *gridPath == "" || *csvPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*gridPath, *csvPath); code != 0 {
		os.Exit(code)
	}
}

func run(gridPath, csvPath string) int {
	data, err := os.ReadFile(gridPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read grid: %v\n", err)
		return 1
	}
	grid, err := geojson.Decode(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: decode grid: %v\n", err)
		return 1
	}

	records, err := readCSV(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read csv: %v\n", err)
		return 1
	}

	header, rows, parsePhase := parseOutput(records)
	phases := []*phase{
		validateHeader(header),
		parsePhase,
		validateOrdering(rows),
		validateNearest(rows, grid),
	}

	fmt.Printf("grid points: %d, rows: %d\n\n", len(grid), len(rows))
	allPassed := true
	for _, p := range phases {
		if p.passed() {
			fmt.Printf("PASS  %s\n", p.name)
			continue
		}
		allPassed = false
		fmt.Printf("FAIL  %s (%d issues)\n", p.name, len(p.errors))
		for _, e := range p.errors {
			fmt.Printf("      - %s\n", e)
		}
	}
	if !allPassed {
		return 2
	}
	return 0
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck // read-only file
	return csv.NewReader(f).ReadAll()
}

func validateHeader(header []string) *phase {
	p := &phase{name: "Header"}
	if !slices.Equal(header, domain.OutputColumns) {
		p.errorf("header %v, want %v", header, domain.OutputColumns)
	}
	return p
}

func parseOutput(records [][]string) ([]string, []outputRow, *phase) {
	p := &phase{name: "Row parsing"}
	if len(records) == 0 {
		p.errorf("file is empty")
		return nil, nil, p
	}

	rows := make([]outputRow, 0, len(records)-1)
	for i, rec := range records[1:] {
		line := i + 2
		if len(rec) != len(domain.OutputColumns) {
			p.errorf("line %d: %d columns", line, len(rec))
			continue
		}
		id, errID := strconv.Atoi(rec[0])
		lat, errLat := strconv.ParseFloat(rec[2], 64)
		lon, errLon := strconv.ParseFloat(rec[3], 64)
		if errID != nil || errLat != nil || errLon != nil {
			p.errorf("line %d: unparseable row %v", line, rec)
			continue
		}
		rows = append(rows, outputRow{line: line, gridID: id, lat: lat, lon: lon})
	}
	return records[0], rows, p
}

func validateOrdering(rows []outputRow) *phase {
	p := &phase{name: "ID2 ascending"}
	for i := 1; i < len(rows); i++ {
		if rows[i].gridID < rows[i-1].gridID {
			p.errorf("line %d: ID2 %d after %d", rows[i].line, rows[i].gridID, rows[i-1].gridID)
		}
	}
	return p
}

func validateNearest(rows []outputRow, grid []domain.GridPoint) *phase {
	p := &phase{name: "Nearest grid point"}
	for _, r := range rows {
		want, ok := geo.BruteForceNearest(grid, r.lon, r.lat)
		if !ok {
			p.errorf("grid is empty")
			return p
		}
		if want.GridID == r.gridID {
			continue
		}
		// Equidistant points may legitimately resolve to either identifier.
		got := findGridID(grid, r.gridID)
		if got != nil && geo.PlanarDistance(r.lon, r.lat, got.Lon, got.Lat) == geo.PlanarDistance(r.lon, r.lat, want.Lon, want.Lat) {
			continue
		}
		p.errorf("line %d: ID2 %d, nearest grid point is %d", r.line, r.gridID, want.GridID)
	}
	return p
}

func findGridID(grid []domain.GridPoint, id int) *domain.GridPoint {
	for i := range grid {
		if grid[i].GridID == id {
			return &grid[i]
		}
	}
	return nil
}
