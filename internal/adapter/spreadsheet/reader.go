// Package spreadsheet loads soil-survey samples from the survey workbook.
package spreadsheet

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/soil-series-etl/internal/domain"
)

// Positional columns of the survey sheet. Column 3 is not used.
const (
	colID       = 0
	colEasting  = 1
	colNorthing = 2
	colSeries   = 4
)

// Reader reads samples from an .xlsx workbook or a .csv export with the same
// column layout. The first row is a header.
// It implements pipeline.SampleExtractor.
type Reader struct {
	path   string
	sheet  string
	logger *slog.Logger
}

// NewReader creates a Reader for path. sheet selects the worksheet of a
// workbook; an empty sheet means the first one.
func NewReader(path, sheet string, logger *slog.Logger) *Reader {
	return &Reader{path: path, sheet: sheet, logger: logger}
}

// ExtractSamples reads every data row into a Sample with ID, position and raw
// series filled in.
func (r *Reader) ExtractSamples(ctx context.Context) ([]domain.Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		rows [][]string
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(r.path)); ext {
	case ".xlsx", ".xlsm":
		rows, err = r.readWorkbook()
	case ".csv":
		rows, err = readCSV(r.path)
	case ".xls":
		return nil, fmt.Errorf("read samples %s: legacy .xls workbooks are not supported, save the sheet as .xlsx", r.path)
	default:
		return nil, fmt.Errorf("read samples %s: unsupported file type %q", r.path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("read samples %s: %w", r.path, err)
	}

	samples, err := ParseRows(rows)
	if err != nil {
		return nil, fmt.Errorf("read samples %s: %w", r.path, err)
	}
	r.logger.Debug("samples read", "path", r.path, "rows", len(rows), "samples", len(samples))
	return samples, nil
}

func (r *Reader) readWorkbook() ([][]string, error) {
	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck // read-only workbook

	sheet := r.sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	// Stored values, not the number-formatted display text.
	return f.GetRows(sheet, excelize.Options{RawCellValue: true})
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck // read-only file

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	return cr.ReadAll()
}

// ParseRows converts sheet rows into samples. rows[0] is the header. Blank
// rows are skipped; a row missing the ID, easting or northing, or holding a
// non-numeric value in them, fails with domain.ErrMalformedRow.
func ParseRows(rows [][]string) ([]domain.Sample, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	samples := make([]domain.Sample, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rowNum := i + 2
		if blank(row) {
			continue
		}
		s, err := parseRow(row, rowNum)
		if err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}
	return samples, nil
}

func parseRow(row []string, rowNum int) (domain.Sample, error) {
	if len(row) <= colNorthing {
		return domain.Sample{}, fmt.Errorf("row %d: %w: want at least %d columns, got %d",
			rowNum, domain.ErrMalformedRow, colNorthing+1, len(row))
	}

	id, ok := domain.ParseID(row[colID])
	if !ok {
		return domain.Sample{}, fmt.Errorf("row %d: %w: ID %q is not an integer", rowNum, domain.ErrMalformedRow, row[colID])
	}
	easting, err := parseFloat(row[colEasting])
	if err != nil {
		return domain.Sample{}, fmt.Errorf("row %d: %w: easting %q", rowNum, domain.ErrMalformedRow, row[colEasting])
	}
	northing, err := parseFloat(row[colNorthing])
	if err != nil {
		return domain.Sample{}, fmt.Errorf("row %d: %w: northing %q", rowNum, domain.ErrMalformedRow, row[colNorthing])
	}

	// Trailing empty cells are trimmed by the workbook reader.
	var series string
	if len(row) > colSeries {
		series = strings.TrimSpace(row[colSeries])
	}

	return domain.Sample{
		ID:        id,
		Easting:   easting,
		Northing:  northing,
		SeriesRaw: series,
		Row:       rowNum,
	}, nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
