package spreadsheet

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/soil-series-etl/internal/domain"
)

var header = []any{"ID", "Easting", "Northing", "Elevation", "Series"}

func writeWorkbook(t *testing.T, sheet string, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck // test fixture

	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "CAF_soil_type.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReader_Workbook(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]any{
		header,
		{1, 493512.5, 5181020.25, 790, 6},
		{2, 493600, 5181100, 792, 10},
		{3, 493700.75, 5181200.5, 801},
	})

	samples, err := NewReader(path, "Sheet1", slog.Default()).ExtractSamples(context.Background())
	require.NoError(t, err)
	require.Len(t, samples, 3)

	assert.Equal(t, domain.Sample{ID: 1, Easting: 493512.5, Northing: 5181020.25, SeriesRaw: "6", Row: 2}, samples[0])
	assert.Equal(t, 2, samples[1].ID)
	assert.Equal(t, "10", samples[1].SeriesRaw)
	assert.Empty(t, samples[2].SeriesRaw, "missing series cell is empty")
	assert.Equal(t, 4, samples[2].Row)
}

func TestReader_WorkbookIgnoresNumberFormat(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]any{
		header,
		{1, 493512.678, 5181020.456, 790.4, 6},
	})

	// Style the coordinates with the built-in "0" format, which displays them rounded.
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	style, err := f.NewStyle(&excelize.Style{NumFmt: 1})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Sheet1", "B2", "C2", style))
	require.NoError(t, f.Save())
	require.NoError(t, f.Close())

	samples, err := NewReader(path, "Sheet1", slog.Default()).ExtractSamples(context.Background())
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.InDelta(t, 493512.678, samples[0].Easting, 1e-9)
	assert.InDelta(t, 5181020.456, samples[0].Northing, 1e-9)
	assert.Equal(t, "6", samples[0].SeriesRaw)
}

func TestReader_WorkbookDefaultSheet(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]any{
		header,
		{5, 493512, 5181020, 0, 3},
	})

	samples, err := NewReader(path, "", slog.Default()).ExtractSamples(context.Background())
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, 5, samples[0].ID)
}

func TestReader_WorkbookMissingSheet(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]any{header})

	_, err := NewReader(path, "Survey", slog.Default()).ExtractSamples(context.Background())
	assert.Error(t, err)
}

func TestReader_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.csv")
	data := "ID,Easting,Northing,Elevation,Series\n" +
		"10,493512.5,5181020.25,790,4\n" +
		",,,,\n" +
		"11,493600,5181100,792,Palouse\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	samples, err := NewReader(path, "", slog.Default()).ExtractSamples(context.Background())
	require.NoError(t, err)
	require.Len(t, samples, 2)
	assert.Equal(t, 10, samples[0].ID)
	assert.Equal(t, "4", samples[0].SeriesRaw)
	assert.Equal(t, "Palouse", samples[1].SeriesRaw)
	assert.Equal(t, 4, samples[1].Row)
}

func TestReader_UnsupportedFormats(t *testing.T) {
	for _, name := range []string{"CAF_soil_type.xls", "samples.txt"} {
		_, err := NewReader(name, "", slog.Default()).ExtractSamples(context.Background())
		assert.Error(t, err, name)
	}
}

func TestReader_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.xlsx")
	_, err := NewReader(path, "", slog.Default()).ExtractSamples(context.Background())
	assert.Error(t, err)
}

func TestParseRows_Malformed(t *testing.T) {
	cases := []struct {
		name string
		row  []string
	}{
		{name: "non-numeric easting", row: []string{"1", "east", "5181020", "", "6"}},
		{name: "non-numeric northing", row: []string{"1", "493512", "north", "", "6"}},
		{name: "fractional id", row: []string{"1.5", "493512", "5181020", "", "6"}},
		{name: "missing northing column", row: []string{"1", "493512"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseRows([][]string{{"ID"}, {"2", "1", "1"}, tc.row})
			require.ErrorIs(t, err, domain.ErrMalformedRow)
			assert.Contains(t, err.Error(), "row 3")
		})
	}
}

func TestParseRows_HeaderOnlyAndEmpty(t *testing.T) {
	samples, err := ParseRows(nil)
	require.NoError(t, err)
	assert.Empty(t, samples)

	samples, err = ParseRows([][]string{{"ID", "Easting", "Northing"}})
	require.NoError(t, err)
	assert.Empty(t, samples)
}

func TestParseRows_IntegralFloatID(t *testing.T) {
	samples, err := ParseRows([][]string{
		{"ID"},
		{"12.0", " 493512.5 ", "5181020", "x", " 7 "},
	})
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, 12, samples[0].ID)
	assert.Equal(t, "7", samples[0].SeriesRaw)
	assert.Equal(t, fmt.Sprint(493512.5), fmt.Sprint(samples[0].Easting))
}
