// Package csvout writes the cleaned soil-series CSV.
package csvout

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/couchcryptid/soil-series-etl/internal/domain"
)

// Writer writes samples to a dated CSV in a directory.
// It implements pipeline.Loader.
type Writer struct {
	dir    string
	logger *slog.Logger
}

// NewWriter creates a Writer that places its file in dir.
func NewWriter(dir string, logger *slog.Logger) *Writer {
	return &Writer{dir: dir, logger: logger}
}

// Load writes samples in the given order and returns the path of the file.
// The file appears only once it is complete.
func (w *Writer) Load(ctx context.Context, samples []domain.Sample) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(w.dir, domain.OutputFileName())
	tmp, err := os.CreateTemp(w.dir, ".soilseries-*.csv.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // no-op after a successful rename

	if err := Encode(tmp, samples); err != nil {
		tmp.Close() //nolint:errcheck,gosec // already failing
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close() //nolint:errcheck,gosec // already failing
		return "", fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("rename into %s: %w", path, err)
	}

	w.logger.Info("output written", "path", path, "rows", len(samples))
	return path, nil
}

// Encode writes the header and one row per sample to out.
func Encode(out io.Writer, samples []domain.Sample) error {
	cw := csv.NewWriter(out)
	if err := cw.Write(domain.OutputColumns); err != nil {
		return err
	}
	for _, s := range samples {
		if err := cw.Write(Row(s)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Row renders a sample in OutputColumns order.
func Row(s domain.Sample) []string {
	return []string{
		strconv.Itoa(s.GridID),
		s.SeriesName,
		strconv.FormatFloat(s.Latitude, 'f', -1, 64),
		strconv.FormatFloat(s.Longitude, 'f', -1, 64),
	}
}
