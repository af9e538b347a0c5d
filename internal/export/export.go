// Package export renders the aggregated points table as xlsx, csv or parquet
// and prints it to the console.
package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/guregu/null.v3"

	"github.com/tyler180/fantasypros-weekly/internal/config"
	"github.com/tyler180/fantasypros-weekly/internal/points"
)

// ErrWrite wraps any failure producing or saving the artifact.
var ErrWrite = errors.New("output write failed")

// Header returns the column labels: Player, Team, Position, Wk<N>..., Total.
func Header(weeks []int) []string {
	h := make([]string, 0, len(weeks)+4)
	h = append(h, "Player", "Team", "Position")
	for _, w := range weeks {
		h = append(h, WeekLabel(w))
	}
	return append(h, "Total")
}

func WeekLabel(week int) string { return fmt.Sprintf("Wk%d", week) }

// Render encodes the table in the given format. sheet is only used by xlsx.
func Render(w io.Writer, format config.Format, t *points.Table, sheet string) error {
	var err error
	switch format {
	case config.FormatXLSX:
		err = writeXLSX(w, t, sheet)
	case config.FormatCSV:
		err = writeCSV(w, t)
	case config.FormatParquet:
		err = writeParquet(w, t)
	default:
		return errors.Wrapf(ErrWrite, "unknown format %q", format)
	}
	if err != nil {
		return errors.Wrapf(ErrWrite, "render %s: %v", format, err)
	}
	return nil
}

// ContentType is the MIME type uploaded alongside the artifact.
func ContentType(format config.Format) string {
	switch format {
	case config.FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case config.FormatCSV:
		return "text/csv"
	case config.FormatParquet:
		return "application/vnd.apache.parquet"
	}
	return "application/octet-stream"
}

// RenderBytes is Render into memory, for callers that both save and upload.
func RenderBytes(format config.Format, t *points.Table, sheet string) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, format, t, sheet); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile saves data at path, creating the parent directory.
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(ErrWrite, "create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(ErrWrite, "write %s: %v", path, err)
	}
	return nil
}

func formatCell(v null.Float) string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatFloat(v.Float64, 'f', -1, 64)
}
