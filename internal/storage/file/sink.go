package file

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/drakos74/free-census/internal/model"
)

const (
	separator       = ", "
	targetSeparator = " | "
)

// FormatRow formats an encoded row as 'v1, v2, ..., vn | target'.
func FormatRow(e model.Encoded) string {
	vv := make([]string, len(e.Features))
	for i, f := range e.Features {
		vv[i] = strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strings.Join(vv, separator) + targetSeparator + strconv.Itoa(e.Target)
}

// FormatLegend returns one category line per feature followed by the target line.
// Numeric features are listed with the continuous token.
func FormatLegend(features []model.Feature, target model.Feature) []string {
	lines := make([]string, 0, len(features)+1)
	for _, f := range features {
		if f.Numeric() {
			lines = append(lines, model.Continuous)
			continue
		}
		lines = append(lines, strings.Join(f.Categories, separator))
	}
	return append(lines, strings.Join(target.Categories, separator))
}

// RowWriter writes encoded rows in the dataset format.
type RowWriter struct {
	file   *os.File
	writer *bufio.Writer
	count  int
}

// NewRowWriter creates a row writer on top of the given writer.
func NewRowWriter(w io.Writer) *RowWriter {
	return &RowWriter{
		writer: bufio.NewWriter(w),
	}
}

// CreateRowWriter creates the dataset file, truncating any previous content.
func CreateRowWriter(path string) (*RowWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("could not create file '%s': %w", path, err)
	}
	w := NewRowWriter(f)
	w.file = f
	return w, nil
}

// Write appends the row to the output.
func (w *RowWriter) Write(e model.Encoded) error {
	if _, err := w.writer.WriteString(FormatRow(e) + "\n"); err != nil {
		return fmt.Errorf("could not write row %d: %w", w.count, err)
	}
	w.count++
	return nil
}

// Count returns the number of rows written so far.
func (w *RowWriter) Count() int {
	return w.count
}

// Close flushes the buffered rows and closes the underlying file, if any.
func (w *RowWriter) Close() error {
	if err := w.writer.Flush(); err != nil {
		if w.file != nil {
			_ = w.file.Close()
		}
		return fmt.Errorf("could not flush rows: %w", err)
	}
	if w.file != nil {
		return w.file.Close()
	}
	return nil
}

// WriteLegend writes the legend of the given features and target to the writer.
func WriteLegend(w io.Writer, features []model.Feature, target model.Feature) error {
	bw := bufio.NewWriter(w)
	for _, line := range FormatLegend(features, target) {
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("could not write legend: %w", err)
		}
	}
	return bw.Flush()
}

// SaveLegend creates the legend file.
func SaveLegend(path string, features []model.Feature, target model.Feature) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create file '%s': %w", path, err)
	}
	if err := WriteLegend(f, features, target); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("could not close '%s': %w", path, err)
	}
	return nil
}
