// Package ingest reads the flat retail transaction export into a raw batch.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"retailetl/internal/logger"
	"retailetl/internal/models"
)

// Structural errors. Either aborts the run before any downstream stage.
var (
	ErrEmptyInput    = errors.New("input contains no data rows")
	ErrMissingColumn = errors.New("required column missing from input")
)

// Reader extracts raw records from a CSV export.
type Reader struct {
	logger *logger.Logger
}

// NewReader creates a new reader.
func NewReader(log *logger.Logger) *Reader {
	return &Reader{logger: log}
}

// ReadFile reads a CSV file into a raw batch, verifying that every required
// column is present and at least one data row exists.
func (r *Reader) ReadFile(path string, required []string) (*models.RawBatch, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	batch, err := r.Read(f, required)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return batch, nil
}

// Read reads CSV content into a raw batch. The first row is the header.
func (r *Reader) Read(rd io.Reader, required []string) (*models.RawBatch, error) {
	cr := csv.NewReader(rd)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns := make([]string, len(header))
	for i, col := range header {
		if i == 0 {
			col = strings.TrimPrefix(col, "\uFEFF")
		}

		columns[i] = strings.TrimSpace(col)
	}

	index := make(map[string]int, len(columns))
	for i, col := range columns {
		index[col] = i
	}

	for _, col := range required {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	batch := &models.RawBatch{Columns: columns}

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(batch.Rows)+2, err)
		}

		row := make(models.RawRecord, len(columns))
		for i, col := range columns {
			if i < len(rec) {
				row[col] = rec[i]
			}
		}

		batch.Rows = append(batch.Rows, row)
	}

	if len(batch.Rows) == 0 {
		return nil, ErrEmptyInput
	}

	r.logger.Info("input loaded", "rows", len(batch.Rows), "columns", len(columns))

	return batch, nil
}
