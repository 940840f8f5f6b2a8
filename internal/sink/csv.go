// Package sink writes the accepted and rejected partitions to CSV files.
package sink

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"retailetl/internal/logger"
	"retailetl/internal/models"
	"retailetl/internal/normalizer"
)

// RejectReasonColumn is the extra column appended to rejected rows.
const RejectReasonColumn = "Validation_Errors"

// Writer persists partitions for downstream consumers.
type Writer struct {
	logger *logger.Logger
}

// NewWriter creates a new CSV sink writer.
func NewWriter(log *logger.Logger) *Writer {
	return &Writer{logger: log}
}

// WriteAccepted writes the accepted records with the original column order.
func (w *Writer) WriteAccepted(path string, p *normalizer.Partition) error {
	rows := make([][]string, 0, len(p.Accepted))
	for i := range p.Accepted {
		rows = append(rows, recordValues(&p.Accepted[i], p.Columns))
	}

	if err := w.writeCSV(path, p.Columns, rows); err != nil {
		return fmt.Errorf("writing accepted records: %w", err)
	}

	w.logger.Info("accepted records written", "path", path, "rows", len(rows))

	return nil
}

// WriteRejected writes the rejected records with a trailing reason column.
// Nothing is written when there are no rejects.
func (w *Writer) WriteRejected(path string, p *normalizer.Partition) error {
	if len(p.Rejected) == 0 {
		w.logger.Info("no rejected records to write")
		return nil
	}

	header := append(append([]string{}, p.Columns...), RejectReasonColumn)

	rows := make([][]string, 0, len(p.Rejected))
	for i := range p.Rejected {
		rej := &p.Rejected[i]
		rows = append(rows, append(recordValues(&rej.Record, p.Columns), rej.Reason))
	}

	if err := w.writeCSV(path, header, rows); err != nil {
		return fmt.Errorf("writing rejected records: %w", err)
	}

	w.logger.Info("rejected records written", "path", path, "rows", len(rows))

	return nil
}

func (w *Writer) writeCSV(path string, header []string, rows [][]string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// recordValues renders a record's canonical values in column order; null
// fields become empty cells.
func recordValues(rec *models.Record, columns []string) []string {
	values := make([]string, len(columns))

	for i, col := range columns {
		if v := rec.Field(col); !v.Null {
			values[i] = v.Text
		}
	}

	return values
}
