package sink

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"retailetl/internal/logger"
	"retailetl/internal/models"
	"retailetl/internal/normalizer"
)

var testColumns = []string{models.ColTransactionID, models.ColCustomerID, models.ColTotalAmount}

func testWriter() *Writer {
	return NewWriter(logger.NewLogger("error"))
}

func record(tx, customer, total string) models.Record {
	fields := map[string]models.Value{
		models.ColTransactionID: {Raw: tx, Text: tx, Kind: models.KindText},
		models.ColCustomerID:    {Raw: customer, Text: customer, Kind: models.KindText},
		models.ColTotalAmount:   {Raw: total, Text: total, Kind: models.KindNumeric},
	}

	if customer == "" {
		fields[models.ColCustomerID] = models.Value{Kind: models.KindText, Null: true}
	}

	return models.Record{Fields: fields}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse %s: %v", path, err)
	}

	return rows
}

func TestWriter_WriteAccepted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "good.csv")

	p := &normalizer.Partition{
		Columns: testColumns,
		Accepted: []models.Record{
			record("T100", "C1", "47"),
			record("T101", "", "30"),
		},
	}

	if err := testWriter().WriteAccepted(path, p); err != nil {
		t.Fatalf("WriteAccepted returned error: %v", err)
	}

	rows := readCSV(t, path)

	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}

	if rows[0][0] != models.ColTransactionID {
		t.Errorf("header = %v", rows[0])
	}

	if rows[1][2] != "47" {
		t.Errorf("first row total = %q", rows[1][2])
	}

	// Null fields become empty cells.
	if rows[2][1] != "" {
		t.Errorf("null customer rendered as %q, want empty", rows[2][1])
	}
}

func TestWriter_WriteRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")

	p := &normalizer.Partition{
		Columns: testColumns,
		Rejected: []normalizer.RejectedRecord{
			{Record: record("T100", "C1", "0"), Reason: "zero:Total_Amount"},
		},
	}

	if err := testWriter().WriteRejected(path, p); err != nil {
		t.Fatalf("WriteRejected returned error: %v", err)
	}

	rows := readCSV(t, path)

	header := rows[0]
	if header[len(header)-1] != RejectReasonColumn {
		t.Errorf("last header column = %q, want %s", header[len(header)-1], RejectReasonColumn)
	}

	if got := rows[1][len(rows[1])-1]; got != "zero:Total_Amount" {
		t.Errorf("reason cell = %q", got)
	}
}

func TestWriter_WriteRejected_NoRejects(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")

	p := &normalizer.Partition{Columns: testColumns}

	if err := testWriter().WriteRejected(path, p); err != nil {
		t.Fatalf("WriteRejected returned error: %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("file created for empty reject set")
	}
}

func TestWriter_WriteAccepted_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out", "good.csv")

	p := &normalizer.Partition{
		Columns:  testColumns,
		Accepted: []models.Record{record("T100", "C1", "47")},
	}

	if err := testWriter().WriteAccepted(path, p); err != nil {
		t.Fatalf("WriteAccepted returned error: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("output missing: %v", err)
	}
}
