package warehouse

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"retailetl/internal/logger"
	"retailetl/internal/models"
)

func openTestLoader(t *testing.T) *Loader {
	t.Helper()

	l, err := Open(filepath.Join(t.TempDir(), "warehouse.db"), logger.NewLogger("error"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}

	t.Cleanup(func() { l.Close() })

	return l
}

func testTables() *models.Tables {
	c1 := "C1"
	amount := 47.5
	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	return &models.Tables{
		CustomerMaster: []models.CustomerMaster{
			{CustomerID: c1, IsLoyaltyMember: true, CustomerSince: &date, LastPurchaseDate: &date},
		},
		ProductMaster: []models.ProductMaster{
			{ProductKey: "P000001", IsActive: true},
		},
		SalesTransactions: []models.SalesTransaction{
			{
				TransactionID:      "T100",
				CustomerID:         &c1,
				Date:               &date,
				TotalAmount:        &amount,
				IngestionTimestamp: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
				DataQualityFlag:    "PASS",
			},
		},
		CustomerAnalytics: []models.CustomerAnalytics{
			{CustomerID: c1, Frequency: 1, Monetary: 47.5, RFMScore: 1, Segment: "Medium", SnapshotDate: date},
		},
		LoyaltyTransactions: []models.LoyaltyTransaction{
			{LoyaltyTxnID: "L0000001", CustomerID: &c1, TransactionID: "T100", PointsEarned: 4, BalanceAfter: 4, EventDate: &date, EventType: "EARN"},
		},
	}
}

func TestLoader_InitAndLoadAll(t *testing.T) {
	l := openTestLoader(t)
	ctx := context.Background()

	if err := l.Init(ctx); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}

	if err := l.LoadAll(ctx, testTables()); err != nil {
		t.Fatalf("LoadAll returned error: %v", err)
	}

	counts, err := l.TableCounts(ctx)
	if err != nil {
		t.Fatalf("TableCounts returned error: %v", err)
	}

	for _, name := range tableNames {
		if counts[name] != 1 {
			t.Errorf("%s count = %d, want 1", name, counts[name])
		}
	}
}

func TestLoader_InitResetsExistingData(t *testing.T) {
	l := openTestLoader(t)
	ctx := context.Background()

	if err := l.Init(ctx); err != nil {
		t.Fatalf("first Init returned error: %v", err)
	}

	if err := l.LoadAll(ctx, testTables()); err != nil {
		t.Fatalf("LoadAll returned error: %v", err)
	}

	if err := l.Init(ctx); err != nil {
		t.Fatalf("second Init returned error: %v", err)
	}

	counts, err := l.TableCounts(ctx)
	if err != nil {
		t.Fatalf("TableCounts returned error: %v", err)
	}

	for _, name := range tableNames {
		if counts[name] != 0 {
			t.Errorf("%s count after reset = %d, want 0", name, counts[name])
		}
	}
}

func TestLoader_DateRendering(t *testing.T) {
	l := openTestLoader(t)
	ctx := context.Background()

	if err := l.Init(ctx); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}

	if err := l.LoadAll(ctx, testTables()); err != nil {
		t.Fatalf("LoadAll returned error: %v", err)
	}

	// The driver converts DATE-decltype columns to time.Time on read, so the
	// raw stored text is checked via CAST.
	var raw string
	err := l.db.QueryRowContext(ctx, "SELECT CAST(date AS TEXT) FROM sales_transactions WHERE transaction_id = 'T100'").Scan(&raw)
	if err != nil {
		t.Fatalf("query returned error: %v", err)
	}

	if raw != "2024-01-10" {
		t.Errorf("stored date = %q, want 2024-01-10", raw)
	}

	var date time.Time
	err = l.db.QueryRowContext(ctx, "SELECT date FROM sales_transactions WHERE transaction_id = 'T100'").Scan(&date)
	if err != nil {
		t.Fatalf("typed query returned error: %v", err)
	}

	if got := date.Format("2006-01-02"); got != "2024-01-10" {
		t.Errorf("scanned date = %s, want 2024-01-10", got)
	}
}

func TestLoader_NullableColumns(t *testing.T) {
	l := openTestLoader(t)
	ctx := context.Background()

	if err := l.Init(ctx); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}

	tables := testTables()
	tables.SalesTransactions[0].CustomerID = nil
	tables.SalesTransactions[0].Date = nil

	if err := l.LoadAll(ctx, tables); err != nil {
		t.Fatalf("LoadAll with nulls returned error: %v", err)
	}

	var n int
	err := l.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sales_transactions WHERE customer_id IS NULL AND date IS NULL").Scan(&n)
	if err != nil {
		t.Fatalf("query returned error: %v", err)
	}

	if n != 1 {
		t.Errorf("null row count = %d, want 1", n)
	}
}

func TestDateArg(t *testing.T) {
	if got := dateArg(nil); got != nil {
		t.Errorf("dateArg(nil) = %v, want nil", got)
	}

	d := time.Date(2024, 1, 10, 15, 30, 0, 0, time.UTC)
	if got := dateArg(&d); got != "2024-01-10" {
		t.Errorf("dateArg = %v, want 2024-01-10", got)
	}
}
