package builder

import (
	"math"
	"testing"

	"retailetl/internal/models"
)

func TestBuildCustomerAnalytics_Aggregates(t *testing.T) {
	sales := []models.SalesTransaction{
		{
			TransactionID: "T100",
			CustomerID:    strPtr("C1"),
			Date:          timePtr(day("2024-01-10")),
			TotalAmount:   floatPtr(40),
			ProductType:   strPtr("Phone"),
			Ratings:       floatPtr(4),
		},
		{
			TransactionID: "T101",
			CustomerID:    strPtr("C1"),
			Date:          timePtr(day("2024-01-20")),
			TotalAmount:   floatPtr(60),
			ProductType:   strPtr("Tablet"),
			Ratings:       floatPtr(5),
		},
		{
			TransactionID: "T102",
			CustomerID:    strPtr("C2"),
			Date:          timePtr(day("2024-01-05")),
			TotalAmount:   floatPtr(100),
			ProductType:   strPtr("Phone"),
		},
	}

	rows := testBuilder().BuildCustomerAnalytics(sales)

	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}

	c1 := rows[0]

	if c1.CustomerID != "C1" {
		t.Fatalf("rows not sorted: first is %s", c1.CustomerID)
	}

	if c1.Recency != 0 {
		t.Errorf("C1 recency = %d, want 0", c1.Recency)
	}

	if c1.Frequency != 2 || c1.Monetary != 100 {
		t.Errorf("C1 frequency/monetary = %d/%v", c1.Frequency, c1.Monetary)
	}

	if c1.AvgRating != 4.5 {
		t.Errorf("C1 avg rating = %v, want 4.5", c1.AvgRating)
	}

	if c1.ProductDiversity != 2 {
		t.Errorf("C1 diversity = %d, want 2", c1.ProductDiversity)
	}

	// CLV = monetary * frequency / (recency + 1)
	if c1.CLVScore != 200 {
		t.Errorf("C1 CLV = %v, want 200", c1.CLVScore)
	}

	c2 := rows[1]

	if c2.Recency != 15 {
		t.Errorf("C2 recency = %d, want 15", c2.Recency)
	}

	if c2.AvgRating != 0 {
		t.Errorf("C2 avg rating = %v, want 0 for unrated customer", c2.AvgRating)
	}

	if math.Abs(c2.CLVScore-6.25) > 1e-9 {
		t.Errorf("C2 CLV = %v, want 6.25", c2.CLVScore)
	}

	if !c1.SnapshotDate.Equal(day("2024-01-20")) {
		t.Errorf("snapshot = %v, want 2024-01-20", c1.SnapshotDate)
	}
}

func TestBuildCustomerAnalytics_RecencyFallback(t *testing.T) {
	sales := []models.SalesTransaction{
		{
			TransactionID: "T100",
			CustomerID:    strPtr("C1"),
			Date:          timePtr(day("2024-01-15")),
			TotalAmount:   floatPtr(40),
		},
		{
			TransactionID: "T101",
			CustomerID:    strPtr("C2"),
			Date:          timePtr(day("2024-01-10")),
			TotalAmount:   floatPtr(40),
		},
		{
			TransactionID: "T102",
			CustomerID:    strPtr("C3"),
			TotalAmount:   floatPtr(40),
		},
	}

	rows := testBuilder().BuildCustomerAnalytics(sales)

	var c3 models.CustomerAnalytics
	for _, r := range rows {
		if r.CustomerID == "C3" {
			c3 = r
		}

		if r.Recency < 0 {
			t.Errorf("%s recency = %d, negative", r.CustomerID, r.Recency)
		}
	}

	// No dated purchase: backfilled with the run's maximum computed recency.
	if c3.Recency != 5 {
		t.Errorf("C3 recency = %d, want 5", c3.Recency)
	}
}

func TestBuildCustomerAnalytics_ExcludesNullCustomer(t *testing.T) {
	sales := []models.SalesTransaction{
		{TransactionID: "T100", Date: timePtr(day("2024-01-10")), TotalAmount: floatPtr(40)},
		{TransactionID: "T101", CustomerID: strPtr("C1"), Date: timePtr(day("2024-01-10")), TotalAmount: floatPtr(40)},
	}

	rows := testBuilder().BuildCustomerAnalytics(sales)

	if len(rows) != 1 || rows[0].CustomerID != "C1" {
		t.Errorf("rows = %+v, want only C1", rows)
	}
}

func TestBuildCustomerAnalytics_DefaultScores(t *testing.T) {
	sales := []models.SalesTransaction{
		{TransactionID: "T100", CustomerID: strPtr("C1"), Date: timePtr(day("2024-01-10")), TotalAmount: floatPtr(40)},
	}

	row := testBuilder().BuildCustomerAnalytics(sales)[0]

	if row.RFMScore != defaultRFMScore {
		t.Errorf("RFMScore = %d, want %d", row.RFMScore, defaultRFMScore)
	}

	if row.Segment != defaultSegment {
		t.Errorf("Segment = %s, want %s", row.Segment, defaultSegment)
	}
}
