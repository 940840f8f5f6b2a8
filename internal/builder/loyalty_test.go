package builder

import (
	"testing"

	"retailetl/internal/models"
)

func TestBuildLoyaltyTransactions_PointsAndBalance(t *testing.T) {
	sales := []models.SalesTransaction{
		{TransactionID: "T100", CustomerID: strPtr("C1"), Date: timePtr(day("2024-01-10")), TotalAmount: floatPtr(47.5)},
		{TransactionID: "T101", CustomerID: strPtr("C1"), Date: timePtr(day("2024-01-12")), TotalAmount: floatPtr(30)},
		{TransactionID: "T102", CustomerID: strPtr("C1"), Date: timePtr(day("2024-01-15")), TotalAmount: floatPtr(9)},
	}

	rows := testBuilder().BuildLoyaltyTransactions(sales)

	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}

	wantPoints := []int{4, 3, 0}
	wantBalance := []int{4, 7, 7}

	for i, r := range rows {
		if r.PointsEarned != wantPoints[i] {
			t.Errorf("row %d points = %d, want %d", i, r.PointsEarned, wantPoints[i])
		}

		if r.BalanceAfter != wantBalance[i] {
			t.Errorf("row %d balance = %d, want %d", i, r.BalanceAfter, wantBalance[i])
		}

		if r.EventType != EventTypeEarn {
			t.Errorf("row %d event type = %s", i, r.EventType)
		}
	}
}

func TestBuildLoyaltyTransactions_IDSequence(t *testing.T) {
	sales := []models.SalesTransaction{
		{TransactionID: "T100", CustomerID: strPtr("C1"), Date: timePtr(day("2024-01-10")), TotalAmount: floatPtr(10)},
		{TransactionID: "T101", CustomerID: strPtr("C2"), Date: timePtr(day("2024-01-11")), TotalAmount: floatPtr(10)},
	}

	rows := testBuilder().BuildLoyaltyTransactions(sales)

	if rows[0].LoyaltyTxnID != "L0000001" || rows[1].LoyaltyTxnID != "L0000002" {
		t.Errorf("ids = %s, %s", rows[0].LoyaltyTxnID, rows[1].LoyaltyTxnID)
	}
}

func TestBuildLoyaltyTransactions_Ordering(t *testing.T) {
	// Deliberately shuffled input: output must come back in
	// (customer, date, transaction) order with null customers last.
	sales := []models.SalesTransaction{
		{TransactionID: "T300", Date: timePtr(day("2024-01-01")), TotalAmount: floatPtr(10)},
		{TransactionID: "T102", CustomerID: strPtr("C2"), Date: timePtr(day("2024-01-05")), TotalAmount: floatPtr(10)},
		{TransactionID: "T101", CustomerID: strPtr("C1"), Date: timePtr(day("2024-01-20")), TotalAmount: floatPtr(10)},
		{TransactionID: "T100", CustomerID: strPtr("C1"), Date: timePtr(day("2024-01-10")), TotalAmount: floatPtr(10)},
	}

	rows := testBuilder().BuildLoyaltyTransactions(sales)

	got := make([]string, len(rows))
	for i, r := range rows {
		got[i] = r.TransactionID
	}

	want := []string{"T100", "T101", "T102", "T300"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestBuildLoyaltyTransactions_NullDateSortsLastWithinCustomer(t *testing.T) {
	sales := []models.SalesTransaction{
		{TransactionID: "T101", CustomerID: strPtr("C1"), TotalAmount: floatPtr(10)},
		{TransactionID: "T100", CustomerID: strPtr("C1"), Date: timePtr(day("2024-01-10")), TotalAmount: floatPtr(10)},
	}

	rows := testBuilder().BuildLoyaltyTransactions(sales)

	if rows[0].TransactionID != "T100" || rows[1].TransactionID != "T101" {
		t.Errorf("order = %s, %s; want T100, T101", rows[0].TransactionID, rows[1].TransactionID)
	}

	if rows[1].EventDate != nil {
		t.Errorf("EventDate = %v, want nil", rows[1].EventDate)
	}
}

func TestBuildLoyaltyTransactions_BalancesPerCustomer(t *testing.T) {
	sales := []models.SalesTransaction{
		{TransactionID: "T100", CustomerID: strPtr("C1"), Date: timePtr(day("2024-01-10")), TotalAmount: floatPtr(100)},
		{TransactionID: "T101", CustomerID: strPtr("C2"), Date: timePtr(day("2024-01-11")), TotalAmount: floatPtr(50)},
		{TransactionID: "T102", CustomerID: strPtr("C2"), Date: timePtr(day("2024-01-12")), TotalAmount: floatPtr(50)},
	}

	rows := testBuilder().BuildLoyaltyTransactions(sales)

	balances := make(map[string]int)
	for _, r := range rows {
		if r.CustomerID != nil {
			balances[*r.CustomerID] = r.BalanceAfter
		}
	}

	if balances["C1"] != 10 {
		t.Errorf("C1 balance = %d, want 10", balances["C1"])
	}

	if balances["C2"] != 10 {
		t.Errorf("C2 balance = %d, want 10", balances["C2"])
	}
}
