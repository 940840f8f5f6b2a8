package builder

import (
	"strconv"
	"strings"

	"retailetl/internal/models"
)

// QualityFlagPass marks rows that cleared validation.
const QualityFlagPass = "PASS"

// monthNumbers maps month names to calendar numbers for rows whose date
// column failed to parse but whose raw month field survived.
var monthNumbers = map[string]int{
	"january":   1,
	"february":  2,
	"march":     3,
	"april":     4,
	"may":       5,
	"june":      6,
	"july":      7,
	"august":    8,
	"september": 9,
	"october":   10,
	"november":  11,
	"december":  12,
}

// BuildSalesTransactions projects accepted rows onto the sales_transactions
// shape. Rows with a null transaction identifier are dropped; for duplicate
// identifiers the first occurrence is kept.
func (b *Builder) BuildSalesTransactions(accepted []models.Record) []models.SalesTransaction {
	ingestedAt := b.now().UTC()
	seen := make(map[string]bool, len(accepted))

	var out []models.SalesTransaction

	for i := range accepted {
		rec := &accepted[i]

		txID, ok := rec.Text(models.ColTransactionID)
		if !ok || seen[txID] {
			continue
		}

		seen[txID] = true

		st := models.SalesTransaction{
			TransactionID:      txID,
			CustomerID:         textPtr(rec, models.ColCustomerID),
			Time:               textPtr(rec, models.ColTime),
			TotalPurchases:     intPtr(rec, models.ColTotalPurchases),
			Amount:             numPtr(rec, models.ColAmount),
			TotalAmount:        numPtr(rec, models.ColTotalAmount),
			ProductCategory:    textPtr(rec, models.ColProductCategory),
			ProductBrand:       textPtr(rec, models.ColProductBrand),
			ProductType:        textPtr(rec, models.ColProductType),
			ShippingMethod:     textPtr(rec, models.ColShippingMethod),
			PaymentMethod:      textPtr(rec, models.ColPaymentMethod),
			OrderStatus:        textPtr(rec, models.ColOrderStatus),
			Ratings:            numPtr(rec, models.ColRatings),
			Feedback:           textPtr(rec, models.ColFeedback),
			IngestionTimestamp: ingestedAt,
			DataQualityFlag:    QualityFlagPass,
		}

		if d, ok := rec.Date(models.ColDate); ok {
			date := d
			year, month := d.Year(), int(d.Month())
			st.Date = &date
			st.Year = &year
			st.Month = &month
		} else {
			st.Year = intPtr(rec, models.ColYear)

			if name, ok := rec.Text(models.ColMonth); ok {
				if m, ok := monthNumber(name); ok {
					st.Month = &m
				}
			}
		}

		out = append(out, st)
	}

	return out
}

// monthNumber resolves a month name, falling back to a numeric value.
func monthNumber(name string) (int, bool) {
	if m, ok := monthNumbers[strings.ToLower(strings.TrimSpace(name))]; ok {
		return m, true
	}

	if m, err := strconv.Atoi(strings.TrimSpace(name)); err == nil && m >= 1 && m <= 12 {
		return m, true
	}

	return 0, false
}
