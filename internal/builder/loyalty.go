package builder

import (
	"fmt"
	"math"
	"sort"

	"retailetl/internal/models"
)

// Loyalty event constants.
const (
	loyaltyKeyFormat = "L%07d"
	EventTypeEarn    = "EARN"
	pointsDivisor    = 10
)

// BuildLoyaltyTransactions emits one EARN event per sales transaction in
// (customer, date, transaction) order with a running per-customer points
// balance. Within a customer's sequence the balance never decreases, since
// this pipeline generates no redemption events.
func (b *Builder) BuildLoyaltyTransactions(sales []models.SalesTransaction) []models.LoyaltyTransaction {
	rows := make([]models.SalesTransaction, len(sales))
	copy(rows, sales)

	sort.SliceStable(rows, func(i, j int) bool {
		return salesLess(&rows[i], &rows[j])
	})

	balances := make(map[string]int)
	out := make([]models.LoyaltyTransaction, 0, len(rows))

	for i := range rows {
		st := &rows[i]

		points := 0
		if st.TotalAmount != nil {
			points = int(math.Floor(*st.TotalAmount / pointsDivisor))
		}

		key := ""
		if st.CustomerID != nil {
			key = *st.CustomerID
		}

		balances[key] += points

		out = append(out, models.LoyaltyTransaction{
			LoyaltyTxnID:  fmt.Sprintf(loyaltyKeyFormat, i+1),
			CustomerID:    st.CustomerID,
			TransactionID: st.TransactionID,
			PointsEarned:  points,
			BalanceAfter:  balances[key],
			EventDate:     st.Date,
			EventType:     EventTypeEarn,
		})
	}

	return out
}

// salesLess orders by customer, then date, then transaction identifier.
// Null customers and null dates sort last within their level.
func salesLess(a, c *models.SalesTransaction) bool {
	switch {
	case a.CustomerID == nil && c.CustomerID != nil:
		return false
	case a.CustomerID != nil && c.CustomerID == nil:
		return true
	case a.CustomerID != nil && c.CustomerID != nil && *a.CustomerID != *c.CustomerID:
		return *a.CustomerID < *c.CustomerID
	}

	switch {
	case a.Date == nil && c.Date != nil:
		return false
	case a.Date != nil && c.Date == nil:
		return true
	case a.Date != nil && c.Date != nil && !a.Date.Equal(*c.Date):
		return a.Date.Before(*c.Date)
	}

	return a.TransactionID < c.TransactionID
}
