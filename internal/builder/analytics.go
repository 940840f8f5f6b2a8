package builder

import (
	"sort"
	"time"

	"retailetl/internal/models"
)

// Fixed scoring placeholders carried on every analytics row.
const (
	defaultRFMScore = 1
	defaultSegment  = "Medium"
)

// BuildCustomerAnalytics aggregates recency/frequency/monetary metrics per
// customer from the sales-transaction output. The snapshot date is the
// maximum transaction date across the whole set; customers without a single
// dated transaction get the run's maximum recency as a fallback, so recency
// is never null and never negative. Rows without a customer identifier are
// excluded. Output is ordered by customer identifier.
func (b *Builder) BuildCustomerAnalytics(sales []models.SalesTransaction) []models.CustomerAnalytics {
	var snapshot time.Time

	for i := range sales {
		if d := sales[i].Date; d != nil && d.After(snapshot) {
			snapshot = *d
		}
	}

	type aggregate struct {
		lastPurchase time.Time
		types        map[string]bool
		monetary     float64
		ratingSum    float64
		frequency    int
		ratingCount  int
		hasDate      bool
	}

	groups := make(map[string]*aggregate)

	for i := range sales {
		st := &sales[i]
		if st.CustomerID == nil {
			continue
		}

		g, ok := groups[*st.CustomerID]
		if !ok {
			g = &aggregate{types: make(map[string]bool)}
			groups[*st.CustomerID] = g
		}

		g.frequency++

		if st.TotalAmount != nil {
			g.monetary += *st.TotalAmount
		}

		if st.ProductType != nil {
			g.types[*st.ProductType] = true
		}

		if st.Ratings != nil {
			g.ratingSum += *st.Ratings
			g.ratingCount++
		}

		if st.Date != nil && (!g.hasDate || st.Date.After(g.lastPurchase)) {
			g.lastPurchase = *st.Date
			g.hasDate = true
		}
	}

	ids := make([]string, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	// First pass computes recency where a last purchase date exists; the
	// maximum computed recency backfills the rest.
	recencies := make(map[string]int, len(groups))
	maxRecency := 0

	for id, g := range groups {
		if !g.hasDate || snapshot.IsZero() {
			continue
		}

		days := int(snapshot.Sub(g.lastPurchase).Hours() / 24)
		recencies[id] = days

		if days > maxRecency {
			maxRecency = days
		}
	}

	out := make([]models.CustomerAnalytics, 0, len(ids))

	for _, id := range ids {
		g := groups[id]

		recency, ok := recencies[id]
		if !ok {
			recency = maxRecency
		}

		avgRating := 0.0
		if g.ratingCount > 0 {
			avgRating = g.ratingSum / float64(g.ratingCount)
		}

		out = append(out, models.CustomerAnalytics{
			CustomerID:       id,
			Recency:          recency,
			Frequency:        g.frequency,
			Monetary:         g.monetary,
			RFMScore:         defaultRFMScore,
			Segment:          defaultSegment,
			ProductDiversity: len(g.types),
			AvgRating:        avgRating,
			CLVScore:         g.monetary * float64(g.frequency) / float64(recency+1),
			SnapshotDate:     snapshot,
		})
	}

	return out
}
