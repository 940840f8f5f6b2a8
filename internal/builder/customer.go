package builder

import (
	"sort"
	"time"

	"retailetl/internal/models"
)

// BuildCustomerMaster groups accepted rows by customer identifier and keeps
// the first-seen value of every descriptive attribute. Rows without a
// resolvable customer identifier contribute nothing. Output is ordered by
// customer identifier.
func (b *Builder) BuildCustomerMaster(accepted []models.Record) []models.CustomerMaster {
	type dateRange struct {
		min, max time.Time
		seen     bool
	}

	customers := make(map[string]*models.CustomerMaster)
	ranges := make(map[string]*dateRange)

	for i := range accepted {
		rec := &accepted[i]

		cid, ok := rec.Text(models.ColCustomerID)
		if !ok {
			continue
		}

		if _, exists := customers[cid]; !exists {
			customers[cid] = &models.CustomerMaster{
				CustomerID:      cid,
				Name:            textPtr(rec, models.ColName),
				Email:           textPtr(rec, models.ColEmail),
				Phone:           textPtr(rec, models.ColPhone),
				Address:         textPtr(rec, models.ColAddress),
				City:            textPtr(rec, models.ColCity),
				State:           textPtr(rec, models.ColState),
				Zipcode:         textPtr(rec, models.ColZipcode),
				Country:         textPtr(rec, models.ColCountry),
				Age:             intPtr(rec, models.ColAge),
				Gender:          textPtr(rec, models.ColGender),
				Income:          numPtr(rec, models.ColIncome),
				CustomerSegment: textPtr(rec, models.ColCustomerSegment),
				IsLoyaltyMember: true,
			}
			ranges[cid] = &dateRange{}
		}

		if d, ok := rec.Date(models.ColDate); ok {
			r := ranges[cid]
			if !r.seen || d.Before(r.min) {
				r.min = d
			}

			if !r.seen || d.After(r.max) {
				r.max = d
			}

			r.seen = true
		}
	}

	ids := make([]string, 0, len(customers))
	for id := range customers {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	out := make([]models.CustomerMaster, 0, len(ids))

	for _, id := range ids {
		cm := customers[id]

		if r := ranges[id]; r.seen {
			since, last := r.min, r.max
			cm.CustomerSince = &since
			cm.LastPurchaseDate = &last
		}

		out = append(out, *cm)
	}

	return out
}
