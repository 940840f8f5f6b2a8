package builder

import (
	"fmt"

	"retailetl/internal/models"
)

// productKeyFormat produces the fixed-width, prefixed synthetic key.
const productKeyFormat = "P%06d"

// BuildProductMaster deduplicates products on the natural
// (category, brand, type, full-name) tuple and assigns a synthetic
// sequential key in first-appearance order. Uniqueness holds on the
// synthetic key, not on the natural combination.
func (b *Builder) BuildProductMaster(accepted []models.Record) []models.ProductMaster {
	seen := make(map[string]bool)

	var out []models.ProductMaster

	for i := range accepted {
		rec := &accepted[i]

		category, _ := rec.Text(models.ColProductCategory)
		brand, _ := rec.Text(models.ColProductBrand)
		ptype, _ := rec.Text(models.ColProductType)
		fullName, _ := rec.Text(models.ColProducts)

		tuple := category + "\x1f" + brand + "\x1f" + ptype + "\x1f" + fullName
		if seen[tuple] {
			continue
		}

		seen[tuple] = true

		out = append(out, models.ProductMaster{
			ProductKey:      fmt.Sprintf(productKeyFormat, len(out)+1),
			ProductCategory: textPtr(rec, models.ColProductCategory),
			ProductBrand:    textPtr(rec, models.ColProductBrand),
			ProductType:     textPtr(rec, models.ColProductType),
			ProductFullName: textPtr(rec, models.ColProducts),
			IsActive:        true,
		})
	}

	return out
}
