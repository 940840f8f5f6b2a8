package normalizer

import (
	"strings"

	"retailetl/internal/config"
	"retailetl/internal/models"
)

// Validator applies the row-level validation rules across a normalized
// batch. Rules are evaluated in a fixed order and each appends its own
// violation, so a record can accumulate several.
type Validator struct {
	schema   config.SchemaConfig
	critical []string
}

// NewValidator creates a validator for the given column roles.
func NewValidator(schema config.SchemaConfig) *Validator {
	return &Validator{
		schema:   schema,
		critical: schema.CriticalColumns(),
	}
}

// ValidateBatch produces one verdict per record, in record order.
// Duplicate detection is batch-wide: the first occurrence of identical
// normalized content is kept clean, later occurrences are flagged.
func (v *Validator) ValidateBatch(batch *models.Batch) []models.Verdict {
	verdicts := make([]models.Verdict, len(batch.Records))
	seen := make(map[string]bool, len(batch.Records))

	for i := range batch.Records {
		rec := &batch.Records[i]

		var violations []models.Violation

		for _, col := range v.schema.DateColumns {
			if normalizeFailed(rec, col) {
				violations = append(violations, models.Violation{Rule: models.RuleInvalidDate, Column: col})
			}
		}

		for _, col := range v.schema.TimeColumns {
			if normalizeFailed(rec, col) {
				violations = append(violations, models.Violation{Rule: models.RuleInvalidTime, Column: col})
			}
		}

		for _, col := range v.schema.NumericColumns {
			if normalizeFailed(rec, col) {
				violations = append(violations, models.Violation{Rule: models.RuleInvalidNumeric, Column: col})
			}
		}

		for _, col := range batch.Columns {
			if rec.Field(col).Null {
				violations = append(violations, models.Violation{Rule: models.RuleMissingValues})
				break
			}
		}

		fp := rec.Fingerprint(batch.Columns)
		if seen[fp] {
			violations = append(violations, models.Violation{Rule: models.RuleDuplicate})
		} else {
			seen[fp] = true
		}

		for _, col := range v.critical {
			if val := rec.Field(col); !val.Null && val.Num == 0 {
				violations = append(violations, models.Violation{Rule: models.RuleZero, Column: col})
			}
		}

		verdicts[i] = models.Verdict{Violations: violations}
	}

	return verdicts
}

// normalizeFailed reports whether a column lost a present raw value during
// normalization. An empty raw value is a missing value, not a parse failure.
func normalizeFailed(rec *models.Record, col string) bool {
	val := rec.Field(col)

	return val.Null && strings.TrimSpace(val.Raw) != ""
}
