package normalizer

import (
	"errors"

	"retailetl/internal/config"
	"retailetl/internal/logger"
	"retailetl/internal/models"
)

// ErrEmptyBatch is returned when the raw batch has no data rows.
var ErrEmptyBatch = errors.New("batch contains no rows")

// Processor runs normalization, validation and partitioning for one batch.
type Processor struct {
	fields    *FieldNormalizer
	validator *Validator
	schema    config.SchemaConfig
	logger    *logger.Logger
}

// NewProcessor creates a processor for the given column roles.
func NewProcessor(schema config.SchemaConfig, log *logger.Logger) *Processor {
	return &Processor{
		fields:    NewFieldNormalizer(),
		validator: NewValidator(schema),
		schema:    schema,
		logger:    log,
	}
}

// Process normalizes every field of the raw batch, validates every row and
// splits the result into accepted and rejected partitions. The verdicts are
// returned alongside so callers can count violations per rule.
func (p *Processor) Process(raw *models.RawBatch) (*Partition, []models.Verdict, error) {
	if len(raw.Rows) == 0 {
		return nil, nil, ErrEmptyBatch
	}

	batch := p.normalizeBatch(raw)
	verdicts := p.validator.ValidateBatch(batch)
	partition := Split(batch, verdicts)

	p.logger.Info("batch partitioned",
		"input", len(batch.Records),
		"accepted", len(partition.Accepted),
		"rejected", len(partition.Rejected),
	)

	return partition, verdicts, nil
}

// normalizeBatch applies the role-appropriate normalizer to every field.
func (p *Processor) normalizeBatch(raw *models.RawBatch) *models.Batch {
	roles := make([]models.Kind, len(raw.Columns))
	for i, col := range raw.Columns {
		roles[i] = p.schema.RoleOf(col)
	}

	batch := &models.Batch{
		Columns: raw.Columns,
		Records: make([]models.Record, len(raw.Rows)),
	}

	for i, row := range raw.Rows {
		fields := make(map[string]models.Value, len(raw.Columns))
		for j, col := range raw.Columns {
			fields[col] = p.fields.Normalize(row[col], roles[j])
		}

		batch.Records[i] = models.Record{Index: i, Fields: fields}
	}

	return batch
}
