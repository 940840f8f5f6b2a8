package normalizer

import "retailetl/internal/models"

// RejectedRecord pairs a rejected row with its serialized reason string.
type RejectedRecord struct {
	Reason string
	Record models.Record
}

// Partition holds the accepted and rejected splits of one batch. Accepted
// records carry no validator metadata onward; rejects keep every normalized
// field plus the reason string.
type Partition struct {
	Columns  []string
	Accepted []models.Record
	Rejected []RejectedRecord
}

// Split partitions a batch by verdict. Verdicts must be index-aligned with
// the batch records.
func Split(batch *models.Batch, verdicts []models.Verdict) *Partition {
	p := &Partition{Columns: batch.Columns}

	for i := range batch.Records {
		if verdicts[i].Accepted() {
			p.Accepted = append(p.Accepted, batch.Records[i])
			continue
		}

		p.Rejected = append(p.Rejected, RejectedRecord{
			Record: batch.Records[i],
			Reason: verdicts[i].Reason(),
		})
	}

	return p
}
