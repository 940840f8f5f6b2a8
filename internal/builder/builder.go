// Package builder projects the accepted partition into the five normalized
// warehouse tables.
package builder

import (
	"errors"
	"fmt"
	"time"

	"retailetl/internal/logger"
	"retailetl/internal/models"
)

// Structural errors. Builders never fail on malformed values in individual
// rows; they fail only when the accepted set itself is unusable.
var (
	ErrNoAcceptedRecords = errors.New("accepted set is empty")
	ErrMissingColumn     = errors.New("accepted set is missing an expected column")
)

// structuralColumns must be present in the accepted set for the builders to
// run at all.
var structuralColumns = []string{
	models.ColTransactionID,
	models.ColCustomerID,
	models.ColDate,
	models.ColTotalAmount,
	models.ColProductCategory,
	models.ColProductBrand,
	models.ColProductType,
	models.ColProducts,
}

// Builder derives the output tables from the accepted record set.
type Builder struct {
	logger *logger.Logger
	now    func() time.Time
}

// NewBuilder creates a new builder.
func NewBuilder(log *logger.Logger) *Builder {
	return &Builder{
		logger: log,
		now:    time.Now,
	}
}

// BuildAll produces every table. Analytics and loyalty are derived from the
// sales-transaction output, not from the accepted records directly, so rows
// dropped for null or duplicate transaction identifiers never reach them.
func (b *Builder) BuildAll(accepted []models.Record) (*models.Tables, error) {
	if err := b.checkStructure(accepted); err != nil {
		return nil, err
	}

	sales := b.BuildSalesTransactions(accepted)

	tables := &models.Tables{
		CustomerMaster:      b.BuildCustomerMaster(accepted),
		ProductMaster:       b.BuildProductMaster(accepted),
		SalesTransactions:   sales,
		CustomerAnalytics:   b.BuildCustomerAnalytics(sales),
		LoyaltyTransactions: b.BuildLoyaltyTransactions(sales),
	}

	b.logger.Info("tables built",
		"customers", len(tables.CustomerMaster),
		"products", len(tables.ProductMaster),
		"sales", len(tables.SalesTransactions),
		"analytics", len(tables.CustomerAnalytics),
		"loyalty", len(tables.LoyaltyTransactions),
	)

	return tables, nil
}

func (b *Builder) checkStructure(accepted []models.Record) error {
	if len(accepted) == 0 {
		return ErrNoAcceptedRecords
	}

	for _, col := range structuralColumns {
		if _, ok := accepted[0].Fields[col]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	return nil
}

func textPtr(rec *models.Record, col string) *string {
	if s, ok := rec.Text(col); ok {
		return &s
	}

	return nil
}

func numPtr(rec *models.Record, col string) *float64 {
	if f, ok := rec.Num(col); ok {
		return &f
	}

	return nil
}

func intPtr(rec *models.Record, col string) *int {
	if f, ok := rec.Num(col); ok {
		i := int(f)
		return &i
	}

	return nil
}

func datePtr(rec *models.Record, col string) *time.Time {
	if d, ok := rec.Date(col); ok {
		return &d
	}

	return nil
}
