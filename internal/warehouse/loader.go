package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"retailetl/internal/logger"
	"retailetl/internal/models"
)

// Date layouts used for the warehouse's text-affinity date columns.
const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05"
)

// Loader owns the SQLite warehouse connection.
type Loader struct {
	db     *sql.DB
	logger *logger.Logger
}

// Open opens (or creates) the warehouse database at path.
func Open(path string, log *logger.Logger) (*Loader, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open warehouse: %w", err)
	}

	return &Loader{db: db, logger: log}, nil
}

// Close closes the underlying database.
func (l *Loader) Close() error {
	return l.db.Close()
}

// Init drops and recreates the schema. Foreign keys are disabled while the
// drops run so the tables can go in any order, then re-enabled for loading.
func (l *Loader) Init(ctx context.Context) error {
	if _, err := l.db.ExecContext(ctx, "PRAGMA foreign_keys = OFF"); err != nil {
		return fmt.Errorf("failed to disable foreign keys: %w", err)
	}

	for i := len(tableNames) - 1; i >= 0; i-- {
		if _, err := l.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+tableNames[i]); err != nil {
			return fmt.Errorf("failed to drop %s: %w", tableNames[i], err)
		}
	}

	for _, stmt := range ddl {
		if _, err := l.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	if _, err := l.db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return nil
}

// LoadAll appends every table snapshot inside a single transaction, in
// foreign-key dependency order.
func (l *Loader) LoadAll(ctx context.Context, tables *models.Tables) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := l.loadCustomerMaster(ctx, tx, tables.CustomerMaster); err != nil {
		return err
	}

	if err := l.loadProductMaster(ctx, tx, tables.ProductMaster); err != nil {
		return err
	}

	if err := l.loadSalesTransactions(ctx, tx, tables.SalesTransactions); err != nil {
		return err
	}

	if err := l.loadCustomerAnalytics(ctx, tx, tables.CustomerAnalytics); err != nil {
		return err
	}

	if err := l.loadLoyaltyTransactions(ctx, tx, tables.LoyaltyTransactions); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit load: %w", err)
	}

	l.logger.Info("warehouse loaded",
		"customers", len(tables.CustomerMaster),
		"products", len(tables.ProductMaster),
		"sales", len(tables.SalesTransactions),
		"analytics", len(tables.CustomerAnalytics),
		"loyalty", len(tables.LoyaltyTransactions),
	)

	return nil
}

// TableCounts returns the row count per warehouse table.
func (l *Loader) TableCounts(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int, len(tableNames))

	for _, name := range tableNames {
		var n int
		if err := l.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+name).Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", name, err)
		}

		counts[name] = n
	}

	return counts, nil
}

func (l *Loader) loadCustomerMaster(ctx context.Context, tx *sql.Tx, rows []models.CustomerMaster) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO customer_master (
		customer_id, name, email, phone, address, city, state, zipcode,
		country, age, gender, income, customer_segment, is_loyalty_member,
		customer_since, total_loyalty_points, bonus_points,
		last_points_update, last_purchase_date
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare customer_master insert: %w", err)
	}
	defer stmt.Close()

	for i := range rows {
		r := &rows[i]

		_, err := stmt.ExecContext(ctx,
			r.CustomerID, r.Name, r.Email, r.Phone, r.Address, r.City,
			r.State, r.Zipcode, r.Country, r.Age, r.Gender, r.Income,
			r.CustomerSegment, r.IsLoyaltyMember, dateArg(r.CustomerSince),
			r.TotalLoyaltyPoints, r.BonusPoints, dateArg(r.LastPointsUpdate),
			dateArg(r.LastPurchaseDate),
		)
		if err != nil {
			return fmt.Errorf("failed to insert customer %s: %w", r.CustomerID, err)
		}
	}

	return nil
}

func (l *Loader) loadProductMaster(ctx context.Context, tx *sql.Tx, rows []models.ProductMaster) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO product_master (
		product_key, product_category, product_brand, product_type,
		product_full_name, is_active
	) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare product_master insert: %w", err)
	}
	defer stmt.Close()

	for i := range rows {
		r := &rows[i]

		_, err := stmt.ExecContext(ctx,
			r.ProductKey, r.ProductCategory, r.ProductBrand, r.ProductType,
			r.ProductFullName, r.IsActive,
		)
		if err != nil {
			return fmt.Errorf("failed to insert product %s: %w", r.ProductKey, err)
		}
	}

	return nil
}

func (l *Loader) loadSalesTransactions(ctx context.Context, tx *sql.Tx, rows []models.SalesTransaction) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO sales_transactions (
		transaction_id, customer_id, date, year, month, time,
		total_purchases, amount, total_amount, product_category,
		product_brand, product_type, shipping_method, payment_method,
		order_status, ratings, feedback, ingestion_timestamp,
		data_quality_flag, reject_reason
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare sales_transactions insert: %w", err)
	}
	defer stmt.Close()

	for i := range rows {
		r := &rows[i]

		_, err := stmt.ExecContext(ctx,
			r.TransactionID, r.CustomerID, dateArg(r.Date), r.Year, r.Month,
			r.Time, r.TotalPurchases, r.Amount, r.TotalAmount,
			r.ProductCategory, r.ProductBrand, r.ProductType,
			r.ShippingMethod, r.PaymentMethod, r.OrderStatus, r.Ratings,
			r.Feedback, r.IngestionTimestamp.Format(timestampLayout),
			r.DataQualityFlag, r.RejectReason,
		)
		if err != nil {
			return fmt.Errorf("failed to insert transaction %s: %w", r.TransactionID, err)
		}
	}

	return nil
}

func (l *Loader) loadCustomerAnalytics(ctx context.Context, tx *sql.Tx, rows []models.CustomerAnalytics) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO customer_analytics (
		customer_id, recency, frequency, monetary, rfm_score, segment,
		product_diversity, avg_rating, clv_score, snapshot_date
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare customer_analytics insert: %w", err)
	}
	defer stmt.Close()

	for i := range rows {
		r := &rows[i]

		snapshot := any(nil)
		if !r.SnapshotDate.IsZero() {
			snapshot = r.SnapshotDate.Format(dateLayout)
		}

		_, err := stmt.ExecContext(ctx,
			r.CustomerID, r.Recency, r.Frequency, r.Monetary, r.RFMScore,
			r.Segment, r.ProductDiversity, r.AvgRating, r.CLVScore, snapshot,
		)
		if err != nil {
			return fmt.Errorf("failed to insert analytics for %s: %w", r.CustomerID, err)
		}
	}

	return nil
}

func (l *Loader) loadLoyaltyTransactions(ctx context.Context, tx *sql.Tx, rows []models.LoyaltyTransaction) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO loyalty_transactions (
		loyalty_txn_id, customer_id, transaction_id, points_earned,
		points_redeemed, bonus_points, balance_after, event_date, event_type
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare loyalty_transactions insert: %w", err)
	}
	defer stmt.Close()

	for i := range rows {
		r := &rows[i]

		_, err := stmt.ExecContext(ctx,
			r.LoyaltyTxnID, r.CustomerID, r.TransactionID, r.PointsEarned,
			r.PointsRedeemed, r.BonusPoints, r.BalanceAfter, dateArg(r.EventDate),
			r.EventType,
		)
		if err != nil {
			return fmt.Errorf("failed to insert loyalty event %s: %w", r.LoyaltyTxnID, err)
		}
	}

	return nil
}

// dateArg renders a nullable date for a text-affinity DATE column.
func dateArg(t *time.Time) any {
	if t == nil {
		return nil
	}

	return t.Format(dateLayout)
}
