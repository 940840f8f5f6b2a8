// Package warehouse persists the built tables into a SQLite store under the
// fixed relational schema.
package warehouse

// Table names, in load order. Drops run in reverse so foreign keys unwind.
var tableNames = []string{
	"customer_master",
	"product_master",
	"sales_transactions",
	"customer_analytics",
	"loyalty_transactions",
}

var ddl = []string{
	`CREATE TABLE customer_master (
		customer_id VARCHAR PRIMARY KEY,
		name VARCHAR,
		email VARCHAR,
		phone VARCHAR,
		address VARCHAR,
		city VARCHAR,
		state VARCHAR,
		zipcode VARCHAR,
		country VARCHAR,
		age INT,
		gender VARCHAR,
		income DECIMAL,
		customer_segment VARCHAR,
		is_loyalty_member BOOLEAN,
		customer_since DATE,
		total_loyalty_points INT,
		bonus_points INT,
		last_points_update DATE,
		last_purchase_date DATE
	)`,

	`CREATE TABLE product_master (
		product_key VARCHAR PRIMARY KEY,
		product_category VARCHAR,
		product_brand VARCHAR,
		product_type VARCHAR,
		product_full_name VARCHAR,
		is_active BOOLEAN
	)`,

	`CREATE TABLE sales_transactions (
		transaction_id VARCHAR PRIMARY KEY,
		customer_id VARCHAR,
		date DATE,
		year INT,
		month INT,
		time VARCHAR,
		total_purchases INT,
		amount DECIMAL,
		total_amount DECIMAL,
		product_category VARCHAR,
		product_brand VARCHAR,
		product_type VARCHAR,
		shipping_method VARCHAR,
		payment_method VARCHAR,
		order_status VARCHAR,
		ratings INT,
		feedback TEXT,
		ingestion_timestamp TIMESTAMP,
		data_quality_flag VARCHAR,
		reject_reason TEXT,
		FOREIGN KEY(customer_id) REFERENCES customer_master(customer_id)
	)`,

	`CREATE TABLE customer_analytics (
		customer_id VARCHAR PRIMARY KEY,
		recency INT,
		frequency INT,
		monetary DECIMAL,
		rfm_score INT,
		segment VARCHAR,
		product_diversity INT,
		avg_rating DECIMAL,
		clv_score DECIMAL,
		snapshot_date DATE,
		FOREIGN KEY(customer_id) REFERENCES customer_master(customer_id)
	)`,

	`CREATE TABLE loyalty_transactions (
		loyalty_txn_id VARCHAR PRIMARY KEY,
		customer_id VARCHAR,
		transaction_id VARCHAR,
		points_earned INT,
		points_redeemed INT,
		bonus_points INT,
		balance_after INT,
		event_date DATE,
		event_type VARCHAR,
		FOREIGN KEY(customer_id) REFERENCES customer_master(customer_id),
		FOREIGN KEY(transaction_id) REFERENCES sales_transactions(transaction_id)
	)`,
}
