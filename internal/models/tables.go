package models

import "time"

// CustomerMaster is one row of the customer_master table: a first-observed
// snapshot per distinct customer.
type CustomerMaster struct {
	CustomerID         string
	Name               *string
	Email              *string
	Phone              *string
	Address            *string
	City               *string
	State              *string
	Zipcode            *string
	Country            *string
	Age                *int
	Gender             *string
	Income             *float64
	CustomerSegment    *string
	IsLoyaltyMember    bool
	CustomerSince      *time.Time
	TotalLoyaltyPoints int
	BonusPoints        int
	LastPointsUpdate   *time.Time
	LastPurchaseDate   *time.Time
}

// ProductMaster is one row of the product_master table, keyed by a synthetic
// sequential identifier assigned in first-appearance order.
type ProductMaster struct {
	ProductKey      string
	ProductCategory *string
	ProductBrand    *string
	ProductType     *string
	ProductFullName *string
	IsActive        bool
}

// SalesTransaction is one row of the sales_transactions table.
type SalesTransaction struct {
	TransactionID      string
	CustomerID         *string
	Date               *time.Time
	Year               *int
	Month              *int
	Time               *string
	TotalPurchases     *int
	Amount             *float64
	TotalAmount        *float64
	ProductCategory    *string
	ProductBrand       *string
	ProductType        *string
	ShippingMethod     *string
	PaymentMethod      *string
	OrderStatus        *string
	Ratings            *float64
	Feedback           *string
	IngestionTimestamp time.Time
	DataQualityFlag    string
	RejectReason       *string
}

// CustomerAnalytics is one row of the customer_analytics table: RFM and
// lifetime-value aggregates per customer, recomputed wholesale each run.
type CustomerAnalytics struct {
	CustomerID       string
	Recency          int
	Frequency        int
	Monetary         float64
	RFMScore         int
	Segment          string
	ProductDiversity int
	AvgRating        float64
	CLVScore         float64
	SnapshotDate     time.Time
}

// LoyaltyTransaction is one row of the loyalty_transactions table: an EARN
// event per accepted sale with a running per-customer balance.
type LoyaltyTransaction struct {
	LoyaltyTxnID   string
	CustomerID     *string
	TransactionID  string
	PointsEarned   int
	PointsRedeemed int
	BonusPoints    int
	BalanceAfter   int
	EventDate      *time.Time
	EventType      string
}

// Tables bundles the five table snapshots produced by one run.
type Tables struct {
	CustomerMaster      []CustomerMaster
	ProductMaster       []ProductMaster
	SalesTransactions   []SalesTransaction
	CustomerAnalytics   []CustomerAnalytics
	LoyaltyTransactions []LoyaltyTransaction
}
