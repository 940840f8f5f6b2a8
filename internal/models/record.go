// Package models defines the record, verdict and output-table types shared
// across the pipeline stages.
package models

import (
	"strings"
	"time"
)

// Canonical column names of the retail transaction export.
const (
	ColTransactionID   = "Transaction_ID"
	ColCustomerID      = "Customer_ID"
	ColName            = "Name"
	ColEmail           = "Email"
	ColPhone           = "Phone"
	ColAddress         = "Address"
	ColCity            = "City"
	ColState           = "State"
	ColZipcode         = "Zipcode"
	ColCountry         = "Country"
	ColAge             = "Age"
	ColGender          = "Gender"
	ColIncome          = "Income"
	ColCustomerSegment = "Customer_Segment"
	ColDate            = "Date"
	ColYear            = "Year"
	ColMonth           = "Month"
	ColTime            = "Time"
	ColTotalPurchases  = "Total_Purchases"
	ColAmount          = "Amount"
	ColTotalAmount     = "Total_Amount"
	ColProductCategory = "Product_Category"
	ColProductBrand    = "Product_Brand"
	ColProductType     = "Product_Type"
	ColProducts        = "products"
	ColShippingMethod  = "Shipping_Method"
	ColPaymentMethod   = "Payment_Method"
	ColOrderStatus     = "Order_Status"
	ColRatings         = "Ratings"
	ColFeedback        = "Feedback"
)

// Kind identifies which normalizer produced a value.
type Kind int

// Value kinds.
const (
	KindText Kind = iota
	KindDate
	KindTime
	KindNumeric
	KindPhone
)

// Value is a single normalized field. Null marks a value that was empty in
// the source or failed normalization; normalizers never return errors.
type Value struct {
	Date time.Time
	Raw  string
	Text string
	Num  float64
	Kind Kind
	Null bool
}

// RawRecord is one source row keyed by column name, untyped.
type RawRecord map[string]string

// RawBatch is the full raw row set of one run, with the source column order.
type RawBatch struct {
	Columns []string
	Rows    []RawRecord
}

// Record is a fully normalized row.
type Record struct {
	Fields map[string]Value
	Index  int
}

// Field returns the value of the named column, or a null text value if the
// column is not present.
func (r *Record) Field(col string) Value {
	if v, ok := r.Fields[col]; ok {
		return v
	}

	return Value{Kind: KindText, Null: true}
}

// Text returns the canonical text of a column, or false if it is null.
func (r *Record) Text(col string) (string, bool) {
	v := r.Field(col)
	if v.Null {
		return "", false
	}

	return v.Text, true
}

// Num returns the numeric value of a column, or false if it is null.
func (r *Record) Num(col string) (float64, bool) {
	v := r.Field(col)
	if v.Null {
		return 0, false
	}

	return v.Num, true
}

// Date returns the date value of a column, or false if it is null.
func (r *Record) Date(col string) (time.Time, bool) {
	v := r.Field(col)
	if v.Null {
		return time.Time{}, false
	}

	return v.Date, true
}

// Fingerprint serializes the record's canonical values in column order.
// Two records with equal fingerprints are full-field duplicates.
func (r *Record) Fingerprint(columns []string) string {
	parts := make([]string, 0, len(columns))

	for _, col := range columns {
		v := r.Field(col)
		if v.Null {
			parts = append(parts, "\x00")
			continue
		}

		parts = append(parts, v.Text)
	}

	return strings.Join(parts, "\x1f")
}

// Batch is the full normalized row set of one run.
type Batch struct {
	Columns []string
	Records []Record
}
