// Package models defines data structures shared across the pipeline stages.
package models

// Customer represents one cleansed customer record. MobileNumber is the
// canonical 10-digit identifier and the natural key of the record.
type Customer struct {
	CustomerID   string `json:"customerId"`
	CustomerName string `json:"customerName"`
	MobileNumber int64  `json:"mobileNumber"`
	Region       string `json:"region"`
}

// RawCustomer is a customer row as read from the CSV source, before
// normalization. Missing columns surface as empty fields.
type RawCustomer struct {
	CustomerID   string
	CustomerName string
	MobileNumber string
	Region       string
}
