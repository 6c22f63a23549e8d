package models

import "time"

// UnifiedRow is one row of the unified customer/order view: an order fact
// joined with the attributes of its customer. Orders without a matching
// customer keep zero-value customer fields and Matched=false.
type UnifiedRow struct {
	OrderDateTimeUTC time.Time `json:"orderDateTimeUtc"`
	OrderID          string    `json:"orderId"`
	CustomerID       string    `json:"customerId"`
	CustomerName     string    `json:"customerName"`
	Region           string    `json:"region"`
	MobileNumber     int64     `json:"mobileNumber"`
	TotalAmount      float64   `json:"totalAmount"`
	Matched          bool      `json:"matched"`
}
