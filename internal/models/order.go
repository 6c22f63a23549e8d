package models

import "time"

// RawOrder is an order row as read from the XML source, one per <order>
// element, before normalization. Missing order_id or mobile_number stay
// empty and are filtered downstream.
type RawOrder struct {
	OrderID       string
	MobileNumber  string
	OrderDateTime string
	SKUID         string
	SKUCount      int
	TotalAmount   float64
}

// OrderItem is a cleansed item-level order row. OrderDateTime keeps the
// original wall-clock value in the source zone; OrderDateTimeUTC is the
// converted value used by every aggregation.
type OrderItem struct {
	OrderDateTime    time.Time `json:"orderDateTime"`
	OrderDateTimeUTC time.Time `json:"orderDateTimeUtc"`
	OrderID          string    `json:"orderId"`
	SKUID            string    `json:"skuId"`
	MobileNumber     int64     `json:"mobileNumber"`
	SKUCount         int       `json:"skuCount"`
	TotalAmount      float64   `json:"totalAmount"`
}

// OrderFact is one row per distinct OrderID at order granularity,
// derived from OrderItem rows by first-occurrence-wins deduplication.
type OrderFact struct {
	OrderDateTimeUTC time.Time `json:"orderDateTimeUtc"`
	OrderID          string    `json:"orderId"`
	MobileNumber     int64     `json:"mobileNumber"`
	TotalAmount      float64   `json:"totalAmount"`
}

// Fact projects an item-level row down to order granularity.
func (o OrderItem) Fact() OrderFact {
	return OrderFact{
		OrderDateTimeUTC: o.OrderDateTimeUTC,
		OrderID:          o.OrderID,
		MobileNumber:     o.MobileNumber,
		TotalAmount:      o.TotalAmount,
	}
}
