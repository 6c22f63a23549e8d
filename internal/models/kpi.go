package models

// RepeatCustomerRow is one customer with more than one distinct order.
type RepeatCustomerRow struct {
	CustomerID   string `json:"customerId"`
	CustomerName string `json:"customerName"`
	MobileNumber int64  `json:"mobileNumber"`
	OrderCount   int    `json:"orderCount"`
}

// MonthlyTrendRow aggregates distinct orders and revenue for one UTC
// calendar month. OrderMonth is formatted "2006-01".
type MonthlyTrendRow struct {
	OrderMonth   string  `json:"orderMonth"`
	TotalOrders  int     `json:"totalOrders"`
	TotalRevenue float64 `json:"totalRevenue"`
}

// RegionalRevenueRow aggregates revenue for one customer region.
type RegionalRevenueRow struct {
	Region          string  `json:"region"`
	RegionalRevenue float64 `json:"regionalRevenue"`
}

// TopCustomerRow is one customer's total spend over the trailing window.
type TopCustomerRow struct {
	CustomerID   string  `json:"customerId"`
	CustomerName string  `json:"customerName"`
	MobileNumber int64   `json:"mobileNumber"`
	TotalSpend   float64 `json:"totalSpend"`
}
