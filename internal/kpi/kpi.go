// Package kpi computes the four business aggregates over the in-memory
// unified view. The storage package derives the same rows via SQL; both
// backends must agree row for row.
package kpi

import (
	"sort"
	"time"

	"orderpipe/internal/models"
)

// Window is the trailing period considered by TopCustomers.
const Window = 30 * 24 * time.Hour

// TopCustomersLimit caps the TopCustomers result.
const TopCustomersLimit = 10

// MonthLayout formats a UTC timestamp down to its calendar month.
const MonthLayout = "2006-01"

type customerAgg struct {
	customerID   string
	customerName string
	mobileNumber int64
	orderIDs     map[string]struct{}
	totalSpend   float64
}

// RepeatCustomers returns customers with more than one distinct order,
// ordered by order count descending, then mobile number ascending as the
// deterministic tie-break.
func RepeatCustomers(view []models.UnifiedRow) []models.RepeatCustomerRow {
	groups := groupByCustomer(view)

	var rows []models.RepeatCustomerRow

	for _, g := range groups {
		if len(g.orderIDs) <= 1 {
			continue
		}

		rows = append(rows, models.RepeatCustomerRow{
			CustomerID:   g.customerID,
			CustomerName: g.customerName,
			MobileNumber: g.mobileNumber,
			OrderCount:   len(g.orderIDs),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].OrderCount != rows[j].OrderCount {
			return rows[i].OrderCount > rows[j].OrderCount
		}

		return rows[i].MobileNumber < rows[j].MobileNumber
	})

	return rows
}

// MonthlyTrends returns distinct-order counts and revenue per UTC
// calendar month, in chronological order.
func MonthlyTrends(view []models.UnifiedRow) []models.MonthlyTrendRow {
	type monthAgg struct {
		orderIDs map[string]struct{}
		revenue  float64
	}

	months := make(map[string]*monthAgg)

	for _, row := range view {
		key := row.OrderDateTimeUTC.UTC().Format(MonthLayout)

		agg, ok := months[key]
		if !ok {
			agg = &monthAgg{orderIDs: make(map[string]struct{})}
			months[key] = agg
		}

		agg.orderIDs[row.OrderID] = struct{}{}
		agg.revenue += row.TotalAmount
	}

	rows := make([]models.MonthlyTrendRow, 0, len(months))
	for month, agg := range months {
		rows = append(rows, models.MonthlyTrendRow{
			OrderMonth:   month,
			TotalOrders:  len(agg.orderIDs),
			TotalRevenue: agg.revenue,
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].OrderMonth < rows[j].OrderMonth })

	return rows
}

// RegionalRevenue returns revenue per customer region, highest first,
// region name ascending on ties. Orders without a matching customer have
// no region and are excluded.
func RegionalRevenue(view []models.UnifiedRow) []models.RegionalRevenueRow {
	regions := make(map[string]float64)

	for _, row := range view {
		if !row.Matched {
			continue
		}

		regions[row.Region] += row.TotalAmount
	}

	rows := make([]models.RegionalRevenueRow, 0, len(regions))
	for region, revenue := range regions {
		rows = append(rows, models.RegionalRevenueRow{Region: region, RegionalRevenue: revenue})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].RegionalRevenue != rows[j].RegionalRevenue {
			return rows[i].RegionalRevenue > rows[j].RegionalRevenue
		}

		return rows[i].Region < rows[j].Region
	})

	return rows
}

// TopCustomers returns the top spenders over the trailing window ending
// at now, ordered by spend descending then mobile number ascending, and
// truncated to TopCustomersLimit.
func TopCustomers(view []models.UnifiedRow, now time.Time) []models.TopCustomerRow {
	// Truncated to seconds so the comparison matches the SQL backend,
	// which stores and compares second-granularity timestamps.
	cutoff := now.Add(-Window).Truncate(time.Second)

	var recent []models.UnifiedRow

	for _, row := range view {
		if !row.OrderDateTimeUTC.Before(cutoff) {
			recent = append(recent, row)
		}
	}

	groups := groupByCustomer(recent)

	rows := make([]models.TopCustomerRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, models.TopCustomerRow{
			CustomerID:   g.customerID,
			CustomerName: g.customerName,
			MobileNumber: g.mobileNumber,
			TotalSpend:   g.totalSpend,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalSpend != rows[j].TotalSpend {
			return rows[i].TotalSpend > rows[j].TotalSpend
		}

		return rows[i].MobileNumber < rows[j].MobileNumber
	})

	if len(rows) > TopCustomersLimit {
		rows = rows[:TopCustomersLimit]
	}

	return rows
}

// groupByCustomer buckets view rows by mobile number. Customer id and
// name are functionally dependent on the mobile number after
// deduplication, so the first row of each bucket supplies them.
func groupByCustomer(view []models.UnifiedRow) []*customerAgg {
	byMobile := make(map[int64]*customerAgg)

	var groups []*customerAgg

	for _, row := range view {
		g, ok := byMobile[row.MobileNumber]
		if !ok {
			g = &customerAgg{
				customerID:   row.CustomerID,
				customerName: row.CustomerName,
				mobileNumber: row.MobileNumber,
				orderIDs:     make(map[string]struct{}),
			}
			byMobile[row.MobileNumber] = g
			groups = append(groups, g)
		}

		g.orderIDs[row.OrderID] = struct{}{}
		g.totalSpend += row.TotalAmount
	}

	return groups
}
