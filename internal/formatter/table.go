// Package formatter renders KPI rows as plain-text tables for the CLI.
package formatter

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"orderpipe/internal/models"
)

// RenderTable renders headers and rows as an aligned text table. Column
// widths use display width rather than byte length so non-ASCII customer
// names stay aligned.
func RenderTable(headers []string, rows [][]string) string {
	colCount := len(headers)
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}

	widths := make([]int, colCount)

	measure := func(row []string) {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	measure(headers)

	for _, row := range rows {
		measure(row)
	}

	var b strings.Builder

	writeRow := func(row []string) {
		b.WriteString("|")

		for i := 0; i < colCount; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}

			padding := widths[i] - runewidth.StringWidth(cell)
			b.WriteString(" " + cell + strings.Repeat(" ", padding) + " |")
		}

		b.WriteString("\n")
	}

	writeRow(headers)

	b.WriteString("|")

	for i := 0; i < colCount; i++ {
		b.WriteString(strings.Repeat("-", widths[i]+2) + "|")
	}

	b.WriteString("\n")

	for _, row := range rows {
		writeRow(row)
	}

	return b.String()
}

// RepeatCustomersTable renders the repeat-customers KPI.
func RepeatCustomersTable(rows []models.RepeatCustomerRow) string {
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{
			r.CustomerID,
			r.CustomerName,
			strconv.FormatInt(r.MobileNumber, 10),
			strconv.Itoa(r.OrderCount),
		})
	}

	return RenderTable([]string{"customer_id", "customer_name", "mobile_number", "order_count"}, cells)
}

// MonthlyTrendsTable renders the monthly-trends KPI.
func MonthlyTrendsTable(rows []models.MonthlyTrendRow) string {
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{
			r.OrderMonth,
			strconv.Itoa(r.TotalOrders),
			formatAmount(r.TotalRevenue),
		})
	}

	return RenderTable([]string{"order_month", "total_orders", "total_revenue"}, cells)
}

// RegionalRevenueTable renders the regional-revenue KPI.
func RegionalRevenueTable(rows []models.RegionalRevenueRow) string {
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{
			r.Region,
			formatAmount(r.RegionalRevenue),
		})
	}

	return RenderTable([]string{"region", "regional_revenue"}, cells)
}

// TopCustomersTable renders the top-spenders KPI.
func TopCustomersTable(rows []models.TopCustomerRow) string {
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{
			r.CustomerID,
			r.CustomerName,
			strconv.FormatInt(r.MobileNumber, 10),
			formatAmount(r.TotalSpend),
		})
	}

	return RenderTable([]string{"customer_id", "customer_name", "mobile_number", "total_spend"}, cells)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
