// Package unify builds the in-memory unified customer/order view.
package unify

import "orderpipe/internal/models"

// BuildUnified left-joins order facts to customers on the canonical
// mobile number. Every fact appears exactly once in the output, in input
// order; facts without a matching customer keep zero-value customer
// fields and Matched=false.
func BuildUnified(facts []models.OrderFact, customers []models.Customer) []models.UnifiedRow {
	byMobile := make(map[int64]models.Customer, len(customers))
	for _, c := range customers {
		byMobile[c.MobileNumber] = c
	}

	view := make([]models.UnifiedRow, 0, len(facts))

	for _, fact := range facts {
		row := models.UnifiedRow{
			OrderDateTimeUTC: fact.OrderDateTimeUTC,
			OrderID:          fact.OrderID,
			MobileNumber:     fact.MobileNumber,
			TotalAmount:      fact.TotalAmount,
		}

		if c, ok := byMobile[fact.MobileNumber]; ok {
			row.CustomerID = c.CustomerID
			row.CustomerName = c.CustomerName
			row.Region = c.Region
			row.Matched = true
		}

		view = append(view, row)
	}

	return view
}
