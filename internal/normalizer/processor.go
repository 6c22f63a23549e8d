package normalizer

import (
	"fmt"
	"strings"

	"orderpipe/internal/metrics"
	"orderpipe/internal/models"
)

// UnknownRegion is the region assigned to customers whose region field is
// absent in the source file.
const UnknownRegion = "Unknown"

// Stats counts what happened to one batch of rows during cleaning. Dropped
// rows are not an error; they are surfaced here and through the metrics
// registry for observability.
type Stats struct {
	Read       int
	Dropped    int
	Duplicates int
}

// Processor applies the cleansing rules to raw source rows: mobile-number
// canonicalization, region defaulting, UTC conversion, and
// first-occurrence-wins deduplication.
type Processor struct {
	converter *Converter
	metrics   *metrics.Registry
}

// NewProcessor creates a processor. The metrics registry may be nil, in
// which case only the returned Stats are populated.
func NewProcessor(converter *Converter, reg *metrics.Registry) *Processor {
	return &Processor{
		converter: converter,
		metrics:   reg,
	}
}

// CleanCustomers normalizes raw customer rows: trims names, defaults the
// region to UnknownRegion, canonicalizes mobile numbers (dropping rows
// that normalize to fewer than 10 digits), and keeps the first row per
// mobile number.
func (p *Processor) CleanCustomers(raws []models.RawCustomer) ([]models.Customer, Stats) {
	stats := Stats{Read: len(raws)}

	cleaned := make([]models.Customer, 0, len(raws))

	for _, raw := range raws {
		mobile, err := NormalizeMobile(raw.MobileNumber)
		if err != nil {
			stats.Dropped++
			continue
		}

		region := strings.TrimSpace(raw.Region)
		if region == "" {
			region = UnknownRegion
		}

		cleaned = append(cleaned, models.Customer{
			CustomerID:   strings.TrimSpace(raw.CustomerID),
			CustomerName: strings.TrimSpace(raw.CustomerName),
			MobileNumber: mobile,
			Region:       region,
		})
	}

	deduped := DedupeByKey(cleaned, func(c models.Customer) int64 { return c.MobileNumber })
	stats.Duplicates = len(cleaned) - len(deduped)

	if p.metrics != nil {
		p.metrics.CustomersRead.Add(float64(stats.Read))
		p.metrics.CustomersDropped.Add(float64(stats.Dropped))
		p.metrics.CustomerDuplicates.Add(float64(stats.Duplicates))
	}

	return deduped, stats
}

// CleanOrders normalizes raw order rows and returns both granularities:
// item-level rows and one fact row per distinct order id (first occurrence
// wins). Rows missing an order id or failing mobile normalization are
// dropped and counted; a timestamp that cannot be converted to UTC aborts
// the run, since a naive timestamp must never reach aggregation.
func (p *Processor) CleanOrders(raws []models.RawOrder) ([]models.OrderItem, []models.OrderFact, Stats, error) {
	stats := Stats{Read: len(raws)}

	items := make([]models.OrderItem, 0, len(raws))

	for _, raw := range raws {
		if raw.OrderID == "" {
			stats.Dropped++
			continue
		}

		mobile, err := NormalizeMobile(raw.MobileNumber)
		if err != nil {
			stats.Dropped++
			continue
		}

		local, utc, err := p.converter.ToUTC(raw.OrderDateTime)
		if err != nil {
			return nil, nil, stats, fmt.Errorf("order %s: %w", raw.OrderID, err)
		}

		items = append(items, models.OrderItem{
			OrderDateTime:    local,
			OrderDateTimeUTC: utc,
			OrderID:          raw.OrderID,
			SKUID:            raw.SKUID,
			MobileNumber:     mobile,
			SKUCount:         raw.SKUCount,
			TotalAmount:      raw.TotalAmount,
		})
	}

	factItems := DedupeByKey(items, func(o models.OrderItem) string { return o.OrderID })
	stats.Duplicates = len(items) - len(factItems)

	facts := make([]models.OrderFact, 0, len(factItems))
	for _, item := range factItems {
		facts = append(facts, item.Fact())
	}

	if p.metrics != nil {
		p.metrics.OrdersRead.Add(float64(stats.Read))
		p.metrics.OrdersDropped.Add(float64(stats.Dropped))
		p.metrics.OrderDuplicates.Add(float64(stats.Duplicates))
	}

	return items, facts, stats, nil
}
