package source

import (
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"strings"

	"orderpipe/internal/models"
)

// orderDocument mirrors the order feed: a root element containing
// repeated <order> elements with child text nodes.
type orderDocument struct {
	Orders []orderElement `xml:"order"`
}

type orderElement struct {
	OrderID       string `xml:"order_id"`
	MobileNumber  string `xml:"mobile_number"`
	OrderDateTime string `xml:"order_date_time"`
	SKUID         string `xml:"sku_id"`
	SKUCount      string `xml:"sku_count"`
	TotalAmount   string `xml:"total_amount"`
}

// ReadOrders parses the hierarchical order file, one row per <order>
// element. Missing sku_count and total_amount default to 0 rather than
// failing; missing order_id or mobile_number stay empty and are filtered
// by the normalizer.
func ReadOrders(path string) ([]models.RawOrder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read orders file: %w", err)
	}

	var doc orderDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
	}

	orders := make([]models.RawOrder, 0, len(doc.Orders))

	for i, el := range doc.Orders {
		skuCount, err := parseIntField(el.SKUCount)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: order[%d] sku_count: %v", ErrParse, path, i, err)
		}

		totalAmount, err := parseFloatField(el.TotalAmount)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: order[%d] total_amount: %v", ErrParse, path, i, err)
		}

		orders = append(orders, models.RawOrder{
			OrderID:       strings.TrimSpace(el.OrderID),
			MobileNumber:  strings.TrimSpace(el.MobileNumber),
			OrderDateTime: strings.TrimSpace(el.OrderDateTime),
			SKUID:         strings.TrimSpace(el.SKUID),
			SKUCount:      skuCount,
			TotalAmount:   totalAmount,
		})
	}

	return orders, nil
}

func parseIntField(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	return strconv.Atoi(s)
}

func parseFloatField(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	return strconv.ParseFloat(s, 64)
}
