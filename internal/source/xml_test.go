package source

import (
	"errors"
	"testing"
)

func TestReadOrders(t *testing.T) {
	xml := `<orders>
  <order>
    <order_id>O-1001</order_id>
    <mobile_number>+91 9876543210</mobile_number>
    <order_date_time>2024-03-05 10:00:00</order_date_time>
    <sku_id>SKU-1</sku_id>
    <sku_count>2</sku_count>
    <total_amount>100.50</total_amount>
  </order>
  <order>
    <order_id>O-1002</order_id>
    <mobile_number>9123456780</mobile_number>
    <order_date_time>2024-03-06 18:30:00</order_date_time>
    <sku_id>SKU-2</sku_id>
  </order>
</orders>`

	path := writeTempFile(t, "orders.xml", xml)

	orders, err := ReadOrders(path)
	if err != nil {
		t.Fatalf("ReadOrders returned unexpected error: %v", err)
	}

	if len(orders) != 2 {
		t.Fatalf("ReadOrders returned %d rows, want 2", len(orders))
	}

	first := orders[0]
	if first.OrderID != "O-1001" || first.SKUID != "SKU-1" {
		t.Errorf("first order = %+v, want O-1001/SKU-1", first)
	}

	if first.SKUCount != 2 || first.TotalAmount != 100.50 {
		t.Errorf("first order numerics = %d/%v, want 2/100.50", first.SKUCount, first.TotalAmount)
	}

	// Missing numeric fields default to zero rather than failing.
	second := orders[1]
	if second.SKUCount != 0 || second.TotalAmount != 0 {
		t.Errorf("second order numerics = %d/%v, want 0/0", second.SKUCount, second.TotalAmount)
	}
}

func TestReadOrders_MissingIdentifiersPreserved(t *testing.T) {
	xml := `<orders>
  <order>
    <order_date_time>2024-03-05 10:00:00</order_date_time>
    <sku_id>SKU-1</sku_id>
  </order>
</orders>`

	path := writeTempFile(t, "orders.xml", xml)

	orders, err := ReadOrders(path)
	if err != nil {
		t.Fatalf("ReadOrders returned unexpected error: %v", err)
	}

	// Missing order_id and mobile_number stay empty for downstream
	// filtering; the read itself succeeds.
	if orders[0].OrderID != "" || orders[0].MobileNumber != "" {
		t.Errorf("identifiers = %q/%q, want empty", orders[0].OrderID, orders[0].MobileNumber)
	}
}

func TestReadOrders_Malformed(t *testing.T) {
	tests := []struct {
		name string
		xml  string
	}{
		{
			name: "Broken structure",
			xml:  "<orders><order><order_id>O-1</orders>",
		},
		{
			name: "Non-numeric sku_count",
			xml:  "<orders><order><order_id>O-1</order_id><sku_count>lots</sku_count></order></orders>",
		},
		{
			name: "Non-numeric total_amount",
			xml:  "<orders><order><order_id>O-1</order_id><total_amount>free</total_amount></order></orders>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempFile(t, "orders.xml", tt.xml)

			_, err := ReadOrders(path)
			if err == nil {
				t.Fatal("ReadOrders expected error but got nil")
			}

			if !errors.Is(err, ErrParse) {
				t.Errorf("ReadOrders error = %v, want ErrParse", err)
			}
		})
	}
}
