package integration

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"orderpipe/internal/kpi"
	"orderpipe/internal/models"
	"orderpipe/internal/normalizer"
	"orderpipe/internal/source"
	"orderpipe/internal/storage"
	"orderpipe/internal/unify"
)

const customersCSV = `Customer_ID, Customer_Name ,Mobile_Number,Region
C001, Asha Rao ,+91 98765-43210,North
C002,Vikram Singh,9123456780,South
C003,Meera Iyer,98765 43211,
C004,Short Number,12345,East
C005,Asha Duplicate,9876543210,West
`

const ordersXML = `<orders>
  <order>
    <order_id>O-1001</order_id>
    <mobile_number>+91 9876543210</mobile_number>
    <order_date_time>2024-03-20 10:00:00</order_date_time>
    <sku_id>SKU-1</sku_id>
    <sku_count>2</sku_count>
    <total_amount>100.50</total_amount>
  </order>
  <order>
    <order_id>O-1001</order_id>
    <mobile_number>+91 9876543210</mobile_number>
    <order_date_time>2024-03-20 10:00:00</order_date_time>
    <sku_id>SKU-2</sku_id>
    <sku_count>1</sku_count>
    <total_amount>100.50</total_amount>
  </order>
  <order>
    <order_id>O-1002</order_id>
    <mobile_number>9876543210</mobile_number>
    <order_date_time>2024-03-25 18:00:00</order_date_time>
    <sku_id>SKU-3</sku_id>
    <sku_count>1</sku_count>
    <total_amount>200.25</total_amount>
  </order>
  <order>
    <order_id>O-1003</order_id>
    <mobile_number>9123456780</mobile_number>
    <order_date_time>2024-02-01 09:30:00</order_date_time>
    <sku_id>SKU-1</sku_id>
    <sku_count>3</sku_count>
    <total_amount>450.00</total_amount>
  </order>
  <order>
    <order_id>O-1004</order_id>
    <mobile_number>9999999999</mobile_number>
    <order_date_time>2024-03-22 12:00:00</order_date_time>
    <sku_id>SKU-9</sku_id>
    <sku_count>1</sku_count>
    <total_amount>75.00</total_amount>
  </order>
  <order>
    <order_id>O-1005</order_id>
    <mobile_number>12345</mobile_number>
    <order_date_time>2024-03-23 12:00:00</order_date_time>
    <sku_id>SKU-1</sku_id>
    <sku_count>1</sku_count>
    <total_amount>10.00</total_amount>
  </order>
  <order>
    <order_id>O-1006</order_id>
    <mobile_number>9876543211</mobile_number>
    <order_date_time>2024-03-28 08:15:00</order_date_time>
    <sku_id>SKU-4</sku_id>
  </order>
</orders>`

const tolerance = 1e-6

// runCleaning runs ingestion and normalization over the fixture files
// and returns the cleansed rows both paths share.
func runCleaning(t *testing.T) ([]models.Customer, []models.OrderItem, []models.OrderFact) {
	t.Helper()

	dir := t.TempDir()

	csvPath := filepath.Join(dir, "customers.csv")
	if err := os.WriteFile(csvPath, []byte(customersCSV), 0644); err != nil {
		t.Fatalf("write customers fixture: %v", err)
	}

	xmlPath := filepath.Join(dir, "orders.xml")
	if err := os.WriteFile(xmlPath, []byte(ordersXML), 0644); err != nil {
		t.Fatalf("write orders fixture: %v", err)
	}

	rawCustomers, err := source.ReadCustomers(csvPath)
	if err != nil {
		t.Fatalf("ReadCustomers failed: %v", err)
	}

	rawOrders, err := source.ReadOrders(xmlPath)
	if err != nil {
		t.Fatalf("ReadOrders failed: %v", err)
	}

	converter, err := normalizer.NewConverter("Asia/Kolkata")
	if err != nil {
		t.Fatalf("NewConverter failed: %v", err)
	}

	processor := normalizer.NewProcessor(converter, nil)

	customers, customerStats := processor.CleanCustomers(rawCustomers)
	if customerStats.Dropped != 1 || customerStats.Duplicates != 1 {
		t.Fatalf("customer stats = %+v, want Dropped=1 Duplicates=1", customerStats)
	}

	items, facts, orderStats, err := processor.CleanOrders(rawOrders)
	if err != nil {
		t.Fatalf("CleanOrders failed: %v", err)
	}

	if orderStats.Dropped != 1 || orderStats.Duplicates != 1 {
		t.Fatalf("order stats = %+v, want Dropped=1 Duplicates=1", orderStats)
	}

	return customers, items, facts
}

func TestPipeline_InMemoryPath(t *testing.T) {
	customers, _, facts := runCleaning(t)

	if len(customers) != 3 {
		t.Fatalf("cleansed customers = %d, want 3", len(customers))
	}

	if len(facts) != 5 {
		t.Fatalf("order facts = %d, want 5", len(facts))
	}

	view := unify.BuildUnified(facts, customers)
	now := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)

	repeat := kpi.RepeatCustomers(view)
	if len(repeat) != 1 || repeat[0].CustomerName != "Asha Rao" || repeat[0].OrderCount != 2 {
		t.Errorf("repeat customers = %+v, want Asha Rao with 2 orders", repeat)
	}

	monthly := kpi.MonthlyTrends(view)
	if len(monthly) != 2 {
		t.Fatalf("monthly trends = %d rows, want 2", len(monthly))
	}

	if monthly[1].OrderMonth != "2024-03" || monthly[1].TotalOrders != 4 {
		t.Errorf("march trend = %+v, want 4 orders", monthly[1])
	}

	if math.Abs(monthly[1].TotalRevenue-375.75) > tolerance {
		t.Errorf("march revenue = %v, want 375.75", monthly[1].TotalRevenue)
	}

	regional := kpi.RegionalRevenue(view)
	if len(regional) != 3 {
		t.Fatalf("regional revenue = %d rows, want 3", len(regional))
	}

	if regional[0].Region != "South" || regional[1].Region != "North" {
		t.Errorf("regional order = %s, %s; want South, North", regional[0].Region, regional[1].Region)
	}

	if regional[2].Region != normalizer.UnknownRegion {
		t.Errorf("regional[2] = %+v, want defaulted Unknown region", regional[2])
	}

	top := kpi.TopCustomers(view, now)
	if len(top) != 3 {
		t.Fatalf("top customers = %d rows, want 3 (old order excluded)", len(top))
	}

	if top[0].CustomerID != "C001" || math.Abs(top[0].TotalSpend-300.75) > tolerance {
		t.Errorf("top[0] = %+v, want C001 with 300.75", top[0])
	}

	if top[1].MobileNumber != 9999999999 || top[1].CustomerID != "" {
		t.Errorf("top[1] = %+v, want unmatched order's mobile with empty identity", top[1])
	}
}

func TestPipeline_BackendEquivalence(t *testing.T) {
	customers, items, facts := runCleaning(t)

	view := unify.BuildUnified(facts, customers)
	now := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)

	store, err := storage.Open("sqlite", filepath.Join(t.TempDir(), "pipeline.db"), nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	if err := store.CreateTables(ctx); err != nil {
		t.Fatalf("CreateTables failed: %v", err)
	}

	// Load twice: the persisted state must be the same as after one load.
	for i := 0; i < 2; i++ {
		if err := store.UpsertCustomers(ctx, customers); err != nil {
			t.Fatalf("UpsertCustomers (pass %d) failed: %v", i+1, err)
		}

		if err := store.LoadOrders(ctx, facts, items); err != nil {
			t.Fatalf("LoadOrders (pass %d) failed: %v", i+1, err)
		}
	}

	memRepeat := kpi.RepeatCustomers(view)

	sqlRepeat, err := store.RepeatCustomers(ctx)
	if err != nil {
		t.Fatalf("store.RepeatCustomers failed: %v", err)
	}

	if len(memRepeat) != len(sqlRepeat) {
		t.Fatalf("repeat customers: in-memory %d rows, SQL %d rows", len(memRepeat), len(sqlRepeat))
	}

	for i := range memRepeat {
		if memRepeat[i] != sqlRepeat[i] {
			t.Errorf("repeat[%d]: in-memory %+v != SQL %+v", i, memRepeat[i], sqlRepeat[i])
		}
	}

	memMonthly := kpi.MonthlyTrends(view)

	sqlMonthly, err := store.MonthlyTrends(ctx)
	if err != nil {
		t.Fatalf("store.MonthlyTrends failed: %v", err)
	}

	if len(memMonthly) != len(sqlMonthly) {
		t.Fatalf("monthly trends: in-memory %d rows, SQL %d rows", len(memMonthly), len(sqlMonthly))
	}

	for i := range memMonthly {
		m, s := memMonthly[i], sqlMonthly[i]
		if m.OrderMonth != s.OrderMonth || m.TotalOrders != s.TotalOrders {
			t.Errorf("monthly[%d]: in-memory %+v != SQL %+v", i, m, s)
		}

		if math.Abs(m.TotalRevenue-s.TotalRevenue) > tolerance {
			t.Errorf("monthly[%d] revenue: in-memory %v != SQL %v", i, m.TotalRevenue, s.TotalRevenue)
		}
	}

	memRegional := kpi.RegionalRevenue(view)

	sqlRegional, err := store.RegionalRevenue(ctx)
	if err != nil {
		t.Fatalf("store.RegionalRevenue failed: %v", err)
	}

	if len(memRegional) != len(sqlRegional) {
		t.Fatalf("regional revenue: in-memory %d rows, SQL %d rows", len(memRegional), len(sqlRegional))
	}

	for i := range memRegional {
		m, s := memRegional[i], sqlRegional[i]
		if m.Region != s.Region || math.Abs(m.RegionalRevenue-s.RegionalRevenue) > tolerance {
			t.Errorf("regional[%d]: in-memory %+v != SQL %+v", i, m, s)
		}
	}

	memTop := kpi.TopCustomers(view, now)

	sqlTop, err := store.TopCustomers(ctx, now)
	if err != nil {
		t.Fatalf("store.TopCustomers failed: %v", err)
	}

	if len(memTop) != len(sqlTop) {
		t.Fatalf("top customers: in-memory %d rows, SQL %d rows", len(memTop), len(sqlTop))
	}

	for i := range memTop {
		m, s := memTop[i], sqlTop[i]
		if m.CustomerID != s.CustomerID || m.MobileNumber != s.MobileNumber {
			t.Errorf("top[%d]: in-memory %+v != SQL %+v", i, m, s)
		}

		if math.Abs(m.TotalSpend-s.TotalSpend) > tolerance {
			t.Errorf("top[%d] spend: in-memory %v != SQL %v", i, m.TotalSpend, s.TotalSpend)
		}
	}
}
