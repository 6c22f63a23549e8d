// Package main provides the batch entry point that runs both execution
// paths: the in-memory unified view and the persisted relational load.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"orderpipe/internal/config"
	"orderpipe/internal/formatter"
	"orderpipe/internal/kpi"
	"orderpipe/internal/logger"
	"orderpipe/internal/metrics"
	"orderpipe/internal/normalizer"
	"orderpipe/internal/source"
	"orderpipe/internal/storage"
	"orderpipe/internal/unify"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to YAML configuration file")
	skipDB := flag.Bool("skip-db", false, "Run only the in-memory path")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Config error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Pipeline.Logging.Level, cfg.Pipeline.Logging.Format)
	reg := metrics.NewRegistry()

	if addr := cfg.Pipeline.Metrics.ListenAddr; addr != "" {
		go func() {
			if serveErr := http.ListenAndServe(addr, reg.Handler()); serveErr != nil {
				log.Warn("metrics server stopped", "error", serveErr)
			}
		}()
		log.Info("serving metrics", "addr", addr)
	}

	log.Info("🚀 starting pipeline run", "config", cfg.String())

	if err := run(context.Background(), cfg, log, reg, *skipDB); err != nil {
		log.Error("❌ pipeline failed", "error", err)
		os.Exit(1)
	}

	log.Info("✨ pipeline complete")
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger, reg *metrics.Registry, skipDB bool) error {
	start := time.Now()

	// Phase 1: ingestion.
	rawCustomers, err := source.ReadCustomers(cfg.Pipeline.Inputs.CustomersCSV)
	if err != nil {
		return err
	}

	rawOrders, err := source.ReadOrders(cfg.Pipeline.Inputs.OrdersXML)
	if err != nil {
		return err
	}

	log.Info("✅ sources read",
		"customers", len(rawCustomers),
		"orders", len(rawOrders),
		"elapsed", time.Since(start))

	// Phase 2: normalization.
	converter, err := normalizer.NewConverter(cfg.Pipeline.Timezone)
	if err != nil {
		return err
	}

	processor := normalizer.NewProcessor(converter, reg)

	customers, customerStats := processor.CleanCustomers(rawCustomers)

	items, facts, orderStats, err := processor.CleanOrders(rawOrders)
	if err != nil {
		return err
	}

	log.Info("✅ rows cleansed",
		"customers", len(customers),
		"customers_dropped", customerStats.Dropped,
		"customer_duplicates", customerStats.Duplicates,
		"order_facts", len(facts),
		"orders_dropped", orderStats.Dropped,
		"order_duplicates", orderStats.Duplicates)

	// Phase 3: in-memory path.
	view := unify.BuildUnified(facts, customers)
	now := time.Now().UTC()

	fmt.Println("\n== In-memory KPIs ==")
	fmt.Println("\nRepeat customers:")
	fmt.Print(formatter.RepeatCustomersTable(kpi.RepeatCustomers(view)))
	fmt.Println("\nMonthly trends:")
	fmt.Print(formatter.MonthlyTrendsTable(kpi.MonthlyTrends(view)))
	fmt.Println("\nRegional revenue:")
	fmt.Print(formatter.RegionalRevenueTable(kpi.RegionalRevenue(view)))
	fmt.Println("\nTop customers (last 30 days):")
	fmt.Print(formatter.TopCustomersTable(kpi.TopCustomers(view, now)))

	if skipDB {
		log.Info("skipping persisted path (-skip-db)")
		return nil
	}

	// Phase 4: persisted path. The same cleansed rows are upserted and
	// the KPIs recomputed via SQL.
	store, err := storage.Open(cfg.Pipeline.Database.Driver, cfg.Pipeline.Database.DSN, reg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.CreateTables(ctx); err != nil {
		return err
	}

	if err := store.UpsertCustomers(ctx, customers); err != nil {
		return err
	}

	if err := store.LoadOrders(ctx, facts, items); err != nil {
		return err
	}

	log.Info("✅ persisted load complete",
		"customers", len(customers),
		"order_facts", len(facts),
		"order_items", len(items))

	repeat, err := store.RepeatCustomers(ctx)
	if err != nil {
		return err
	}

	monthly, err := store.MonthlyTrends(ctx)
	if err != nil {
		return err
	}

	regional, err := store.RegionalRevenue(ctx)
	if err != nil {
		return err
	}

	top, err := store.TopCustomers(ctx, now)
	if err != nil {
		return err
	}

	fmt.Println("\n== Persisted-path KPIs ==")
	fmt.Println("\nRepeat customers:")
	fmt.Print(formatter.RepeatCustomersTable(repeat))
	fmt.Println("\nMonthly trends:")
	fmt.Print(formatter.MonthlyTrendsTable(monthly))
	fmt.Println("\nRegional revenue:")
	fmt.Print(formatter.RegionalRevenueTable(regional))
	fmt.Println("\nTop customers (last 30 days):")
	fmt.Print(formatter.TopCustomersTable(top))

	return nil
}
