// Package main provides a read-only report tool that renders the four
// KPIs from an already-loaded database.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"orderpipe/internal/formatter"
	"orderpipe/internal/storage"
)

func main() {
	dsn := flag.String("db", "", "Database DSN (path to the SQLite file)")
	driver := flag.String("driver", "sqlite", "Database driver")
	flag.Parse()

	if *dsn == "" {
		fmt.Println("Usage: report -db <path-to-database>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	store, err := storage.Open(*driver, *dsn, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Open failed: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx := context.Background()

	repeat, err := store.RepeatCustomers(ctx)
	if err != nil {
		fatal(err)
	}

	monthly, err := store.MonthlyTrends(ctx)
	if err != nil {
		fatal(err)
	}

	regional, err := store.RegionalRevenue(ctx)
	if err != nil {
		fatal(err)
	}

	top, err := store.TopCustomers(ctx, time.Now().UTC())
	if err != nil {
		fatal(err)
	}

	fmt.Println("Repeat customers:")
	fmt.Print(formatter.RepeatCustomersTable(repeat))
	fmt.Println("\nMonthly trends:")
	fmt.Print(formatter.MonthlyTrendsTable(monthly))
	fmt.Println("\nRegional revenue:")
	fmt.Print(formatter.RegionalRevenueTable(regional))
	fmt.Println("\nTop customers (last 30 days):")
	fmt.Print(formatter.TopCustomersTable(top))
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "❌ Query failed: %v\n", err)
	os.Exit(1)
}
