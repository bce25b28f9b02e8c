package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/meera/rfmscope/backend/internal/generator"
)

func main() {
	cfg := generator.DefaultConfig()
	var (
		customers = flag.Int("customers", cfg.NumCustomers, "number of customers to generate")
		orders    = flag.Int("orders", cfg.NumOrders, "number of orders to generate")
		seed      = flag.Int64("seed", cfg.Seed, "random seed for deterministic generation")
		start     = flag.String("start", cfg.Start.Format("2006-01-02"), "first day of the purchase window (YYYY-MM-DD)")
		days      = flag.Int("days", cfg.Days, "length of the purchase window in days")
		output    = flag.String("output", "transactions.csv", "path of the CSV file to write, or - for stdout")
	)
	flag.Parse()

	startDate, err := time.Parse("2006-01-02", *start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -start value %q: %v\n", *start, err)
		os.Exit(1)
	}

	genCfg := generator.Config{
		NumCustomers: *customers,
		NumOrders:    *orders,
		Seed:         *seed,
		Start:        startDate,
		Days:         *days,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	records, err := generator.New(genCfg).Generate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	if *output == "-" {
		if err := generator.WriteCSV(os.Stdout, records); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write csv to stdout: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := generator.WriteCSVFile(*output, records); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write csv: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "Generated %d orders into %s\n", len(records), *output)
}
