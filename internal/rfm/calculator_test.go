package rfm

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func tx(customerID, name, date string, qty int, price string) TransactionRecord {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return TransactionRecord{
		CustomerID:   customerID,
		CustomerName: name,
		InvoiceDate:  day,
		Quantity:     qty,
		UnitPrice:    decimal.RequireFromString(price),
	}
}

func TestReferenceDate(t *testing.T) {
	records := []TransactionRecord{
		tx("C1", "", "2024-03-01", 1, "10"),
		tx("C2", "", "2024-03-15", 1, "10"),
		tx("C1", "", "2024-02-10", 1, "10"),
	}

	ref := ReferenceDate(records)
	want := time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)
	if !ref.Equal(want) {
		t.Fatalf("expected reference date %v, got %v", want, ref)
	}
}

func TestAggregateGroupsByCustomer(t *testing.T) {
	records := []TransactionRecord{
		tx("C1", "Alice", "2024-03-10", 2, "25.50"),
		tx("C2", "Bob", "2024-03-01", 1, "100"),
		tx("C1", "", "2024-03-14", 1, "49"),
	}
	ref := ReferenceDate(records)

	aggregates := Aggregate(records, ref)
	if len(aggregates) != 2 {
		t.Fatalf("expected 2 aggregates, got %d", len(aggregates))
	}

	first := aggregates[0]
	if first.CustomerID != "C1" {
		t.Fatalf("expected first-appearance order, got %s first", first.CustomerID)
	}
	if first.CustomerName != "Alice" {
		t.Errorf("expected name Alice, got %q", first.CustomerName)
	}
	if first.Frequency != 2 {
		t.Errorf("expected frequency 2, got %d", first.Frequency)
	}
	if first.RecencyDays != 1 {
		t.Errorf("expected recency 1 day, got %d", first.RecencyDays)
	}
	// 2*25.50 + 1*49
	if !first.Monetary.Equal(decimal.RequireFromString("100")) {
		t.Errorf("expected monetary 100, got %s", first.Monetary)
	}

	second := aggregates[1]
	if second.RecencyDays != 14 {
		t.Errorf("expected recency 14 days for C2, got %d", second.RecencyDays)
	}
}

func TestAggregateFrequencyCountsDistinctDays(t *testing.T) {
	// Three lines of the same day's invoice are one purchase event.
	records := []TransactionRecord{
		tx("C1", "", "2024-03-10", 1, "5"),
		tx("C1", "", "2024-03-10", 2, "5"),
		tx("C1", "", "2024-03-10", 3, "5"),
		tx("C1", "", "2024-03-12", 1, "5"),
	}

	aggregates := Aggregate(records, ReferenceDate(records))
	if aggregates[0].Frequency != 2 {
		t.Fatalf("expected 2 distinct purchase events, got %d", aggregates[0].Frequency)
	}
}

func TestAggregateKeepsFirstNonEmptyName(t *testing.T) {
	records := []TransactionRecord{
		tx("C1", "", "2024-03-10", 1, "5"),
		tx("C1", "Carol", "2024-03-11", 1, "5"),
		tx("C1", "Changed", "2024-03-12", 1, "5"),
	}

	aggregates := Aggregate(records, ReferenceDate(records))
	if aggregates[0].CustomerName != "Carol" {
		t.Fatalf("expected first non-empty name Carol, got %q", aggregates[0].CustomerName)
	}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	if _, err := Analyze(nil); err != ErrEmptyDataset {
		t.Fatalf("expected ErrEmptyDataset, got %v", err)
	}
}

func TestAnalyzeRecencyAlwaysPositive(t *testing.T) {
	records := []TransactionRecord{
		tx("C1", "", "2024-03-15", 1, "10"),
		tx("C2", "", "2024-03-15", 1, "20"),
	}

	result, err := Analyze(records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, c := range result.Customers {
		if c.RecencyDays < 1 {
			t.Errorf("customer %s has recency %d, want >= 1", c.CustomerID, c.RecencyDays)
		}
	}
}
