package ingest

import (
	"errors"
	"testing"

	"github.com/meera/rfmscope/backend/internal/rfm"
)

func testMapping(t *testing.T) ColumnMapping {
	t.Helper()
	mapping, err := MapColumns([]string{"CustomerID", "CustomerName", "InvoiceDate", "Quantity", "UnitPrice"})
	if err != nil {
		t.Fatalf("mapping failed: %v", err)
	}
	return mapping
}

func TestValidateRowsAcceptsCleanData(t *testing.T) {
	table := Table{Rows: [][]string{
		{"C1", "Alice", "2024-03-10", "2", "19.99"},
		{"C2", "", "2024-03-11", "1", "5"},
	}}

	records, rejections, err := ValidateRows(table, testMapping(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rejections) != 0 {
		t.Fatalf("expected no rejections, got %v", rejections)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].CustomerName != "Alice" {
		t.Errorf("expected name Alice, got %q", records[0].CustomerName)
	}
	if records[0].Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", records[0].Quantity)
	}
}

func TestValidateRowsDropsBadRows(t *testing.T) {
	table := Table{Rows: [][]string{
		{"C1", "", "2024-03-10", "2", "19.99"},
		{"", "", "2024-03-10", "1", "5"},          // empty customer id
		{"C2", "", "not a date", "1", "5"},        // bad date
		{"C3", "", "2024-03-10", "-4", "5"},       // negative quantity
		{"C4", "", "2024-03-10", "1", "-3"},       // negative price
		{"C5", "", "2024-03-10", "one", "5"},      // non-numeric quantity
		{"C6", "", "2024-03-10", "1", "a lot"},    // non-numeric price
		{"C7", "", "2024-03-10", "2.5", "5"},      // fractional quantity
		{"C8", "", "2024-03-11", "3.0", "2.50"},   // integral float quantity is fine
	}}

	records, rejections, err := ValidateRows(table, testMapping(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 surviving records, got %d", len(records))
	}
	if len(rejections) != 7 {
		t.Fatalf("expected 7 rejections, got %d: %v", len(rejections), rejections)
	}
	if records[1].Quantity != 3 {
		t.Errorf("expected coerced quantity 3, got %d", records[1].Quantity)
	}
}

func TestValidateRowsAllRejected(t *testing.T) {
	table := Table{Rows: [][]string{
		{"", "", "2024-03-10", "1", "5"},
		{"C1", "", "garbage", "1", "5"},
	}}

	_, rejections, err := ValidateRows(table, testMapping(t))
	if !errors.Is(err, rfm.ErrEmptyDataset) {
		t.Fatalf("expected ErrEmptyDataset, got %v", err)
	}
	if len(rejections) != 2 {
		t.Fatalf("expected rejection reasons to be kept, got %d", len(rejections))
	}
}

func TestValidateRowsShortRow(t *testing.T) {
	table := Table{Rows: [][]string{
		{"C1", "Alice"},
		{"C2", "Bob", "2024-03-11", "1", "5"},
	}}

	records, rejections, err := ValidateRows(table, testMapping(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 || len(rejections) != 1 {
		t.Fatalf("expected 1 record and 1 rejection, got %d/%d", len(records), len(rejections))
	}
}

func TestParseDateFormats(t *testing.T) {
	inputs := []string{
		"2024-03-10",
		"2024-03-10 14:30:00",
		"2024/03/10",
		"03/10/2024",
		"3/10/2024",
		"2024-03-10T14:30:00Z",
		"10 Mar 2024",
	}
	for _, input := range inputs {
		parsed, err := parseDate(input)
		if err != nil {
			t.Errorf("parseDate(%q) failed: %v", input, err)
			continue
		}
		if parsed.Year() != 2024 || parsed.Month() != 3 || parsed.Day() != 10 {
			t.Errorf("parseDate(%q) = %v, want 2024-03-10", input, parsed)
		}
	}
}
