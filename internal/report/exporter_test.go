package report

import (
	"bytes"
	"encoding/csv"
	"testing"
)

func TestExportCSVRoundTrip(t *testing.T) {
	result := analyzed(t, scenarioRecords())

	var buf bytes.Buffer
	if err := ExportCSV(&buf, result); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("re-reading export failed: %v", err)
	}
	if len(rows) != len(result.Customers)+1 {
		t.Fatalf("expected %d rows, got %d", len(result.Customers)+1, len(rows))
	}

	header := rows[0]
	if header[0] != "customer_id" {
		t.Fatalf("unexpected first column %q", header[0])
	}
	// No names in the scenario data, so no customer_name column.
	for _, col := range header {
		if col == "customer_name" {
			t.Fatal("customer_name column present without any names")
		}
	}

	segmentCol := len(header) - 1
	if header[segmentCol] != "segment" {
		t.Fatalf("expected segment as last column, got %q", header[segmentCol])
	}

	segments := map[string]string{}
	for _, c := range result.Customers {
		segments[c.CustomerID] = c.Segment
	}
	for _, row := range rows[1:] {
		want, ok := segments[row[0]]
		if !ok {
			t.Fatalf("exported unknown customer %q", row[0])
		}
		if row[segmentCol] != want {
			t.Errorf("customer %s exported with segment %q, want %q", row[0], row[segmentCol], want)
		}
	}
}

func TestExportCSVWithNames(t *testing.T) {
	records := scenarioRecords()
	records[0].CustomerName = "Alice"
	result := analyzed(t, records)

	var buf bytes.Buffer
	if err := ExportCSV(&buf, result); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("re-reading export failed: %v", err)
	}
	if rows[0][1] != "customer_name" {
		t.Fatalf("expected customer_name as second column, got %q", rows[0][1])
	}
	if len(rows[0]) != 10 {
		t.Fatalf("expected 10 columns, got %d", len(rows[0]))
	}
}
