package ingest

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/meera/rfmscope/backend/internal/rfm"
)

// Rejection records why a data row was dropped. Row is 1-based over data rows
// (the header is row 0).
type Rejection struct {
	Row    int
	Reason string
}

// dateLayouts tried in order by parseDate. Ambiguous slash dates are read
// month-first.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
	"1/2/2006 15:04",
	"1/2/2006",
	"01-02-2006",
	"02 Jan 2006",
}

// ValidateRows coerces and filters raw rows into TransactionRecords using the
// resolved column mapping. Rows with an empty customer id, an unparseable
// date, or a negative or non-numeric quantity/price are dropped and reported,
// never mutated. The operation fails only when no row survives.
func ValidateRows(table Table, mapping ColumnMapping) ([]rfm.TransactionRecord, []Rejection, error) {
	var (
		records    []rfm.TransactionRecord
		rejections []Rejection
	)

	reject := func(row int, format string, args ...any) {
		rejections = append(rejections, Rejection{Row: row, Reason: fmt.Sprintf(format, args...)})
	}

	for i, row := range table.Rows {
		rowNum := i + 1

		customerID, ok := cell(row, mapping[FieldCustomerID])
		if !ok || customerID == "" {
			reject(rowNum, "empty customer id")
			continue
		}

		rawDate, ok := cell(row, mapping[FieldInvoiceDate])
		if !ok || rawDate == "" {
			reject(rowNum, "missing invoice date")
			continue
		}
		invoiceDate, err := parseDate(rawDate)
		if err != nil {
			reject(rowNum, "unparseable invoice date %q", rawDate)
			continue
		}

		rawQty, ok := cell(row, mapping[FieldQuantity])
		if !ok {
			reject(rowNum, "missing quantity")
			continue
		}
		quantity, err := parseQuantity(rawQty)
		if err != nil {
			reject(rowNum, "invalid quantity %q: %v", rawQty, err)
			continue
		}

		rawPrice, ok := cell(row, mapping[FieldUnitPrice])
		if !ok {
			reject(rowNum, "missing unit price")
			continue
		}
		unitPrice, err := parsePrice(rawPrice)
		if err != nil {
			reject(rowNum, "invalid unit price %q: %v", rawPrice, err)
			continue
		}

		record := rfm.TransactionRecord{
			CustomerID:  customerID,
			InvoiceDate: invoiceDate,
			Quantity:    quantity,
			UnitPrice:   unitPrice,
		}
		if mapping.Has(FieldCustomerName) {
			if name, ok := cell(row, mapping[FieldCustomerName]); ok {
				record.CustomerName = name
			}
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, rejections, rfm.ErrEmptyDataset
	}
	return records, rejections, nil
}

func cell(row []string, idx int) (string, bool) {
	if idx >= len(row) {
		return "", false
	}
	return strings.TrimSpace(row[idx]), true
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("no layout matched %q", value)
}

func parseQuantity(value string) (int, error) {
	if qty, err := strconv.Atoi(value); err == nil {
		if qty < 0 {
			return 0, fmt.Errorf("negative")
		}
		return qty, nil
	}
	// Spreadsheet exports often carry integral quantities as "3.0".
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("not numeric")
	}
	if f < 0 {
		return 0, fmt.Errorf("negative")
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("not an integer")
	}
	return int(f), nil
}

func parsePrice(value string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("not numeric")
	}
	if price.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative")
	}
	return price, nil
}
