package generator

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/meera/rfmscope/backend/internal/rfm"
)

// WriteCSV renders the records in the upload format accepted by the API.
func WriteCSV(w io.Writer, records []rfm.TransactionRecord) error {
	writer := csv.NewWriter(w)

	header := []string{"customer_id", "customer_name", "invoice_date", "quantity", "unit_price"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, record := range records {
		row := []string{
			record.CustomerID,
			record.CustomerName,
			record.InvoiceDate.Format("2006-01-02"),
			strconv.Itoa(record.Quantity),
			record.UnitPrice.String(),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteCSVFile writes the records to a CSV file at path.
func WriteCSVFile(path string, records []rfm.TransactionRecord) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	return WriteCSV(file, records)
}
