package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/meera/rfmscope/backend/internal/rfm"
)

// ExportCSV writes every customer of the analysis as one CSV row. The
// customer_name column is emitted only when at least one record carries a
// non-empty name.
func ExportCSV(w io.Writer, result *rfm.AnalysisResult) error {
	withNames := false
	for _, c := range result.Customers {
		if c.CustomerName != "" {
			withNames = true
			break
		}
	}

	writer := csv.NewWriter(w)

	header := []string{"customer_id"}
	if withNames {
		header = append(header, "customer_name")
	}
	header = append(header,
		"recency_days", "frequency", "monetary",
		"r_score", "f_score", "m_score", "rfm_code", "segment",
	)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, c := range result.Customers {
		row := []string{c.CustomerID}
		if withNames {
			row = append(row, c.CustomerName)
		}
		row = append(row,
			strconv.Itoa(c.RecencyDays),
			strconv.Itoa(c.Frequency),
			c.Monetary.String(),
			strconv.Itoa(c.RScore),
			strconv.Itoa(c.FScore),
			strconv.Itoa(c.MScore),
			c.RFMCode,
			c.Segment,
		)
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row for %s: %w", c.CustomerID, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
