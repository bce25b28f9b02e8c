package rfm

import "time"

// Analyze runs the full pipeline over validated transactions: reference date,
// per-customer aggregation, quantile scoring and segment classification. The
// returned result is complete and self-contained; callers publish it to the
// store in a single swap so readers never observe partial state.
func Analyze(records []TransactionRecord) (*AnalysisResult, error) {
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}

	reference := ReferenceDate(records)
	aggregates := Aggregate(records, reference)
	customers := Score(aggregates)

	return &AnalysisResult{
		ReferenceDate: reference,
		Customers:     customers,
		Rows:          len(records),
		CreatedAt:     time.Now().UTC(),
	}, nil
}
