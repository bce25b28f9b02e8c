package rfm

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRecord is one validated purchase line. Records are immutable once
// they leave the validator.
type TransactionRecord struct {
	CustomerID   string
	CustomerName string
	InvoiceDate  time.Time
	Quantity     int
	UnitPrice    decimal.Decimal
}

// Total returns quantity × unit price for this line.
func (t TransactionRecord) Total() decimal.Decimal {
	return t.UnitPrice.Mul(decimal.NewFromInt(int64(t.Quantity)))
}

// CustomerAggregate is the per-customer reduction of all transaction lines:
// days since the last purchase, count of distinct purchase events, and total
// spend.
type CustomerAggregate struct {
	CustomerID   string
	CustomerName string
	RecencyDays  int
	Frequency    int
	Monetary     decimal.Decimal
}

// CustomerRFM extends CustomerAggregate with the 1-5 scores, the concatenated
// RFM code (e.g. "534"), the numeric score sum, and the assigned segment.
type CustomerRFM struct {
	CustomerAggregate
	RScore  int
	FScore  int
	MScore  int
	RFMCode string
	Score   int
	Segment string
}

// AnalysisResult is one complete analysis run. Exactly one result exists at a
// time; the store swaps it atomically and it is never mutated after
// publication.
type AnalysisResult struct {
	ReferenceDate time.Time
	Customers     []CustomerRFM
	Rows          int
	RejectedRows  int
	SourceFile    string
	CreatedAt     time.Time
}
