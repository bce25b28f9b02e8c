package rfm

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReferenceDate returns the date recency is measured against: one day after
// the latest invoice date in the dataset. Deriving it from the data keeps a
// given dataset's scores reproducible regardless of when the analysis runs,
// and makes every recency at least 1.
func ReferenceDate(records []TransactionRecord) time.Time {
	var max time.Time
	for _, rec := range records {
		if d := dateOnly(rec.InvoiceDate); d.After(max) {
			max = d
		}
	}
	return max.AddDate(0, 0, 1)
}

// Aggregate reduces validated transactions into one CustomerAggregate per
// distinct customer, ordered by first appearance in the input. Frequency
// counts distinct (customer, invoice date) purchase events, so several lines
// of the same day's invoice count once.
func Aggregate(records []TransactionRecord, reference time.Time) []CustomerAggregate {
	type group struct {
		name     string
		last     time.Time
		days     map[time.Time]struct{}
		monetary decimal.Decimal
	}

	groups := make(map[string]*group, len(records))
	var order []string

	for _, rec := range records {
		g, ok := groups[rec.CustomerID]
		if !ok {
			g = &group{days: make(map[time.Time]struct{})}
			groups[rec.CustomerID] = g
			order = append(order, rec.CustomerID)
		}
		if g.name == "" && rec.CustomerName != "" {
			g.name = rec.CustomerName
		}
		day := dateOnly(rec.InvoiceDate)
		if day.After(g.last) {
			g.last = day
		}
		g.days[day] = struct{}{}
		g.monetary = g.monetary.Add(rec.Total())
	}

	aggregates := make([]CustomerAggregate, 0, len(order))
	for _, id := range order {
		g := groups[id]
		monetary := g.monetary
		if monetary.IsNegative() {
			monetary = decimal.Zero
		}
		aggregates = append(aggregates, CustomerAggregate{
			CustomerID:   id,
			CustomerName: g.name,
			RecencyDays:  int(reference.Sub(g.last).Hours() / 24),
			Frequency:    len(g.days),
			Monetary:     monetary,
		})
	}
	return aggregates
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
