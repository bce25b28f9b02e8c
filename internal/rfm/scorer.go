package rfm

import (
	"fmt"
	"sort"
)

// Score converts each aggregate's raw metrics into 1-5 scores by quantile
// binning against the dataset's own distribution, then classifies the
// customer. Frequency and monetary score ascending (top quintile = 5);
// recency is inverted so the most recent customers score 5.
//
// Scores are derived from the percentile rank of each value, with duplicate
// values sharing a score. On well-spread data this produces five
// equal-population bins; with fewer than five distinct values it degrades to
// rank binning instead of failing, and a single-customer dataset scores 5 on
// every metric.
func Score(aggregates []CustomerAggregate) []CustomerRFM {
	n := len(aggregates)
	recency := make([]float64, n)
	frequency := make([]float64, n)
	monetary := make([]float64, n)
	for i, agg := range aggregates {
		recency[i] = float64(agg.RecencyDays)
		frequency[i] = float64(agg.Frequency)
		monetary[i] = agg.Monetary.InexactFloat64()
	}

	rScores := scoreDescending(recency)
	fScores := scoreAscending(frequency)
	mScores := scoreAscending(monetary)

	customers := make([]CustomerRFM, n)
	for i, agg := range aggregates {
		r, f, m := rScores[i], fScores[i], mScores[i]
		customers[i] = CustomerRFM{
			CustomerAggregate: agg,
			RScore:            r,
			FScore:            f,
			MScore:            m,
			RFMCode:           fmt.Sprintf("%d%d%d", r, f, m),
			Score:             r + f + m,
			Segment:           Classify(r, f, m),
		}
	}
	return customers
}

// scoreAscending assigns 1-5 where a higher value earns a higher score. The
// score is ceil(5 * rank / n) with rank the count of values less than or
// equal to v, so equal values always land in the same bin.
func scoreAscending(values []float64) []int {
	sorted := sortedCopy(values)
	n := len(sorted)
	scores := make([]int, n)
	for i, v := range values {
		rank := sort.Search(n, func(j int) bool { return sorted[j] > v })
		scores[i] = ceilDiv(5*rank, n)
	}
	return scores
}

// scoreDescending assigns 1-5 where a lower value earns a higher score, used
// for recency. Rank counts values greater than or equal to v.
func scoreDescending(values []float64) []int {
	sorted := sortedCopy(values)
	n := len(sorted)
	scores := make([]int, n)
	for i, v := range values {
		rank := n - sort.Search(n, func(j int) bool { return sorted[j] >= v })
		scores[i] = ceilDiv(5*rank, n)
	}
	return scores
}

func sortedCopy(values []float64) []float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return sorted
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
