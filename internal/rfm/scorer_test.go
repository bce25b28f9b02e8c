package rfm

import (
	"sort"
	"testing"

	"github.com/shopspring/decimal"
)

func aggregatesFrom(recency, frequency []int, monetary []string) []CustomerAggregate {
	aggs := make([]CustomerAggregate, len(recency))
	for i := range recency {
		aggs[i] = CustomerAggregate{
			CustomerID:  string(rune('A' + i)),
			RecencyDays: recency[i],
			Frequency:   frequency[i],
			Monetary:    decimal.RequireFromString(monetary[i]),
		}
	}
	return aggs
}

func TestScoreEvenQuintiles(t *testing.T) {
	// Ten distinct monetary values split cleanly into five bins of two.
	aggs := make([]CustomerAggregate, 10)
	for i := range aggs {
		aggs[i] = CustomerAggregate{
			CustomerID:  string(rune('A' + i)),
			RecencyDays: i + 1,
			Frequency:   i + 1,
			Monetary:    decimal.NewFromInt(int64((i + 1) * 100)),
		}
	}

	customers := Score(aggs)

	counts := map[int]int{}
	for _, c := range customers {
		counts[c.MScore]++
	}
	for score := 1; score <= 5; score++ {
		if counts[score] != 2 {
			t.Errorf("m_score %d has %d customers, want 2", score, counts[score])
		}
	}

	// Most recent customer (1 day) must hold r_score 5, least recent 1.
	if customers[0].RScore != 5 {
		t.Errorf("expected r_score 5 for most recent, got %d", customers[0].RScore)
	}
	if customers[9].RScore != 1 {
		t.Errorf("expected r_score 1 for least recent, got %d", customers[9].RScore)
	}
}

func TestScoreMonotonicity(t *testing.T) {
	aggs := aggregatesFrom(
		[]int{1, 45, 3, 90, 12, 7, 30, 2},
		[]int{10, 1, 4, 1, 3, 8, 2, 6},
		[]string{"5000", "50", "420.75", "12", "300", "1800", "99.90", "760"},
	)

	customers := Score(aggs)

	byMonetary := append([]CustomerRFM(nil), customers...)
	sort.Slice(byMonetary, func(i, j int) bool {
		return byMonetary[i].Monetary.LessThan(byMonetary[j].Monetary)
	})
	for i := 1; i < len(byMonetary); i++ {
		if byMonetary[i].MScore < byMonetary[i-1].MScore {
			t.Errorf("m_score not monotonic: %s=%d before %s=%d",
				byMonetary[i-1].CustomerID, byMonetary[i-1].MScore,
				byMonetary[i].CustomerID, byMonetary[i].MScore)
		}
	}

	byFrequency := append([]CustomerRFM(nil), customers...)
	sort.Slice(byFrequency, func(i, j int) bool {
		return byFrequency[i].Frequency < byFrequency[j].Frequency
	})
	for i := 1; i < len(byFrequency); i++ {
		if byFrequency[i].FScore < byFrequency[i-1].FScore {
			t.Errorf("f_score not monotonic in frequency")
		}
	}

	byRecency := append([]CustomerRFM(nil), customers...)
	sort.Slice(byRecency, func(i, j int) bool {
		return byRecency[i].RecencyDays < byRecency[j].RecencyDays
	})
	for i := 1; i < len(byRecency); i++ {
		if byRecency[i].RScore > byRecency[i-1].RScore {
			t.Errorf("r_score must not increase with recency days")
		}
	}
}

func TestScoreDuplicateValuesShareScore(t *testing.T) {
	aggs := aggregatesFrom(
		[]int{5, 5, 5, 5},
		[]int{2, 2, 7, 7},
		[]string{"100", "100", "900", "900"},
	)

	customers := Score(aggs)

	if customers[0].FScore != customers[1].FScore {
		t.Errorf("equal frequencies got scores %d and %d", customers[0].FScore, customers[1].FScore)
	}
	if customers[2].MScore != customers[3].MScore {
		t.Errorf("equal monetary values got scores %d and %d", customers[2].MScore, customers[3].MScore)
	}
	if customers[0].RScore != customers[3].RScore {
		t.Errorf("equal recency got scores %d and %d", customers[0].RScore, customers[3].RScore)
	}
	if customers[2].FScore < customers[0].FScore {
		t.Errorf("higher frequency scored lower: %d < %d", customers[2].FScore, customers[0].FScore)
	}
}

func TestScoreSingleCustomer(t *testing.T) {
	aggs := aggregatesFrom([]int{30}, []int{1}, []string{"49.99"})

	customers := Score(aggs)
	c := customers[0]
	if c.RScore != 5 || c.FScore != 5 || c.MScore != 5 {
		t.Fatalf("single customer scored %d/%d/%d, want 5/5/5", c.RScore, c.FScore, c.MScore)
	}
	if c.Segment != SegmentChampions {
		t.Fatalf("single customer classified as %q, want Champions", c.Segment)
	}
	if c.RFMCode != "555" {
		t.Fatalf("expected rfm code 555, got %s", c.RFMCode)
	}
}

func TestScoreRangeAndCode(t *testing.T) {
	aggs := aggregatesFrom(
		[]int{1, 2, 3},
		[]int{3, 1, 9},
		[]string{"10", "20", "30"},
	)

	for _, c := range Score(aggs) {
		for _, s := range []int{c.RScore, c.FScore, c.MScore} {
			if s < 1 || s > 5 {
				t.Fatalf("score %d out of range for %s", s, c.CustomerID)
			}
		}
		if c.Score != c.RScore+c.FScore+c.MScore {
			t.Errorf("numeric score %d does not match sum for %s", c.Score, c.CustomerID)
		}
		if len(c.RFMCode) != 3 {
			t.Errorf("rfm code %q malformed for %s", c.RFMCode, c.CustomerID)
		}
	}
}
