// Package report derives the dashboard views from a classified customer
// population. Everything here is a pure read of one AnalysisResult; raw
// transactions are never consulted again.
package report

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/meera/rfmscope/backend/internal/rfm"
)

// Summary carries the headline numbers for the dashboard.
type Summary struct {
	TotalCustomers  int
	TotalRevenue    float64
	TotalSegments   int
	TopSegment      string
	TopSegmentCount int
	AvgRecency      float64
	AvgFrequency    float64
	AvgMonetary     float64
	SegmentCounts   map[string]int
}

// SegmentShare is one segment's slice of the customer base.
type SegmentShare struct {
	Segment    string
	Count      int
	Percentage float64
}

// SegmentRevenue is one segment's total monetary value.
type SegmentRevenue struct {
	Segment string
	Revenue float64
}

// ScoreBucket counts customers sharing one r+f+m score sum.
type ScoreBucket struct {
	Score int
	Count int
}

// Distribution groups the chart-feeding breakdowns.
type Distribution struct {
	Segments []SegmentShare
	Revenue  []SegmentRevenue
	Scores   []ScoreBucket
}

// Insight is one segment's card on the insights page.
type Insight struct {
	Segment        string
	Count          int
	Revenue        float64
	Percentage     float64
	Recommendation string
	Icon           string
}

// ScatterPoint is one customer's position in metric space.
type ScatterPoint struct {
	Recency   int
	Frequency int
	Monetary  float64
	Segment   string
}

// Scatter is the (possibly down-sampled) scatter plot payload.
type Scatter struct {
	Points          []ScatterPoint
	TotalPoints     int
	DisplayedPoints int
}

type segmentStats struct {
	count   int
	revenue decimal.Decimal
}

func statsBySegment(customers []rfm.CustomerRFM) map[string]*segmentStats {
	stats := make(map[string]*segmentStats)
	for _, c := range customers {
		s, ok := stats[c.Segment]
		if !ok {
			s = &segmentStats{}
			stats[c.Segment] = s
		}
		s.count++
		s.revenue = s.revenue.Add(c.Monetary)
	}
	return stats
}

// BuildSummary computes the headline statistics. The top segment is the one
// with the most customers; ties go to the larger revenue, then the lexically
// smaller name.
func BuildSummary(result *rfm.AnalysisResult) Summary {
	customers := result.Customers
	total := len(customers)

	var (
		revenue   decimal.Decimal
		recency   int
		frequency int
	)
	for _, c := range customers {
		revenue = revenue.Add(c.Monetary)
		recency += c.RecencyDays
		frequency += c.Frequency
	}

	stats := statsBySegment(customers)
	counts := make(map[string]int, len(stats))
	topSegment := ""
	for segment, s := range stats {
		counts[segment] = s.count
		if topSegment == "" {
			topSegment = segment
			continue
		}
		top := stats[topSegment]
		switch {
		case s.count != top.count:
			if s.count > top.count {
				topSegment = segment
			}
		case !s.revenue.Equal(top.revenue):
			if s.revenue.GreaterThan(top.revenue) {
				topSegment = segment
			}
		case segment < topSegment:
			topSegment = segment
		}
	}

	summary := Summary{
		TotalCustomers: total,
		TotalRevenue:   revenue.InexactFloat64(),
		TotalSegments:  len(stats),
		TopSegment:     topSegment,
		SegmentCounts:  counts,
	}
	if topSegment != "" {
		summary.TopSegmentCount = stats[topSegment].count
	}
	if total > 0 {
		summary.AvgRecency = float64(recency) / float64(total)
		summary.AvgFrequency = float64(frequency) / float64(total)
		summary.AvgMonetary = revenue.Div(decimal.NewFromInt(int64(total))).InexactFloat64()
	}
	return summary
}

// BuildDistribution computes the segment and score breakdowns. Only segments
// with members appear. Segment shares are ordered by count descending, the
// revenue list by revenue descending, score buckets by score ascending.
func BuildDistribution(result *rfm.AnalysisResult) Distribution {
	customers := result.Customers
	total := len(customers)
	stats := statsBySegment(customers)

	dist := Distribution{
		Segments: make([]SegmentShare, 0, len(stats)),
		Revenue:  make([]SegmentRevenue, 0, len(stats)),
	}
	for segment, s := range stats {
		percentage := 0.0
		if total > 0 {
			percentage = math.Round(float64(s.count)/float64(total)*1000) / 10
		}
		dist.Segments = append(dist.Segments, SegmentShare{
			Segment:    segment,
			Count:      s.count,
			Percentage: percentage,
		})
		dist.Revenue = append(dist.Revenue, SegmentRevenue{
			Segment: segment,
			Revenue: s.revenue.InexactFloat64(),
		})
	}
	sort.Slice(dist.Segments, func(i, j int) bool {
		if dist.Segments[i].Count != dist.Segments[j].Count {
			return dist.Segments[i].Count > dist.Segments[j].Count
		}
		return dist.Segments[i].Segment < dist.Segments[j].Segment
	})
	sort.Slice(dist.Revenue, func(i, j int) bool {
		if dist.Revenue[i].Revenue != dist.Revenue[j].Revenue {
			return dist.Revenue[i].Revenue > dist.Revenue[j].Revenue
		}
		return dist.Revenue[i].Segment < dist.Revenue[j].Segment
	})

	scoreCounts := make(map[int]int)
	for _, c := range customers {
		scoreCounts[c.Score]++
	}
	scores := make([]int, 0, len(scoreCounts))
	for score := range scoreCounts {
		scores = append(scores, score)
	}
	sort.Ints(scores)
	for _, score := range scores {
		dist.Scores = append(dist.Scores, ScoreBucket{Score: score, Count: scoreCounts[score]})
	}
	return dist
}

// BuildInsights returns one entry per segment present, in rule-table order,
// with the static recommendation and icon for that segment.
func BuildInsights(result *rfm.AnalysisResult) []Insight {
	customers := result.Customers
	total := len(customers)
	stats := statsBySegment(customers)

	insights := make([]Insight, 0, len(stats))
	for _, segment := range rfm.SegmentOrder {
		s, ok := stats[segment]
		if !ok {
			continue
		}
		advice := rfm.AdviceFor(segment)
		insights = append(insights, Insight{
			Segment:        segment,
			Count:          s.count,
			Revenue:        s.revenue.InexactFloat64(),
			Percentage:     float64(s.count) / float64(total) * 100,
			Recommendation: advice.Recommendation,
			Icon:           advice.Icon,
		})
	}
	return insights
}

// TopCustomers returns the limit customers with greatest monetary value in
// descending order, breaking ties by customer id ascending.
func TopCustomers(result *rfm.AnalysisResult, limit int) []rfm.CustomerRFM {
	top := append([]rfm.CustomerRFM(nil), result.Customers...)
	sort.SliceStable(top, func(i, j int) bool {
		if !top[i].Monetary.Equal(top[j].Monetary) {
			return top[i].Monetary.GreaterThan(top[j].Monetary)
		}
		return top[i].CustomerID < top[j].CustomerID
	})
	if limit > 0 && len(top) > limit {
		top = top[:limit]
	}
	return top
}

// BuildScatter emits one point per customer, down-sampling deterministically
// to cap points when the population is larger. The sample preserves
// per-segment proportions as closely as integer counts allow: quotas are
// assigned by largest remainder and each segment's members are picked at a
// uniform stride, so the same dataset always yields the same points.
func BuildScatter(result *rfm.AnalysisResult, limit int) Scatter {
	customers := result.Customers
	total := len(customers)

	scatter := Scatter{TotalPoints: total}
	if limit <= 0 || total <= limit {
		scatter.Points = make([]ScatterPoint, 0, total)
		for _, c := range customers {
			scatter.Points = append(scatter.Points, point(c))
		}
		scatter.DisplayedPoints = len(scatter.Points)
		return scatter
	}

	selected := sampleIndices(customers, limit)
	scatter.Points = make([]ScatterPoint, 0, len(selected))
	for _, idx := range selected {
		scatter.Points = append(scatter.Points, point(customers[idx]))
	}
	scatter.DisplayedPoints = len(scatter.Points)
	return scatter
}

func point(c rfm.CustomerRFM) ScatterPoint {
	return ScatterPoint{
		Recency:   c.RecencyDays,
		Frequency: c.Frequency,
		Monetary:  c.Monetary.InexactFloat64(),
		Segment:   c.Segment,
	}
}

func sampleIndices(customers []rfm.CustomerRFM, limit int) []int {
	total := len(customers)

	members := make(map[string][]int)
	var segments []string
	for i, c := range customers {
		if _, ok := members[c.Segment]; !ok {
			segments = append(segments, c.Segment)
		}
		members[c.Segment] = append(members[c.Segment], i)
	}
	// Deterministic quota assignment regardless of input order.
	sort.Strings(segments)

	type allocation struct {
		segment   string
		quota     int
		remainder int
	}
	allocations := make([]allocation, 0, len(segments))
	assigned := 0
	for _, segment := range segments {
		exact := limit * len(members[segment])
		quota := exact / total
		allocations = append(allocations, allocation{
			segment:   segment,
			quota:     quota,
			remainder: exact % total,
		})
		assigned += quota
	}
	// Hand the leftover slots to the largest remainders; ties favour the
	// bigger segment, then the lexically smaller name.
	order := make([]int, len(allocations))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		ai, bi := allocations[order[a]], allocations[order[b]]
		if ai.remainder != bi.remainder {
			return ai.remainder > bi.remainder
		}
		if len(members[ai.segment]) != len(members[bi.segment]) {
			return len(members[ai.segment]) > len(members[bi.segment])
		}
		return ai.segment < bi.segment
	})
	for assigned < limit {
		progressed := false
		for _, idx := range order {
			if assigned == limit {
				break
			}
			alloc := &allocations[idx]
			if alloc.quota < len(members[alloc.segment]) {
				alloc.quota++
				assigned++
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}

	var selected []int
	for _, alloc := range allocations {
		idxs := members[alloc.segment]
		n := len(idxs)
		for i := 0; i < alloc.quota; i++ {
			selected = append(selected, idxs[i*n/alloc.quota])
		}
	}
	sort.Ints(selected)
	return selected
}
