package rfm

// Segment labels assigned by the classifier.
const (
	SegmentChampions     = "Champions"
	SegmentCannotLose    = "Cannot Lose"
	SegmentAtRisk        = "At Risk"
	SegmentLoyal         = "Loyal"
	SegmentPromising     = "Promising"
	SegmentNewCustomers  = "New Customers"
	SegmentHibernating   = "Hibernating"
	SegmentNeedAttention = "Need Attention"
	SegmentOthers        = "Others"
)

// SegmentRule pairs a predicate over the three scores with the label it
// assigns.
type SegmentRule struct {
	Label string
	Match func(r, f, m int) bool
}

// segmentRules is evaluated top to bottom; the first match wins. The order
// resolves overlapping ranges, e.g. a high-value lapsed customer matches
// "Cannot Lose" before the looser "Loyal" rule can claim it.
var segmentRules = []SegmentRule{
	{SegmentChampions, func(r, f, m int) bool { return r >= 4 && f >= 4 && m >= 4 }},
	{SegmentCannotLose, func(r, f, m int) bool { return r <= 2 && f >= 4 && m >= 4 }},
	{SegmentAtRisk, func(r, f, m int) bool { return r <= 2 && f >= 3 && m >= 3 }},
	{SegmentLoyal, func(r, f, m int) bool { return f >= 4 && m >= 3 }},
	{SegmentPromising, func(r, f, m int) bool { return r >= 4 && f >= 2 && f <= 3 }},
	{SegmentNewCustomers, func(r, f, m int) bool { return r >= 4 && f <= 2 }},
	{SegmentHibernating, func(r, f, m int) bool { return r <= 2 && f <= 2 }},
	{SegmentNeedAttention, func(r, f, m int) bool { return r >= 3 && f >= 2 && m >= 2 }},
}

// Classify maps a score triple to its segment label. Exactly one label is
// assigned; customers matching no rule fall through to "Others".
func Classify(r, f, m int) string {
	for _, rule := range segmentRules {
		if rule.Match(r, f, m) {
			return rule.Label
		}
	}
	return SegmentOthers
}

// SegmentOrder lists all labels in rule-table order, used wherever a stable
// canonical ordering of segments is needed.
var SegmentOrder = []string{
	SegmentChampions,
	SegmentCannotLose,
	SegmentAtRisk,
	SegmentLoyal,
	SegmentPromising,
	SegmentNewCustomers,
	SegmentHibernating,
	SegmentNeedAttention,
	SegmentOthers,
}

// SegmentAdvice is the static recommendation shown for a segment on the
// dashboard; Icon names a lucide icon rendered by the frontend.
type SegmentAdvice struct {
	Recommendation string
	Icon           string
}

var segmentAdvice = map[string]SegmentAdvice{
	SegmentChampions: {
		Recommendation: "Reward these customers with exclusive offers and early access to new products. They are your best advocates.",
		Icon:           "trophy",
	},
	SegmentCannotLose: {
		Recommendation: "Win them back with renewals or newer products before the competition does. These were your biggest spenders.",
		Icon:           "shield-alert",
	},
	SegmentAtRisk: {
		Recommendation: "Send personalized win-back campaigns. Offer special discounts to re-engage them.",
		Icon:           "alert-triangle",
	},
	SegmentLoyal: {
		Recommendation: "Maintain engagement with regular communication and appreciation rewards.",
		Icon:           "heart",
	},
	SegmentPromising: {
		Recommendation: "Nurture these customers with loyalty programs to increase their frequency and value.",
		Icon:           "trending-up",
	},
	SegmentNewCustomers: {
		Recommendation: "Provide onboarding support and early incentives to turn first purchases into a habit.",
		Icon:           "user-plus",
	},
	SegmentHibernating: {
		Recommendation: "Consider re-engagement campaigns or remove from active marketing to reduce costs.",
		Icon:           "moon",
	},
	SegmentNeedAttention: {
		Recommendation: "Make limited-time offers based on past purchases before they slip further away.",
		Icon:           "eye",
	},
	SegmentOthers: {
		Recommendation: "Review these customers individually; their behaviour does not fit a standard profile.",
		Icon:           "users",
	},
}

// AdviceFor returns the recommendation and icon for a segment label.
func AdviceFor(segment string) SegmentAdvice {
	if advice, ok := segmentAdvice[segment]; ok {
		return advice
	}
	return segmentAdvice[SegmentOthers]
}
