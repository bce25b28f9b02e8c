package rfm

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		name    string
		r, f, m int
		want    string
	}{
		{"high on everything", 5, 5, 5, SegmentChampions},
		{"champions lower bound", 4, 4, 4, SegmentChampions},
		{"lapsed big spender", 1, 5, 5, SegmentCannotLose},
		{"lapsed mid value", 2, 3, 3, SegmentAtRisk},
		{"frequent buyer", 3, 4, 3, SegmentLoyal},
		{"recent moderate frequency", 5, 3, 2, SegmentPromising},
		{"recent one-off", 5, 1, 1, SegmentNewCustomers},
		{"gone quiet", 1, 1, 1, SegmentHibernating},
		{"middle of the pack", 3, 2, 2, SegmentNeedAttention},
		{"no rule matches", 3, 1, 1, SegmentOthers},
	}

	for _, tc := range cases {
		if got := Classify(tc.r, tc.f, tc.m); got != tc.want {
			t.Errorf("%s: Classify(%d,%d,%d) = %q, want %q", tc.name, tc.r, tc.f, tc.m, got, tc.want)
		}
	}
}

func TestClassifyOrderResolvesOverlaps(t *testing.T) {
	// (4,4,4) also satisfies the Loyal rule; the earlier Champions rule wins.
	if got := Classify(4, 4, 4); got != SegmentChampions {
		t.Fatalf("expected Champions to shadow Loyal, got %q", got)
	}
	// (2,4,4) satisfies Cannot Lose, At Risk and Loyal; Cannot Lose is listed first.
	if got := Classify(2, 4, 4); got != SegmentCannotLose {
		t.Fatalf("expected Cannot Lose to win, got %q", got)
	}
}

func TestAdviceCoversEverySegment(t *testing.T) {
	for _, segment := range SegmentOrder {
		advice := AdviceFor(segment)
		if advice.Recommendation == "" {
			t.Errorf("segment %q has no recommendation", segment)
		}
		if advice.Icon == "" {
			t.Errorf("segment %q has no icon", segment)
		}
	}
}

func TestRuleTableAlwaysAssignsOneLabel(t *testing.T) {
	known := make(map[string]bool, len(SegmentOrder))
	for _, s := range SegmentOrder {
		known[s] = true
	}
	for r := 1; r <= 5; r++ {
		for f := 1; f <= 5; f++ {
			for m := 1; m <= 5; m++ {
				if label := Classify(r, f, m); !known[label] {
					t.Fatalf("Classify(%d,%d,%d) returned unknown label %q", r, f, m, label)
				}
			}
		}
	}
}
