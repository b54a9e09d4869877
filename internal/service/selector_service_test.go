package service

import (
	"math"
	"math/rand"
	"testing"

	"readwise-notifier/internal/domain"
)

// scriptedRandom returns pre-programmed picks in order.
type scriptedRandom struct {
	picks []int
	calls int
}

func (r *scriptedRandom) Intn(n int) int {
	pick := r.picks[r.calls%len(r.picks)]
	r.calls++
	return pick % n
}

func TestSelectUniform_Empty(t *testing.T) {
	svc := NewSelectorService(&scriptedRandom{picks: []int{0}}, NewMockLogger())
	if _, ok := svc.SelectUniform(nil); ok {
		t.Fatalf("expected no selection from empty input")
	}
}

func TestSelectUniform_Scripted(t *testing.T) {
	svc := NewSelectorService(&scriptedRandom{picks: []int{2}}, NewMockLogger())
	highlights := []domain.Highlight{{ID: 10}, {ID: 20}, {ID: 30}}

	picked, ok := svc.SelectUniform(highlights)
	if !ok || picked.ID != 30 {
		t.Fatalf("expected highlight 30, got %v ok=%v", picked.ID, ok)
	}
}

func TestSelectAgeNormalized_Empty(t *testing.T) {
	svc := NewSelectorService(&scriptedRandom{picks: []int{0}}, NewMockLogger())
	if _, ok := svc.SelectAgeNormalized(nil); ok {
		t.Fatalf("expected no selection from empty input")
	}
}

func TestSelectAgeNormalized_ScriptedBucketThenItem(t *testing.T) {
	// Bucket keys sort to ["2022-Q1", "2023-Q3", "no-date"]; pick index 1,
	// then item index 0 inside it.
	svc := NewSelectorService(&scriptedRandom{picks: []int{1, 0}}, NewMockLogger())

	highlights := []domain.Highlight{
		{ID: 1, HighlightedAt: strptr("2022-02-01T00:00:00Z")},
		{ID: 2, HighlightedAt: strptr("2023-08-01T00:00:00Z")},
		{ID: 3}, // no-date bucket
	}

	picked, ok := svc.SelectAgeNormalized(highlights)
	if !ok || picked.ID != 2 {
		t.Fatalf("expected highlight 2 from the 2023-Q3 bucket, got %v", picked.ID)
	}
}

func TestSelectAgeNormalized_NoDateBucketSelectable(t *testing.T) {
	// Keys sort to ["2022-Q1", "no-date"]; pick the second.
	svc := NewSelectorService(&scriptedRandom{picks: []int{1, 0}}, NewMockLogger())

	highlights := []domain.Highlight{
		{ID: 1, HighlightedAt: strptr("2022-02-01T00:00:00Z")},
		{ID: 2},
	}

	picked, ok := svc.SelectAgeNormalized(highlights)
	if !ok || picked.ID != 2 {
		t.Fatalf("expected undated highlight 2, got %v", picked.ID)
	}
}

// Buckets of sizes {1, 1, 100} must each be selected ~1/3 of the time, not
// proportionally to their size.
func TestSelectAgeNormalized_EqualBucketProbability(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	svc := NewSelectorService(rng, NewMockLogger())

	var highlights []domain.Highlight
	highlights = append(highlights, domain.Highlight{ID: 1, HighlightedAt: strptr("2021-02-01T00:00:00Z")})
	highlights = append(highlights, domain.Highlight{ID: 2, HighlightedAt: strptr("2021-05-01T00:00:00Z")})
	for i := int64(0); i < 100; i++ {
		highlights = append(highlights, domain.Highlight{
			ID:            100 + i,
			HighlightedAt: strptr("2021-08-01T00:00:00Z"),
		})
	}

	const trials = 30000
	counts := map[string]int{}
	for i := 0; i < trials; i++ {
		picked, ok := svc.SelectAgeNormalized(highlights)
		if !ok {
			t.Fatalf("expected a selection")
		}
		counts[domain.TimeBucketFor(picked)]++
	}

	for _, bucket := range []string{"2021-Q1", "2021-Q2", "2021-Q3"} {
		ratio := float64(counts[bucket]) / trials
		if math.Abs(ratio-1.0/3.0) > 0.02 {
			t.Fatalf("bucket %s selected with ratio %.3f, expected ~0.333", bucket, ratio)
		}
	}
}
