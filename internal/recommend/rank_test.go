package recommend_test

import (
	"testing"

	"hotel_recs/internal/domain"
	"hotel_recs/internal/recommend"
)

func TestRank_SortsDescendingAndTruncates(t *testing.T) {
	in := []domain.ScoredHotel{
		{Hotel: domain.Hotel{Name: "low"}, RecommendScore: 1},
		{Hotel: domain.Hotel{Name: "high"}, RecommendScore: 9},
		{Hotel: domain.Hotel{Name: "mid"}, RecommendScore: 5},
		{Hotel: domain.Hotel{Name: "mid2"}, RecommendScore: 4},
	}
	out := recommend.Rank(in, 3)
	if len(out) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(out))
	}
	if out[0].Name != "high" || out[1].Name != "mid" || out[2].Name != "mid2" {
		t.Fatalf("unexpected order: %+v", out)
	}
	// input untouched
	if in[0].Name != "low" {
		t.Fatalf("Rank must not mutate its input: %+v", in)
	}
}

func TestRank_StableOnTies(t *testing.T) {
	in := []domain.ScoredHotel{
		{Hotel: domain.Hotel{Name: "first"}, RecommendScore: 7},
		{Hotel: domain.Hotel{Name: "second"}, RecommendScore: 7},
		{Hotel: domain.Hotel{Name: "third"}, RecommendScore: 7},
	}
	out := recommend.Rank(in, 10)
	if out[0].Name != "first" || out[1].Name != "second" || out[2].Name != "third" {
		t.Fatalf("ties must keep input order: %+v", out)
	}
}

func TestRank_ShortAndEmptyInput(t *testing.T) {
	in := []domain.ScoredHotel{{Hotel: domain.Hotel{Name: "only"}, RecommendScore: 2}}
	if out := recommend.Rank(in, 5); len(out) != 1 {
		t.Fatalf("fewer than n candidates come back whole: %+v", out)
	}
	if out := recommend.Rank(nil, 5); len(out) != 0 {
		t.Fatalf("empty input yields empty output: %+v", out)
	}
	// n<=0 falls back to the default
	many := make([]domain.ScoredHotel, 6)
	if out := recommend.Rank(many, 0); len(out) != recommend.DefaultTopN {
		t.Fatalf("default top-n not applied: %d", len(out))
	}
}
