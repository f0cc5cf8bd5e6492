package recommend

import (
	"sort"

	"hotel_recs/internal/domain"
)

// DefaultTopN hotels are returned when the caller does not ask for more.
const DefaultTopN = 3

// Rank orders candidates by score descending and truncates to the first n.
// The sort is stable on purpose: the additive model produces exact ties,
// and tied candidates must keep their table order. A short or empty input
// comes back whole, never an error.
func Rank(scored []domain.ScoredHotel, n int) []domain.ScoredHotel {
	if n <= 0 {
		n = DefaultTopN
	}
	out := make([]domain.ScoredHotel, len(scored))
	copy(out, scored)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RecommendScore > out[j].RecommendScore
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
