package recommend

import (
	"fmt"
	"math"
	"strings"

	"hotel_recs/internal/domain"
)

// Fixed trace sentences. The opening/closing pair frames every pass; the
// no-results sentence is the terminal explanation for an empty candidate
// set.
const (
	traceOpening   = "Bắt đầu quá trình xếp hạng:"
	traceClosing   = "Hoàn tất! Đã sắp xếp kết quả."
	traceNoResults = "Không tìm thấy khách sạn phù hợp."
)

// Result is what the core hands back to its callers: the ranked rows with
// display-rounded scores, the joined explanation, and an explicit
// has-results signal so "zero matches" is distinguishable from failure.
type Result struct {
	Hotels      []domain.ScoredHotel `json:"hotels"`
	Explanation string               `json:"explanation"`
	HasResults  bool                 `json:"has_results"`
}

// Recommend runs the full pass: hard-filter the table, score the
// survivors, rank, truncate to topN. Pure function of (table, pref); safe
// for concurrent passes over the same loaded table.
//
// Requested amenities are soft here: a candidate lacking one pays the
// scoring penalty instead of being excluded, so near-matches still rank.
// RecommendStrict is the variant where they are hard constraints.
func Recommend(table []domain.Hotel, pref domain.Preference, topN int) Result {
	trace := []string{traceOpening}

	candidates := table
	if pref.City != nil {
		candidates = FilterByCity(candidates, *pref.City)
	}
	if pref.Budget != nil {
		candidates = FilterByBudget(candidates, *pref.Budget)
	}
	candidates = FilterByStars(candidates, pref.MinStars)
	candidates = FilterByRoomSize(candidates, pref.RoomSize)
	if pref.MinStars > 0 {
		trace = append(trace, fmt.Sprintf("Loại bỏ các khách sạn dưới %d sao.", pref.MinStars))
	}

	if len(candidates) == 0 {
		trace = append(trace, traceNoResults)
		return Result{Explanation: strings.Join(trace, " ")}
	}

	scored, scoreTrace := Score(candidates, pref)
	trace = append(trace, scoreTrace...)

	ranked := Rank(scored, topN)
	trace = append(trace, traceClosing)

	for i := range ranked {
		ranked[i].RecommendScore = round3(ranked[i].RecommendScore)
	}

	return Result{
		Hotels:      ranked,
		Explanation: strings.Join(trace, " "),
		HasResults:  true,
	}
}

// RecommendStrict is the structured-search variant: requested amenities
// are required columns, the checkbox semantics of the search form.
func RecommendStrict(table []domain.Hotel, pref domain.Preference, topN int) Result {
	return Recommend(FilterByFeatures(table, pref.Features), pref, topN)
}

// round3 rounds for display; scoring itself keeps full precision.
func round3(f float64) float64 { return math.Round(f*1000) / 1000 }
