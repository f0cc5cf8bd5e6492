package recommend

import (
	"fmt"
	"strings"

	"hotel_recs/internal/domain"
)

// A rule contributes one trace line and, per candidate, a score delta.
// Trace-only rules (delta nil) explain themselves without moving scores.
// Scoring is a pure fold over the assembled rule list: base score plus the
// sum of deltas, no state mutated across candidates or passes.
type rule struct {
	line  string
	delta func(h domain.Hotel) float64
}

// rulesFor assembles the ordered rule list that fires for this preference.
// The order is a visible contract: the trace mirrors it line for line.
func rulesFor(pref domain.Preference) []rule {
	combined := strings.ToLower(pref.Text) + " " + strings.ToLower(pref.Query)
	userText := strings.ToLower(pref.Text)
	var rules []rule

	// Requested amenities: weight when present, flat penalty when absent.
	for _, a := range domain.Amenities {
		if !pref.Wants(a) {
			continue
		}
		a := a
		w := amenityWeights[a]
		rules = append(rules, rule{
			line: fmt.Sprintf("Ưu tiên khách sạn có %s.", a),
			delta: func(h domain.Hotel) float64 {
				if h.Has(a) {
					return w
				}
				return amenityMissPenalty
			},
		})
	}

	if containsAny(combined, "bao nhiêu sao cũng được", "sao nào cũng được") {
		rules = append(rules, rule{line: "Không yêu cầu số sao cụ thể."})
	}

	if containsAny(combined, "giá rẻ", "rẻ", "giá thấp") {
		rules = append(rules, rule{
			line: "Ưu tiên khách sạn giá rẻ.",
			delta: func(h domain.Hotel) float64 {
				if h.Price <= 0 {
					// zero price would blow up the inverse bonus
					return 0
				}
				return 1_000_000 / h.Price
			},
		})
	}

	if containsAny(combined, "nhiều đánh giá tích cực", "đánh giá tốt") {
		rules = append(rules, rule{
			line:  "Ưu tiên khách sạn có đánh giá cao.",
			delta: func(h domain.Hotel) float64 { return h.Rating * 2 },
		})
	}

	// Aspect groups triggered by the request text score each keyword found
	// in the candidate's own review.
	for _, g := range aspectGroups {
		if !containsAny(combined, g.keywords...) {
			continue
		}
		kws := g.keywords
		rules = append(rules, rule{
			line: fmt.Sprintf("Tìm kiếm khách sạn có '%s' trong đánh giá.", g.name),
			delta: func(h domain.Hotel) float64 {
				review := strings.ToLower(h.Review)
				var d float64
				for _, kw := range kws {
					if strings.Contains(review, kw) {
						d += aspectKeywordBonus
					}
				}
				return d
			},
		})
	}

	// The standalone rules below read the original message only, not the
	// combined text.
	if strings.Contains(userText, "biển") {
		rules = append(rules, rule{
			line: "Tìm kiếm từ khóa 'biển', ưu tiên khách sạn gần biển.",
			delta: func(h domain.Hotel) float64 {
				if h.Sea {
					return 10
				}
				return -3
			},
		})
	}

	if strings.Contains(userText, "yên tĩnh") {
		rules = append(rules, rule{
			line: "Tìm kiếm từ khóa 'yên tĩnh' trong đánh giá.",
			delta: func(h domain.Hotel) float64 {
				if containsAny(strings.ToLower(h.Review), "yên tĩnh", "thoải mái") {
					return 5
				}
				return 0
			},
		})
	}

	if containsAny(userText, "dịch vụ", "thân thiện") {
		rules = append(rules, rule{
			line: "Tìm kiếm từ khóa 'dịch vụ', 'thân thiện' trong đánh giá.",
			delta: func(h domain.Hotel) float64 {
				if containsAny(strings.ToLower(h.Review), "dịch vụ", "thân thiện") {
					return 4
				}
				return 0
			},
		})
	}

	return rules
}

// Score computes the additive score for every candidate and the trace of
// rules that fired, in firing order. Candidates are scored independently;
// there is no cross-candidate normalization and no floor, so scores may go
// negative.
func Score(candidates []domain.Hotel, pref domain.Preference) ([]domain.ScoredHotel, []string) {
	rules := rulesFor(pref)

	trace := make([]string, 0, len(rules))
	for _, r := range rules {
		trace = append(trace, r.line)
	}

	scored := make([]domain.ScoredHotel, 0, len(candidates))
	for _, h := range candidates {
		s := h.Rating * 3
		for _, r := range rules {
			if r.delta != nil {
				s += r.delta(h)
			}
		}
		scored = append(scored, domain.ScoredHotel{Hotel: h, RecommendScore: s})
	}
	return scored, trace
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
