package recommend

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"hotel_recs/internal/domain"
)

// Budget phrasing: an anchor word followed by a number and an optional
// unit, or a bare number with a unit. Units: k = thousand, tr/triệu = million.
var (
	anchoredBudgetRe = regexp.MustCompile(`(?:dưới|khoảng|tầm|giá)\s*(\d+)\s*(triệu|tr|k)?`)
	unitBudgetRe     = regexp.MustCompile(`(\d+)\s*(triệu|tr|k)`)
	loneStarDigitRe  = regexp.MustCompile(`[1-5]`)
)

// ExtractPreference parses a free-form chat message into a Preference.
// Every field falls back to "unconstrained" independently; unparseable
// input never produces an error.
func ExtractPreference(text string) domain.Preference {
	return domain.Preference{
		City:     ParseCity(text),
		Budget:   ParseBudget(text),
		MinStars: ParseStars(text),
		Features: ParseFeatures(text),
		Text:     text,
	}
}

// IsHotelRequest reports whether the message looks like a hotel search at
// all, either by intent keyword or because any constraint parsed out of it.
func IsHotelRequest(text string) bool {
	low := strings.ToLower(text)
	for _, kw := range hotelIntentKeywords {
		if strings.Contains(low, kw) {
			return true
		}
	}
	return ExtractPreference(text).Sufficient()
}

// ParseCity resolves the first city alias found in the lowered text to its
// canonical name. No alias -> nil.
func ParseCity(text string) *string {
	low := strings.ToLower(text)
	for _, ca := range cityAliases {
		if strings.Contains(low, ca.alias) {
			c := ca.city
			return &c
		}
	}
	return nil
}

// ParseBudget extracts a max price in VND. Numeric patterns win; coarse
// tier keywords are the fallback; otherwise nil (unconstrained).
func ParseBudget(text string) *float64 {
	low := strings.ToLower(text)

	for _, re := range []*regexp.Regexp{anchoredBudgetRe, unitBudgetRe} {
		m := re.FindStringSubmatch(low)
		if m == nil {
			continue
		}
		n, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		switch m[2] {
		case "k":
			n *= 1_000
		case "tr", "triệu":
			n *= 1_000_000
		default:
			// A bare small number like "2" reads as millions; a full amount
			// like "1500000" passes through untouched.
			if n < 1000 {
				n *= 1_000_000
			}
		}
		return &n
	}

	for _, w := range cheapTierWords {
		if strings.Contains(low, w) {
			b := float64(cheapTierBudget)
			return &b
		}
	}
	for _, w := range midTierWords {
		if strings.Contains(low, w) {
			b := float64(midTierBudget)
			return &b
		}
	}
	for _, w := range luxuryTierWords {
		if strings.Contains(low, w) {
			b := float64(luxuryTierBudget)
			return &b
		}
	}
	return nil
}

// ParseStars recognizes "N sao" phrasing (highest N wins), an explicit
// "any star is fine" phrase (wildcard 0), or a lone digit 1-5. Default 0.
func ParseStars(text string) int {
	low := strings.ToLower(text)

	for _, phrase := range anyStarsPhrases {
		if strings.Contains(low, phrase) {
			return 0
		}
	}

	noAsterisk := strings.ReplaceAll(low, "*", "")
	for i := 5; i >= 1; i-- {
		d := strconv.Itoa(i)
		if strings.Contains(low, d+" sao") || strings.Contains(low, d+"-sao") || strings.Contains(noAsterisk, d+" sao") {
			return i
		}
	}

	if m := loneStarDigitRe.FindString(text); m != "" {
		n, _ := strconv.Atoi(m)
		return n
	}
	return 0
}

// ParseFeatures collects every amenity whose keyword list matches the
// lowered text. Iterates the fixed amenity order so results are stable.
func ParseFeatures(text string) map[domain.Amenity]bool {
	low := strings.ToLower(text)
	features := map[domain.Amenity]bool{}
	for _, a := range domain.Amenities {
		for _, kw := range featureKeywords[a] {
			if strings.Contains(low, kw) {
				features[a] = true
				break
			}
		}
	}
	if len(features) == 0 {
		return nil
	}
	return features
}

// Form amenity checkboxes use their own vocabulary; map them onto table
// columns here, at the boundary, so unknown names never reach the filter.
var formAmenityAliases = map[string]domain.Amenity{
	"pool":      domain.AmenityPool,
	"sea":       domain.AmenitySea,
	"breakfast": domain.AmenityBuffet,
	"buffet":    domain.AmenityBuffet,
	"gym":       domain.AmenityGym,
	"spa":       domain.AmenitySpa,
	"view":      domain.AmenityView,
}

// PreferenceFromForm builds a Preference from the structured search form.
// Malformed numbers and unknown amenity names degrade to "unconstrained"
// (the unknown ones with a diagnostic log), matching the chat path policy.
func PreferenceFromForm(location, budget, stars string, amenities []string, size string) domain.Preference {
	p := domain.Preference{RoomSize: strings.ToLower(strings.TrimSpace(size))}

	if c := strings.TrimSpace(location); c != "" {
		p.City = &c
	}
	if b := strings.TrimSpace(budget); b != "" {
		if v, err := strconv.ParseFloat(strings.ReplaceAll(b, ",", ""), 64); err == nil {
			p.Budget = &v
		}
	}
	if s := strings.TrimSpace(stars); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			p.MinStars = v
		}
	}
	for _, name := range amenities {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		a, ok := formAmenityAliases[key]
		if !ok {
			log.Warn().Str("amenity", key).Msg("unknown amenity requested; ignored")
			continue
		}
		if p.Features == nil {
			p.Features = map[domain.Amenity]bool{}
		}
		p.Features[a] = true
	}
	return p
}
