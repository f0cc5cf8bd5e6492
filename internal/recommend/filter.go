package recommend

import (
	"strings"

	"hotel_recs/internal/domain"
)

// Hard filters exclude candidates outright. Each one is a no-op for an
// unset preference field; they compose by intersection and are logically
// commutative, so the application order below is just the conventional one.

// FilterByCity keeps rows whose city equals the preference city after
// lowering and trimming both sides.
func FilterByCity(table []domain.Hotel, city string) []domain.Hotel {
	want := strings.ToLower(strings.TrimSpace(city))
	if want == "" {
		return table
	}
	out := make([]domain.Hotel, 0, len(table))
	for _, h := range table {
		if strings.ToLower(strings.TrimSpace(h.City)) == want {
			out = append(out, h)
		}
	}
	return out
}

// FilterByBudget keeps rows with price <= maxPrice. A non-positive budget
// is the wildcard. Rows whose price failed to parse carry 0 and pass; a
// malformed price never raises.
func FilterByBudget(table []domain.Hotel, maxPrice float64) []domain.Hotel {
	if maxPrice <= 0 {
		return table
	}
	out := make([]domain.Hotel, 0, len(table))
	for _, h := range table {
		if h.Price <= maxPrice {
			out = append(out, h)
		}
	}
	return out
}

// FilterByStars keeps rows with stars >= minStars; 0 is the wildcard.
func FilterByStars(table []domain.Hotel, minStars int) []domain.Hotel {
	if minStars <= 0 {
		return table
	}
	out := make([]domain.Hotel, 0, len(table))
	for _, h := range table {
		if h.Stars >= minStars {
			out = append(out, h)
		}
	}
	return out
}

// FilterByFeatures keeps rows carrying every requested amenity. The
// feature set is typed, so unknown column names cannot reach this point;
// they are dropped (and logged) at the preference boundary.
func FilterByFeatures(table []domain.Hotel, features map[domain.Amenity]bool) []domain.Hotel {
	if len(features) == 0 {
		return table
	}
	out := make([]domain.Hotel, 0, len(table))
	for _, h := range table {
		keep := true
		for _, a := range domain.Amenities {
			if features[a] && !h.Has(a) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, h)
		}
	}
	return out
}

// FilterByRoomSize keeps rows whose room size falls in the named band:
// small < 25, medium 25-40, large > 40 (m²). Unknown band names pass
// everything through.
func FilterByRoomSize(table []domain.Hotel, size string) []domain.Hotel {
	if size == "" {
		return table
	}
	out := make([]domain.Hotel, 0, len(table))
	for _, h := range table {
		s := h.RoomSize
		var ok bool
		switch size {
		case "small":
			ok = s < 25
		case "medium":
			ok = s >= 25 && s <= 40
		case "large":
			ok = s > 40
		default:
			ok = true
		}
		if ok {
			out = append(out, h)
		}
	}
	return out
}

// Filter applies every hard constraint of the preference. An empty result
// is a valid terminal state, not an error.
func Filter(table []domain.Hotel, pref domain.Preference) []domain.Hotel {
	out := table
	if pref.City != nil {
		out = FilterByCity(out, *pref.City)
	}
	if pref.Budget != nil {
		out = FilterByBudget(out, *pref.Budget)
	}
	out = FilterByStars(out, pref.MinStars)
	out = FilterByFeatures(out, pref.Features)
	out = FilterByRoomSize(out, pref.RoomSize)
	return out
}
