package domain

// Preference is one user intent snapshot, built fresh per chat turn or
// filter request and immutable for the scoring pass that consumes it.
// Absent fields mean "unconstrained", never "reject all"; MinStars 0 is
// explicitly the wildcard.
type Preference struct {
	City     *string          `json:"city,omitempty"`
	Budget   *float64         `json:"budget,omitempty"`
	MinStars int              `json:"min_stars"`
	Features map[Amenity]bool `json:"features,omitempty"`
	RoomSize string           `json:"size,omitempty"` // small|medium|large, "" = no constraint

	// Text is the free-text fragment the user typed; Query is the secondary
	// query text. Text-derived bonuses read the concatenation of both except
	// where a rule is pinned to Text alone.
	Text  string `json:"text,omitempty"`
	Query string `json:"text_query,omitempty"`
}

// Wants reports whether the amenity was explicitly requested.
func (p Preference) Wants(a Amenity) bool { return p.Features[a] }

// Sufficient reports whether the preference carries at least one real
// constraint. An insufficient preference signals "ask a clarifying
// question", not "search with no constraints".
func (p Preference) Sufficient() bool {
	if p.City != nil && *p.City != "" {
		return true
	}
	if p.Budget != nil && *p.Budget > 0 {
		return true
	}
	if p.MinStars > 0 {
		return true
	}
	return len(p.Features) > 0
}
