package domain

// Amenity names the boolean columns of the hotel table that can be
// requested as hard constraints or scored as soft preferences.
type Amenity string

const (
	AmenityPool   Amenity = "pool"
	AmenityBuffet Amenity = "buffet"
	AmenityGym    Amenity = "gym"
	AmenitySpa    Amenity = "spa"
	AmenitySea    Amenity = "sea"
	AmenityView   Amenity = "view"
)

// Amenities lists every known amenity column in a fixed order. Preference
// keys outside this set are dropped at the boundary, never deep in a filter.
var Amenities = []Amenity{AmenityPool, AmenityBuffet, AmenityGym, AmenitySpa, AmenitySea, AmenityView}

// KnownAmenity reports whether name is one of the filterable columns.
func KnownAmenity(name string) bool {
	for _, a := range Amenities {
		if string(a) == name {
			return true
		}
	}
	return false
}

// Hotel is one row of the hotel table. Name is the join key used by the
// rest of the system. Malformed numeric or boolean source values are
// coerced to zero values at ingestion; a bad row never aborts a pass.
type Hotel struct {
	Name   string  `json:"name"`
	City   string  `json:"city"`
	Price  float64 `json:"price"`
	Stars  int     `json:"stars"`
	Rating float64 `json:"rating"`
	Review string  `json:"review,omitempty"`

	Pool   bool `json:"pool"`
	Buffet bool `json:"buffet"`
	Gym    bool `json:"gym"`
	Spa    bool `json:"spa"`
	Sea    bool `json:"sea"`
	View   bool `json:"view"`

	ImageURL       string  `json:"image_url,omitempty"`
	RoomsAvailable int     `json:"rooms_available"`
	RoomSize       float64 `json:"size,omitempty"`
}

// Has reports whether the hotel carries the named amenity.
func (h Hotel) Has(a Amenity) bool {
	switch a {
	case AmenityPool:
		return h.Pool
	case AmenityBuffet:
		return h.Buffet
	case AmenityGym:
		return h.Gym
	case AmenitySpa:
		return h.Spa
	case AmenitySea:
		return h.Sea
	case AmenityView:
		return h.View
	}
	return false
}

// Status derives the availability label shown next to each hotel.
func (h Hotel) Status() string {
	if h.RoomsAvailable > 0 {
		return "còn"
	}
	return "hết"
}

// ScoredHotel annotates a table row with its recommendation score. The row
// itself is kept by value; the table is never mutated in place.
type ScoredHotel struct {
	Hotel
	RecommendScore float64 `json:"recommend_score"`
}
