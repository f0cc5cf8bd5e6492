package recommend

import "hotel_recs/internal/domain"

/********** keyword registries (single source of truth) **********/

// cityAlias pairs are ordered: the first alias found in the lowered text
// wins, so longer/diacritic forms come before their short forms.
type cityAlias struct {
	alias string
	city  string
}

var cityAliases = []cityAlias{
	{"hanoi", "Hanoi"}, {"hà nội", "Hanoi"}, {"hn", "Hanoi"}, {"thủ đô", "Hanoi"}, {"ha noi", "Hanoi"},
	{"da nang", "Da Nang"}, {"đà nẵng", "Da Nang"}, {"dn", "Da Nang"},
	{"ho chi minh", "Ho Chi Minh City"}, {"sài gòn", "Ho Chi Minh City"}, {"saigon", "Ho Chi Minh City"},
	{"hcm", "Ho Chi Minh City"}, {"tp hcm", "Ho Chi Minh City"}, {"tphcm", "Ho Chi Minh City"},
	{"nha trang", "Nha Trang"}, {"nt", "Nha Trang"},
	{"đà lạt", "Da Lat"}, {"dalat", "Da Lat"}, {"da lat", "Da Lat"},
	{"phú quốc", "Phu Quoc"}, {"phu quoc", "Phu Quoc"},
	{"hội an", "Hoi An"}, {"hoi an", "Hoi An"},
	{"vũng tàu", "Vung Tau"}, {"vung tau", "Vung Tau"},
	{"quy nhơn", "Quy Nhon"}, {"quy nhon", "Quy Nhon"},
}

// featureKeywords maps each amenity column to its bilingual trigger words.
// Matching is case-insensitive and substring-based, not word-boundary.
var featureKeywords = map[domain.Amenity][]string{
	domain.AmenityPool:   {"hồ bơi", "bể bơi", "pool", "bơi lội", "swimming"},
	domain.AmenityBuffet: {"buffet", "buffet sáng", "ăn sáng", "bữa sáng", "breakfast"},
	domain.AmenityGym:    {"gym", "phòng gym", "thể hình", "tập thể dục", "fitness"},
	domain.AmenitySpa:    {"spa", "massage", "xông hơi", "thư giãn"},
	domain.AmenitySea:    {"biển", "gần biển", "view biển", "bãi biển", "biển đẹp", "sea", "beach"},
	domain.AmenityView:   {"view", "cảnh đẹp", "tầm nhìn", "view thành phố", "city view"},
}

// Budget tiers recognized when no numeric pattern matches.
var (
	cheapTierWords  = []string{"rẻ", "giá thấp", "tiết kiệm", "bình dân"}
	midTierWords    = []string{"tầm trung", "vừa phải", "trung bình"}
	luxuryTierWords = []string{"cao cấp", "sang", "đắt"}
)

const (
	cheapTierBudget  = 1_000_000
	midTierBudget    = 3_000_000
	luxuryTierBudget = 8_000_000
)

// Phrases meaning "any star count is fine"; they map to the explicit
// wildcard MinStars=0 rather than falling through the digit scan.
var anyStarsPhrases = []string{"bao nhiêu sao cũng được", "không quan trọng sao", "tùy", "sao cũng được"}

// hotelIntentKeywords flag a message as a hotel request even before any
// concrete constraint is parsed out of it.
var hotelIntentKeywords = []string{"khách sạn", "hotel", "ks", "đặt phòng", "tìm", "tìm kiếm", "nghỉ", "ở"}

/********** scoring tables **********/

// amenityWeights is the additive bonus for a requested amenity the
// candidate actually has. A requested amenity the candidate lacks costs a
// flat 2 points; it is a penalty, not an exclusion, so near-matches still
// rank. Evaluated in domain.Amenities order.
var amenityWeights = map[domain.Amenity]float64{
	domain.AmenityPool:   8,
	domain.AmenityBuffet: 5,
	domain.AmenityGym:    4,
	domain.AmenitySpa:    4,
	domain.AmenitySea:    6,
	domain.AmenityView:   3,
}

const amenityMissPenalty = -2

// aspectGroup ties a named aspect to the review keywords that count for
// it. Each keyword found in a candidate's own review adds 6 points once
// the group is triggered by the request text.
type aspectGroup struct {
	name     string
	keywords []string
}

var aspectGroups = []aspectGroup{
	{"biển đẹp", []string{"biển đẹp", "view biển tuyệt", "bãi biển đẹp"}},
	{"dịch vụ tốt", []string{"dịch vụ tốt", "nhân viên thân thiện", "phục vụ chu đáo"}},
	{"yên tĩnh", []string{"yên tĩnh", "thanh bình", "tĩnh lặng"}},
	{"view đẹp", []string{"view đẹp", "cảnh đẹp", "tầm nhìn đẹp"}},
}

const aspectKeywordBonus = 6
