package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_recs/internal/domain"
	"hotel_recs/internal/recommend"
)

// Chat stages. A conversation moves greeting -> awaiting_request ->
// follow_up and ends when the user declines further searches.
const (
	StageGreeting        = "greeting"
	StageAwaitingRequest = "awaiting_request"
	StageFollowUp        = "follow_up"
	StageEnd             = "end"
)

var (
	refusalKeywords = []string{"không", "ko", "thôi", "khong", "k cần", "không cần", "đủ rồi", "enough", "no"}
	resetKeywords   = []string{"tìm lại", "khác", "reset", "mới"}
)

// Session is the per-conversation snapshot persisted between turns.
type Session struct {
	Stage         string               `json:"stage"`
	Preferences   domain.Preference    `json:"preferences"`
	CurrentHotels []domain.ScoredHotel `json:"current_hotels,omitempty"`
}

// ChatReply is one assistant turn.
type ChatReply struct {
	Response    string               `json:"response"`
	Stage       string               `json:"stage"`
	Hotels      []domain.ScoredHotel `json:"hotels,omitempty"`
	HasResults  bool                 `json:"has_results"`
	Explanation string               `json:"explanation,omitempty"`
}

// ChatEngine drives the rule-based hotel chat. Sessions live in the store
// under chat:<id>; a store failure degrades to a stateless turn rather
// than failing the conversation.
type ChatEngine struct {
	rec        *RecommendService
	sessions   domain.SessionStore
	sessionTTL time.Duration
}

func NewChatEngine(rec *RecommendService, sessions domain.SessionStore, ttl time.Duration) *ChatEngine {
	return &ChatEngine{rec: rec, sessions: sessions, sessionTTL: ttl}
}

func sessionKey(id string) string { return "chat:" + id }

// Handle processes one user message and returns the assistant turn.
func (e *ChatEngine) Handle(ctx context.Context, sessionID, message string) (ChatReply, error) {
	var sess Session
	if ok, err := e.sessions.Get(ctx, sessionKey(sessionID), &sess); err != nil {
		log.Warn().Err(err).Str("session", sessionID).Msg("session load failed; starting fresh")
	} else if !ok {
		sess = Session{Stage: StageGreeting}
	}
	if sess.Stage == "" || sess.Stage == StageEnd {
		sess.Stage = StageGreeting
	}

	reply, err := e.turn(ctx, &sess, message)
	if err != nil {
		return ChatReply{}, err
	}

	sess.Stage = reply.Stage
	if err := e.sessions.Set(ctx, sessionKey(sessionID), sess, int(e.sessionTTL.Seconds())); err != nil {
		log.Warn().Err(err).Str("session", sessionID).Msg("session save failed")
	}
	return reply, nil
}

func (e *ChatEngine) turn(ctx context.Context, sess *Session, message string) (ChatReply, error) {
	low := strings.ToLower(message)

	// A refusal after results ends the conversation.
	if sess.Stage == StageFollowUp && containsAnyKeyword(low, refusalKeywords) {
		sess.Preferences = domain.Preference{}
		sess.CurrentHotels = nil
		return ChatReply{
			Response: "Cảm ơn du khách đã sử dụng dịch vụ của chúng tôi! 😊✨\nNếu có nhu cầu đặt phòng hoặc tư vấn thêm, hãy quay lại nhé!",
			Stage:    StageEnd,
		}, nil
	}

	// A sufficiently constrained request triggers a search from any stage.
	pref := recommend.ExtractPreference(message)
	if recommend.IsHotelRequest(message) && pref.Sufficient() {
		return e.recommendTurn(ctx, sess, pref)
	}

	switch sess.Stage {
	case StageGreeting:
		return ChatReply{
			Response: "Xin chào du khách! 👋 Hãy cho tôi biết bạn muốn tìm khách sạn như thế nào? (ví dụ: 'Khách sạn ở Đà Nẵng có hồ bơi', 'Phòng giá rẻ ở Hà Nội', 'Khách sạn 5 sao có buffet')",
			Stage:    StageAwaitingRequest,
		}, nil

	case StageFollowUp:
		if containsAnyKeyword(low, resetKeywords) {
			sess.Preferences = domain.Preference{}
			sess.CurrentHotels = nil
			return ChatReply{
				Response: "OK! Hãy cho tôi biết bạn muốn tìm khách sạn như thế nào?",
				Stage:    StageAwaitingRequest,
			}, nil
		}
		return ChatReply{
			Response: "Bạn muốn tìm kiếm với tiêu chí gì khác? (ví dụ: thêm hồ bơi, đổi thành phố, giá cả khác...)",
			Stage:    StageFollowUp,
		}, nil

	default: // awaiting_request and anything unexpected
		return ChatReply{
			Response: "Bạn có thể nói rõ hơn về yêu cầu được không? Ví dụ:\n• 'Khách sạn ở Hà Nội có hồ bơi'\n• 'Phòng giá dưới 2 triệu'\n• 'Khách sạn 4 sao ở Đà Nẵng'",
			Stage:    StageAwaitingRequest,
		}, nil
	}
}

func (e *ChatEngine) recommendTurn(ctx context.Context, sess *Session, pref domain.Preference) (ChatReply, error) {
	res, err := e.rec.Recommend(ctx, pref)
	if err != nil {
		return ChatReply{}, err
	}

	sess.Preferences = pref
	sess.CurrentHotels = res.Hotels

	return ChatReply{
		Response:    renderHotels(res.Hotels),
		Stage:       StageFollowUp,
		Hotels:      res.Hotels,
		HasResults:  res.HasResults,
		Explanation: res.Explanation,
	}, nil
}

// renderHotels formats the ranked hotels as a chat message.
func renderHotels(hotels []domain.ScoredHotel) string {
	if len(hotels) == 0 {
		return "🔍 Không tìm thấy khách sạn phù hợp. Hãy thử điều chỉnh tiêu chí tìm kiếm hoặc mở rộng ngân sách nhé!"
	}

	var b strings.Builder
	b.WriteString("**Mình đã tìm thấy các khách sạn phù hợp cho bạn:**\n\n")
	for i, h := range hotels {
		fmt.Fprintf(&b, "**%s**\n", h.Name)
		fmt.Fprintf(&b, "⭐ %d sao | 💰 %s VND/đêm\n", h.Stars, formatVND(h.Price))
		fmt.Fprintf(&b, "📍 %s | ⭐ %.1f/5 | 🛏️ %s phòng\n", h.City, h.Rating, h.Status())
		if labels := amenityLabels(h.Hotel); len(labels) > 0 {
			fmt.Fprintf(&b, "🎯 %s\n", strings.Join(labels, ", "))
		}
		if i < len(hotels)-1 {
			b.WriteString("\n" + strings.Repeat("─", 40) + "\n\n")
		}
	}
	b.WriteString("\n✨ Chúc bạn có chuyến đi thật vui!\n\nBạn muốn tìm kiếm với tiêu chí khác không ạ?")
	return b.String()
}

func amenityLabels(h domain.Hotel) []string {
	var out []string
	if h.Pool {
		out = append(out, "🏊 Hồ bơi")
	}
	if h.Buffet {
		out = append(out, "🍽️ Buffet sáng")
	}
	if h.Gym {
		out = append(out, "💪 Gym")
	}
	if h.Spa {
		out = append(out, "💆 Spa")
	}
	if h.Sea {
		out = append(out, "🌊 View biển")
	}
	if h.View {
		out = append(out, "🏞️ View đẹp")
	}
	return out
}

// formatVND renders a price with dot thousands separators (1.500.000).
func formatVND(price float64) string {
	n := int64(price)
	if n < 0 {
		n = 0
	}
	s := fmt.Sprintf("%d", n)
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	return strings.Join(parts, ".")
}

func containsAnyKeyword(s string, kws []string) bool {
	for _, kw := range kws {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
