package app_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"hotel_recs/internal/app"
	"hotel_recs/internal/domain"
)

// ---- fakes ----

type fakeSource struct {
	table []domain.Hotel
	err   error
}

func (f *fakeSource) LoadHotels(ctx context.Context) ([]domain.Hotel, error) {
	return f.table, f.err
}

type fakeSessions struct {
	store map[string]any
}

func (c *fakeSessions) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.store == nil {
		return false, nil
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	if d, ok2 := dst.(*app.Session); ok2 {
		*d = v.(app.Session)
	}
	return true, nil
}

func (c *fakeSessions) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}

func (c *fakeSessions) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	return nil
}

func testTable() []domain.Hotel {
	return []domain.Hotel{
		{Name: "A", City: "Hanoi", Price: 1_000_000, Stars: 4, Rating: 4.5, Sea: true},
		{Name: "B", City: "Hanoi", Price: 2_000_000, Stars: 3, Rating: 4.0, Pool: true},
		{Name: "C", City: "Da Nang", Price: 3_000_000, Stars: 5, Rating: 4.8, Pool: true, Spa: true},
	}
}

// ---- tests ----

func TestRecommendService_RanksAndExplains(t *testing.T) {
	svc := app.NewRecommendService(&fakeSource{table: testTable()}, 3)

	pref := domain.Preference{Features: map[domain.Amenity]bool{domain.AmenityPool: true}}
	res, err := svc.Recommend(context.Background(), pref)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !res.HasResults || len(res.Hotels) != 3 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Hotels[0].Name != "C" {
		t.Fatalf("expected C first (pool+base), got %s", res.Hotels[0].Name)
	}
	if res.Explanation == "" {
		t.Fatal("expected an explanation")
	}
}

func TestRecommendService_SourceFailureIsHard(t *testing.T) {
	svc := app.NewRecommendService(&fakeSource{err: domain.ErrNoData}, 3)
	_, err := svc.Recommend(context.Background(), domain.Preference{})
	if err == nil {
		t.Fatal("missing table must surface as an error")
	}
}

func TestRecommendService_Cities(t *testing.T) {
	svc := app.NewRecommendService(&fakeSource{table: testTable()}, 3)
	cities, err := svc.Cities(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(cities) != 2 || cities[0] != "Hanoi" || cities[1] != "Da Nang" {
		t.Fatalf("unexpected cities: %v", cities)
	}
}

func TestChat_GreetingThenSearchThenRefusal(t *testing.T) {
	svc := app.NewRecommendService(&fakeSource{table: testTable()}, 3)
	eng := app.NewChatEngine(svc, &fakeSessions{}, 10*time.Minute)
	ctx := context.Background()

	// First contact: greeting, no search yet.
	r1, err := eng.Handle(ctx, "u1", "hello")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if r1.Stage != app.StageAwaitingRequest || r1.HasResults {
		t.Fatalf("unexpected first turn: %+v", r1)
	}

	// Concrete request triggers a recommendation.
	r2, err := eng.Handle(ctx, "u1", "khách sạn ở Hà Nội có hồ bơi")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if r2.Stage != app.StageFollowUp || !r2.HasResults {
		t.Fatalf("expected results in follow_up: %+v", r2)
	}
	if len(r2.Hotels) == 0 || !strings.Contains(r2.Response, r2.Hotels[0].Name) {
		t.Fatalf("response should render the hotels: %q", r2.Response)
	}

	// Refusal in follow_up ends the conversation.
	r3, err := eng.Handle(ctx, "u1", "thôi đủ rồi")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if r3.Stage != app.StageEnd {
		t.Fatalf("expected end stage: %+v", r3)
	}
}

func TestChat_ResetClearsPreferences(t *testing.T) {
	svc := app.NewRecommendService(&fakeSource{table: testTable()}, 3)
	sessions := &fakeSessions{}
	eng := app.NewChatEngine(svc, sessions, 10*time.Minute)
	ctx := context.Background()

	if _, err := eng.Handle(ctx, "u2", "khách sạn ở Đà Nẵng có spa"); err != nil {
		t.Fatalf("err: %v", err)
	}
	r, err := eng.Handle(ctx, "u2", "tìm lại")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if r.Stage != app.StageAwaitingRequest {
		t.Fatalf("reset should return to awaiting_request: %+v", r)
	}
	sess := sessions.store["chat:u2"].(app.Session)
	if sess.Preferences.Sufficient() || len(sess.CurrentHotels) != 0 {
		t.Fatalf("reset should clear the session: %+v", sess)
	}
}

func TestChat_InsufficientRequestAsksForClarification(t *testing.T) {
	svc := app.NewRecommendService(&fakeSource{table: testTable()}, 3)
	eng := app.NewChatEngine(svc, &fakeSessions{}, 10*time.Minute)
	ctx := context.Background()

	if _, err := eng.Handle(ctx, "u3", "hi"); err != nil {
		t.Fatalf("err: %v", err)
	}
	// "tìm" flags hotel intent but carries no constraint: clarify, don't search.
	r, err := eng.Handle(ctx, "u3", "tìm giúp mình với")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if r.HasResults || len(r.Hotels) != 0 {
		t.Fatalf("insufficient preference must not search: %+v", r)
	}
	if r.Stage != app.StageAwaitingRequest {
		t.Fatalf("expected clarification stage: %+v", r)
	}
}

func TestChat_EmptyResultStillAnswers(t *testing.T) {
	svc := app.NewRecommendService(&fakeSource{table: testTable()}, 3)
	eng := app.NewChatEngine(svc, &fakeSessions{}, 10*time.Minute)

	r, err := eng.Handle(context.Background(), "u4", "khách sạn ở quy nhơn có hồ bơi")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if r.HasResults {
		t.Fatalf("no Quy Nhon rows in the table: %+v", r)
	}
	if !strings.Contains(r.Response, "Không tìm thấy khách sạn phù hợp") {
		t.Fatalf("expected the no-results message: %q", r.Response)
	}
}
