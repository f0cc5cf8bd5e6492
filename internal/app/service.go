package app

import (
	"context"
	"fmt"

	"hotel_recs/internal/adapters/observability"
	"hotel_recs/internal/domain"
	"hotel_recs/internal/recommend"
)

// RecommendService runs scoring passes against a fresh table snapshot. The
// table is reloaded from the source at the start of every pass; record
// counts are small, so the re-parse cost is accepted over a cache and its
// invalidation protocol.
type RecommendService struct {
	source domain.HotelSource
	topN   int
}

func NewRecommendService(src domain.HotelSource, topN int) *RecommendService {
	if topN <= 0 {
		topN = recommend.DefaultTopN
	}
	return &RecommendService{source: src, topN: topN}
}

// Recommend loads the table and runs the filter/score/rank pass. The only
// hard failure is a missing table; an empty result set is a normal outcome.
func (s *RecommendService) Recommend(ctx context.Context, pref domain.Preference) (recommend.Result, error) {
	table, err := s.source.LoadHotels(ctx)
	if err != nil {
		return recommend.Result{}, fmt.Errorf("load hotel table: %w", err)
	}
	res := recommend.Recommend(table, pref, s.topN)
	observability.ObserveRecommendPass(res.HasResults, len(res.Hotels))
	return res, nil
}

// RecommendStrict is the structured-form pass: requested amenities are
// hard constraints, matching the search form's checkbox semantics.
func (s *RecommendService) RecommendStrict(ctx context.Context, pref domain.Preference) (recommend.Result, error) {
	table, err := s.source.LoadHotels(ctx)
	if err != nil {
		return recommend.Result{}, fmt.Errorf("load hotel table: %w", err)
	}
	res := recommend.RecommendStrict(table, pref, s.topN)
	observability.ObserveRecommendPass(res.HasResults, len(res.Hotels))
	return res, nil
}

// Hotels returns the full table for listing pages.
func (s *RecommendService) Hotels(ctx context.Context) ([]domain.Hotel, error) {
	table, err := s.source.LoadHotels(ctx)
	if err != nil {
		return nil, fmt.Errorf("load hotel table: %w", err)
	}
	return table, nil
}

// Cities returns the distinct city names of the table, in table order.
func (s *RecommendService) Cities(ctx context.Context) ([]string, error) {
	table, err := s.source.LoadHotels(ctx)
	if err != nil {
		return nil, fmt.Errorf("load hotel table: %w", err)
	}
	seen := map[string]struct{}{}
	var out []string
	for _, h := range table {
		if h.City == "" {
			continue
		}
		if _, ok := seen[h.City]; ok {
			continue
		}
		seen[h.City] = struct{}{}
		out = append(out, h.City)
	}
	return out, nil
}
