package domain

import "context"

// HotelSource hands the core a fresh table snapshot. Implementations load
// from persistent storage on every call; there is no caching layer in front
// of a scoring pass, so staleness windows do not apply.
type HotelSource interface {
	LoadHotels(ctx context.Context) ([]Hotel, error)
}

// HotelRepository is the write side used by the importer.
type HotelRepository interface {
	HotelSource
	UpsertHotels(ctx context.Context, hs []Hotel) error
}

// SessionStore keeps chat session snapshots between turns.
type SessionStore interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
