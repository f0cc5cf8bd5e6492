package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"hotel_recs/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// LoadHotels returns the full table in insertion order. An empty table is
// not an error; the scoring pass handles zero candidates itself.
func (r *Repo) LoadHotels(ctx context.Context) ([]domain.Hotel, error) {
	rows, err := r.db.QueryContext(ctx, listHotelsSQL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNoData, err)
	}
	defer rows.Close()

	var out []domain.Hotel
	for rows.Next() {
		var h domain.Hotel
		var city, imageURL, review sql.NullString
		var price, rating, roomSize sql.NullFloat64
		var stars, rooms sql.NullInt64
		if err := rows.Scan(
			&h.Name, &city, &price, &stars, &rating, &imageURL,
			&h.Buffet, &h.Pool, &h.Gym, &h.Spa, &h.Sea, &h.View,
			&review, &rooms, &roomSize,
		); err != nil {
			return nil, err
		}
		h.City = city.String
		h.Price = price.Float64
		h.Stars = int(stars.Int64)
		h.Rating = rating.Float64
		h.ImageURL = imageURL.String
		h.Review = review.String
		h.RoomsAvailable = int(rooms.Int64)
		h.RoomSize = roomSize.Float64
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpsertHotels writes each row individually; imports are small and a
// per-row failure should name the offending hotel.
func (r *Repo) UpsertHotels(ctx context.Context, hotels []domain.Hotel) error {
	for _, h := range hotels {
		if err := r.UpsertHotel(ctx, h); err != nil {
			return fmt.Errorf("upsert %q: %w", h.Name, err)
		}
	}
	return nil
}

func (r *Repo) UpsertHotel(ctx context.Context, h domain.Hotel) error {
	_, err := r.db.ExecContext(ctx, upsertHotelSQL,
		h.Name, h.City, h.Price, h.Stars, h.Rating, h.ImageURL,
		h.Buffet, h.Pool, h.Gym, h.Spa, h.Sea, h.View,
		h.Review, h.RoomsAvailable, h.RoomSize,
	)
	return err
}
