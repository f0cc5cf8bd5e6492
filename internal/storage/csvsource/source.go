// Package csvsource loads the hotel table from a CSV file. The file is
// re-read on every load so edits to it show up on the next request without
// a restart, matching how the data is maintained by hand.
package csvsource

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"hotel_recs/internal/domain"
)

type Source struct{ path string }

func New(path string) *Source { return &Source{path: path} }

// LoadHotels parses the whole file. A missing or unreadable file is the
// only hard failure; malformed cells coerce to zero values row by row.
func (s *Source) LoadHotels(ctx context.Context) ([]domain.Hotel, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", domain.ErrNoData, s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // rows get padded/edited by hand; tolerate ragged widths

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", domain.ErrNoData, s.path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	cols := headerIndex(records[0])
	if _, ok := cols["name"]; !ok {
		return nil, fmt.Errorf("%w: %s has no name column", domain.ErrNoData, s.path)
	}

	hotels := make([]domain.Hotel, 0, len(records)-1)
	for _, rec := range records[1:] {
		cell := func(col string) string {
			i, ok := cols[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		h := domain.Hotel{
			Name:           cell("name"),
			City:           cell("city"),
			Price:          parseFloat(cell("price")),
			Stars:          int(parseFloat(cell("stars"))),
			Rating:         parseFloat(cell("rating")),
			Review:         cell("review"),
			Pool:           parseBool(cell("pool")),
			Buffet:         parseBool(cell("buffet")),
			Gym:            parseBool(cell("gym")),
			Spa:            parseBool(cell("spa")),
			Sea:            parseBool(cell("sea")),
			View:           parseBool(cell("view")),
			ImageURL:       cell("image_url"),
			RoomsAvailable: int(parseFloat(cell("rooms_available"))),
			RoomSize:       parseFloat(cell("size")),
		}
		if h.Name == "" {
			continue
		}
		hotels = append(hotels, h)
	}

	log.Debug().Int("hotels", len(hotels)).Str("path", s.path).Msg("hotel table loaded")
	return hotels, nil
}

// headerIndex maps trimmed, lowered column names to their position. The
// first cell may carry a UTF-8 BOM when the file was saved from a
// spreadsheet; strip it before matching.
func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimPrefix(name, "\ufeff")
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return cols
}

// parseFloat accepts "1,500,000" and "5.0" style cells. Unparseable -> 0.
func parseFloat(s string) float64 {
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, ".0")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "1", "yes", "có", "co", "x":
		return true
	}
	return false
}
