package domain

import "errors"

// ErrNoData is the single hard failure of the core: the hotel table itself
// is missing or unreadable. Data-quality problems inside rows never error;
// they degrade field by field.
var ErrNoData = errors.New("hotel data not available")
