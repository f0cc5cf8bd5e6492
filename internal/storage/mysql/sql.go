package mysql

// Hotels are keyed by name; the importer re-runs against updated CSV
// exports and must converge instead of duplicating rows.
// Note: `view` is reserved; keep it quoted everywhere.
const upsertHotelSQL = "INSERT INTO hotels\n" +
	"  (name, city, price, stars, rating, image_url, buffet, pool, gym, spa, sea, `view`, review, rooms_available, room_size)\n" +
	"VALUES\n" +
	"  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)\n" +
	"ON DUPLICATE KEY UPDATE\n" +
	"  city            = VALUES(city),\n" +
	"  price           = VALUES(price),\n" +
	"  stars           = VALUES(stars),\n" +
	"  rating          = VALUES(rating),\n" +
	"  image_url       = VALUES(image_url),\n" +
	"  buffet          = VALUES(buffet),\n" +
	"  pool            = VALUES(pool),\n" +
	"  gym             = VALUES(gym),\n" +
	"  spa             = VALUES(spa),\n" +
	"  sea             = VALUES(sea),\n" +
	"  `view`          = VALUES(`view`),\n" +
	"  review          = VALUES(review),\n" +
	"  rooms_available = VALUES(rooms_available),\n" +
	"  room_size       = VALUES(room_size),\n" +
	"  updated_at      = CURRENT_TIMESTAMP\n"

const listHotelsSQL = "SELECT\n" +
	"  name, city, price, stars, rating, image_url,\n" +
	"  buffet, pool, gym, spa, sea, `view`,\n" +
	"  review, rooms_available, room_size\n" +
	"FROM hotels\n" +
	"ORDER BY id\n"
