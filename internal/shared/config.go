package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	HotelsCSV   string
	TopN        int
	ChatRPS     int
	Workers     int
	SessionTTL  time.Duration
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		MySQLDSN:    env("MYSQL_DSN", ""),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisDB:     atoi("REDIS_DB", 0),
		RedisPass:   env("REDIS_PASSWORD", ""),
		HotelsCSV:   env("HOTELS_CSV", "data/hotels.csv"),
		TopN:        atoi("RECOMMEND_TOP_N", 3),
		ChatRPS:     atoi("CHAT_RPS", 5),
		Workers:     atoi("IMPORT_WORKERS", 8),
		SessionTTL:  time.Duration(atoi("SESSION_TTL_SECONDS", 1800)) * time.Second,
	}
	if c.MySQLDSN == "" {
		log.Debug().Msg("MYSQL_DSN is empty; serving from the CSV table")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
