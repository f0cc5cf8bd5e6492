package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "hotel_recs/internal/adapters/http_server"
	"hotel_recs/internal/adapters/observability"
	redisad "hotel_recs/internal/adapters/redis"
	"hotel_recs/internal/app"
	"hotel_recs/internal/domain"
	"hotel_recs/internal/shared"
	"hotel_recs/internal/storage/csvsource"
	mysqlrepo "hotel_recs/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// hotel table: MySQL when a DSN is configured, else the CSV file
	var source domain.HotelSource
	if cfg.MySQLDSN != "" {
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.Ping(); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		log.Info().Msg("database connection ok")
		source = mysqlrepo.New(db)
	} else {
		log.Info().Str("path", cfg.HotelsCSV).Msg("serving hotels from CSV")
		source = csvsource.New(cfg.HotelsCSV)
	}

	// deps
	rec := app.NewRecommendService(source, cfg.TopN)
	sessions := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	chat := app.NewChatEngine(rec, sessions, cfg.SessionTTL)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{R: rec, C: chat, ChatRPS: cfg.ChatRPS})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
