// Command importer loads the hotel CSV into MySQL so the API can serve
// the table from the database instead of the file.
package main

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotel_recs/internal/adapters/observability"
	"hotel_recs/internal/shared"
	"hotel_recs/internal/storage/csvsource"
	mysqlrepo "hotel_recs/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("csv", cfg.HotelsCSV).
		Int("workers", cfg.Workers).
		Msg("importer starting")

	if cfg.MySQLDSN == "" {
		log.Fatal().Msg("MYSQL_DSN is required for the importer")
	}
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	hotels, err := csvsource.New(cfg.HotelsCSV).LoadHotels(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("load hotel CSV failed")
	}
	if len(hotels) == 0 {
		log.Warn().Msg("CSV contains no hotels; nothing to import")
		return
	}

	repo := mysqlrepo.New(db)
	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	for _, h := range hotels {
		h := h

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)

			if err := repo.UpsertHotel(ctx, h); err != nil {
				log.Warn().Str("hotel", h.Name).Err(err).Msg("import failed")
				return
			}
			log.Info().Str("hotel", h.Name).Msg("import ok")
		}()
	}

	wg.Wait()
	log.Info().Int("hotels", len(hotels)).Msg("import completed")
}
