//go:build integration || !unit

package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	server "hotel_recs/internal/adapters/http_server"
	redisad "hotel_recs/internal/adapters/redis"
	"hotel_recs/internal/app"
	"hotel_recs/internal/domain"
	mysqlrepo "hotel_recs/internal/storage/mysql"
)

func migrationsDir(t *testing.T) string {
	t.Helper()
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return filepath.Join("..", "..", "migrations")
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := migrationsDir(t)

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)
	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

// Full stack: MySQL table, Redis-backed chat sessions, chi router. One
// conversation drives a search and a follow-up refusal end to end.
func TestHTTP_EndToEnd_ChatSearch(t *testing.T) {
	// Start isolated MySQL container
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=hotels",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		"root", hostPort, "hotels")

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)

	repo := mysqlrepo.New(db)
	ctx := context.Background()

	seed := []domain.Hotel{
		{
			Name: "Sea Pearl Da Nang", City: "Da Nang", Price: 1800000, Stars: 4, Rating: 4.6,
			Pool: true, Sea: true, Review: "view biển tuyệt đẹp", RoomsAvailable: 5,
		},
		{
			Name: "Old Quarter Hanoi", City: "Hanoi", Price: 950000, Stars: 3, Rating: 4.2,
			Buffet: true, Review: "yên tĩnh", RoomsAvailable: 2,
		},
	}
	if err := repo.UpsertHotels(ctx, seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// Real Redis protocol via miniredis; sessions go through the adapter.
	mr := miniredis.RunT(t)
	sessions := redisad.New(mr.Addr(), "", 0)

	rec := app.NewRecommendService(repo, 3)
	chat := app.NewChatEngine(rec, sessions, time.Minute)

	srv := server.New()
	srv.MountHandlers(&server.Handlers{R: rec, C: chat, ChatRPS: 100})
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	post := func(body string) map[string]json.RawMessage {
		t.Helper()
		res, err := http.Post(ts.URL+"/v1/chat", "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatalf("POST /v1/chat: %v", err)
		}
		defer res.Body.Close()
		if res.StatusCode != http.StatusOK {
			t.Fatalf("status %d", res.StatusCode)
		}
		var out map[string]json.RawMessage
		if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return out
	}
	str := func(m map[string]json.RawMessage, key string) string {
		var s string
		_ = json.Unmarshal(m[key], &s)
		return s
	}

	// Turn 1: search
	turn1 := post(`{"session_id":"e2e","message":"khách sạn ở đà nẵng có hồ bơi"}`)
	if str(turn1, "stage") != app.StageFollowUp {
		t.Fatalf("stage after search = %q", str(turn1, "stage"))
	}
	var hotels []domain.ScoredHotel
	if err := json.Unmarshal(turn1["hotels"], &hotels); err != nil {
		t.Fatalf("hotels: %v", err)
	}
	if len(hotels) != 1 || hotels[0].Name != "Sea Pearl Da Nang" {
		t.Fatalf("unexpected hotels: %+v", hotels)
	}

	// Session survived the turn in Redis
	if !mr.Exists("chat:e2e") {
		t.Fatal("expected session key chat:e2e in redis")
	}

	// Turn 2: refusal ends the conversation
	turn2 := post(`{"session_id":"e2e","message":"không, đủ rồi"}`)
	if str(turn2, "stage") != app.StageEnd {
		t.Fatalf("stage after refusal = %q", str(turn2, "stage"))
	}

	// The list endpoint serves the same table
	res, err := http.Get(ts.URL + "/v1/hotels")
	if err != nil {
		t.Fatalf("GET /v1/hotels: %v", err)
	}
	defer res.Body.Close()
	var all []domain.Hotel
	if err := json.NewDecoder(res.Body).Decode(&all); err != nil {
		t.Fatalf("decode hotels: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("hotels = %d, want 2", len(all))
	}
}
