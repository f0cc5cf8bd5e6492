package redisad

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"hotel_recs/internal/adapters/observability"
)

// SessionStore keeps chat sessions in Redis as JSON blobs with a TTL.
type SessionStore struct{ c *redis.Client }

func New(addr, pass string, db int) *SessionStore {
	return &SessionStore{c: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

func (r *SessionStore) Get(ctx context.Context, key string, dst any) (bool, error) {
	v, err := r.c.Get(ctx, key).Bytes()
	if err == redis.Nil {
		observability.ObserveCache("sessions", "miss")
		return false, nil
	}
	if err != nil {
		return false, err
	}
	observability.ObserveCache("sessions", "hit")
	return true, json.Unmarshal(v, dst)
}

func (r *SessionStore) Set(ctx context.Context, key string, v any, ttlSec int) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	observability.ObserveCache("sessions", "set")
	return r.c.Set(ctx, key, b, time.Duration(ttlSec)*time.Second).Err()
}

func (r *SessionStore) Del(ctx context.Context, key string) error {
	observability.ObserveCache("sessions", "del")
	return r.c.Del(ctx, key).Err()
}
